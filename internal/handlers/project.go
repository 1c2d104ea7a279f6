package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ismaelfarah/studenttrack/internal/models"
	"github.com/ismaelfarah/studenttrack/internal/services"
	"github.com/ismaelfarah/studenttrack/pkg/response"
)

// maxBackupSize caps the accepted restore upload. Backups hold inline
// attachments, so the ceiling is generous.
const maxBackupSize = 64 * 1024 * 1024

// ProjectHandler exposes the project CRUD, backup and restore endpoints.
type ProjectHandler struct {
	svc *services.ProjectService
}

func NewProjectHandler(svc *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List returns every project.
func (h *ProjectHandler) List(c *gin.Context) {
	response.Success(c, h.svc.List())
}

// Get returns a single project by id.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.NotFound(c, "project not found")
		return
	}
	response.Success(c, project)
}

// Create adds a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var input services.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid project payload: "+err.Error())
		return
	}

	project, err := h.svc.Create(&input)
	switch {
	case err == nil:
		response.Created(c, project)
	case errors.Is(err, services.ErrPersist):
		response.SuccessWithWarning(c, project, "project saved in memory but could not be persisted")
	default:
		response.BadRequest(c, err.Error())
	}
}

// Update replaces a project wholesale.
func (h *ProjectHandler) Update(c *gin.Context) {
	var input services.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid project payload: "+err.Error())
		return
	}

	project, err := h.svc.Update(c.Param("id"), &input)
	switch {
	case err == nil:
		response.Success(c, project)
	case errors.Is(err, services.ErrProjectNotFound):
		response.NotFound(c, "project not found")
	case errors.Is(err, services.ErrPersist):
		response.SuccessWithWarning(c, project, "changes saved in memory but could not be persisted")
	default:
		response.BadRequest(c, err.Error())
	}
}

type statusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// UpdateStatus moves a project to a new lifecycle stage.
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	project, err := h.svc.UpdateStatus(c.Param("id"), req.Status)
	switch {
	case err == nil:
		response.Success(c, project)
	case errors.Is(err, services.ErrProjectNotFound):
		response.NotFound(c, "project not found")
	case errors.Is(err, services.ErrPersist):
		response.SuccessWithWarning(c, project, "status saved in memory but could not be persisted")
	default:
		response.BadRequest(c, err.Error())
	}
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Param("id"))
	switch {
	case err == nil:
		response.Success(c, nil)
	case errors.Is(err, services.ErrProjectNotFound):
		response.NotFound(c, "project not found")
	case errors.Is(err, services.ErrPersist):
		response.SuccessWithWarning(c, nil, "project removed in memory but the change could not be persisted")
	default:
		response.ServerError(c, err.Error())
	}
}

// Backup streams all projects as a downloadable JSON file.
func (h *ProjectHandler) Backup(c *gin.Context) {
	data, filename, err := h.svc.Backup()
	if err != nil {
		if errors.Is(err, services.ErrNoProjects) {
			response.BadRequest(c, "no projects to back up")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// Restore replaces the project list with an uploaded backup file.
func (h *ProjectHandler) Restore(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "backup file is required")
		return
	}
	if file.Size > maxBackupSize {
		response.BadRequest(c, "backup file is too large")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.ServerError(c, "failed to read backup file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBackupSize))
	if err != nil {
		response.ServerError(c, "failed to read backup file")
		return
	}

	count, err := h.svc.Restore(data)
	switch {
	case err == nil:
		response.Success(c, gin.H{"restored": count})
	case errors.Is(err, services.ErrInvalidBackup):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPersist):
		response.SuccessWithWarning(c, gin.H{"restored": count}, "projects restored in memory but could not be persisted")
	default:
		response.ServerError(c, err.Error())
	}
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaelfarah/studenttrack/internal/services"
	"github.com/ismaelfarah/studenttrack/pkg/response"
)

// AIHandler serves the task suggestion endpoint.
type AIHandler struct {
	svc *services.AIService
}

func NewAIHandler(svc *services.AIService) *AIHandler {
	return &AIHandler{svc: svc}
}

type suggestTasksRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SuggestTasks asks the configured model for a starter task list.
func (h *AIHandler) SuggestTasks(c *gin.Context) {
	if h.svc == nil {
		response.BadRequest(c, "AI suggestions are not configured")
		return
	}

	var req suggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "project name is required")
		return
	}

	tasks, err := h.svc.SuggestTasks(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"tasks": tasks})
}

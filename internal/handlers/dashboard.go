package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaelfarah/studenttrack/internal/services"
	"github.com/ismaelfarah/studenttrack/pkg/response"
)

// DashboardHandler serves the aggregate stats endpoint.
type DashboardHandler struct {
	svc *services.ProjectService
}

func NewDashboardHandler(svc *services.ProjectService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats returns project counts for the dashboard header.
func (h *DashboardHandler) Stats(c *gin.Context) {
	response.Success(c, h.svc.Stats())
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaelfarah/studenttrack/internal/models"
	"github.com/ismaelfarah/studenttrack/internal/services"
	"github.com/ismaelfarah/studenttrack/pkg/response"
)

// TelegramHandler manages the notification settings endpoints.
type TelegramHandler struct {
	svc *services.TelegramService
}

func NewTelegramHandler(svc *services.TelegramService) *TelegramHandler {
	return &TelegramHandler{svc: svc}
}

// GetConfig returns the stored bot configuration. When nothing is
// configured yet it returns an empty config with all toggles on, which
// is what the settings form expects as its initial state.
func (h *TelegramHandler) GetConfig(c *gin.Context) {
	cfg, err := h.svc.Config()
	if err != nil {
		response.ServerError(c, "failed to load telegram settings")
		return
	}
	if cfg == nil {
		cfg = &models.NotificationConfig{}
		cfg.ApplyDefaults()
	}
	response.Success(c, cfg)
}

// SaveConfig persists the bot configuration.
func (h *TelegramHandler) SaveConfig(c *gin.Context) {
	var cfg models.NotificationConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.BadRequest(c, "invalid telegram settings payload")
		return
	}

	if err := h.svc.SaveConfig(&cfg); err != nil {
		response.ServerError(c, "failed to save telegram settings")
		return
	}
	response.Success(c, &cfg)
}

type testConnectionRequest struct {
	Token  string `json:"token" binding:"required"`
	ChatID string `json:"chatId" binding:"required"`
}

// TestConnection sends a test message with the submitted credentials so
// the admin can verify them before saving.
func (h *TelegramHandler) TestConnection(c *gin.Context) {
	var req testConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "token and chatId are required")
		return
	}

	if err := h.svc.TestConnection(req.Token, req.ChatID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"status": "message sent"})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaelfarah/studenttrack/internal/config"
	"github.com/ismaelfarah/studenttrack/internal/utils"
	"github.com/ismaelfarah/studenttrack/pkg/response"
)

// AuthHandler serves the single-admin login endpoint.
type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the admin credential and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	if req.Username != h.cfg.Admin.Username || !utils.CheckPassword(h.cfg.Admin.Password, req.Password) {
		response.Unauthorized(c, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(req.Username, h.cfg.JWT.ExpireHour)
	if err != nil {
		response.ServerError(c, "failed to issue token")
		return
	}

	response.Success(c, gin.H{
		"token":    token,
		"username": req.Username,
	})
}

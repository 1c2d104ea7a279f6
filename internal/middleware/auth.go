package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ismaelfarah/studenttrack/internal/utils"
	"github.com/ismaelfarah/studenttrack/pkg/response"
)

// AuthRequired rejects requests without a valid Bearer token and stores
// the authenticated username in the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"sparkin-backend/internal/shared/response"
)

// AdminMiddleware checks if user has admin role
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Role is set by AuthMiddleware
		roleInterface, exists := c.Get("role")
		if !exists {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		role, ok := roleInterface.(string)
		if !ok || role != "admin" {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

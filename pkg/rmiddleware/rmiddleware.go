package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yultimate/pavilion/internal/middleware"
)

// RoleMiddleware allows the request through only when the authenticated user
// holds one of the required roles. Assumes AuthMiddleware has already run.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := middleware.GetRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		for _, required := range requiredRoles {
			if strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// AdminMiddleware is a convenience middleware for admin-only access.
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("admin")
}

// ManagerOrAdminMiddleware guards the tournament and scoring write surface.
func ManagerOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("manager", "admin")
}

// CoachOrAdminMiddleware is a convenience middleware for coach or admin access.
func CoachOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("coach", "admin")
}

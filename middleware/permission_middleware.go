package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resman-simple/models"
	"github.com/resman-simple/repositories"
)

// Allowed reports whether any grant in the set covers the required
// (resource, action) pair. A MANAGE grant covers every action on its
// resource.
func Allowed(grants []models.RolePermission, resource models.Resource, action models.Action) bool {
	for _, grant := range grants {
		if grant.Allows(resource, action) {
			return true
		}
	}
	return false
}

// RequirePermission loads the caller's role grants and rejects the request
// unless one of them covers the required (resource, action) pair. Callers
// without an assigned role are denied outright.
func RequirePermission(roles *repositories.RoleRepository, resource models.Resource, action models.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, exists := c.Get("roleId")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "No role assigned",
			})
			c.Abort()
			return
		}

		grants, err := roles.GrantsForRole(roleID.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to evaluate permissions",
			})
			c.Abort()
			return
		}

		if !Allowed(grants, resource, action) {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

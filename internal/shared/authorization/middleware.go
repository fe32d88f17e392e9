package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserRole is the gin context key the auth middleware stores the role under.
const ContextKeyUserRole = "user_role"

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !UserRole(c.GetString(ContextKeyUserRole)).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"type": "forbidden", "message": "admin access required"},
			})
			return
		}
		c.Next()
	}
}

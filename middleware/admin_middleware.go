package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/authz"
)

// AdminMiddleware creates a middleware that ensures the user has admin role
// This middleware should be used after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return RequirePermission(authz.ManageProduct)
}

// RequirePermission stops the request unless the caller's role grants perm.
// It must run after AuthMiddleware or OptionalAuth.
func RequirePermission(perm authz.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			return
		}

		if !authz.HasPerm(user, perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Permission " + string(perm) + " required",
			})
			return
		}

		c.Next()
	}
}

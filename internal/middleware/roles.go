package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireManager aborts with 403 unless the authenticated actor holds the
// manager role. Must run after AuthMiddleware.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		if !actor.IsManager() {
			GetLoggerFromCtx(c.Request.Context()).Warn("Manager-only route denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Manager role required"})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDCtxKey   = contextKey("userID")
	userRoleCtxKey = contextKey("userRole")
)

// GetActorFromContext retrieves the authenticated actor set by the auth
// middleware. It reports false when the request is unauthenticated.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	ctx := c.Request.Context()
	userID, ok := ctx.Value(userIDCtxKey).(string)
	if !ok || userID == "" {
		return domain.Actor{}, false
	}
	role, ok := ctx.Value(userRoleCtxKey).(domain.UserRole)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: role}, true
}

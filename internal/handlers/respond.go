package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// actorOrAbort fetches the authenticated actor or aborts with 401.
func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
	}
	return actor, ok
}

// respondData writes the success envelope.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondMessage writes a success envelope with no payload.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

// respondError maps a service error onto the failure envelope. The
// underlying error detail is only exposed outside release mode.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Code
		message = appErr.Message
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = "Resource not found"
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		message = "Validation error"
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
		message = "Resource already exists"
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = "Forbidden"
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Unauthorized"
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrNoBillableExpenses):
		status = http.StatusBadRequest
		message = err.Error()
	}

	body := gin.H{"success": false, "message": message}
	if gin.Mode() != gin.ReleaseMode {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// respondBindingError reports a request decoding/validation failure. Field
// validation failures are spelled out per field instead of dumping the raw
// binding error.
func respondBindingError(c *gin.Context, err error) {
	message := "Invalid request format"

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			parts[i] = fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag())
		}
		message = "Validation failed: " + strings.Join(parts, "; ")
	}

	body := gin.H{"success": false, "message": message}
	if gin.Mode() != gin.ReleaseMode {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

package handlers

import (
	"log/slog"
	"net/http"

	services "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to user accounts.
type userHandler struct {
	userService services.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us services.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers the authenticated account routes. They live
// under /auth next to register/login, matching what the frontend calls.
func registerUserRoutes(rg *gin.RouterGroup, us services.UserSvcFacade) {
	h := newUserHandler(us)

	auth := rg.Group("/auth")
	{
		auth.GET("/me", h.getMe)
		auth.GET("/employees", middleware.RequireManager(), h.listEmployees)
	}
}

// getMe godoc
// @Summary Get the authenticated user
// @Description Returns the profile of the caller
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		logger.Error("Failed to load authenticated user", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToUserResponse(user))
}

// listEmployees godoc
// @Summary List active employees
// @Description Returns the active employee accounts for assignment pickers (managers only)
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} map[string]any "Unauthorized"
// @Failure 403 {object} map[string]any "Manager role required"
// @Security BearerAuth
// @Router /auth/employees [get]
func (h *userHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	employees, err := h.userService.ListEmployees(c.Request.Context(), actor)
	if err != nil {
		logger.Error("Failed to list employees", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToUserResponses(employees))
}

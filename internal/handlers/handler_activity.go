package handlers

import (
	"log/slog"
	"net/http"

	services "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// activityHandler handles HTTP requests related to client activities.
type activityHandler struct {
	activityService services.ActivitySvcFacade
}

// newActivityHandler creates a new activityHandler.
func newActivityHandler(as services.ActivitySvcFacade) *activityHandler {
	return &activityHandler{
		activityService: as,
	}
}

// registerActivityRoutes registers routes related to activities.
func registerActivityRoutes(rg *gin.RouterGroup, as services.ActivitySvcFacade) {
	h := newActivityHandler(as)

	rg.POST("/clients/:id/activities", h.logActivity)
	rg.GET("/clients/:id/activities", h.listClientActivities)

	activities := rg.Group("/activities")
	{
		activities.GET("", h.listRecentActivities)
		activities.PUT("/:id", h.updateActivity)
		activities.DELETE("/:id", h.deleteActivity)
	}
}

// logActivity godoc
// @Summary Log an activity
// @Description Records an interaction against a client and refreshes its last contact date
// @Tags activities
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param activity body dto.CreateActivityRequest true "Activity details"
// @Success 201 {object} dto.ActivityResponse
// @Failure 400 {object} map[string]any "Invalid input format or validation error"
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/activities [post]
func (h *activityHandler) logActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for logActivity", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	activity, err := h.activityService.LogActivity(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Activity logged", slog.String("activity_id", activity.ActivityID), slog.String("client_id", activity.ClientID))
	respondData(c, http.StatusCreated, dto.ToActivityResponse(activity))
}

// listClientActivities godoc
// @Summary List a client's activities
// @Tags activities
// @Produce json
// @Param id path string true "Client ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param type query string false "Activity type filter"
// @Param done query bool false "Completion filter"
// @Success 200 {object} map[string]any "Page of activities with pagination"
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/activities [get]
func (h *activityHandler) listClientActivities(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}
	params.Normalize(20)

	activities, total, err := h.activityService.ListClientActivities(c.Request.Context(), c.Param("id"), params, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"activities": dto.ToActivityResponses(activities),
		"pagination": dto.NewPagination(params.PageParams, total),
	})
}

// listRecentActivities godoc
// @Summary List recent activities
// @Description Lists recent activities across the clients visible to the caller
// @Tags activities
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param type query string false "Activity type filter"
// @Success 200 {object} map[string]any "Page of activities with pagination"
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /activities [get]
func (h *activityHandler) listRecentActivities(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}
	params.Normalize(20)

	activities, total, err := h.activityService.ListRecentActivities(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"activities": dto.ToActivityResponses(activities),
		"pagination": dto.NewPagination(params.PageParams, total),
	})
}

// updateActivity godoc
// @Summary Update an activity
// @Tags activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param activity body dto.UpdateActivityRequest true "Fields to update"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} map[string]any "Invalid input format or validation error"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Activity not found"
// @Security BearerAuth
// @Router /activities/{id} [put]
func (h *activityHandler) updateActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	activity, err := h.activityService.UpdateActivity(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Activity updated", slog.String("activity_id", activity.ActivityID))
	respondData(c, http.StatusOK, dto.ToActivityResponse(activity))
}

// deleteActivity godoc
// @Summary Delete an activity
// @Tags activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} map[string]any "Deleted"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Activity not found"
// @Security BearerAuth
// @Router /activities/{id} [delete]
func (h *activityHandler) deleteActivity(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	if err := h.activityService.DeleteActivity(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Activity deleted")
}

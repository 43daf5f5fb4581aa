package handlers

import (
	"log/slog"
	"net/http"

	"github.com/clienthub/crm_backend/internal/core/domain"
	services "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// feedbackHandler handles HTTP requests related to client feedback.
type feedbackHandler struct {
	feedbackService services.FeedbackSvcFacade
}

// newFeedbackHandler creates a new feedbackHandler.
func newFeedbackHandler(fs services.FeedbackSvcFacade) *feedbackHandler {
	return &feedbackHandler{
		feedbackService: fs,
	}
}

// registerPublicFeedbackRoutes registers the unauthenticated submission
// endpoint.
func registerPublicFeedbackRoutes(rg *gin.RouterGroup, fs services.FeedbackSvcFacade) {
	h := newFeedbackHandler(fs)
	rg.POST("/feedback", h.submitFeedback)
}

// registerFeedbackRoutes registers the authenticated feedback routes.
func registerFeedbackRoutes(rg *gin.RouterGroup, fs services.FeedbackSvcFacade) {
	h := newFeedbackHandler(fs)

	rg.GET("/clients/:id/feedback", h.listClientFeedback)

	feedback := rg.Group("/feedback", middleware.RequireManager())
	{
		feedback.GET("", h.listFeedback)
		feedback.GET("/stats", h.getFeedbackStats)
		feedback.PATCH("/:id/status", h.moderateFeedback)
	}
}

// submitFeedback godoc
// @Summary Submit client feedback
// @Description Records a public feedback submission for a won client; the submission starts out pending moderation
// @Tags feedback
// @Accept json
// @Produce json
// @Param feedback body dto.SubmitFeedbackRequest true "Feedback details"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} map[string]any "Invalid input or client has not been won"
// @Failure 404 {object} map[string]any "Client not found"
// @Router /feedback [post]
func (h *feedbackHandler) submitFeedback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitFeedback", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Feedback submission rejected", slog.String("client_id", req.ClientID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Feedback submitted", slog.String("feedback_id", feedback.FeedbackID), slog.String("client_id", feedback.ClientID))
	respondData(c, http.StatusCreated, dto.ToFeedbackResponse(feedback))
}

// listClientFeedback godoc
// @Summary List a client's feedback
// @Description Lists the client's feedback; non-managers only see approved submissions
// @Tags feedback
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} dto.FeedbackResponse
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/feedback [get]
func (h *feedbackHandler) listClientFeedback(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	items, err := h.feedbackService.ListClientFeedback(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToFeedbackResponses(items))
}

// listFeedback godoc
// @Summary List the feedback moderation queue
// @Description Lists feedback across all clients, optionally filtered by status (managers only)
// @Tags feedback
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Moderation status filter"
// @Success 200 {object} map[string]any "Page of feedback with pagination"
// @Failure 403 {object} map[string]any "Manager role required"
// @Security BearerAuth
// @Router /feedback [get]
func (h *feedbackHandler) listFeedback(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListFeedbackParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}
	params.Normalize(20)

	items, total, err := h.feedbackService.ListFeedback(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"feedback":   dto.ToFeedbackResponses(items),
		"pagination": dto.NewPagination(params.PageParams, total),
	})
}

// getFeedbackStats godoc
// @Summary Get feedback statistics
// @Description Computes global feedback aggregates (managers only)
// @Tags feedback
// @Produce json
// @Success 200 {object} dto.FeedbackStatsResponse
// @Failure 403 {object} map[string]any "Manager role required"
// @Security BearerAuth
// @Router /feedback/stats [get]
func (h *feedbackHandler) getFeedbackStats(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	stats, err := h.feedbackService.GetFeedbackStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}

// moderateFeedback godoc
// @Summary Moderate a feedback submission
// @Description Approves or rejects a pending submission and recomputes the client's rating (managers only)
// @Tags feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param status body dto.UpdateFeedbackStatusRequest true "Moderation decision"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} map[string]any "Unknown moderation status"
// @Failure 403 {object} map[string]any "Manager role required"
// @Failure 404 {object} map[string]any "Feedback not found"
// @Security BearerAuth
// @Router /feedback/{id}/status [patch]
func (h *feedbackHandler) moderateFeedback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateFeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	feedback, err := h.feedbackService.ModerateFeedback(c.Request.Context(), c.Param("id"), domain.FeedbackStatus(req.Status), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Feedback moderated", slog.String("feedback_id", feedback.FeedbackID), slog.String("status", string(feedback.Status)))
	respondData(c, http.StatusOK, dto.ToFeedbackResponse(feedback))
}

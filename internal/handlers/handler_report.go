package handlers

import (
	"net/http"

	services "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for the manager reports.
type reportHandler struct {
	reportingService services.ReportingService
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs services.ReportingService) *reportHandler {
	return &reportHandler{
		reportingService: rs,
	}
}

// registerReportRoutes registers the report routes. The dashboard quick
// stats stay outside the manager gate so employees can load their own.
func registerReportRoutes(rg *gin.RouterGroup, rs services.ReportingService) {
	h := newReportHandler(rs)

	rg.GET("/reports/employee-quick-stats", h.getEmployeeQuickStats)

	reports := rg.Group("/reports", middleware.RequireManager())
	{
		reports.GET("/summary", h.getSummaryReport)
		reports.GET("/performance", h.getPerformanceReport)
		reports.GET("/revenue", h.getRevenueReport)
		reports.GET("/activity", h.getActivityReport)
	}
}

// getEmployeeQuickStats godoc
// @Summary Get the caller's dashboard quick stats
// @Description Assigned clients, completed tasks, activities from the last week, and won-client value for the signed-in user
// @Tags reports
// @Produce json
// @Success 200 {object} dto.EmployeeQuickStatsResponse
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /reports/employee-quick-stats [get]
func (h *reportHandler) getEmployeeQuickStats(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	stats, err := h.reportingService.GetEmployeeQuickStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}

// getSummaryReport godoc
// @Summary Get the pipeline summary report
// @Description Client counts by pipeline stage with the total estimated value (managers only)
// @Tags reports
// @Produce json
// @Success 200 {object} dto.SummaryReportResponse
// @Failure 403 {object} map[string]any "Manager role required"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportHandler) getSummaryReport(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetSummaryReport(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, report)
}

// getPerformanceReport godoc
// @Summary Get the employee performance report
// @Description Per-employee pipeline outcomes (managers only)
// @Tags reports
// @Produce json
// @Success 200 {object} dto.PerformanceReportResponse
// @Failure 403 {object} map[string]any "Manager role required"
// @Security BearerAuth
// @Router /reports/performance [get]
func (h *reportHandler) getPerformanceReport(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetPerformanceReport(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, report)
}

// getRevenueReport godoc
// @Summary Get the revenue report
// @Description Closed-won value by month (managers only)
// @Tags reports
// @Produce json
// @Success 200 {object} dto.RevenueReportResponse
// @Failure 403 {object} map[string]any "Manager role required"
// @Security BearerAuth
// @Router /reports/revenue [get]
func (h *reportHandler) getRevenueReport(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetRevenueReport(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, report)
}

// getActivityReport godoc
// @Summary Get the activity report
// @Description Activity and task counts (managers only)
// @Tags reports
// @Produce json
// @Success 200 {object} dto.ActivityReportResponse
// @Failure 403 {object} map[string]any "Manager role required"
// @Security BearerAuth
// @Router /reports/activity [get]
func (h *reportHandler) getActivityReport(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetActivityReport(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, report)
}

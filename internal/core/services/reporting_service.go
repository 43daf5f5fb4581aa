package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the manager reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

func (s *reportingService) GetSummaryReport(ctx context.Context, actor domain.Actor) (*dto.SummaryReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}

	summary, err := s.reportingRepo.GetPipelineSummary(ctx)
	if err != nil {
		logger.Error("Failed to compute pipeline summary", slog.String("error", err.Error()))
		return nil, err
	}

	statusCounts := make(map[string]int, len(summary.StatusCounts))
	for status, count := range summary.StatusCounts {
		statusCounts[string(status)] = count
	}

	return &dto.SummaryReportResponse{
		StatusCounts:        statusCounts,
		TotalClients:        summary.TotalClients,
		TotalEstimatedValue: summary.TotalEstimatedValue,
	}, nil
}

func (s *reportingService) GetPerformanceReport(ctx context.Context, actor domain.Actor) (*dto.PerformanceReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}

	rows, err := s.reportingRepo.GetEmployeePerformance(ctx)
	if err != nil {
		logger.Error("Failed to compute employee performance", slog.String("error", err.Error()))
		return nil, err
	}

	entries := make([]dto.EmployeePerformanceEntry, len(rows))
	for i, row := range rows {
		entries[i] = dto.EmployeePerformanceEntry{
			UserID:       row.UserID,
			Name:         row.Name,
			TotalClients: row.TotalClients,
			WonClients:   row.WonClients,
			LostClients:  row.LostClients,
			WonValue:     row.WonValue,
		}
	}
	return &dto.PerformanceReportResponse{Performance: entries}, nil
}

func (s *reportingService) GetRevenueReport(ctx context.Context, actor domain.Actor) (*dto.RevenueReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}

	months, err := s.reportingRepo.GetRevenueByMonth(ctx)
	if err != nil {
		logger.Error("Failed to compute revenue by month", slog.String("error", err.Error()))
		return nil, err
	}

	totalRevenue := decimal.Zero
	wonCount := 0
	breakdown := make([]dto.MonthlyRevenueEntry, len(months))
	for i, month := range months {
		totalRevenue = totalRevenue.Add(month.Revenue)
		wonCount += month.Count
		breakdown[i] = dto.MonthlyRevenueEntry{
			Month:   month.Month,
			Revenue: month.Revenue,
			Count:   month.Count,
		}
	}

	return &dto.RevenueReportResponse{
		TotalRevenue:     totalRevenue,
		WonCount:         wonCount,
		MonthlyBreakdown: breakdown,
	}, nil
}

func (s *reportingService) GetActivityReport(ctx context.Context, actor domain.Actor) (*dto.ActivityReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}

	typeCounts, done, pending, err := s.reportingRepo.GetActivityTypeCounts(ctx)
	if err != nil {
		logger.Error("Failed to compute activity counts", slog.String("error", err.Error()))
		return nil, err
	}
	taskCounts, err := s.reportingRepo.GetTaskStatusCounts(ctx)
	if err != nil {
		logger.Error("Failed to compute task counts", slog.String("error", err.Error()))
		return nil, err
	}

	activityCounts := make(map[string]int, len(typeCounts))
	for activityType, count := range typeCounts {
		activityCounts[string(activityType)] = count
	}
	statusCounts := make(map[string]int, len(taskCounts))
	for status, count := range taskCounts {
		statusCounts[string(status)] = count
	}

	return &dto.ActivityReportResponse{
		ActivityCounts: activityCounts,
		TaskCounts:     statusCounts,
		TotalDone:      done,
		TotalPending:   pending,
	}, nil
}

// quickStatsActivityWindow is how far back the dashboard counts the actor's
// logged activities.
const quickStatsActivityWindow = 7 * 24 * time.Hour

// GetEmployeeQuickStats aggregates the actor's own dashboard numbers, so no
// role gate applies.
func (s *reportingService) GetEmployeeQuickStats(ctx context.Context, actor domain.Actor) (*dto.EmployeeQuickStatsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	since := time.Now().Add(-quickStatsActivityWindow)
	stats, err := s.reportingRepo.GetEmployeeQuickStats(ctx, actor.UserID, since)
	if err != nil {
		logger.Error("Failed to compute employee quick stats", slog.String("error", err.Error()), slog.String("user_id", actor.UserID))
		return nil, err
	}

	return &dto.EmployeeQuickStatsResponse{
		TotalClients:     stats.TotalClients,
		CompletedTasks:   stats.CompletedTasks,
		RecentActivities: stats.RecentActivities,
		TotalRevenue:     stats.TotalRevenue,
	}, nil
}

var _ portssvc.ReportingService = (*reportingService)(nil)

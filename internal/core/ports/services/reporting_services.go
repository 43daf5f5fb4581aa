package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/dto"
)

// ReportingService exposes the aggregate reports.
type ReportingService interface {
	// GetSummaryReport returns client counts by pipeline stage and the total
	// estimated value.
	GetSummaryReport(ctx context.Context, actor domain.Actor) (*dto.SummaryReportResponse, error)

	// GetPerformanceReport returns per-employee pipeline outcomes.
	GetPerformanceReport(ctx context.Context, actor domain.Actor) (*dto.PerformanceReportResponse, error)

	// GetRevenueReport returns closed-won value by month.
	GetRevenueReport(ctx context.Context, actor domain.Actor) (*dto.RevenueReportResponse, error)

	// GetActivityReport returns activity and task counts.
	GetActivityReport(ctx context.Context, actor domain.Actor) (*dto.ActivityReportResponse, error)

	// GetEmployeeQuickStats returns the actor's own dashboard aggregate.
	// Unlike the reports above it is open to every authenticated user.
	GetEmployeeQuickStats(ctx context.Context, actor domain.Actor) (*dto.EmployeeQuickStatsResponse, error)
}

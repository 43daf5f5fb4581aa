package repositories

import (
	"context"
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PipelineSummary is the aggregate result of GetPipelineSummary.
type PipelineSummary struct {
	StatusCounts        map[domain.ClientStatus]int
	TotalClients        int
	TotalEstimatedValue decimal.Decimal
}

// EmployeePerformance is one employee's pipeline aggregates.
type EmployeePerformance struct {
	UserID       string
	Name         string
	TotalClients int
	WonClients   int
	LostClients  int
	WonValue     decimal.Decimal
}

// MonthlyRevenue is one month's closed-won value.
type MonthlyRevenue struct {
	Month   string // YYYY-MM
	Revenue decimal.Decimal
	Count   int
}

// EmployeeQuickStats is one user's dashboard aggregate: their assigned
// clients, completed tasks, recently logged activities, and won value.
type EmployeeQuickStats struct {
	TotalClients     int
	CompletedTasks   int
	RecentActivities int
	TotalRevenue     decimal.Decimal
}

// ReportingRepository exposes the read-only aggregation queries behind the
// manager reports.
type ReportingRepository interface {
	// GetPipelineSummary counts clients by status and sums estimated value.
	GetPipelineSummary(ctx context.Context) (*PipelineSummary, error)

	// GetEmployeePerformance aggregates client outcomes per assigned employee.
	GetEmployeePerformance(ctx context.Context) ([]EmployeePerformance, error)

	// GetRevenueByMonth aggregates the estimated value of won clients by the
	// month they were last updated.
	GetRevenueByMonth(ctx context.Context) ([]MonthlyRevenue, error)

	// GetActivityTypeCounts counts activities grouped by type, plus done and
	// pending totals.
	GetActivityTypeCounts(ctx context.Context) (map[domain.ActivityType]int, int, int, error)

	// GetTaskStatusCounts counts tasks grouped by status.
	GetTaskStatusCounts(ctx context.Context) (map[domain.TaskStatus]int, error)

	// GetEmployeeQuickStats aggregates one user's assigned clients,
	// completed tasks, activities logged since the given time, and the
	// estimated value of their won clients.
	GetEmployeeQuickStats(ctx context.Context, userID string, activitiesSince time.Time) (*EmployeeQuickStats, error)
}

package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetPipelineSummary(ctx context.Context) (*portsrepo.PipelineSummary, error) {
	rows, err := r.Pool.Query(ctx, `SELECT status, COUNT(*), COALESCE(SUM(estimated_value), 0) FROM clients GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute pipeline summary: %w", err)
	}
	defer rows.Close()

	summary := &portsrepo.PipelineSummary{
		StatusCounts:        make(map[domain.ClientStatus]int),
		TotalEstimatedValue: decimal.Zero,
	}
	for rows.Next() {
		var status string
		var count int
		var value decimal.Decimal
		if err := rows.Scan(&status, &count, &value); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline summary row: %w", err)
		}
		summary.StatusCounts[domain.ClientStatus(status)] = count
		summary.TotalClients += count
		summary.TotalEstimatedValue = summary.TotalEstimatedValue.Add(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading pipeline summary rows: %w", err)
	}
	return summary, nil
}

func (r *PgxReportingRepository) GetEmployeePerformance(ctx context.Context) ([]portsrepo.EmployeePerformance, error) {
	query := `
        SELECT u.user_id, u.name,
               COUNT(c.client_id),
               COUNT(c.client_id) FILTER (WHERE c.status = 'won'),
               COUNT(c.client_id) FILTER (WHERE c.status = 'lost'),
               COALESCE(SUM(c.estimated_value) FILTER (WHERE c.status = 'won'), 0)
        FROM users u
        LEFT JOIN clients c ON c.assigned_to = u.user_id
        WHERE u.role = 'employee' AND u.is_active
        GROUP BY u.user_id, u.name
        ORDER BY u.name;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute employee performance: %w", err)
	}
	defer rows.Close()

	var results []portsrepo.EmployeePerformance
	for rows.Next() {
		var row portsrepo.EmployeePerformance
		if err := rows.Scan(&row.UserID, &row.Name, &row.TotalClients, &row.WonClients, &row.LostClients, &row.WonValue); err != nil {
			return nil, fmt.Errorf("failed to scan employee performance row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading employee performance rows: %w", err)
	}
	return results, nil
}

func (r *PgxReportingRepository) GetRevenueByMonth(ctx context.Context) ([]portsrepo.MonthlyRevenue, error) {
	query := `
        SELECT to_char(date_trunc('month', last_updated_at), 'YYYY-MM') AS month,
               COALESCE(SUM(estimated_value), 0),
               COUNT(*)
        FROM clients
        WHERE status = 'won'
        GROUP BY month
        ORDER BY month;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue by month: %w", err)
	}
	defer rows.Close()

	var results []portsrepo.MonthlyRevenue
	for rows.Next() {
		var row portsrepo.MonthlyRevenue
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading revenue rows: %w", err)
	}
	return results, nil
}

func (r *PgxReportingRepository) GetActivityTypeCounts(ctx context.Context) (map[domain.ActivityType]int, int, int, error) {
	rows, err := r.Pool.Query(ctx, `SELECT type, COUNT(*), COUNT(*) FILTER (WHERE done) FROM activities GROUP BY type;`)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to compute activity counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ActivityType]int)
	done := 0
	total := 0
	for rows.Next() {
		var activityType string
		var count, doneCount int
		if err := rows.Scan(&activityType, &count, &doneCount); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to scan activity count row: %w", err)
		}
		counts[domain.ActivityType(activityType)] = count
		done += doneCount
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("failed reading activity count rows: %w", err)
	}
	return counts, done, total - done, nil
}

func (r *PgxReportingRepository) GetEmployeeQuickStats(ctx context.Context, userID string, activitiesSince time.Time) (*portsrepo.EmployeeQuickStats, error) {
	query := `
        SELECT (SELECT COUNT(*) FROM clients WHERE assigned_to = $1),
               (SELECT COUNT(*) FROM tasks WHERE assigned_to = $1 AND status = 'completed'),
               (SELECT COUNT(*) FROM activities WHERE created_by = $1 AND date >= $2),
               (SELECT COALESCE(SUM(estimated_value), 0) FROM clients WHERE assigned_to = $1 AND status = 'won');
    `
	var stats portsrepo.EmployeeQuickStats
	err := r.Pool.QueryRow(ctx, query, userID, activitiesSince).Scan(
		&stats.TotalClients,
		&stats.CompletedTasks,
		&stats.RecentActivities,
		&stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute employee quick stats: %w", err)
	}
	return &stats, nil
}

func (r *PgxReportingRepository) GetTaskStatusCounts(ctx context.Context) (map[domain.TaskStatus]int, error) {
	rows, err := r.Pool.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.TaskStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan task count row: %w", err)
		}
		counts[domain.TaskStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading task count rows: %w", err)
	}
	return counts, nil
}

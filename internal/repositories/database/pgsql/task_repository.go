package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	"github.com/clienthub/crm_backend/internal/models"
	"github.com/clienthub/crm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTaskRepository struct {
	BaseRepository
}

func newPgxTaskRepository(db *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

const taskColumns = `task_id, title, description, assigned_to, assigned_by, client_id, priority, status, due_date, completed_at, notes, tags, created_at, created_by, last_updated_at, last_updated_by`

func scanTask(row pgx.Row) (*models.Task, error) {
	var m models.Task
	err := row.Scan(
		&m.TaskID,
		&m.Title,
		&m.Description,
		&m.AssignedTo,
		&m.AssignedBy,
		&m.ClientID,
		&m.Priority,
		&m.Status,
		&m.DueDate,
		&m.CompletedAt,
		&m.Notes,
		&m.Tags,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	m := mapping.ToModelTask(task)
	query := `
        INSERT INTO tasks (task_id, title, description, assigned_to, assigned_by, client_id, priority, status, due_date, completed_at, notes, tags, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.TaskID,
		m.Title,
		m.Description,
		m.AssignedTo,
		m.AssignedBy,
		m.ClientID,
		m.Priority,
		m.Status,
		m.DueDate,
		m.CompletedAt,
		m.Notes,
		m.Tags,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1;`
	m, err := scanTask(r.Pool.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID %s: %w", taskID, err)
	}
	task := mapping.ToDomainTask(*m)
	return &task, nil
}

func (r *PgxTaskRepository) ListTasks(ctx context.Context, filter portsrepo.TaskListFilter) ([]domain.Task, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1
	if filter.AssignedTo != nil {
		where += fmt.Sprintf(" AND assigned_to = $%d", argPos)
		args = append(args, *filter.AssignedTo)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.Priority != nil {
		where += fmt.Sprintf(" AND priority = $%d", argPos)
		args = append(args, string(*filter.Priority))
		argPos++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks` + where +
		fmt.Sprintf(" ORDER BY due_date ASC NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var ms []models.Task
	for rows.Next() {
		m, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed reading task rows: %w", err)
	}
	return mapping.ToDomainTaskSlice(ms), total, nil
}

func (r *PgxTaskRepository) GetTaskStats(ctx context.Context, assignedTo *string) (*portsrepo.TaskStats, error) {
	where := ``
	args := []any{}
	if assignedTo != nil {
		where = ` WHERE assigned_to = $1`
		args = append(args, *assignedTo)
	}
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'completed'),
               COUNT(*) FILTER (WHERE status = 'pending'),
               COUNT(*) FILTER (WHERE status = 'in_progress'),
               COUNT(*) FILTER (WHERE due_date IS NOT NULL AND due_date < now() AND status <> 'completed')
        FROM tasks` + where + `;`

	var stats portsrepo.TaskStats
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Completed,
		&stats.Pending,
		&stats.InProgress,
		&stats.Overdue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task stats: %w", err)
	}
	return &stats, nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	m := mapping.ToModelTask(task)
	query := `
        UPDATE tasks SET
            title = $2,
            description = $3,
            assigned_to = $4,
            priority = $5,
            status = $6,
            due_date = $7,
            completed_at = $8,
            notes = $9,
            tags = $10,
            last_updated_at = $11,
            last_updated_by = $12
        WHERE task_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.TaskID,
		m.Title,
		m.Description,
		m.AssignedTo,
		m.Priority,
		m.Status,
		m.DueDate,
		m.CompletedAt,
		m.Notes,
		m.Tags,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", m.TaskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1;`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

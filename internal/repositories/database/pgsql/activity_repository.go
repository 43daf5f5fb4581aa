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

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(db *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

const activityColumns = `activity_id, client_id, type, description, date, done, priority, created_at, created_by, last_updated_at, last_updated_by`

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var m models.Activity
	err := row.Scan(
		&m.ActivityID,
		&m.ClientID,
		&m.Type,
		&m.Description,
		&m.Date,
		&m.Done,
		&m.Priority,
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

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
        INSERT INTO activities (activity_id, client_id, type, description, date, done, priority, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ActivityID,
		m.ClientID,
		m.Type,
		m.Description,
		m.Date,
		m.Done,
		m.Priority,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

func (r *PgxActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE activity_id = $1;`
	m, err := scanActivity(r.Pool.QueryRow(ctx, query, activityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find activity by ID %s: %w", activityID, err)
	}
	activity := mapping.ToDomainActivity(*m)
	return &activity, nil
}

func (r *PgxActivityRepository) ListActivities(ctx context.Context, filter portsrepo.ActivityListFilter) ([]domain.Activity, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1
	if filter.ClientID != nil {
		where += fmt.Sprintf(" AND client_id = $%d", argPos)
		args = append(args, *filter.ClientID)
		argPos++
	}
	if len(filter.ClientIDs) > 0 {
		where += fmt.Sprintf(" AND client_id = ANY($%d)", argPos)
		args = append(args, filter.ClientIDs)
		argPos++
	}
	if filter.Type != nil {
		where += fmt.Sprintf(" AND type = $%d", argPos)
		args = append(args, string(*filter.Type))
		argPos++
	}
	if filter.Done != nil {
		where += fmt.Sprintf(" AND done = $%d", argPos)
		args = append(args, *filter.Done)
		argPos++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM activities`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := `SELECT ` + activityColumns + ` FROM activities` + where +
		fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var ms []models.Activity
	for rows.Next() {
		m, err := scanActivity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed reading activity rows: %w", err)
	}
	return mapping.ToDomainActivitySlice(ms), total, nil
}

func (r *PgxActivityRepository) UpdateActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
        UPDATE activities SET
            type = $2,
            description = $3,
            date = $4,
            done = $5,
            priority = $6,
            last_updated_at = $7,
            last_updated_by = $8
        WHERE activity_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.ActivityID,
		m.Type,
		m.Description,
		m.Date,
		m.Done,
		m.Priority,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity %s: %w", m.ActivityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxActivityRepository) DeleteActivity(ctx context.Context, activityID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM activities WHERE activity_id = $1;`, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity %s: %w", activityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

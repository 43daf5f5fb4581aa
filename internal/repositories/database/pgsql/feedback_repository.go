package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	"github.com/clienthub/crm_backend/internal/models"
	"github.com/clienthub/crm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFeedbackRepository struct {
	BaseRepository
}

func newPgxFeedbackRepository(db *pgxpool.Pool) portsrepo.FeedbackRepositoryFacade {
	return &PgxFeedbackRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.FeedbackRepositoryFacade = (*PgxFeedbackRepository)(nil)

const feedbackColumns = `feedback_id, client_id, rating, comment, service_quality, communication, would_recommend, submitted_by, is_anonymous, status, created_at, created_by, last_updated_at, last_updated_by`

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var m models.Feedback
	err := row.Scan(
		&m.FeedbackID,
		&m.ClientID,
		&m.Rating,
		&m.Comment,
		&m.ServiceQuality,
		&m.Communication,
		&m.WouldRecommend,
		&m.SubmittedBy,
		&m.IsAnonymous,
		&m.Status,
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

func (r *PgxFeedbackRepository) SaveFeedback(ctx context.Context, feedback domain.Feedback) error {
	m := mapping.ToModelFeedback(feedback)
	query := `
        INSERT INTO feedback (feedback_id, client_id, rating, comment, service_quality, communication, would_recommend, submitted_by, is_anonymous, status, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.FeedbackID,
		m.ClientID,
		m.Rating,
		m.Comment,
		m.ServiceQuality,
		m.Communication,
		m.WouldRecommend,
		m.SubmittedBy,
		m.IsAnonymous,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

func (r *PgxFeedbackRepository) FindFeedbackByID(ctx context.Context, feedbackID string) (*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE feedback_id = $1;`
	m, err := scanFeedback(r.Pool.QueryRow(ctx, query, feedbackID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find feedback by ID %s: %w", feedbackID, err)
	}
	feedback := mapping.ToDomainFeedback(*m)
	return &feedback, nil
}

func (r *PgxFeedbackRepository) ListFeedbackByClient(ctx context.Context, clientID string) ([]domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE client_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client feedback: %w", err)
	}
	defer rows.Close()

	var ms []models.Feedback
	for rows.Next() {
		m, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading feedback rows: %w", err)
	}
	return mapping.ToDomainFeedbackSlice(ms), nil
}

func (r *PgxFeedbackRepository) ListFeedback(ctx context.Context, filter portsrepo.FeedbackListFilter) ([]domain.Feedback, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	query := `SELECT ` + feedbackColumns + ` FROM feedback` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var ms []models.Feedback
	for rows.Next() {
		m, err := scanFeedback(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed reading feedback rows: %w", err)
	}
	return mapping.ToDomainFeedbackSlice(ms), total, nil
}

func (r *PgxFeedbackRepository) GetApprovedRating(ctx context.Context, clientID string) (float64, int, error) {
	query := `
        SELECT COALESCE(AVG(rating), 0), COUNT(*)
        FROM feedback
        WHERE client_id = $1 AND status = 'approved';
    `
	var average float64
	var count int
	if err := r.Pool.QueryRow(ctx, query, clientID).Scan(&average, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to compute approved rating: %w", err)
	}
	return average, count, nil
}

func (r *PgxFeedbackRepository) GetFeedbackStats(ctx context.Context) (*portsrepo.FeedbackGlobalStats, error) {
	summaryQuery := `
        SELECT COUNT(*),
               COALESCE(AVG(rating), 0),
               COALESCE(AVG(service_quality) FILTER (WHERE service_quality > 0), 0),
               COALESCE(AVG(communication) FILTER (WHERE communication > 0), 0),
               COUNT(*) FILTER (WHERE would_recommend)
        FROM feedback;
    `
	stats := &portsrepo.FeedbackGlobalStats{RatingDistribution: make(map[int]int)}
	err := r.Pool.QueryRow(ctx, summaryQuery).Scan(
		&stats.TotalFeedback,
		&stats.AverageRating,
		&stats.AverageServiceQuality,
		&stats.AverageCommunication,
		&stats.WouldRecommendCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute feedback stats: %w", err)
	}

	rows, err := r.Pool.Query(ctx, `SELECT rating, COUNT(*) FROM feedback GROUP BY rating;`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating distribution row: %w", err)
		}
		stats.RatingDistribution[rating] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading rating distribution rows: %w", err)
	}
	return stats, nil
}

func (r *PgxFeedbackRepository) UpdateFeedbackStatus(ctx context.Context, feedbackID string, status domain.FeedbackStatus, updatedBy string) error {
	query := `
        UPDATE feedback SET
            status = $2,
            last_updated_at = $3,
            last_updated_by = $4
        WHERE feedback_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, feedbackID, string(status), time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update feedback status %s: %w", feedbackID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

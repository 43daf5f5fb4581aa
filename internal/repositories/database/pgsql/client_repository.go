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

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, name, email, phone, company, status, assigned_to, notes, estimated_value, last_contact_date, feedback_requested, feedback_requested_at, average_rating, feedback_count, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (*models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Company,
		&m.Status,
		&m.AssignedTo,
		&m.Notes,
		&m.EstimatedValue,
		&m.LastContactDate,
		&m.FeedbackRequested,
		&m.FeedbackRequestedAt,
		&m.AverageRating,
		&m.FeedbackCount,
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

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
        INSERT INTO clients (client_id, name, email, phone, company, status, assigned_to, notes, estimated_value, last_contact_date, feedback_requested, feedback_requested_at, average_rating, feedback_count, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.Email,
		m.Phone,
		m.Company,
		m.Status,
		m.AssignedTo,
		m.Notes,
		m.EstimatedValue,
		m.LastContactDate,
		m.FeedbackRequested,
		m.FeedbackRequestedAt,
		m.AverageRating,
		m.FeedbackCount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	client := mapping.ToDomainClient(*m)
	return &client, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, filter portsrepo.ClientListFilter) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1`
	args := []any{}
	argPos := 1
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.AssignedTo != nil {
		query += fmt.Sprintf(" AND assigned_to = $%d", argPos)
		args = append(args, *filter.AssignedTo)
		argPos++
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var ms []models.Client
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading client rows: %w", err)
	}
	return mapping.ToDomainClientSlice(ms), nil
}

func (r *PgxClientRepository) ListClientIDsByAssignee(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT client_id FROM clients WHERE assigned_to = $1;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client ids for assignee: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan client id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading client id rows: %w", err)
	}
	return ids, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
        UPDATE clients SET
            name = $2,
            email = $3,
            phone = $4,
            company = $5,
            status = $6,
            assigned_to = $7,
            notes = $8,
            estimated_value = $9,
            last_contact_date = $10,
            feedback_requested = $11,
            feedback_requested_at = $12,
            last_updated_at = $13,
            last_updated_by = $14
        WHERE client_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.Email,
		m.Phone,
		m.Company,
		m.Status,
		m.AssignedTo,
		m.Notes,
		m.EstimatedValue,
		m.LastContactDate,
		m.FeedbackRequested,
		m.FeedbackRequestedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) UpdateFeedbackAggregates(ctx context.Context, clientID string, averageRating float64, feedbackCount int, updatedAt time.Time) error {
	query := `
        UPDATE clients SET
            average_rating = $2,
            feedback_count = $3,
            last_updated_at = $4
        WHERE client_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, clientID, averageRating, feedbackCount, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update feedback aggregates for client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

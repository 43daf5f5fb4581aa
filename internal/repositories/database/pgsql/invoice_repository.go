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

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, client_id, total_amount, status, issue_date, due_date, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.ClientID,
		&m.TotalAmount,
		&m.Status,
		&m.IssueDate,
		&m.DueDate,
		&m.Notes,
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

func (r *PgxInvoiceRepository) expenseIDsForInvoice(ctx context.Context, invoiceID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT expense_id FROM expenses WHERE invoice_id = $1 ORDER BY date ASC;`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice expense ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expense id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading expense id rows: %w", err)
	}
	return ids, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	expenseIDs, err := r.expenseIDsForInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice := mapping.ToDomainInvoice(*m, expenseIDs)
	return &invoice, nil
}

func (r *PgxInvoiceRepository) ListInvoicesByClient(ctx context.Context, clientID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1 ORDER BY issue_date DESC;`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var ms []models.Invoice
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading invoice rows: %w", err)
	}

	invoices := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		expenseIDs, err := r.expenseIDsForInvoice(ctx, m.InvoiceID)
		if err != nil {
			return nil, err
		}
		invoices[i] = mapping.ToDomainInvoice(m, expenseIDs)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) CountInvoices(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

// CreateInvoiceWithExpenses inserts the invoice row and flips its expenses
// to invoiced in one transaction. A concurrent generation that already
// claimed one of the expenses makes the expense update fall short, which
// rolls everything back.
func (r *PgxInvoiceRepository) CreateInvoiceWithExpenses(ctx context.Context, invoice domain.Invoice, expenseIDs []string) error {
	m := mapping.ToModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	insertQuery := `
        INSERT INTO invoices (invoice_id, invoice_number, client_id, total_amount, status, issue_date, due_date, notes, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err = tx.Exec(ctx, insertQuery,
		m.InvoiceID,
		m.InvoiceNumber,
		m.ClientID,
		m.TotalAmount,
		m.Status,
		m.IssueDate,
		m.DueDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	markQuery := `
        UPDATE expenses SET
            is_invoiced = TRUE,
            invoice_id = $1,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE expense_id = ANY($4) AND NOT is_invoiced;
    `
	tag, err := tx.Exec(ctx, markQuery, m.InvoiceID, m.LastUpdatedAt, m.LastUpdatedBy, expenseIDs)
	if err != nil {
		return fmt.Errorf("failed to mark expenses invoiced: %w", err)
	}
	if tag.RowsAffected() != int64(len(expenseIDs)) {
		return apperrors.NewAppError(409, "some expenses were invoiced concurrently", apperrors.ErrInvalidState)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE invoices SET
            status = $2,
            last_updated_at = $3,
            last_updated_by = $4
        WHERE invoice_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, invoiceID, string(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update invoice status %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInvoiceReleasingExpenses releases the invoice's expenses and removes
// the invoice row in one transaction.
func (r *PgxInvoiceRepository) DeleteInvoiceReleasingExpenses(ctx context.Context, invoiceID string, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	releaseQuery := `
        UPDATE expenses SET
            is_invoiced = FALSE,
            invoice_id = NULL,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE invoice_id = $1;
    `
	if _, err := tx.Exec(ctx, releaseQuery, invoiceID, updatedAt, updatedBy); err != nil {
		return fmt.Errorf("failed to release invoice expenses: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// ResetClientInvoices releases every invoiced expense of the client and
// deletes all invoices that referenced them, in one transaction.
func (r *PgxInvoiceRepository) ResetClientInvoices(ctx context.Context, clientID string, updatedBy string, updatedAt time.Time) (int, int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	resetQuery := `
        UPDATE expenses SET
            is_invoiced = FALSE,
            invoice_id = NULL,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE client_id = $1 AND is_invoiced;
    `
	resetTag, err := tx.Exec(ctx, resetQuery, clientID, updatedAt, updatedBy)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to reset invoiced expenses: %w", err)
	}

	deleteTag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE client_id = $1;`, clientID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete client invoices: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, 0, err
	}
	return int(resetTag.RowsAffected()), int(deleteTag.RowsAffected()), nil
}

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
	"github.com/shopspring/decimal"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, client_id, description, category, amount, date, is_invoiced, invoice_id, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.ClientID,
		&m.Description,
		&m.Category,
		&m.Amount,
		&m.Date,
		&m.IsInvoiced,
		&m.InvoiceID,
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

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	defer rows.Close()
	var ms []models.Expense
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading expense rows: %w", err)
	}
	return mapping.ToDomainExpenseSlice(ms), nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        INSERT INTO expenses (expense_id, client_id, description, category, amount, date, is_invoiced, invoice_id, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.ClientID,
		m.Description,
		m.Category,
		m.Amount,
		m.Date,
		m.IsInvoiced,
		m.InvoiceID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	expense := mapping.ToDomainExpense(*m)
	return &expense, nil
}

func (r *PgxExpenseRepository) ListUninvoicedByClient(ctx context.Context, clientID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE client_id = $1 AND NOT is_invoiced ORDER BY date ASC;`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uninvoiced expenses: %w", err)
	}
	return collectExpenses(rows)
}

func (r *PgxExpenseRepository) FindExpensesByIDs(ctx context.Context, clientID string, expenseIDs []string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE client_id = $1 AND expense_id = ANY($2) ORDER BY date ASC;`
	rows, err := r.Pool.Query(ctx, query, clientID, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find expenses by ids: %w", err)
	}
	return collectExpenses(rows)
}

func (r *PgxExpenseRepository) FindExpensesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE invoice_id = $1 ORDER BY date ASC;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expenses by invoice: %w", err)
	}
	return collectExpenses(rows)
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, int, decimal.Decimal, error) {
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
	if filter.Category != nil {
		where += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, string(*filter.Category))
		argPos++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	var total int
	var totalAmount decimal.Decimal
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM expenses`+where, args...).Scan(&total, &totalAmount); err != nil {
		return nil, 0, decimal.Zero, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses` + where +
		fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, decimal.Zero, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, 0, decimal.Zero, err
	}
	return expenses, total, totalAmount, nil
}

func (r *PgxExpenseRepository) GetExpenseStats(ctx context.Context, clientIDs []string) (*portsrepo.ExpenseStats, error) {
	query := `
        SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
        FROM expenses
        WHERE ($1::text[] IS NULL OR client_id = ANY($1))
        GROUP BY category;
    `
	var idsParam any
	if len(clientIDs) > 0 {
		idsParam = clientIDs
	}
	rows, err := r.Pool.Query(ctx, query, idsParam)
	if err != nil {
		return nil, fmt.Errorf("failed to compute expense stats: %w", err)
	}
	defer rows.Close()

	stats := &portsrepo.ExpenseStats{
		TotalAmount:   decimal.Zero,
		CategoryCount: make(map[domain.ExpenseCategory]int),
		CategoryTotal: make(map[domain.ExpenseCategory]decimal.Decimal),
	}
	for rows.Next() {
		var category string
		var count int
		var total decimal.Decimal
		if err := rows.Scan(&category, &count, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense stats row: %w", err)
		}
		stats.CategoryCount[domain.ExpenseCategory(category)] = count
		stats.CategoryTotal[domain.ExpenseCategory(category)] = total
		stats.TotalExpenses += count
		stats.TotalAmount = stats.TotalAmount.Add(total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading expense stats rows: %w", err)
	}
	return stats, nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        UPDATE expenses SET
            description = $2,
            category = $3,
            amount = $4,
            date = $5,
            last_updated_at = $6,
            last_updated_by = $7
        WHERE expense_id = $1 AND NOT is_invoiced;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.Description,
		m.Category,
		m.Amount,
		m.Date,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1 AND NOT is_invoiced;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

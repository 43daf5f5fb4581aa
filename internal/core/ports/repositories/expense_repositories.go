package repositories

import (
	"context"
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseListFilter is the filter-specification value object for expense
// listings.
type ExpenseListFilter struct {
	ClientID  *string
	ClientIDs []string // non-empty: restrict to these clients (employee scope)
	Category  *domain.ExpenseCategory
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// ExpenseReader defines read operations for expense data.
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListUninvoicedByClient retrieves all expenses for the client with
	// is_invoiced false, ordered by incurred date ascending. This is the
	// default selection set for invoice generation.
	ListUninvoicedByClient(ctx context.Context, clientID string) ([]domain.Expense, error)

	// FindExpensesByIDs retrieves the client's expenses matching an explicit
	// identifier set, ordered by incurred date ascending.
	FindExpensesByIDs(ctx context.Context, clientID string, expenseIDs []string) ([]domain.Expense, error)

	// FindExpensesByInvoiceID retrieves the expenses referencing an invoice,
	// ordered by incurred date ascending.
	FindExpensesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Expense, error)

	// ListExpenses retrieves a page of expenses matching the filter, newest
	// first, along with the total row count and summed amount of the filter.
	ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]domain.Expense, int, decimal.Decimal, error)

	// GetExpenseStats computes count, total, average, and per-category
	// breakdown over the expenses of the given clients (all clients when
	// clientIDs is nil).
	GetExpenseStats(ctx context.Context, clientIDs []string) (*ExpenseStats, error)
}

// ExpenseStats is the aggregate result of GetExpenseStats.
type ExpenseStats struct {
	TotalExpenses int
	TotalAmount   decimal.Decimal
	CategoryCount map[domain.ExpenseCategory]int
	CategoryTotal map[domain.ExpenseCategory]decimal.Decimal
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense persists the mutable fields of an uninvoiced expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an uninvoiced expense.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

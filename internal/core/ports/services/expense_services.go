package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ExpenseReaderSvc defines read operations for expense data.
type ExpenseReaderSvc interface {
	// ListClientExpenses retrieves a page of a client's expenses, newest
	// first, with the total count and summed amount.
	ListClientExpenses(ctx context.Context, clientID string, params dto.ListExpensesParams, actor domain.Actor) ([]domain.Expense, int, decimal.Decimal, error)

	// ListAllExpenses retrieves a page across all clients. Manager only.
	ListAllExpenses(ctx context.Context, params dto.ListExpensesParams, actor domain.Actor) ([]domain.Expense, int, decimal.Decimal, error)

	// GetExpenseStats aggregates the expenses visible to the actor.
	GetExpenseStats(ctx context.Context, actor domain.Actor) (*dto.ExpenseStatsResponse, error)
}

// ExpenseWriterSvc defines write operations for expense data.
type ExpenseWriterSvc interface {
	// AddExpense records a new billable expense against a client.
	AddExpense(ctx context.Context, clientID string, req dto.CreateExpenseRequest, actor domain.Actor) (*domain.Expense, error)

	// UpdateExpense applies a partial update to an uninvoiced expense.
	// Returns apperrors.ErrInvalidState once the expense is invoiced.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actor domain.Actor) (*domain.Expense, error)

	// DeleteExpense removes an uninvoiced expense. Returns
	// apperrors.ErrInvalidState once the expense is invoiced.
	DeleteExpense(ctx context.Context, expenseID string, actor domain.Actor) error
}

// ExpenseSvcFacade combines all expense-related service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}

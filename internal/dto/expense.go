package dto

import (
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the payload for adding an expense to a client.
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date"`
}

// UpdateExpenseRequest is the partial-update payload for an uninvoiced
// expense. Nil fields are left untouched.
type UpdateExpenseRequest struct {
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
}

// ListExpensesParams are the query filters for expense listings.
type ListExpensesParams struct {
	PageParams
	Category  string `form:"category"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	ClientID  string `form:"client"`
}

// ExpenseResponse is the response shape of an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	ClientID    string          `json:"clientID"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	IsInvoiced  bool            `json:"isInvoiced"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToExpenseResponse converts a domain Expense to its response shape.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		ClientID:    e.ClientID,
		Description: e.Description,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Date:        e.Date,
		IsInvoiced:  e.IsInvoiced,
		InvoiceID:   e.InvoiceID,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToExpenseResponses converts a slice of domain Expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out
}

// ListExpensesResponse is the paged expense list with its running total.
type ListExpensesResponse struct {
	Expenses    []ExpenseResponse `json:"data"`
	Pagination  Pagination        `json:"pagination"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
}

// CategoryStat is the per-category breakdown entry of the expense stats.
type CategoryStat struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// ExpenseStatsResponse summarises expenses visible to the actor.
type ExpenseStatsResponse struct {
	TotalExpenses     int                     `json:"totalExpenses"`
	TotalAmount       decimal.Decimal         `json:"totalAmount"`
	AverageAmount     decimal.Decimal         `json:"averageAmount"`
	CategoryBreakdown map[string]CategoryStat `json:"categoryBreakdown"`
}

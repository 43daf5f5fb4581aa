package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a billable cost.
type ExpenseCategory string

const (
	CategoryConsulting  ExpenseCategory = "Consulting"
	CategoryHosting     ExpenseCategory = "Hosting"
	CategoryMaintenance ExpenseCategory = "Maintenance"
	CategoryDevelopment ExpenseCategory = "Development"
	CategoryDesign      ExpenseCategory = "Design"
	CategoryMarketing   ExpenseCategory = "Marketing"
	CategoryOther       ExpenseCategory = "Other"
)

// ValidExpenseCategory reports whether c is a known category.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryConsulting, CategoryHosting, CategoryMaintenance,
		CategoryDevelopment, CategoryDesign, CategoryMarketing, CategoryOther:
		return true
	}
	return false
}

// Expense is a billable cost incurred on behalf of a client.
//
// Invariant: IsInvoiced is true iff InvoiceID is non-nil. The storage layer
// enforces this with a CHECK constraint; service code must only flip both
// together.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	ClientID    string          `json:"clientID"`
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	IsInvoiced  bool            `json:"isInvoiced"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	AuditFields
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory mirrors domain.ExpenseCategory at the storage layer.
type ExpenseCategory string

// Expense is the expenses table row. is_invoiced and invoice_id are kept in
// lockstep by a CHECK constraint.
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

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

// ValidInvoiceStatus reports whether s is a member of the status enum.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal
// forward-only transition (draft -> sent -> paid). Backward and skipped
// transitions are rejected.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return next == InvoiceSent
	case InvoiceSent:
		return next == InvoicePaid
	}
	return false
}

// Invoice aggregates one or more expenses for a client. TotalAmount is the
// denormalized sum of the referenced expense amounts, frozen at generation
// time; it stays correct because invoiced expenses are immutable.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientID      string          `json:"clientID"`
	ExpenseIDs    []string        `json:"expenseIDs"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Notes         string          `json:"notes"`
	AuditFields
}

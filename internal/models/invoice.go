package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors domain.InvoiceStatus at the storage layer.
type InvoiceStatus string

// Invoice is the invoices table row. The referenced expenses are not a
// column; they are the expenses rows whose invoice_id points here.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientID      string          `json:"clientID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Notes         string          `json:"notes"`
	AuditFields
}

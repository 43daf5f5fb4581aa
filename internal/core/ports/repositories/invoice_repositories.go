package repositories

import (
	"context"
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice, including the ids of the expenses
	// referencing it.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByClient retrieves a client's invoices, newest issue date
	// first.
	ListInvoicesByClient(ctx context.Context, clientID string) ([]domain.Invoice, error)

	// CountInvoices returns the total number of invoices. Feeds the
	// sequential invoice number allocator.
	CountInvoices(ctx context.Context) (int64, error)
}

// InvoiceWriter defines write operations for invoice data. The multi-row
// operations run inside a single database transaction so that an invoice
// and the invoiced flags of its expenses can never be observed out of step.
type InvoiceWriter interface {
	// CreateInvoiceWithExpenses persists the invoice and marks every expense
	// in expenseIDs as invoiced by it, atomically. Returns
	// apperrors.ErrDuplicate when the invoice number is already taken.
	CreateInvoiceWithExpenses(ctx context.Context, invoice domain.Invoice, expenseIDs []string) error

	// UpdateInvoiceStatus sets the invoice status.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error

	// DeleteInvoiceReleasingExpenses releases every expense referencing the
	// invoice back to uninvoiced and deletes the invoice row, atomically.
	DeleteInvoiceReleasingExpenses(ctx context.Context, invoiceID string, updatedBy string, updatedAt time.Time) error

	// ResetClientInvoices flips every invoiced expense of the client back to
	// uninvoiced and deletes every invoice that referenced any of them,
	// regardless of invoice status, atomically. Returns the number of
	// expenses reset and invoices deleted.
	ResetClientInvoices(ctx context.Context, clientID string, updatedBy string, updatedAt time.Time) (int, int, error)
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data.
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its client and billed
	// expenses resolved.
	GetInvoiceByID(ctx context.Context, invoiceID string, actor domain.Actor) (*dto.InvoiceResponse, error)

	// ListClientInvoices retrieves a client's invoices, newest issue date
	// first.
	ListClientInvoices(ctx context.Context, clientID string, actor domain.Actor) ([]dto.InvoiceResponse, error)

	// RenderInvoicePDF renders the invoice as a PDF document.
	RenderInvoicePDF(ctx context.Context, invoiceID string, actor domain.Actor) ([]byte, error)
}

// InvoiceWriterSvc defines write operations for invoice data.
type InvoiceWriterSvc interface {
	// GenerateInvoice creates a draft invoice over the client's uninvoiced
	// expenses (or an explicit selection of them) and marks them invoiced.
	// At most one generation runs per client at a time.
	GenerateInvoice(ctx context.Context, clientID string, req dto.GenerateInvoiceRequest, actor domain.Actor) (*dto.InvoiceResponse, error)

	// UpdateInvoiceStatus moves the invoice forward along
	// draft -> sent -> paid. Any other transition is rejected with
	// apperrors.ErrInvalidState.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, actor domain.Actor) (*dto.InvoiceResponse, error)

	// DeleteInvoice removes a draft invoice and releases its expenses back
	// to uninvoiced. Non-draft invoices are immutable.
	DeleteInvoice(ctx context.Context, invoiceID string, actor domain.Actor) error

	// ResetInvoicedExpenses is the administrative recovery hatch: it flips
	// every invoiced expense of the client back to uninvoiced and deletes
	// the invoices that referenced them, regardless of status. Manager only.
	ResetInvoicedExpenses(ctx context.Context, clientID string, actor domain.Actor) (*dto.ResetInvoicedExpensesResponse, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

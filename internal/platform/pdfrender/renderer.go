package pdfrender

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is one billed expense row of the rendered document.
type InvoiceLine struct {
	Description string
	Category    string
	Date        time.Time
	Amount      decimal.Decimal
}

// InvoiceDocument carries everything the invoice layout needs, already
// resolved; the renderer never touches storage.
type InvoiceDocument struct {
	Number      string
	Status      string
	IssueDate   time.Time
	DueDate     time.Time
	Notes       string
	ClientName  string
	Company     string
	Email       string
	Phone       string
	Lines       []InvoiceLine
	TotalAmount decimal.Decimal
}

// Renderer renders an invoice document to a PDF byte stream.
type Renderer interface {
	RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

package pdfrender_test

import (
	"testing"
	"time"

	"github.com/clienthub/crm_backend/internal/platform/pdfrender"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() pdfrender.InvoiceDocument {
	return pdfrender.InvoiceDocument{
		Number:     "INV-000042",
		Status:     "draft",
		IssueDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Notes:      "Net 30",
		ClientName: "Acme Corp",
		Company:    "Acme Holdings",
		Email:      "billing@acme.test",
		Phone:      "+1-555-0100",
		Lines: []pdfrender.InvoiceLine{
			{Description: "August hosting", Category: "Hosting", Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(49.99)},
			{Description: "Landing page design", Category: "Design", Date: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1200)},
		},
		TotalAmount: decimal.NewFromFloat(1249.99),
	}
}

func TestBuildInvoiceHTML_ContainsInvoiceDetails(t *testing.T) {
	html, err := pdfrender.BuildInvoiceHTML(sampleDocument())
	require.NoError(t, err)

	assert.Contains(t, html, "INV-000042")
	assert.Contains(t, html, "Acme Corp")
	assert.Contains(t, html, "billing@acme.test")
	assert.Contains(t, html, "August hosting")
	assert.Contains(t, html, "Landing page design")
	assert.Contains(t, html, "49.99")
	assert.Contains(t, html, "1249.99")
	assert.Contains(t, html, "Net 30")
}

func TestBuildInvoiceHTML_EscapesMarkup(t *testing.T) {
	doc := sampleDocument()
	doc.Notes = `<script>alert("x")</script>`

	html, err := pdfrender.BuildInvoiceHTML(doc)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
}

func TestBuildInvoiceHTML_OmitsEmptyOptionalBlocks(t *testing.T) {
	doc := sampleDocument()
	doc.Notes = ""
	doc.Company = ""

	html, err := pdfrender.BuildInvoiceHTML(doc)
	require.NoError(t, err)

	assert.NotContains(t, html, `class="notes"`)
	assert.NotContains(t, html, "&mdash;")
}

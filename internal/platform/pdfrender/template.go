package pdfrender

import (
	"bytes"
	"fmt"
	"html/template"
)

// invoiceTemplate is the print layout. Styling is inlined so the page is
// self-contained for the headless browser.
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 26px; margin-bottom: 0; }
  .meta { color: #666; font-size: 12px; margin-top: 4px; }
  .status { text-transform: uppercase; letter-spacing: 1px; font-size: 11px; }
  .parties { margin-top: 30px; font-size: 13px; }
  table { width: 100%; border-collapse: collapse; margin-top: 30px; font-size: 13px; }
  th { text-align: left; border-bottom: 2px solid #222; padding: 6px 4px; }
  td { border-bottom: 1px solid #ddd; padding: 6px 4px; }
  td.amount, th.amount { text-align: right; }
  .total { margin-top: 20px; text-align: right; font-size: 16px; font-weight: bold; }
  .notes { margin-top: 30px; font-size: 12px; color: #555; }
</style>
</head>
<body>
  <h1>Invoice {{.Number}}</h1>
  <div class="meta">
    <span class="status">{{.Status}}</span><br>
    Issued {{.IssueDate.Format "January 2, 2006"}} &middot; Due {{.DueDate.Format "January 2, 2006"}}
  </div>
  <div class="parties">
    <strong>Billed to</strong><br>
    {{.ClientName}}{{if .Company}} &mdash; {{.Company}}{{end}}<br>
    {{.Email}}{{if .Phone}}<br>{{.Phone}}{{end}}
  </div>
  <table>
    <tr>
      <th>Date</th><th>Description</th><th>Category</th><th class="amount">Amount</th>
    </tr>
    {{range .Lines}}
    <tr>
      <td>{{.Date.Format "2006-01-02"}}</td>
      <td>{{.Description}}</td>
      <td>{{.Category}}</td>
      <td class="amount">{{.Amount.StringFixed 2}}</td>
    </tr>
    {{end}}
  </table>
  <div class="total">Total: {{.TotalAmount.StringFixed 2}}</div>
  {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
</body>
</html>`

var parsedInvoiceTemplate = template.Must(template.New("invoice").Parse(invoiceTemplate))

// BuildInvoiceHTML renders the invoice layout for a document. Split out from
// the browser step so the layout is testable without Chrome.
func BuildInvoiceHTML(doc InvoiceDocument) (string, error) {
	var buf bytes.Buffer
	if err := parsedInvoiceTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}
	return buf.String(), nil
}

package mapping

import (
	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice. The expense
// references live on the expenses rows, not on the invoice row.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		ClientID:      d.ClientID,
		TotalAmount:   d.TotalAmount,
		Status:        models.InvoiceStatus(d.Status),
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice plus its expense references to a
// domain Invoice.
func ToDomainInvoice(m models.Invoice, expenseIDs []string) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		ClientID:      m.ClientID,
		ExpenseIDs:    expenseIDs,
		TotalAmount:   m.TotalAmount,
		Status:        domain.InvoiceStatus(m.Status),
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

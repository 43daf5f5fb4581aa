package mapping

import (
	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		ClientID:    d.ClientID,
		Description: d.Description,
		Category:    models.ExpenseCategory(d.Category),
		Amount:      d.Amount,
		Date:        d.Date,
		IsInvoiced:  d.IsInvoiced,
		InvoiceID:   d.InvoiceID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		ClientID:    m.ClientID,
		Description: m.Description,
		Category:    domain.ExpenseCategory(m.Category),
		Amount:      m.Amount,
		Date:        m.Date,
		IsInvoiced:  m.IsInvoiced,
		InvoiceID:   m.InvoiceID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses.
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

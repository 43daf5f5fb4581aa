package dto

import (
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest is the payload for invoice generation. When
// SelectedExpenseIDs is non-empty the selection is restricted to exactly
// those expenses; otherwise every uninvoiced expense of the client is
// billed.
type GenerateInvoiceRequest struct {
	DueDate            string   `json:"dueDate" binding:"required"`
	Notes              string   `json:"notes"`
	SelectedExpenseIDs []string `json:"selectedExpenseIds"`
}

// UpdateInvoiceStatusRequest moves an invoice along its lifecycle.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InvoiceClientSummary is the client block embedded in invoice responses.
type InvoiceClientSummary struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// InvoiceExpenseLine is one billed expense inside an invoice response.
type InvoiceExpenseLine struct {
	ExpenseID   string          `json:"expenseID"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// InvoiceResponse is the response shape of an invoice with its billed
// expenses and client resolved.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Client        InvoiceClientSummary `json:"client"`
	Expenses      []InvoiceExpenseLine `json:"expenses"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	Status        string               `json:"status"`
	IssueDate     time.Time            `json:"issueDate"`
	DueDate       time.Time            `json:"dueDate"`
	Notes         string               `json:"notes"`
	CreatedBy     string               `json:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToInvoiceResponse assembles the invoice response from the invoice, its
// client, and its billed expenses.
func ToInvoiceResponse(inv *domain.Invoice, client *domain.Client, expenses []domain.Expense) InvoiceResponse {
	lines := make([]InvoiceExpenseLine, len(expenses))
	for i, e := range expenses {
		lines[i] = InvoiceExpenseLine{
			ExpenseID:   e.ExpenseID,
			Description: e.Description,
			Category:    string(e.Category),
			Amount:      e.Amount,
			Date:        e.Date,
		}
	}
	resp := InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		Expenses:      lines,
		TotalAmount:   inv.TotalAmount,
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
	}
	if client != nil {
		resp.Client = InvoiceClientSummary{
			ClientID: client.ClientID,
			Name:     client.Name,
			Company:  client.Company,
			Email:    client.Email,
			Phone:    client.Phone,
		}
	}
	return resp
}

// ResetInvoicedExpensesResponse reports the outcome of the administrative
// reset operation.
type ResetInvoicedExpensesResponse struct {
	ResetCount      int `json:"resetCount"`
	DeletedInvoices int `json:"deletedInvoices"`
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/clienthub/crm_backend/internal/platform/pdfrender"
	"github.com/clienthub/crm_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invoiceNumberAttempts bounds the sequential allocator before it gives up
// and falls back to a timestamp based number.
const invoiceNumberAttempts = 3

type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	expenseRepo portsrepo.ExpenseReader
	clientAuth  portssvc.ClientAuthorizerSvc
	renderer    pdfrender.Renderer
	locks       *clientLocks
}

// NewInvoiceService creates the invoice generation service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, expenseRepo portsrepo.ExpenseReader, clientAuth portssvc.ClientAuthorizerSvc, renderer pdfrender.Renderer) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		clientAuth:  clientAuth,
		renderer:    renderer,
		locks:       newClientLocks(),
	}
}

// GenerateInvoice creates a draft invoice over the client's billable
// expenses. Generation is serialized per client so two concurrent requests
// cannot bill the same expense twice.
func (s *invoiceService) GenerateInvoice(ctx context.Context, clientID string, req dto.GenerateInvoiceRequest, actor domain.Actor) (*dto.InvoiceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientAuth.AuthorizeClientAccess(ctx, clientID, actor)
	if err != nil {
		return nil, err
	}

	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		return nil, apperrors.NewAppError(400, "invalid due date", apperrors.ErrValidation)
	}

	lock := s.locks.get(clientID)
	lock.Lock()
	defer lock.Unlock()

	expenses, err := s.selectExpenses(ctx, clientID, req.SelectedExpenseIDs)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, apperrors.NewAppError(400, "no billable expenses for this client", apperrors.ErrNoBillableExpenses)
	}

	total := decimal.Zero
	expenseIDs := make([]string, len(expenses))
	for i, e := range expenses {
		total = total.Add(e.Amount)
		expenseIDs[i] = e.ExpenseID
	}

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		ClientID:    clientID,
		ExpenseIDs:  expenseIDs,
		TotalAmount: total,
		Status:      domain.InvoiceDraft,
		IssueDate:   now,
		DueDate:     dueDate,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.persistWithNumber(ctx, &invoice, expenseIDs); err != nil {
		logger.Error("Failed to persist invoice", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Invoice generated",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.Int("expense_count", len(expenseIDs)),
	)

	resp := dto.ToInvoiceResponse(&invoice, client, expenses)
	return &resp, nil
}

// selectExpenses resolves the billable set: an explicit selection when ids
// are given, otherwise every uninvoiced expense of the client.
func (s *invoiceService) selectExpenses(ctx context.Context, clientID string, selectedIDs []string) ([]domain.Expense, error) {
	if len(selectedIDs) == 0 {
		return s.expenseRepo.ListUninvoicedByClient(ctx, clientID)
	}

	expenses, err := s.expenseRepo.FindExpensesByIDs(ctx, clientID, selectedIDs)
	if err != nil {
		return nil, err
	}
	if len(expenses) != len(selectedIDs) {
		return nil, apperrors.NewAppError(400, "expense selection contains unknown or foreign expenses", apperrors.ErrValidation)
	}
	for _, e := range expenses {
		if e.IsInvoiced {
			return nil, apperrors.NewAppError(400, "expense selection contains already invoiced expenses", apperrors.ErrInvalidState)
		}
	}
	return expenses, nil
}

// persistWithNumber allocates a sequential invoice number and persists the
// invoice, retrying on number collisions from concurrent generation before
// falling back to a timestamp based number.
func (s *invoiceService) persistWithNumber(ctx context.Context, invoice *domain.Invoice, expenseIDs []string) error {
	count, err := s.invoiceRepo.CountInvoices(ctx)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < invoiceNumberAttempts; attempt++ {
		invoice.InvoiceNumber = utils.SequentialInvoiceNumber(count + 1 + int64(attempt))
		err = s.invoiceRepo.CreateInvoiceWithExpenses(ctx, *invoice, expenseIDs)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return err
		}
	}

	invoice.InvoiceNumber = utils.FallbackInvoiceNumber(time.Now())
	return s.invoiceRepo.CreateInvoiceWithExpenses(ctx, *invoice, expenseIDs)
}

// resolve loads the invoice with its client and billed expenses, applying
// the client visibility rule.
func (s *invoiceService) resolve(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.Invoice, *domain.Client, []domain.Expense, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := s.clientAuth.AuthorizeClientAccess(ctx, invoice.ClientID, actor)
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := s.expenseRepo.FindExpensesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, err
	}
	return invoice, client, expenses, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string, actor domain.Actor) (*dto.InvoiceResponse, error) {
	invoice, client, expenses, err := s.resolve(ctx, invoiceID, actor)
	if err != nil {
		return nil, err
	}
	resp := dto.ToInvoiceResponse(invoice, client, expenses)
	return &resp, nil
}

func (s *invoiceService) ListClientInvoices(ctx context.Context, clientID string, actor domain.Actor) ([]dto.InvoiceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientAuth.AuthorizeClientAccess(ctx, clientID, actor)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoicesByClient(ctx, clientID)
	if err != nil {
		logger.Error("Failed to list client invoices", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	responses := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		expenses, err := s.expenseRepo.FindExpensesByInvoiceID(ctx, invoices[i].InvoiceID)
		if err != nil {
			logger.Error("Failed to load invoice expenses", slog.String("error", err.Error()), slog.String("invoice_id", invoices[i].InvoiceID))
			return nil, err
		}
		responses = append(responses, dto.ToInvoiceResponse(&invoices[i], client, expenses))
	}
	return responses, nil
}

func (s *invoiceService) RenderInvoicePDF(ctx context.Context, invoiceID string, actor domain.Actor) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, client, expenses, err := s.resolve(ctx, invoiceID, actor)
	if err != nil {
		return nil, err
	}

	doc := pdfrender.InvoiceDocument{
		Number:      invoice.InvoiceNumber,
		Status:      string(invoice.Status),
		IssueDate:   invoice.IssueDate,
		DueDate:     invoice.DueDate,
		Notes:       invoice.Notes,
		ClientName:  client.Name,
		Company:     client.Company,
		Email:       client.Email,
		Phone:       client.Phone,
		TotalAmount: invoice.TotalAmount,
	}
	for _, e := range expenses {
		doc.Lines = append(doc.Lines, pdfrender.InvoiceLine{
			Description: e.Description,
			Category:    string(e.Category),
			Date:        e.Date,
			Amount:      e.Amount,
		})
	}

	pdf, err := s.renderer.RenderInvoice(ctx, doc)
	if err != nil {
		logger.Error("Failed to render invoice PDF", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return pdf, nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, actor domain.Actor) (*dto.InvoiceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidInvoiceStatus(status) {
		return nil, apperrors.NewAppError(400, "invalid invoice status", apperrors.ErrValidation)
	}

	invoice, client, expenses, err := s.resolve(ctx, invoiceID, actor)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransitionTo(status) {
		return nil, apperrors.NewAppError(400, "invoice status can only move forward (draft, sent, paid)", apperrors.ErrInvalidState)
	}

	now := time.Now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, status, actor.UserID, now); err != nil {
		logger.Error("Failed to update invoice status", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}

	invoice.Status = status
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = actor.UserID

	logger.Info("Invoice status updated", slog.String("invoice_id", invoiceID), slog.String("status", string(status)))
	resp := dto.ToInvoiceResponse(invoice, client, expenses)
	return &resp, nil
}

// DeleteInvoice removes a draft invoice and releases its expenses back to
// the billable pool. Sent and paid invoices are immutable.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, invoice.ClientID, actor); err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceDraft {
		return apperrors.NewAppError(400, "only draft invoices can be deleted", apperrors.ErrInvalidState)
	}

	if err := s.invoiceRepo.DeleteInvoiceReleasingExpenses(ctx, invoiceID, actor.UserID, time.Now()); err != nil {
		logger.Error("Failed to delete invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return err
	}

	logger.Info("Invoice deleted", slog.String("invoice_id", invoiceID), slog.Int("released_expenses", len(invoice.ExpenseIDs)))
	return nil
}

// ResetInvoicedExpenses is the recovery hatch for a client whose invoicing
// state has drifted: every invoiced expense is released and every
// referencing invoice deleted, regardless of status. Gated like the other
// client mutations, so the assigned employee can reset their own client.
func (s *invoiceService) ResetInvoicedExpenses(ctx context.Context, clientID string, actor domain.Actor) (*dto.ResetInvoicedExpensesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, clientID, actor); err != nil {
		return nil, err
	}

	lock := s.locks.get(clientID)
	lock.Lock()
	defer lock.Unlock()

	resetCount, deletedInvoices, err := s.invoiceRepo.ResetClientInvoices(ctx, clientID, actor.UserID, time.Now())
	if err != nil {
		logger.Error("Failed to reset invoiced expenses", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Invoiced expenses reset",
		slog.String("client_id", clientID),
		slog.Int("reset_count", resetCount),
		slog.Int("deleted_invoices", deletedInvoices),
	)
	return &dto.ResetInvoicedExpensesResponse{ResetCount: resetCount, DeletedInvoices: deletedInvoices}, nil
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

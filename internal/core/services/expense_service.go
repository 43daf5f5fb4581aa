package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/clienthub/crm_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultExpensePageSize = 20

type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	clientRepo  portsrepo.ClientReader
	clientAuth  portssvc.ClientAuthorizerSvc
}

// NewExpenseService creates the expense tracking service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, clientRepo portsrepo.ClientReader, clientAuth portssvc.ClientAuthorizerSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, clientRepo: clientRepo, clientAuth: clientAuth}
}

func (s *expenseService) AddExpense(ctx context.Context, clientID string, req dto.CreateExpenseRequest, actor domain.Actor) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, clientID, actor); err != nil {
		return nil, err
	}

	category := domain.ExpenseCategory(req.Category)
	if !domain.ValidExpenseCategory(category) {
		return nil, apperrors.NewAppError(400, "invalid expense category", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "expense amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	date := now
	if req.Date != "" {
		var err error
		date, err = utils.ParseDate(req.Date)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid expense date", apperrors.ErrValidation)
		}
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ClientID:    clientID,
		Description: req.Description,
		Category:    category,
		Amount:      req.Amount,
		Date:        date,
		IsInvoiced:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Expense added", slog.String("expense_id", expense.ExpenseID), slog.String("client_id", clientID))
	return &expense, nil
}

func (s *expenseService) buildFilter(params dto.ListExpensesParams) (portsrepo.ExpenseListFilter, error) {
	params.Normalize(defaultExpensePageSize)
	filter := portsrepo.ExpenseListFilter{
		Limit:  params.Limit,
		Offset: params.Offset(),
	}
	if params.Category != "" {
		category := domain.ExpenseCategory(params.Category)
		if !domain.ValidExpenseCategory(category) {
			return filter, apperrors.NewAppError(400, "invalid expense category filter", apperrors.ErrValidation)
		}
		filter.Category = &category
	}
	if params.StartDate != "" {
		start, err := utils.ParseDate(params.StartDate)
		if err != nil {
			return filter, apperrors.NewAppError(400, "invalid start date", apperrors.ErrValidation)
		}
		filter.StartDate = &start
	}
	if params.EndDate != "" {
		end, err := utils.ParseDate(params.EndDate)
		if err != nil {
			return filter, apperrors.NewAppError(400, "invalid end date", apperrors.ErrValidation)
		}
		filter.EndDate = &end
	}
	return filter, nil
}

func (s *expenseService) ListClientExpenses(ctx context.Context, clientID string, params dto.ListExpensesParams, actor domain.Actor) ([]domain.Expense, int, decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, clientID, actor); err != nil {
		return nil, 0, decimal.Zero, err
	}

	filter, err := s.buildFilter(params)
	if err != nil {
		return nil, 0, decimal.Zero, err
	}
	filter.ClientID = &clientID

	expenses, total, totalAmount, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		logger.Error("Failed to list client expenses", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, 0, decimal.Zero, err
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, total, totalAmount, nil
}

func (s *expenseService) ListAllExpenses(ctx context.Context, params dto.ListExpensesParams, actor domain.Actor) ([]domain.Expense, int, decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, 0, decimal.Zero, apperrors.ErrForbidden
	}

	filter, err := s.buildFilter(params)
	if err != nil {
		return nil, 0, decimal.Zero, err
	}
	if params.ClientID != "" {
		clientID := params.ClientID
		filter.ClientID = &clientID
	}

	expenses, total, totalAmount, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		logger.Error("Failed to list expenses", slog.String("error", err.Error()))
		return nil, 0, decimal.Zero, err
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, total, totalAmount, nil
}

// GetExpenseStats aggregates the expenses visible to the actor: everything
// for managers, assigned clients only for employees.
func (s *expenseService) GetExpenseStats(ctx context.Context, actor domain.Actor) (*dto.ExpenseStatsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var clientIDs []string
	if !actor.IsManager() {
		ids, err := s.clientRepo.ListClientIDsByAssignee(ctx, actor.UserID)
		if err != nil {
			logger.Error("Failed to scope expense stats to assignee", slog.String("error", err.Error()))
			return nil, err
		}
		if len(ids) == 0 {
			return &dto.ExpenseStatsResponse{
				TotalAmount:       decimal.Zero,
				AverageAmount:     decimal.Zero,
				CategoryBreakdown: map[string]dto.CategoryStat{},
			}, nil
		}
		clientIDs = ids
	}

	stats, err := s.expenseRepo.GetExpenseStats(ctx, clientIDs)
	if err != nil {
		logger.Error("Failed to compute expense stats", slog.String("error", err.Error()))
		return nil, err
	}

	average := decimal.Zero
	if stats.TotalExpenses > 0 {
		average = stats.TotalAmount.Div(decimal.NewFromInt(int64(stats.TotalExpenses))).Round(2)
	}

	breakdown := make(map[string]dto.CategoryStat, len(stats.CategoryCount))
	for category, count := range stats.CategoryCount {
		breakdown[string(category)] = dto.CategoryStat{
			Count: count,
			Total: stats.CategoryTotal[category],
		}
	}

	return &dto.ExpenseStatsResponse{
		TotalExpenses:     stats.TotalExpenses,
		TotalAmount:       stats.TotalAmount,
		AverageAmount:     average,
		CategoryBreakdown: breakdown,
	}, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actor domain.Actor) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, expense.ClientID, actor); err != nil {
		return nil, err
	}
	if expense.IsInvoiced {
		return nil, apperrors.NewAppError(400, "invoiced expenses cannot be modified", apperrors.ErrInvalidState)
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Category != nil {
		category := domain.ExpenseCategory(*req.Category)
		if !domain.ValidExpenseCategory(category) {
			return nil, apperrors.NewAppError(400, "invalid expense category", apperrors.ErrValidation)
		}
		expense.Category = category
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewAppError(400, "expense amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid expense date", apperrors.ErrValidation)
		}
		expense.Date = date
	}

	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.UserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		logger.Error("Failed to update expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, expense.ClientID, actor); err != nil {
		return err
	}
	if expense.IsInvoiced {
		return apperrors.NewAppError(400, "invoiced expenses cannot be deleted", apperrors.ErrInvalidState)
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		logger.Error("Failed to delete expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return err
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

package services_test

import (
	"context"
	"testing"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/core/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockClientRepo  *MockClientRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.ExpenseSvcFacade

	manager  domain.Actor
	clientID string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockUserRepo = new(MockUserRepository)

	clientAuth := services.NewClientService(suite.mockClientRepo, suite.mockUserRepo)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockClientRepo, clientAuth)

	suite.manager = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.clientID = uuid.NewString()
}

func (suite *ExpenseServiceTestSuite) stubClient() {
	client := &domain.Client{
		ClientID:   suite.clientID,
		Name:       "Acme Corp",
		Status:     domain.ClientQualified,
		AssignedTo: uuid.NewString(),
	}
	suite.mockClientRepo.On("FindClientByID", mock.Anything, suite.clientID).Return(client, nil)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_PersistsWithActorAudit() {
	ctx := context.Background()
	suite.stubClient()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ClientID == suite.clientID && e.CreatedBy == suite.manager.UserID && !e.IsInvoiced
	})).Return(nil).Once()

	expense, err := suite.service.AddExpense(ctx, suite.clientID, dto.CreateExpenseRequest{
		Description: "Monthly hosting",
		Category:    "Hosting",
		Amount:      decimal.NewFromFloat(49.99),
		Date:        "2026-08-01",
	}, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryHosting, expense.Category)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_RejectsUnknownCategory() {
	ctx := context.Background()
	suite.stubClient()

	_, err := suite.service.AddExpense(ctx, suite.clientID, dto.CreateExpenseRequest{
		Description: "Misc",
		Category:    "Snacks",
		Amount:      decimal.NewFromInt(10),
	}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_RejectsNonPositiveAmount() {
	ctx := context.Background()
	suite.stubClient()

	_, err := suite.service.AddExpense(ctx, suite.clientID, dto.CreateExpenseRequest{
		Description: "Refund",
		Category:    "Other",
		Amount:      decimal.NewFromInt(-5),
	}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_InvoicedIsImmutable() {
	ctx := context.Background()
	suite.stubClient()
	expenseID := uuid.NewString()
	invoiceID := uuid.NewString()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&domain.Expense{
		ExpenseID:  expenseID,
		ClientID:   suite.clientID,
		Category:   domain.CategoryHosting,
		Amount:     decimal.NewFromInt(100),
		IsInvoiced: true,
		InvoiceID:  &invoiceID,
	}, nil).Once()

	description := "Updated"
	_, err := suite.service.UpdateExpense(ctx, expenseID, dto.UpdateExpenseRequest{Description: &description}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_InvoicedIsImmutable() {
	ctx := context.Background()
	suite.stubClient()
	expenseID := uuid.NewString()
	invoiceID := uuid.NewString()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&domain.Expense{
		ExpenseID:  expenseID,
		ClientID:   suite.clientID,
		IsInvoiced: true,
		InvoiceID:  &invoiceID,
	}, nil).Once()

	err := suite.service.DeleteExpense(ctx, expenseID, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "DeleteExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestListAllExpenses_ManagerOnly() {
	ctx := context.Background()
	employee := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}

	_, _, _, err := suite.service.ListAllExpenses(ctx, dto.ListExpensesParams{}, employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseStats_EmployeeWithoutClientsGetsZeroes() {
	ctx := context.Background()
	employee := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
	suite.mockClientRepo.On("ListClientIDsByAssignee", ctx, employee.UserID).Return([]string{}, nil).Once()

	stats, err := suite.service.GetExpenseStats(ctx, employee)

	suite.Require().NoError(err)
	suite.Equal(0, stats.TotalExpenses)
	suite.True(stats.TotalAmount.IsZero())
	suite.Empty(stats.CategoryBreakdown)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "GetExpenseStats", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseStats_ComputesAverage() {
	ctx := context.Background()
	suite.mockExpenseRepo.On("GetExpenseStats", ctx, []string(nil)).Return(&portsrepo.ExpenseStats{
		TotalExpenses: 3,
		TotalAmount:   decimal.NewFromInt(100),
		CategoryCount: map[domain.ExpenseCategory]int{domain.CategoryHosting: 3},
		CategoryTotal: map[domain.ExpenseCategory]decimal.Decimal{domain.CategoryHosting: decimal.NewFromInt(100)},
	}, nil).Once()

	stats, err := suite.service.GetExpenseStats(ctx, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(3, stats.TotalExpenses)
	suite.True(stats.AverageAmount.Equal(decimal.RequireFromString("33.33")))
	suite.Contains(stats.CategoryBreakdown, "Hosting")
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

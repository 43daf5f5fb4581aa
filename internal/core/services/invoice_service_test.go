package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/core/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockExpenseRepo *MockExpenseRepository
	mockClientRepo  *MockClientRepository
	mockUserRepo    *MockUserRepository
	mockRenderer    *MockRenderer
	service         portssvc.InvoiceSvcFacade

	manager  domain.Actor
	clientID string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRenderer = new(MockRenderer)

	clientAuth := services.NewClientService(suite.mockClientRepo, suite.mockUserRepo)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockExpenseRepo, clientAuth, suite.mockRenderer)

	suite.manager = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.clientID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) stubClient() {
	suite.stubClientAssignedTo(uuid.NewString())
}

func (suite *InvoiceServiceTestSuite) stubClientAssignedTo(userID string) {
	client := &domain.Client{
		ClientID:   suite.clientID,
		Name:       "Acme Corp",
		Company:    "Acme",
		Email:      "billing@acme.test",
		Phone:      "+1-555-0100",
		Status:     domain.ClientWon,
		AssignedTo: userID,
	}
	suite.mockClientRepo.On("FindClientByID", mock.Anything, suite.clientID).Return(client, nil)
}

func (suite *InvoiceServiceTestSuite) expense(amount string) domain.Expense {
	value, _ := decimal.NewFromString(amount)
	return domain.Expense{
		ExpenseID:   uuid.NewString(),
		ClientID:    suite.clientID,
		Description: "Server time",
		Category:    domain.CategoryHosting,
		Amount:      value,
		Date:        time.Now(),
	}
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_BillsAllUninvoicedExpenses() {
	ctx := context.Background()
	suite.stubClient()
	expenses := []domain.Expense{suite.expense("100.50"), suite.expense("49.50")}

	suite.mockExpenseRepo.On("ListUninvoicedByClient", ctx, suite.clientID).Return(expenses, nil).Once()
	suite.mockInvoiceRepo.On("CountInvoices", ctx).Return(int64(11), nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoiceWithExpenses", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == "INV-000012" &&
			inv.Status == domain.InvoiceDraft &&
			inv.TotalAmount.Equal(decimal.NewFromInt(150))
	}), mock.Anything).Return(nil).Once()

	resp, err := suite.service.GenerateInvoice(ctx, suite.clientID, dto.GenerateInvoiceRequest{DueDate: "2026-10-01"}, suite.manager)

	suite.Require().NoError(err)
	suite.Equal("INV-000012", resp.InvoiceNumber)
	suite.Equal("draft", resp.Status)
	suite.Len(resp.Expenses, 2)
	suite.Equal("Acme Corp", resp.Client.Name)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_ForeignClientForbidden() {
	ctx := context.Background()
	suite.stubClient()
	employee := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}

	_, err := suite.service.GenerateInvoice(ctx, suite.clientID, dto.GenerateInvoiceRequest{DueDate: "2026-10-01"}, employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoiceWithExpenses", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_NoBillableExpenses() {
	ctx := context.Background()
	suite.stubClient()
	suite.mockExpenseRepo.On("ListUninvoicedByClient", ctx, suite.clientID).Return([]domain.Expense{}, nil).Once()

	_, err := suite.service.GenerateInvoice(ctx, suite.clientID, dto.GenerateInvoiceRequest{DueDate: "2026-10-01"}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrNoBillableExpenses)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoiceWithExpenses", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_InvalidDueDate() {
	ctx := context.Background()
	suite.stubClient()

	_, err := suite.service.GenerateInvoice(ctx, suite.clientID, dto.GenerateInvoiceRequest{DueDate: "next tuesday"}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_SelectionWithUnknownExpense() {
	ctx := context.Background()
	suite.stubClient()
	known := suite.expense("10.00")
	selection := []string{known.ExpenseID, uuid.NewString()}

	suite.mockExpenseRepo.On("FindExpensesByIDs", ctx, suite.clientID, selection).Return([]domain.Expense{known}, nil).Once()

	_, err := suite.service.GenerateInvoice(ctx, suite.clientID, dto.GenerateInvoiceRequest{DueDate: "2026-10-01", SelectedExpenseIDs: selection}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_SelectionWithInvoicedExpense() {
	ctx := context.Background()
	suite.stubClient()
	invoiced := suite.expense("10.00")
	invoiced.IsInvoiced = true
	selection := []string{invoiced.ExpenseID}

	suite.mockExpenseRepo.On("FindExpensesByIDs", ctx, suite.clientID, selection).Return([]domain.Expense{invoiced}, nil).Once()

	_, err := suite.service.GenerateInvoice(ctx, suite.clientID, dto.GenerateInvoiceRequest{DueDate: "2026-10-01", SelectedExpenseIDs: selection}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_RetriesNumberOnCollision() {
	ctx := context.Background()
	suite.stubClient()
	expenses := []domain.Expense{suite.expense("25.00")}

	suite.mockExpenseRepo.On("ListUninvoicedByClient", ctx, suite.clientID).Return(expenses, nil).Once()
	suite.mockInvoiceRepo.On("CountInvoices", ctx).Return(int64(4), nil).Once()
	// First allocation collides with a concurrently created invoice.
	suite.mockInvoiceRepo.On("CreateInvoiceWithExpenses", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == "INV-000005"
	}), mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockInvoiceRepo.On("CreateInvoiceWithExpenses", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == "INV-000006"
	}), mock.Anything).Return(nil).Once()

	resp, err := suite.service.GenerateInvoice(ctx, suite.clientID, dto.GenerateInvoiceRequest{DueDate: "2026-10-01"}, suite.manager)

	suite.Require().NoError(err)
	suite.Equal("INV-000006", resp.InvoiceNumber)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGenerateInvoice_FallsBackAfterRepeatedCollisions() {
	ctx := context.Background()
	suite.stubClient()
	expenses := []domain.Expense{suite.expense("25.00")}

	suite.mockExpenseRepo.On("ListUninvoicedByClient", ctx, suite.clientID).Return(expenses, nil).Once()
	suite.mockInvoiceRepo.On("CountInvoices", ctx).Return(int64(0), nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoiceWithExpenses", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return strings.HasPrefix(inv.InvoiceNumber, "INV-000")
	}), mock.Anything).Return(apperrors.ErrDuplicate).Times(3)
	suite.mockInvoiceRepo.On("CreateInvoiceWithExpenses", ctx, mock.AnythingOfType("domain.Invoice"), mock.Anything).Return(nil).Once()

	resp, err := suite.service.GenerateInvoice(ctx, suite.clientID, dto.GenerateInvoiceRequest{DueDate: "2026-10-01"}, suite.manager)

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(resp.InvoiceNumber, "INV-"))
	suite.NotContains([]string{"INV-000001", "INV-000002", "INV-000003"}, resp.InvoiceNumber)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) stubInvoice(status domain.InvoiceStatus) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-000001",
		ClientID:      suite.clientID,
		TotalAmount:   decimal.NewFromInt(100),
		Status:        status,
		IssueDate:     time.Now(),
		DueDate:       time.Now().AddDate(0, 1, 0),
	}
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_ForwardOnly() {
	ctx := context.Background()
	suite.stubClient()
	invoice := suite.stubInvoice(domain.InvoicePaid)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByInvoiceID", ctx, invoice.InvoiceID).Return([]domain.Expense{}, nil).Once()

	_, err := suite.service.UpdateInvoiceStatus(ctx, invoice.InvoiceID, domain.InvoiceSent, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_DraftToSent() {
	ctx := context.Background()
	suite.stubClient()
	invoice := suite.stubInvoice(domain.InvoiceDraft)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByInvoiceID", ctx, invoice.InvoiceID).Return([]domain.Expense{}, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoice.InvoiceID, domain.InvoiceSent, suite.manager.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.UpdateInvoiceStatus(ctx, invoice.InvoiceID, domain.InvoiceSent, suite.manager)

	suite.Require().NoError(err)
	suite.Equal("sent", resp.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_OnlyDrafts() {
	ctx := context.Background()
	suite.stubClient()
	invoice := suite.stubInvoice(domain.InvoiceSent)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoice.InvoiceID, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoiceReleasingExpenses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_DraftReleasesExpenses() {
	ctx := context.Background()
	suite.stubClient()
	invoice := suite.stubInvoice(domain.InvoiceDraft)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("DeleteInvoiceReleasingExpenses", ctx, invoice.InvoiceID, suite.manager.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoice.InvoiceID, suite.manager)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestResetInvoicedExpenses_ForeignClientForbidden() {
	ctx := context.Background()
	suite.stubClient()
	employee := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}

	_, err := suite.service.ResetInvoicedExpenses(ctx, suite.clientID, employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ResetClientInvoices", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestResetInvoicedExpenses_AssignedEmployeeAllowed() {
	ctx := context.Background()
	employee := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
	suite.stubClientAssignedTo(employee.UserID)
	suite.mockInvoiceRepo.On("ResetClientInvoices", ctx, suite.clientID, employee.UserID, mock.AnythingOfType("time.Time")).Return(3, 1, nil).Once()

	resp, err := suite.service.ResetInvoicedExpenses(ctx, suite.clientID, employee)

	suite.Require().NoError(err)
	suite.Equal(3, resp.ResetCount)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestResetInvoicedExpenses_ReportsCounts() {
	ctx := context.Background()
	suite.stubClient()
	suite.mockInvoiceRepo.On("ResetClientInvoices", ctx, suite.clientID, suite.manager.UserID, mock.AnythingOfType("time.Time")).Return(7, 2, nil).Once()

	resp, err := suite.service.ResetInvoicedExpenses(ctx, suite.clientID, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(7, resp.ResetCount)
	suite.Equal(2, resp.DeletedInvoices)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

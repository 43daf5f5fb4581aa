package services_test

import (
	"context"
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	"github.com/clienthub/crm_backend/internal/platform/pdfrender"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListActiveEmployees(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, filter portsrepo.ClientListFilter) ([]domain.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClientIDsByAssignee(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateFeedbackAggregates(ctx context.Context, clientID string, averageRating float64, feedbackCount int, updatedAt time.Time) error {
	args := m.Called(ctx, clientID, averageRating, feedbackCount, updatedAt)
	return args.Error(0)
}

// MockExpenseRepository is a mock type for the ExpenseRepositoryFacade interface
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListUninvoicedByClient(ctx context.Context, clientID string) ([]domain.Expense, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpensesByIDs(ctx context.Context, clientID string, expenseIDs []string) ([]domain.Expense, error) {
	args := m.Called(ctx, clientID, expenseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpensesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Expense, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, int, decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), decimal.Zero, args.Error(3)
	}
	return args.Get(0).([]domain.Expense), args.Int(1), args.Get(2).(decimal.Decimal), args.Error(3)
}

func (m *MockExpenseRepository) GetExpenseStats(ctx context.Context, clientIDs []string) (*portsrepo.ExpenseStats, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.ExpenseStats), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByClient(ctx context.Context, clientID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountInvoices(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoiceWithExpenses(ctx context.Context, invoice domain.Invoice, expenseIDs []string) error {
	args := m.Called(ctx, invoice, expenseIDs)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoiceReleasingExpenses(ctx context.Context, invoiceID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ResetClientInvoices(ctx context.Context, clientID string, updatedBy string, updatedAt time.Time) (int, int, error) {
	args := m.Called(ctx, clientID, updatedBy, updatedAt)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockFeedbackRepository is a mock type for the FeedbackRepositoryFacade interface
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) FindFeedbackByID(ctx context.Context, feedbackID string) (*domain.Feedback, error) {
	args := m.Called(ctx, feedbackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListFeedbackByClient(ctx context.Context, clientID string) ([]domain.Feedback, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListFeedback(ctx context.Context, filter portsrepo.FeedbackListFilter) ([]domain.Feedback, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Feedback), args.Int(1), args.Error(2)
}

func (m *MockFeedbackRepository) GetApprovedRating(ctx context.Context, clientID string) (float64, int, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *MockFeedbackRepository) GetFeedbackStats(ctx context.Context) (*portsrepo.FeedbackGlobalStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.FeedbackGlobalStats), args.Error(1)
}

func (m *MockFeedbackRepository) SaveFeedback(ctx context.Context, feedback domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) UpdateFeedbackStatus(ctx context.Context, feedbackID string, status domain.FeedbackStatus, updatedBy string) error {
	args := m.Called(ctx, feedbackID, status, updatedBy)
	return args.Error(0)
}

// MockActivityRepository is a mock type for the ActivityRepositoryFacade interface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListActivities(ctx context.Context, filter portsrepo.ActivityListFilter) ([]domain.Activity, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Activity), args.Int(1), args.Error(2)
}

func (m *MockActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) UpdateActivity(ctx context.Context, activity domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) DeleteActivity(ctx context.Context, activityID string) error {
	args := m.Called(ctx, activityID)
	return args.Error(0)
}

// MockTaskRepository is a mock type for the TaskRepositoryFacade interface
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListTasks(ctx context.Context, filter portsrepo.TaskListFilter) ([]domain.Task, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Task), args.Int(1), args.Error(2)
}

func (m *MockTaskRepository) GetTaskStats(ctx context.Context, assignedTo *string) (*portsrepo.TaskStats, error) {
	args := m.Called(ctx, assignedTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.TaskStats), args.Error(1)
}

func (m *MockTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetPipelineSummary(ctx context.Context) (*portsrepo.PipelineSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.PipelineSummary), args.Error(1)
}

func (m *MockReportingRepository) GetEmployeePerformance(ctx context.Context) ([]portsrepo.EmployeePerformance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.EmployeePerformance), args.Error(1)
}

func (m *MockReportingRepository) GetRevenueByMonth(ctx context.Context) ([]portsrepo.MonthlyRevenue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.MonthlyRevenue), args.Error(1)
}

func (m *MockReportingRepository) GetActivityTypeCounts(ctx context.Context) (map[domain.ActivityType]int, int, int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Int(2), args.Error(3)
	}
	return args.Get(0).(map[domain.ActivityType]int), args.Int(1), args.Int(2), args.Error(3)
}

func (m *MockReportingRepository) GetTaskStatusCounts(ctx context.Context) (map[domain.TaskStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TaskStatus]int), args.Error(1)
}

func (m *MockReportingRepository) GetEmployeeQuickStats(ctx context.Context, userID string, activitiesSince time.Time) (*portsrepo.EmployeeQuickStats, error) {
	args := m.Called(ctx, userID, activitiesSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.EmployeeQuickStats), args.Error(1)
}

// MockRenderer is a mock type for the pdfrender.Renderer interface
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderInvoice(ctx context.Context, doc pdfrender.InvoiceDocument) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

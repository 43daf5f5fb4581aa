package services

import (
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/platform/pdfrender"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, renderer pdfrender.Renderer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(repos.UserRepo)
	container.User = NewUserService(repos.UserRepo)

	// The client service doubles as the per-client authorizer the
	// sub-resource services gate through.
	container.Client = NewClientService(repos.ClientRepo, repos.UserRepo)
	clientAuthorizer := container.Client.(portssvc.ClientAuthorizerSvc)

	container.Activity = NewActivityService(repos.ActivityRepo, repos.ClientRepo, clientAuthorizer)
	container.Task = NewTaskService(repos.TaskRepo, repos.UserRepo, repos.ClientRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.ClientRepo, clientAuthorizer)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ExpenseRepo, clientAuthorizer, renderer)
	container.Feedback = NewFeedbackService(repos.FeedbackRepo, repos.ClientRepo, clientAuthorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

package pgsql

import (
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over one shared
// connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		ClientRepo:    newPgxClientRepository(dbPool),
		ActivityRepo:  newPgxActivityRepository(dbPool),
		TaskRepo:      newPgxTaskRepository(dbPool),
		ExpenseRepo:   newPgxExpenseRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		FeedbackRepo:  newPgxFeedbackRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}

package repositories

// RepositoryProvider bundles every repository implementation for service
// container construction.
type RepositoryProvider struct {
	UserRepo      UserRepositoryFacade
	ClientRepo    ClientRepositoryFacade
	ActivityRepo  ActivityRepositoryFacade
	TaskRepo      TaskRepositoryFacade
	ExpenseRepo   ExpenseRepositoryFacade
	InvoiceRepo   InvoiceRepositoryFacade
	FeedbackRepo  FeedbackRepositoryFacade
	ReportingRepo ReportingRepository
}

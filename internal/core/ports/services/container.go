package services

// ServiceContainer holds every service facade the transport layer consumes.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Statement      StatementSvcFacade
	Match          MatchSvcFacade
	Reconciliation ReconciliationSvcFacade
	Report         ReportSvcFacade
}

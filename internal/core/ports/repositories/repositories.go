package repositories

// RepositoryProvider bundles all repository facades for dependency injection.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	StatementRepo   StatementRepositoryFacade
	MovementRepo    MovementRepositoryFacade
	IdempotencyRepo IdempotencyRepositoryFacade
}

package services

import (
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, repos.MovementRepo)
	container.Statement = NewStatementService(repos.StatementRepo, repos.AccountRepo)
	container.Match = NewMatchService(repos.StatementRepo, repos.MovementRepo, cfg.Matching)
	container.Reconciliation = NewReconciliationService(repos.StatementRepo, repos.MovementRepo, repos.IdempotencyRepo, cfg.IdempotencyRetention)
	container.Report = NewReportService(repos.StatementRepo, repos.MovementRepo)

	return container
}

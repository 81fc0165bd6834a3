package pgsql

import (
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository onto one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(pool),
		StatementRepo:   newPgxStatementRepository(pool),
		MovementRepo:    newPgxMovementRepository(pool),
		IdempotencyRepo: newPgxIdempotencyRepository(pool),
	}
}

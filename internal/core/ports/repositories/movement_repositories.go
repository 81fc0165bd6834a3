package repositories

import (
	"context"
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MovementReader defines read operations for treasury movement data
type MovementReader interface {
	// FindMovementByID retrieves a movement by ID, scoped to the given company.
	FindMovementByID(ctx context.Context, companyID, movementID string) (*domain.TreasuryMovement, error)

	// FindUnmatchedMovements retrieves unreconciled movements for one account
	// whose value date falls inside [from, to], ordered by movement ID for
	// deterministic candidate iteration.
	FindUnmatchedMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.TreasuryMovement, error)

	// FindMovementsByIDs retrieves movements keyed by ID.
	FindMovementsByIDs(ctx context.Context, companyID string, movementIDs []string) (map[string]domain.TreasuryMovement, error)

	// SumMovements returns the signed sum of movement amounts for one account.
	// BookOfficial restricts the sum to official-book movements; BookExtended
	// sums everything.
	SumMovements(ctx context.Context, companyID, accountID string, book domain.Book) (decimal.Decimal, error)
}

// MovementWriter defines write operations for treasury movement data
type MovementWriter interface {
	// SaveMovement persists a new treasury movement.
	SaveMovement(ctx context.Context, movement domain.TreasuryMovement) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}

package repositories

import (
	"context"
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
)

// StatementReader defines read operations for statement and item data
type StatementReader interface {
	// FindStatementByID retrieves a statement by ID, scoped to the given company.
	FindStatementByID(ctx context.Context, companyID, statementID string) (*domain.Statement, error)

	// ListStatementsByAccount retrieves statements for one account, newest period first.
	ListStatementsByAccount(ctx context.Context, companyID, accountID string, limit int) ([]domain.Statement, error)

	// FindItemByID retrieves a single statement item belonging to the given statement.
	FindItemByID(ctx context.Context, statementID, itemID string) (*domain.StatementItem, error)

	// FindItemsByStatementID retrieves all items of a statement ordered by line number.
	FindItemsByStatementID(ctx context.Context, statementID string) ([]domain.StatementItem, error)

	// FindJustifiedDifferences retrieves the justified differences recorded for a statement.
	FindJustifiedDifferences(ctx context.Context, statementID string) ([]domain.JustifiedDifference, error)
}

// StatementWriter defines the transactional mutations of statement state.
// Every method runs in a single database transaction and keeps the statement
// counters in step with the item transition it applies. State guards are
// enforced with conditional updates; a guard that matches no row surfaces
// apperrors.ErrConflict so a concurrent-mutation loser fails instead of
// overwriting the winner.
type StatementWriter interface {
	// SaveStatement persists a new statement together with its items.
	SaveStatement(ctx context.Context, statement domain.Statement, items []domain.StatementItem) error

	// CloseStatement transitions an OPEN statement to CLOSED, recording closure
	// metadata and the justified differences explaining any residual gap.
	CloseStatement(ctx context.Context, companyID, statementID string, differences []domain.JustifiedDifference, closedBy string, closingNotes string, closedAt time.Time) error

	// ApplyMatch links one item to one movement and moves the item from pending
	// to matched. The link itself is what makes the movement reconciled.
	ApplyMatch(ctx context.Context, link domain.MatchLink, updatedBy string, now time.Time) error

	// ApplyAutoMatches applies a batch of links produced by the auto-match pass.
	// Links whose guards no longer hold are skipped; the number of links
	// actually applied is returned.
	ApplyAutoMatches(ctx context.Context, statementID string, links []domain.MatchLink, updatedBy string, now time.Time) (int, error)

	// ApplyUnmatch removes an item's movement link and moves the item back to
	// pending. The movement becomes unreconciled by losing the link.
	ApplyUnmatch(ctx context.Context, statementID, itemID string, updatedBy string, now time.Time) error

	// FlagSuspense moves a pending item into suspense.
	FlagSuspense(ctx context.Context, statementID, itemID, notes string, updatedBy string, now time.Time) error

	// ResolveSuspense marks a suspense item resolved. Counters are unchanged:
	// resolved items stay in the suspense count.
	ResolveSuspense(ctx context.Context, statementID, itemID, notes string, updatedBy string, now time.Time) error

	// ApplyMovementFromSuspense inserts a synthesized movement, links it to the
	// suspense item and moves the item from suspense to matched.
	ApplyMovementFromSuspense(ctx context.Context, item domain.StatementItem, movement domain.TreasuryMovement, updatedBy string, now time.Time) error
}

// StatementRepositoryFacade combines all statement-related repository interfaces
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}

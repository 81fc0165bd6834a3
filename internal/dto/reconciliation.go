package dto

import (
	"github.com/finvela/bank_recon_svc/internal/core/domain"
)

// ManualMatchRequest defines the payload for manually matching an item.
type ManualMatchRequest struct {
	MovementID     string  `json:"movementID" binding:"required"`
	IdempotencyKey *string `json:"idempotencyKey,omitempty"`
}

// UnmatchRequest defines the payload for unmatching an item.
type UnmatchRequest struct {
	IdempotencyKey *string `json:"idempotencyKey,omitempty"`
}

// FlagSuspenseRequest defines the payload for flagging an item as suspense.
type FlagSuspenseRequest struct {
	Notes          string  `json:"notes"`
	IdempotencyKey *string `json:"idempotencyKey,omitempty"`
}

// ResolveSuspenseRequest defines the payload for resolving a suspense item.
// Notes are mandatory: a resolution without an explanation is rejected.
type ResolveSuspenseRequest struct {
	Notes          string  `json:"notes" binding:"required"`
	IdempotencyKey *string `json:"idempotencyKey,omitempty"`
}

// MovementFromSuspenseRequest defines the payload for synthesizing a movement
// from a bank-only suspense item (fees, interest, ...).
type MovementFromSuspenseRequest struct {
	MovementType   domain.MovementType `json:"movementType" binding:"required,oneof=TRANSFER FEE INTEREST OTHER"`
	Description    string              `json:"description" binding:"required"`
	IdempotencyKey *string             `json:"idempotencyKey,omitempty"`
}

// ReconciliationResult is the outcome of one reconciliation mutation. It is
// also the payload stored in the idempotency record, so a replayed request
// returns it byte-identical.
type ReconciliationResult struct {
	StatementID      string           `json:"statementID"`
	ItemID           string           `json:"itemID"`
	MovementID       *string          `json:"movementID,omitempty"`
	MatchType        domain.MatchType `json:"matchType"`
	MatchConfidence  *int             `json:"matchConfidence,omitempty"`
	Matched          bool             `json:"matched"`
	IsSuspense       bool             `json:"isSuspense"`
	SuspenseResolved bool             `json:"suspenseResolved"`
}

// MutationResponse wraps a reconciliation result with the replay indicator.
type MutationResponse struct {
	Replayed bool                 `json:"replayed"`
	Result   ReconciliationResult `json:"result"`
}

// AutoMatchResponse reports the outcome of one auto-match pass.
type AutoMatchResponse struct {
	StatementID string `json:"statementID"`
	Matched     int    `json:"matched"`
	Skipped     int    `json:"skipped"`
}

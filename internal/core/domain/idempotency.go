package domain

import "time"

// OperationKind identifies a mutating operation for idempotency-record keying.
type OperationKind string

const (
	OpManualMatch          OperationKind = "MANUAL_MATCH"
	OpUnmatch              OperationKind = "UNMATCH"
	OpFlagSuspense         OperationKind = "FLAG_SUSPENSE"
	OpResolveSuspense      OperationKind = "RESOLVE_SUSPENSE"
	OpMovementFromSuspense OperationKind = "MOVEMENT_FROM_SUSPENSE"
)

// IdempotencyStatus tracks whether the guarded operation completed.
type IdempotencyStatus string

const (
	IdempotencyInProgress IdempotencyStatus = "IN_PROGRESS"
	IdempotencyCompleted  IdempotencyStatus = "COMPLETED"
)

// IdempotencyRecord stores the outcome of the first successful execution of a
// keyed mutating operation. A retry with the same (company, kind, key) within
// the retention window returns the stored result without re-executing side
// effects.
type IdempotencyRecord struct {
	CompanyID     string            `json:"companyID"`
	OperationKind OperationKind     `json:"operationKind"`
	Key           string            `json:"key"`
	Status        IdempotencyStatus `json:"status"`
	Result        []byte            `json:"result,omitempty"` // Serialized response of the first execution
	EntityID      string            `json:"entityID,omitempty"`
	ExpiresAt     time.Time         `json:"expiresAt"`
	CreatedAt     time.Time         `json:"createdAt"`
}

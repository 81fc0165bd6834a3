package repositories

import (
	"context"
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
)

// IdempotencyRepositoryFacade persists idempotency records keyed by the
// composite (company, operation kind, key). The insert relies on the table's
// uniqueness constraint: a duplicate insert surfaces apperrors.ErrDuplicate,
// which the guard turns into either a replay or a conflict.
type IdempotencyRepositoryFacade interface {
	// InsertPending inserts an IN_PROGRESS record. Returns apperrors.ErrDuplicate
	// if a record with the same composite key already exists.
	InsertPending(ctx context.Context, record domain.IdempotencyRecord) error

	// FindRecord retrieves a record by its composite key.
	FindRecord(ctx context.Context, companyID string, kind domain.OperationKind, key string) (*domain.IdempotencyRecord, error)

	// MarkCompleted stores the serialized result and affected entity ID of the
	// first successful execution.
	MarkCompleted(ctx context.Context, companyID string, kind domain.OperationKind, key string, result []byte, entityID string) error

	// DeleteRecord removes a record, releasing its key for a fresh attempt.
	DeleteRecord(ctx context.Context, companyID string, kind domain.OperationKind, key string) error

	// PurgeExpired deletes records whose retention window has elapsed and
	// returns the number of rows removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

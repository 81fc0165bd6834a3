package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	"github.com/finvela/bank_recon_svc/internal/middleware"
)

// idempotencyGuard wraps mutating operations with exactly-once semantics keyed
// by (company, operation kind, idempotency key). The guard inserts an
// IN_PROGRESS record before running the operation; the table's uniqueness
// constraint makes concurrent duplicates lose the insert race.
type idempotencyGuard struct {
	repo      portsrepo.IdempotencyRepositoryFacade
	retention time.Duration
}

func newIdempotencyGuard(repo portsrepo.IdempotencyRepositoryFacade, retention time.Duration) *idempotencyGuard {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &idempotencyGuard{repo: repo, retention: retention}
}

// runIdempotent executes fn at most once per (companyID, kind, key). A retry
// after completion returns the stored result with replayed=true; a retry while
// the first execution is still in flight returns apperrors.ErrConflict. A nil
// key disables the guard and fn runs unconditionally.
func runIdempotent[T any](ctx context.Context, g *idempotencyGuard, companyID string, kind domain.OperationKind, key *string, entityID string, fn func(ctx context.Context) (T, error)) (T, bool, error) {
	var zero T

	if key == nil || *key == "" {
		result, err := fn(ctx)
		return result, false, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()
	record := domain.IdempotencyRecord{
		CompanyID:     companyID,
		OperationKind: kind,
		Key:           *key,
		Status:        domain.IdempotencyInProgress,
		EntityID:      entityID,
		ExpiresAt:     now.Add(g.retention),
		CreatedAt:     now,
	}

	err := g.repo.InsertPending(ctx, record)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return zero, false, err
		}

		existing, findErr := g.repo.FindRecord(ctx, companyID, kind, *key)
		if findErr != nil {
			return zero, false, findErr
		}

		if existing.Status == domain.IdempotencyInProgress {
			return zero, false, apperrors.NewConflictError("operation with idempotency key " + *key + " is still in progress")
		}

		var stored T
		if unmarshalErr := json.Unmarshal(existing.Result, &stored); unmarshalErr != nil {
			logger.Error("Failed to decode stored idempotency result", slog.String("key", *key), slog.String("error", unmarshalErr.Error()))
			return zero, false, apperrors.NewAppError(500, "stored idempotency result is unreadable", unmarshalErr)
		}
		logger.Info("Replaying idempotent operation", slog.String("kind", string(kind)), slog.String("key", *key))
		return stored, true, nil
	}

	// Record writes after fn must not die with the request: a cancelled
	// context would otherwise strand an IN_PROGRESS record and 409 every
	// retry until the retention purge.
	recordCtx := context.WithoutCancel(ctx)

	result, err := fn(ctx)
	if err != nil {
		// Release the key so the caller can retry after fixing the cause.
		if delErr := g.repo.DeleteRecord(recordCtx, companyID, kind, *key); delErr != nil {
			logger.Error("Failed to release idempotency key after failed operation", slog.String("key", *key), slog.String("error", delErr.Error()))
		}
		return zero, false, err
	}

	payload, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		return zero, false, apperrors.NewAppError(500, "failed to encode idempotency result", marshalErr)
	}
	if markErr := g.repo.MarkCompleted(recordCtx, companyID, kind, *key, payload, entityID); markErr != nil {
		// The operation itself committed. Surface the result and leave the
		// record IN_PROGRESS; the purge job reclaims it at expiry.
		logger.Error("Failed to mark idempotency record completed", slog.String("key", *key), slog.String("error", markErr.Error()))
	}

	return result, false, nil
}

// PurgeExpiredIdempotencyRecords removes records past their retention window.
// Intended to run on a timer from main.
func PurgeExpiredIdempotencyRecords(ctx context.Context, repo portsrepo.IdempotencyRepositoryFacade) {
	logger := middleware.GetLoggerFromCtx(ctx)
	purged, err := repo.PurgeExpired(ctx, time.Now())
	if err != nil {
		logger.Error("Failed to purge expired idempotency records", slog.String("error", err.Error()))
		return
	}
	if purged > 0 {
		logger.Info("Purged expired idempotency records", slog.Int64("purged", purged))
	}
}

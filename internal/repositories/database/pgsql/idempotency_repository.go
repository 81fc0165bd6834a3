package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	"github.com/finvela/bank_recon_svc/internal/models"
	"github.com/finvela/bank_recon_svc/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxIdempotencyRepository struct {
	BaseRepository
}

// newPgxIdempotencyRepository creates a new repository for idempotency records.
func newPgxIdempotencyRepository(pool *pgxpool.Pool) portsrepo.IdempotencyRepositoryFacade {
	return &PgxIdempotencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxIdempotencyRepository implements portsrepo.IdempotencyRepositoryFacade
var _ portsrepo.IdempotencyRepositoryFacade = (*PgxIdempotencyRepository)(nil)

// InsertPending inserts an IN_PROGRESS record. Returns apperrors.ErrDuplicate
// if a record with the same composite key already exists.
func (r *PgxIdempotencyRepository) InsertPending(ctx context.Context, record domain.IdempotencyRecord) error {
	query := `
		INSERT INTO idempotency_records (company_id, operation_kind, idempotency_key, status, result, entity_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.CompanyID, string(record.OperationKind), record.Key, string(record.Status),
		record.Result, record.EntityID, record.ExpiresAt, record.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on the composite key
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert idempotency record", err)
	}
	return nil
}

// FindRecord retrieves a record by its composite key.
func (r *PgxIdempotencyRepository) FindRecord(ctx context.Context, companyID string, kind domain.OperationKind, key string) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT company_id, operation_kind, idempotency_key, status, result, entity_id, expires_at, created_at
		FROM idempotency_records
		WHERE company_id = $1 AND operation_kind = $2 AND idempotency_key = $3;
	`
	var m models.IdempotencyRecord
	err := r.Pool.QueryRow(ctx, query, companyID, string(kind), key).Scan(
		&m.CompanyID, &m.OperationKind, &m.Key, &m.Status,
		&m.Result, &m.EntityID, &m.ExpiresAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find idempotency record", err)
	}

	record := mapping.ToDomainIdempotencyRecord(m)
	return &record, nil
}

// MarkCompleted stores the serialized result of the first successful execution.
func (r *PgxIdempotencyRepository) MarkCompleted(ctx context.Context, companyID string, kind domain.OperationKind, key string, result []byte, entityID string) error {
	query := `
		UPDATE idempotency_records
		SET status = 'COMPLETED', result = $4, entity_id = $5
		WHERE company_id = $1 AND operation_kind = $2 AND idempotency_key = $3 AND status = 'IN_PROGRESS';
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, string(kind), key, result, entityID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark idempotency record completed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRecord removes a record, releasing its key for a fresh attempt.
func (r *PgxIdempotencyRepository) DeleteRecord(ctx context.Context, companyID string, kind domain.OperationKind, key string) error {
	query := `
		DELETE FROM idempotency_records
		WHERE company_id = $1 AND operation_kind = $2 AND idempotency_key = $3;
	`
	_, err := r.Pool.Exec(ctx, query, companyID, string(kind), key)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete idempotency record", err)
	}
	return nil
}

// PurgeExpired deletes records whose retention window has elapsed.
func (r *PgxIdempotencyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM idempotency_records WHERE expires_at <= $1;`
	tag, err := r.Pool.Exec(ctx, query, now)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to purge expired idempotency records", err)
	}
	return tag.RowsAffected(), nil
}

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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for treasury movement data.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

const movementInsertColumns = `movement_id, company_id, account_id, value_date, movement_type, amount, description, book, created_at, created_by, last_updated_at, last_updated_by`

// A movement is reconciled exactly when a statement item links to it. The
// flag is derived at read time from that link, never stored.
const movementSelectColumns = `m.movement_id, m.company_id, m.account_id, m.value_date, m.movement_type, m.amount, m.description, m.book,
	EXISTS (SELECT 1 FROM statement_items si WHERE si.movement_id = m.movement_id) AS reconciled,
	m.created_at, m.created_by, m.last_updated_at, m.last_updated_by`

func scanMovement(row pgx.Row) (models.TreasuryMovement, error) {
	var m models.TreasuryMovement
	err := row.Scan(
		&m.MovementID,
		&m.CompanyID,
		&m.AccountID,
		&m.ValueDate,
		&m.MovementType,
		&m.Amount,
		&m.Description,
		&m.Book,
		&m.Reconciled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveMovement persists a new treasury movement.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.TreasuryMovement) error {
	m := mapping.ToModelMovement(movement)
	query := `
		INSERT INTO treasury_movements (` + movementInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MovementID,
		m.CompanyID,
		m.AccountID,
		m.ValueDate,
		m.MovementType,
		m.Amount,
		m.Description,
		m.Book,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert movement "+m.MovementID, err)
	}
	return nil
}

// FindMovementByID retrieves a movement by ID, scoped to the given company.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, companyID, movementID string) (*domain.TreasuryMovement, error) {
	query := `
		SELECT ` + movementSelectColumns + `
		FROM treasury_movements m
		WHERE m.movement_id = $1 AND m.company_id = $2;
	`
	m, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("movement " + movementID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find movement by ID "+movementID, err)
	}

	movement := mapping.ToDomainMovement(m)
	return &movement, nil
}

// FindUnmatchedMovements retrieves unreconciled movements for one account in a
// date window, ordered by movement ID for deterministic candidate iteration.
func (r *PgxMovementRepository) FindUnmatchedMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.TreasuryMovement, error) {
	query := `
		SELECT ` + movementSelectColumns + `
		FROM treasury_movements m
		WHERE m.company_id = $1 AND m.account_id = $2
		  AND NOT EXISTS (SELECT 1 FROM statement_items si WHERE si.movement_id = m.movement_id)
		  AND m.value_date BETWEEN $3 AND $4
		ORDER BY m.movement_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unmatched movements for account "+accountID, err)
	}
	defer rows.Close()

	movements := []models.TreasuryMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row for account "+accountID, err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows for account "+accountID, err)
	}

	return mapping.ToDomainMovementSlice(movements), nil
}

// FindMovementsByIDs retrieves movements keyed by ID.
func (r *PgxMovementRepository) FindMovementsByIDs(ctx context.Context, companyID string, movementIDs []string) (map[string]domain.TreasuryMovement, error) {
	if len(movementIDs) == 0 {
		return map[string]domain.TreasuryMovement{}, nil
	}

	query := `
		SELECT ` + movementSelectColumns + `
		FROM treasury_movements m
		WHERE m.company_id = $1 AND m.movement_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, companyID, movementIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.TreasuryMovement, len(movementIDs))
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row during batch fetch", err)
		}
		result[m.MovementID] = mapping.ToDomainMovement(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows during batch fetch", err)
	}

	return result, nil
}

// SumMovements returns the signed sum of movement amounts for one account and
// book. The official book filters; the extended book sums everything.
func (r *PgxMovementRepository) SumMovements(ctx context.Context, companyID, accountID string, book domain.Book) (decimal.Decimal, error) {
	const sumAll = `
		SELECT COALESCE(SUM(amount), 0)
		FROM treasury_movements
		WHERE company_id = $1 AND account_id = $2;
	`
	const sumBook = `
		SELECT COALESCE(SUM(amount), 0)
		FROM treasury_movements
		WHERE company_id = $1 AND account_id = $2 AND book = $3;
	`

	query := sumAll
	args := []interface{}{companyID, accountID}
	if book == domain.BookOfficial {
		query = sumBook
		args = append(args, string(domain.BookOfficial))
	}

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum movements for account "+accountID, err)
	}
	return sum, nil
}

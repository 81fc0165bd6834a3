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

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for statement and item data.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxStatementRepository implements portsrepo.StatementRepositoryFacade
var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

const statementColumns = `statement_id, company_id, account_id, period_label, period_start, period_end,
	declared_opening_balance, declared_closing_balance, state,
	total_items, matched_count, suspense_count, pending_count,
	closed_by, closed_at, closing_notes,
	created_at, created_by, last_updated_at, last_updated_by`

const itemColumns = `item_id, statement_id, line_number, value_date, description, reference,
	debit_amount, credit_amount, book, matched, match_type, match_confidence, movement_id,
	is_suspense, suspense_resolved, suspense_notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanStatement(row pgx.Row) (models.Statement, error) {
	var m models.Statement
	var closingNotes *string
	err := row.Scan(
		&m.StatementID,
		&m.CompanyID,
		&m.AccountID,
		&m.PeriodLabel,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.DeclaredOpeningBalance,
		&m.DeclaredClosingBalance,
		&m.State,
		&m.TotalItems,
		&m.MatchedCount,
		&m.SuspenseCount,
		&m.PendingCount,
		&m.ClosedBy,
		&m.ClosedAt,
		&closingNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if closingNotes != nil {
		m.ClosingNotes = *closingNotes
	}
	return m, err
}

func scanItem(row pgx.Row) (models.StatementItem, error) {
	var m models.StatementItem
	err := row.Scan(
		&m.ItemID,
		&m.StatementID,
		&m.LineNumber,
		&m.ValueDate,
		&m.Description,
		&m.Reference,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Book,
		&m.Matched,
		&m.MatchType,
		&m.MatchConfidence,
		&m.MovementID,
		&m.IsSuspense,
		&m.SuspenseResolved,
		&m.SuspenseNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveStatement persists a new statement together with its items in one transaction.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement, items []domain.StatementItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelStatement(statement)
	stmtQuery := `
		INSERT INTO statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, stmtQuery,
		m.StatementID, m.CompanyID, m.AccountID, m.PeriodLabel, m.PeriodStart, m.PeriodEnd,
		m.DeclaredOpeningBalance, m.DeclaredClosingBalance, m.State,
		m.TotalItems, m.MatchedCount, m.SuspenseCount, m.PendingCount,
		m.ClosedBy, m.ClosedAt, m.ClosingNotes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert statement "+m.StatementID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO statement_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	for _, item := range items {
		mi := mapping.ToModelStatementItem(item)
		batch.Queue(itemQuery,
			mi.ItemID, mi.StatementID, mi.LineNumber, mi.ValueDate, mi.Description, mi.Reference,
			mi.DebitAmount, mi.CreditAmount, mi.Book, mi.Matched, mi.MatchType, mi.MatchConfidence, mi.MovementID,
			mi.IsSuspense, mi.SuspenseResolved, mi.SuspenseNotes,
			mi.CreatedAt, mi.CreatedBy, mi.LastUpdatedAt, mi.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute item batch for statement "+m.StatementID, err)
	}

	return r.Commit(ctx, tx)
}

// FindStatementByID retrieves a statement by ID, scoped to the given company.
func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, companyID, statementID string) (*domain.Statement, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE statement_id = $1 AND company_id = $2;
	`
	m, err := scanStatement(r.Pool.QueryRow(ctx, query, statementID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("statement " + statementID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find statement by ID "+statementID, err)
	}

	statement := mapping.ToDomainStatement(m)
	return &statement, nil
}

// ListStatementsByAccount retrieves statements for one account, newest period first.
func (r *PgxStatementRepository) ListStatementsByAccount(ctx context.Context, companyID, accountID string, limit int) ([]domain.Statement, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE company_id = $1 AND account_id = $2
		ORDER BY period_start DESC, statement_id
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, accountID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query statements for account "+accountID, err)
	}
	defer rows.Close()

	statements := []domain.Statement{}
	for rows.Next() {
		m, err := scanStatement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement row for account "+accountID, err)
		}
		statements = append(statements, mapping.ToDomainStatement(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating statement rows for account "+accountID, err)
	}

	return statements, nil
}

// FindItemByID retrieves a single statement item belonging to the given statement.
func (r *PgxStatementRepository) FindItemByID(ctx context.Context, statementID, itemID string) (*domain.StatementItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM statement_items
		WHERE item_id = $1 AND statement_id = $2;
	`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID, statementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("statement item " + itemID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find item by ID "+itemID, err)
	}

	item := mapping.ToDomainStatementItem(m)
	return &item, nil
}

// FindItemsByStatementID retrieves all items of a statement ordered by line number.
func (r *PgxStatementRepository) FindItemsByStatementID(ctx context.Context, statementID string) ([]domain.StatementItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM statement_items
		WHERE statement_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, statementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for statement "+statementID, err)
	}
	defer rows.Close()

	items := []models.StatementItem{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for statement "+statementID, err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for statement "+statementID, err)
	}

	return mapping.ToDomainStatementItemSlice(items), nil
}

// FindJustifiedDifferences retrieves the justified differences recorded for a statement.
func (r *PgxStatementRepository) FindJustifiedDifferences(ctx context.Context, statementID string) ([]domain.JustifiedDifference, error) {
	query := `
		SELECT difference_id, statement_id, amount, concept, justification, created_at, created_by
		FROM statement_justified_differences
		WHERE statement_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, statementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query justified differences for statement "+statementID, err)
	}
	defer rows.Close()

	diffs := []domain.JustifiedDifference{}
	for rows.Next() {
		var m models.JustifiedDifference
		if err := rows.Scan(&m.DifferenceID, &m.StatementID, &m.Amount, &m.Concept, &m.Justification, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan justified difference row", err)
		}
		diffs = append(diffs, mapping.ToDomainJustifiedDifference(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating justified difference rows", err)
	}

	return diffs, nil
}

// matchItemTx links one item to a movement inside an open transaction. The
// item link is the single record of the match; a movement's reconciled state
// is derived from it. The conditional WHERE clause guards the item side, and
// the unique index on movement_id serializes concurrent claims of one
// movement.
func (r *PgxStatementRepository) matchItemTx(ctx context.Context, tx pgx.Tx, link domain.MatchLink, updatedBy string, now time.Time) error {
	itemQuery := `
		UPDATE statement_items
		SET matched = TRUE,
		    match_type = $3,
		    match_confidence = $4,
		    movement_id = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE item_id = $1 AND statement_id = $2 AND matched = FALSE AND is_suspense = FALSE;
	`
	tag, err := tx.Exec(ctx, itemQuery, link.ItemID, link.StatementID, string(link.MatchType), link.Confidence, link.MovementID, now, updatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // movement already linked elsewhere
			return apperrors.NewConflictError("movement " + link.MovementID + " is already linked to another item")
		}
		return apperrors.NewAppError(500, "failed to update item "+link.ItemID+" for match", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("item " + link.ItemID + " is not available for matching")
	}

	return nil
}

// bumpCounters shifts statement counters inside an open transaction, guarded
// on the statement still being OPEN.
func (r *PgxStatementRepository) bumpCounters(ctx context.Context, tx pgx.Tx, statementID string, matchedDelta, suspenseDelta, pendingDelta int, updatedBy string, now time.Time) error {
	query := `
		UPDATE statements
		SET matched_count = matched_count + $2,
		    suspense_count = suspense_count + $3,
		    pending_count = pending_count + $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE statement_id = $1 AND state = 'OPEN';
	`
	tag, err := tx.Exec(ctx, query, statementID, matchedDelta, suspenseDelta, pendingDelta, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update counters for statement "+statementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("statement " + statementID + " is not open")
	}
	return nil
}

// ApplyMatch links one item to one movement and shifts the statement counters,
// all in one transaction.
func (r *PgxStatementRepository) ApplyMatch(ctx context.Context, link domain.MatchLink, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.matchItemTx(ctx, tx, link, updatedBy, now); err != nil {
		return err
	}
	if err := r.bumpCounters(ctx, tx, link.StatementID, +1, 0, -1, updatedBy, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ApplyAutoMatches applies a batch of links produced by the auto-match pass in
// one transaction. A link whose guards no longer hold is skipped rather than
// failing the pass; the number of applied links is returned.
func (r *PgxStatementRepository) ApplyAutoMatches(ctx context.Context, statementID string, links []domain.MatchLink, updatedBy string, now time.Time) (int, error) {
	if len(links) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	applied := 0
	for _, link := range links {
		itemQuery := `
			UPDATE statement_items
			SET matched = TRUE,
			    match_type = $3,
			    match_confidence = $4,
			    movement_id = $5,
			    last_updated_at = $6,
			    last_updated_by = $7
			WHERE item_id = $1 AND statement_id = $2 AND matched = FALSE AND is_suspense = FALSE
			  AND NOT EXISTS (SELECT 1 FROM statement_items WHERE movement_id = $5);
		`
		tag, err := tx.Exec(ctx, itemQuery, link.ItemID, link.StatementID, string(link.MatchType), link.Confidence, link.MovementID, now, updatedBy)
		if err != nil {
			return 0, apperrors.NewAppError(500, "failed to auto-match item "+link.ItemID, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		applied++
	}

	if applied > 0 {
		if err := r.bumpCounters(ctx, tx, statementID, applied, 0, -applied, updatedBy, now); err != nil {
			return 0, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return applied, nil
}

// ApplyUnmatch removes an item's movement link and returns it to pending.
// Clearing the link also makes the previously matched movement unreconciled,
// since reconciled state is derived from the link.
func (r *PgxStatementRepository) ApplyUnmatch(ctx context.Context, statementID, itemID string, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	itemQuery := `
		UPDATE statement_items
		SET matched = FALSE,
		    match_type = 'NONE',
		    match_confidence = NULL,
		    movement_id = NULL,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE item_id = $1 AND statement_id = $2 AND matched = TRUE;
	`
	tag, err := tx.Exec(ctx, itemQuery, itemID, statementID, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update item "+itemID+" for unmatch", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("item " + itemID + " is not matched")
	}

	if err := r.bumpCounters(ctx, tx, statementID, -1, 0, +1, updatedBy, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FlagSuspense moves a pending item into suspense.
func (r *PgxStatementRepository) FlagSuspense(ctx context.Context, statementID, itemID, notes string, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	itemQuery := `
		UPDATE statement_items
		SET is_suspense = TRUE,
		    suspense_notes = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE item_id = $1 AND statement_id = $2 AND matched = FALSE AND is_suspense = FALSE;
	`
	tag, err := tx.Exec(ctx, itemQuery, itemID, statementID, notes, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to flag item "+itemID+" as suspense", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("item " + itemID + " cannot be flagged as suspense")
	}

	if err := r.bumpCounters(ctx, tx, statementID, 0, +1, -1, updatedBy, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ResolveSuspense marks a suspense item resolved. Resolved items stay in the
// suspense count, so no counter shift happens here; the statement row is still
// touched for the OPEN guard.
func (r *PgxStatementRepository) ResolveSuspense(ctx context.Context, statementID, itemID, notes string, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	itemQuery := `
		UPDATE statement_items
		SET suspense_resolved = TRUE,
		    suspense_notes = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE item_id = $1 AND statement_id = $2 AND is_suspense = TRUE AND suspense_resolved = FALSE;
	`
	tag, err := tx.Exec(ctx, itemQuery, itemID, statementID, notes, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to resolve suspense item "+itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("item " + itemID + " is not an unresolved suspense item")
	}

	if err := r.bumpCounters(ctx, tx, statementID, 0, 0, 0, updatedBy, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ApplyMovementFromSuspense inserts a synthesized movement, links it to the
// suspense item and moves the item from suspense to matched, in one transaction.
func (r *PgxStatementRepository) ApplyMovementFromSuspense(ctx context.Context, item domain.StatementItem, movement domain.TreasuryMovement, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelMovement(movement)
	insertQuery := `
		INSERT INTO treasury_movements (` + movementInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.MovementID, m.CompanyID, m.AccountID, m.ValueDate, m.MovementType,
		m.Amount, m.Description, m.Book,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert movement for suspense item "+item.ItemID, err)
	}

	itemQuery := `
		UPDATE statement_items
		SET matched = TRUE,
		    match_type = $3,
		    match_confidence = $4,
		    movement_id = $5,
		    is_suspense = FALSE,
		    suspense_resolved = FALSE,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE item_id = $1 AND statement_id = $2 AND is_suspense = TRUE AND suspense_resolved = FALSE AND matched = FALSE;
	`
	confidence := 100
	tag, err := tx.Exec(ctx, itemQuery, item.ItemID, item.StatementID, string(domain.MatchManual), confidence, movement.MovementID, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link suspense item "+item.ItemID+" to new movement", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("item " + item.ItemID + " is not an open suspense item")
	}

	if err := r.bumpCounters(ctx, tx, item.StatementID, +1, -1, 0, updatedBy, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CloseStatement transitions an OPEN statement to CLOSED, recording closure
// metadata and the justified differences explaining any residual gap.
func (r *PgxStatementRepository) CloseStatement(ctx context.Context, companyID, statementID string, differences []domain.JustifiedDifference, closedBy string, closingNotes string, closedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	closeQuery := `
		UPDATE statements
		SET state = 'CLOSED',
		    closed_by = $3,
		    closed_at = $4,
		    closing_notes = $5,
		    last_updated_at = $4,
		    last_updated_by = $3
		WHERE statement_id = $1 AND company_id = $2 AND state = 'OPEN';
	`
	tag, err := tx.Exec(ctx, closeQuery, statementID, companyID, closedBy, closedAt, closingNotes)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close statement "+statementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("statement " + statementID + " is not open")
	}

	if len(differences) > 0 {
		batch := &pgx.Batch{}
		diffQuery := `
			INSERT INTO statement_justified_differences (difference_id, statement_id, amount, concept, justification, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		for _, d := range differences {
			md := mapping.ToModelJustifiedDifference(d)
			batch.Queue(diffQuery, md.DifferenceID, md.StatementID, md.Amount, md.Concept, md.Justification, md.CreatedAt, md.CreatedBy)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert justified differences for statement "+statementID, err)
		}
	}

	return r.Commit(ctx, tx)
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	"github.com/finvela/bank_recon_svc/internal/models"
	"github.com/finvela/bank_recon_svc/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for bank account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount persists a new bank account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	modelAcc := mapping.ToModelAccount(account)
	query := `
		INSERT INTO bank_accounts (account_id, company_id, name, iban, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.CompanyID,
		modelAcc.Name,
		modelAcc.IBAN,
		modelAcc.CurrencyCode,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: account with IBAN %s already exists", apperrors.ErrDuplicate, modelAcc.IBAN)
			}
		}
		return apperrors.NewAppError(500, "failed to insert account "+modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by ID, scoped to the given company.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.BankAccount, error) {
	query := `
		SELECT account_id, company_id, name, iban, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE account_id = $1 AND company_id = $2;
	`
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, accountID, companyID).Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Name,
		&m.IBAN,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves all active accounts for a company.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	query := `
		SELECT account_id, company_id, name, iban, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		var m models.BankAccount
		if err := rows.Scan(
			&m.AccountID,
			&m.CompanyID,
			&m.Name,
			&m.IBAN,
			&m.CurrencyCode,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return accounts, nil
}

package repositories

import (
	"context"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
)

// AccountReader defines read operations for bank account data
type AccountReader interface {
	// FindAccountByID retrieves an account by ID, scoped to the given company.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.BankAccount, error)

	// ListAccounts retrieves all active accounts for a company.
	ListAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error)
}

// AccountWriter defines write operations for bank account data
type AccountWriter interface {
	// SaveAccount persists a new bank account.
	SaveAccount(ctx context.Context, account domain.BankAccount) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

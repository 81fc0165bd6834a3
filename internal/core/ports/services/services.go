package services

import (
	"context"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/finvela/bank_recon_svc/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade exposes bank account operations and the dual-book balance
// calculator.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.BankAccount, error)
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.BankAccount, error)
	ListAccountsWithBalances(ctx context.Context, companyID string) ([]dto.AccountWithBalancesResponse, error)
	// RecordMovement registers a ledger movement for one account. Movements
	// enter unreconciled and become match candidates immediately.
	RecordMovement(ctx context.Context, companyID, accountID string, req dto.RecordMovementRequest, creatorUserID string) (*domain.TreasuryMovement, error)
	// Balance returns the signed sum of movements for one account and book.
	// Pure read, never cached.
	Balance(ctx context.Context, companyID, accountID string, book domain.Book) (decimal.Decimal, error)
}

// StatementSvcFacade exposes the statement lifecycle: ingestion, reads, closing.
type StatementSvcFacade interface {
	IngestStatement(ctx context.Context, companyID string, req dto.IngestStatementRequest, creatorUserID string) (*domain.Statement, error)
	GetStatement(ctx context.Context, companyID, statementID string) (*domain.Statement, []domain.StatementItem, error)
	ListStatements(ctx context.Context, companyID, accountID string, limit int) ([]domain.Statement, error)
	CloseStatement(ctx context.Context, companyID, statementID string, req dto.CloseStatementRequest, closerUserID string) (*domain.Statement, error)
}

// MatchSvcFacade exposes the batch auto-match pass.
type MatchSvcFacade interface {
	RunAutoMatch(ctx context.Context, companyID, statementID string, userID string) (*dto.AutoMatchResponse, error)
}

// ReconciliationSvcFacade exposes the manual reconciliation operations. Each
// one is transactional and, when the request carries an idempotency key,
// replay-protected.
type ReconciliationSvcFacade interface {
	ManualMatch(ctx context.Context, companyID, statementID, itemID string, req dto.ManualMatchRequest, userID string) (*dto.MutationResponse, error)
	Unmatch(ctx context.Context, companyID, statementID, itemID string, req dto.UnmatchRequest, userID string) (*dto.MutationResponse, error)
	FlagSuspense(ctx context.Context, companyID, statementID, itemID string, req dto.FlagSuspenseRequest, userID string) (*dto.MutationResponse, error)
	ResolveSuspense(ctx context.Context, companyID, statementID, itemID string, req dto.ResolveSuspenseRequest, userID string) (*dto.MutationResponse, error)
	CreateMovementFromSuspense(ctx context.Context, companyID, statementID, itemID string, req dto.MovementFromSuspenseRequest, userID string) (*dto.MutationResponse, error)
}

// ReportSvcFacade assembles the reconciliation report consumed by the external
// renderer.
type ReportSvcFacade interface {
	Generate(ctx context.Context, companyID, statementID string) (*domain.ReconciliationReport, error)
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/dto"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/shopspring/decimal"
)

// accountService provides bank account operations and the dual-book balance
// calculator. Balances are always computed from movements at call time; the
// account row carries no stored balance that could go stale.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new bank account for the company.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	account := domain.BankAccount{
		AccountID:    uuid.NewString(),
		CompanyID:    companyID,
		Name:         req.Name,
		IBAN:         req.IBAN,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("company_id", companyID))
	return &account, nil
}

// GetAccountByID retrieves one account scoped to the company.
func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// Balance returns the signed sum of movements for one account and book.
// The official book sums only official movements; the extended book sums all
// of them, so the two views can legitimately disagree.
func (s *accountService) Balance(ctx context.Context, companyID, accountID string, book domain.Book) (decimal.Decimal, error) {
	if !domain.ValidBook(book) {
		return decimal.Zero, apperrors.NewAppError(400, "unknown book "+string(book), apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return decimal.Zero, err
	}

	sum, err := s.movementRepo.SumMovements(ctx, companyID, accountID, book)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to sum movements", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.String("book", string(book)))
		return decimal.Zero, err
	}
	return sum, nil
}

// RecordMovement registers a signed ledger movement for one account. The
// movement enters unreconciled and is immediately visible to balances and
// to the auto-match pass.
func (s *accountService) RecordMovement(ctx context.Context, companyID, accountID string, req dto.RecordMovementRequest, creatorUserID string) (*domain.TreasuryMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsZero() {
		return nil, apperrors.NewAppError(400, "movement amount must be non-zero", apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return nil, err
	}

	now := time.Now()
	movement := domain.TreasuryMovement{
		MovementID:   uuid.NewString(),
		CompanyID:    companyID,
		AccountID:    accountID,
		ValueDate:    req.ValueDate,
		MovementType: req.MovementType,
		Amount:       req.Amount,
		Description:  req.Description,
		Book:         req.Book,
		Reconciled:   false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.movementRepo.SaveMovement(ctx, movement); err != nil {
		logger.Error("Failed to save movement", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Movement recorded", slog.String("movement_id", movement.MovementID), slog.String("account_id", accountID), slog.String("amount", movement.Amount.String()))
	return &movement, nil
}

// ListAccountsWithBalances returns every active account with both book
// balances computed.
func (s *accountService) ListAccountsWithBalances(ctx context.Context, companyID string) ([]dto.AccountWithBalancesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	responses := make([]dto.AccountWithBalancesResponse, 0, len(accounts))
	for _, account := range accounts {
		official, err := s.movementRepo.SumMovements(ctx, companyID, account.AccountID, domain.BookOfficial)
		if err != nil {
			logger.Error("Failed to compute official balance", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
			return nil, err
		}
		extended, err := s.movementRepo.SumMovements(ctx, companyID, account.AccountID, domain.BookExtended)
		if err != nil {
			logger.Error("Failed to compute extended balance", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
			return nil, err
		}

		responses = append(responses, dto.AccountWithBalancesResponse{
			AccountResponse: dto.ToAccountResponse(&account),
			OfficialBalance: official,
			ExtendedBalance: extended,
		})
	}

	return responses, nil
}

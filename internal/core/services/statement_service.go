package services

import (
	"context"
	"errors"
	"fmt"
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

var (
	ErrItemAmountSides    = errors.New("statement item must carry exactly one of debit or credit")
	ErrItemAmountNegative = errors.New("statement item amounts must not be negative")
	ErrDuplicateLineNo    = errors.New("statement items carry a duplicate line number")
	ErrPeriodInverted     = errors.New("statement period end precedes period start")
	ErrItemOutsidePeriod  = errors.New("statement item value date falls outside the period")
	ErrItemsStillPending  = errors.New("statement has items still pending")
	ErrGapNotJustified    = errors.New("residual gap does not equal the sum of justified differences")
)

// statementService provides the statement lifecycle: ingestion, reads, closing.
type statementService struct {
	statementRepo portsrepo.StatementRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewStatementService creates a new StatementService.
func NewStatementService(statementRepo portsrepo.StatementRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.StatementSvcFacade {
	return &statementService{
		statementRepo: statementRepo,
		accountRepo:   accountRepo,
	}
}

// Ensure statementService implements the portssvc.StatementSvcFacade interface
var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// validateItems checks the structural rules of a statement's lines: exactly
// one non-zero side per item, non-negative amounts, unique line numbers, and
// value dates inside the declared period.
func (s *statementService) validateItems(req dto.IngestStatementRequest) error {
	seenLines := make(map[int]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.DebitAmount.IsNegative() || item.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: line %d", ErrItemAmountNegative, item.LineNumber)
		}
		debitSet := item.DebitAmount.IsPositive()
		creditSet := item.CreditAmount.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("%w: line %d", ErrItemAmountSides, item.LineNumber)
		}
		if _, seen := seenLines[item.LineNumber]; seen {
			return fmt.Errorf("%w: line %d", ErrDuplicateLineNo, item.LineNumber)
		}
		seenLines[item.LineNumber] = struct{}{}
		if item.ValueDate.Before(req.PeriodStart) || item.ValueDate.After(req.PeriodEnd) {
			return fmt.Errorf("%w: line %d dated %s", ErrItemOutsidePeriod, item.LineNumber, item.ValueDate.Format("2006-01-02"))
		}
	}
	return nil
}

// IngestStatement validates and persists a full statement period with its
// items. Every item starts pending, so the counters begin at
// (0, 0, totalItems).
func (s *statementService) IngestStatement(ctx context.Context, companyID string, req dto.IngestStatementRequest, creatorUserID string) (*domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, apperrors.NewAppError(400, ErrPeriodInverted.Error(), apperrors.ErrValidation)
	}
	if err := s.validateItems(req); err != nil {
		return nil, apperrors.NewAppError(400, err.Error(), apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Statement ingestion for unknown account", slog.String("account_id", req.AccountID), slog.String("company_id", companyID))
		}
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	statement := domain.Statement{
		StatementID:            uuid.NewString(),
		CompanyID:              companyID,
		AccountID:              req.AccountID,
		PeriodLabel:            req.PeriodLabel,
		PeriodStart:            req.PeriodStart,
		PeriodEnd:              req.PeriodEnd,
		DeclaredOpeningBalance: req.DeclaredOpeningBalance,
		DeclaredClosingBalance: req.DeclaredClosingBalance,
		State:                  domain.StatementOpen,
		TotalItems:             len(req.Items),
		MatchedCount:           0,
		SuspenseCount:          0,
		PendingCount:           len(req.Items),
		AuditFields:            audit,
	}

	items := make([]domain.StatementItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		items = append(items, domain.StatementItem{
			ItemID:       uuid.NewString(),
			StatementID:  statement.StatementID,
			LineNumber:   itemReq.LineNumber,
			ValueDate:    itemReq.ValueDate,
			Description:  itemReq.Description,
			Reference:    itemReq.Reference,
			DebitAmount:  itemReq.DebitAmount,
			CreditAmount: itemReq.CreditAmount,
			Book:         itemReq.Book,
			Matched:      false,
			MatchType:    domain.MatchNone,
			AuditFields:  audit,
		})
	}

	if err := s.statementRepo.SaveStatement(ctx, statement, items); err != nil {
		logger.Error("Failed to save statement", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}

	logger.Info("Statement ingested", slog.String("statement_id", statement.StatementID), slog.String("period", statement.PeriodLabel), slog.Int("items", statement.TotalItems))
	return &statement, nil
}

// GetStatement retrieves a statement with its items and justified differences.
func (s *statementService) GetStatement(ctx context.Context, companyID, statementID string) (*domain.Statement, []domain.StatementItem, error) {
	statement, err := s.statementRepo.FindStatementByID(ctx, companyID, statementID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.statementRepo.FindItemsByStatementID(ctx, statementID)
	if err != nil {
		return nil, nil, err
	}

	diffs, err := s.statementRepo.FindJustifiedDifferences(ctx, statementID)
	if err != nil {
		return nil, nil, err
	}
	statement.JustifiedDifferences = diffs

	return statement, items, nil
}

// ListStatements retrieves statements for one account, newest period first.
func (s *statementService) ListStatements(ctx context.Context, companyID, accountID string, limit int) ([]domain.Statement, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return nil, err
	}
	return s.statementRepo.ListStatementsByAccount(ctx, companyID, accountID, limit)
}

// CloseStatement transitions an OPEN statement to CLOSED. Closing requires
// every item to be matched or in suspense, and the residual gap between the
// declared closing balance and the computed one to be fully explained by the
// supplied justified differences.
func (s *statementService) CloseStatement(ctx context.Context, companyID, statementID string, req dto.CloseStatementRequest, closerUserID string) (*domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	statement, err := s.statementRepo.FindStatementByID(ctx, companyID, statementID)
	if err != nil {
		return nil, err
	}
	if statement.State != domain.StatementOpen {
		return nil, apperrors.NewConflictError("statement " + statementID + " is not open")
	}
	if statement.PendingCount > 0 {
		return nil, apperrors.NewAppError(409, fmt.Sprintf("%s: %d pending", ErrItemsStillPending.Error(), statement.PendingCount), apperrors.ErrConflict)
	}

	items, err := s.statementRepo.FindItemsByStatementID(ctx, statementID)
	if err != nil {
		return nil, err
	}

	gap := statement.DeclaredClosingBalance.Sub(statement.ComputedClosingBalance(items))
	justified := decimal.Zero
	for _, d := range req.Differences {
		justified = justified.Add(d.Amount)
	}
	if !gap.Equal(justified) {
		logger.Warn("Close rejected on unjustified gap", slog.String("statement_id", statementID), slog.String("gap", gap.String()), slog.String("justified", justified.String()))
		return nil, apperrors.NewAppError(409, fmt.Sprintf("%s: gap %s, justified %s", ErrGapNotJustified.Error(), gap.String(), justified.String()), apperrors.ErrConflict)
	}

	now := time.Now()
	differences := make([]domain.JustifiedDifference, 0, len(req.Differences))
	for _, d := range req.Differences {
		differences = append(differences, domain.JustifiedDifference{
			DifferenceID:  uuid.NewString(),
			StatementID:   statementID,
			Amount:        d.Amount,
			Concept:       d.Concept,
			Justification: d.Justification,
			CreatedAt:     now,
			CreatedBy:     closerUserID,
		})
	}

	if err := s.statementRepo.CloseStatement(ctx, companyID, statementID, differences, closerUserID, req.ClosingNotes, now); err != nil {
		logger.Error("Failed to close statement", slog.String("error", err.Error()), slog.String("statement_id", statementID))
		return nil, err
	}

	statement.State = domain.StatementClosed
	statement.ClosedBy = &closerUserID
	statement.ClosedAt = &now
	statement.ClosingNotes = req.ClosingNotes
	statement.JustifiedDifferences = differences
	statement.LastUpdatedAt = now
	statement.LastUpdatedBy = closerUserID

	logger.Info("Statement closed", slog.String("statement_id", statementID), slog.String("closed_by", closerUserID))
	return statement, nil
}

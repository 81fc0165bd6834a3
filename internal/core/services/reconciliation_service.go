package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/dto"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/finvela/bank_recon_svc/internal/utils/matching"
)

// reconciliationService provides the manual reconciliation operations. Every
// mutation requires the statement to be OPEN and runs through the repository's
// guarded transactions; requests carrying an idempotency key are additionally
// replay-protected by the guard.
type reconciliationService struct {
	statementRepo portsrepo.StatementRepositoryFacade
	movementRepo  portsrepo.MovementRepositoryFacade
	guard         *idempotencyGuard
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(statementRepo portsrepo.StatementRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade, idempotencyRepo portsrepo.IdempotencyRepositoryFacade, retention time.Duration) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		statementRepo: statementRepo,
		movementRepo:  movementRepo,
		guard:         newIdempotencyGuard(idempotencyRepo, retention),
	}
}

// Ensure reconciliationService implements the portssvc.ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// loadOpenItem fetches the statement and item and verifies the statement is
// still open. Every reconciliation mutation starts here.
func (s *reconciliationService) loadOpenItem(ctx context.Context, companyID, statementID, itemID string) (*domain.Statement, *domain.StatementItem, error) {
	statement, err := s.statementRepo.FindStatementByID(ctx, companyID, statementID)
	if err != nil {
		return nil, nil, err
	}
	if statement.State != domain.StatementOpen {
		return nil, nil, apperrors.NewConflictError("statement " + statementID + " is closed")
	}

	item, err := s.statementRepo.FindItemByID(ctx, statementID, itemID)
	if err != nil {
		return nil, nil, err
	}

	return statement, item, nil
}

func resultFromItem(item *domain.StatementItem) dto.ReconciliationResult {
	return dto.ReconciliationResult{
		StatementID:      item.StatementID,
		ItemID:           item.ItemID,
		MovementID:       item.MovementID,
		MatchType:        item.MatchType,
		MatchConfidence:  item.MatchConfidence,
		Matched:          item.Matched,
		IsSuspense:       item.IsSuspense,
		SuspenseResolved: item.SuspenseResolved,
	}
}

// ManualMatch links one pending item to one unreconciled movement chosen by
// the operator. The movement must belong to the statement's account and its
// signed amount must equal the item's.
func (s *reconciliationService) ManualMatch(ctx context.Context, companyID, statementID, itemID string, req dto.ManualMatchRequest, userID string) (*dto.MutationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, replayed, err := runIdempotent(ctx, s.guard, companyID, domain.OpManualMatch, req.IdempotencyKey, itemID, func(ctx context.Context) (dto.ReconciliationResult, error) {
		statement, item, err := s.loadOpenItem(ctx, companyID, statementID, itemID)
		if err != nil {
			return dto.ReconciliationResult{}, err
		}
		if !item.Pending() {
			return dto.ReconciliationResult{}, apperrors.NewConflictError("item " + itemID + " is not pending")
		}

		movement, err := s.movementRepo.FindMovementByID(ctx, companyID, req.MovementID)
		if err != nil {
			return dto.ReconciliationResult{}, err
		}
		if movement.Reconciled {
			return dto.ReconciliationResult{}, apperrors.NewConflictError("movement " + req.MovementID + " is already reconciled")
		}
		if movement.AccountID != statement.AccountID {
			return dto.ReconciliationResult{}, apperrors.NewAppError(400, "movement "+req.MovementID+" belongs to a different account", apperrors.ErrValidation)
		}
		if !matching.SignCompatible(*item, *movement) {
			return dto.ReconciliationResult{}, apperrors.NewAppError(400, "movement amount does not mirror the item amount", apperrors.ErrValidation)
		}

		confidence := 100
		link := domain.MatchLink{
			StatementID: statementID,
			ItemID:      itemID,
			MovementID:  req.MovementID,
			MatchType:   domain.MatchManual,
			Confidence:  confidence,
		}
		if err := s.statementRepo.ApplyMatch(ctx, link, userID, time.Now()); err != nil {
			return dto.ReconciliationResult{}, err
		}

		logger.Info("Item manually matched", slog.String("item_id", itemID), slog.String("movement_id", req.MovementID), slog.String("user_id", userID))

		item.Matched = true
		item.MatchType = domain.MatchManual
		item.MatchConfidence = &confidence
		item.MovementID = &req.MovementID
		return resultFromItem(item), nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MutationResponse{Replayed: replayed, Result: result}, nil
}

// Unmatch reverses a match and returns the item to pending. Auto and manual
// matches unwind the same way.
func (s *reconciliationService) Unmatch(ctx context.Context, companyID, statementID, itemID string, req dto.UnmatchRequest, userID string) (*dto.MutationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, replayed, err := runIdempotent(ctx, s.guard, companyID, domain.OpUnmatch, req.IdempotencyKey, itemID, func(ctx context.Context) (dto.ReconciliationResult, error) {
		_, item, err := s.loadOpenItem(ctx, companyID, statementID, itemID)
		if err != nil {
			return dto.ReconciliationResult{}, err
		}
		if !item.Matched || item.MovementID == nil {
			return dto.ReconciliationResult{}, apperrors.NewConflictError("item " + itemID + " is not matched")
		}

		movementID := *item.MovementID
		if err := s.statementRepo.ApplyUnmatch(ctx, statementID, itemID, userID, time.Now()); err != nil {
			return dto.ReconciliationResult{}, err
		}

		logger.Info("Item unmatched", slog.String("item_id", itemID), slog.String("movement_id", movementID), slog.String("user_id", userID))

		item.Matched = false
		item.MatchType = domain.MatchNone
		item.MatchConfidence = nil
		item.MovementID = nil
		return resultFromItem(item), nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MutationResponse{Replayed: replayed, Result: result}, nil
}

// FlagSuspense moves a pending item into suspense for later investigation.
func (s *reconciliationService) FlagSuspense(ctx context.Context, companyID, statementID, itemID string, req dto.FlagSuspenseRequest, userID string) (*dto.MutationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, replayed, err := runIdempotent(ctx, s.guard, companyID, domain.OpFlagSuspense, req.IdempotencyKey, itemID, func(ctx context.Context) (dto.ReconciliationResult, error) {
		_, item, err := s.loadOpenItem(ctx, companyID, statementID, itemID)
		if err != nil {
			return dto.ReconciliationResult{}, err
		}
		if !item.Pending() {
			return dto.ReconciliationResult{}, apperrors.NewConflictError("item " + itemID + " is not pending")
		}

		if err := s.statementRepo.FlagSuspense(ctx, statementID, itemID, req.Notes, userID, time.Now()); err != nil {
			return dto.ReconciliationResult{}, err
		}

		logger.Info("Item flagged as suspense", slog.String("item_id", itemID), slog.String("user_id", userID))

		item.IsSuspense = true
		item.SuspenseNotes = req.Notes
		return resultFromItem(item), nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MutationResponse{Replayed: replayed, Result: result}, nil
}

// ResolveSuspense marks a suspense item as investigated and explained. The
// item stays in the suspense count; its gap is carried by the justified
// differences recorded at closing time.
func (s *reconciliationService) ResolveSuspense(ctx context.Context, companyID, statementID, itemID string, req dto.ResolveSuspenseRequest, userID string) (*dto.MutationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Notes == "" {
		return nil, apperrors.NewAppError(400, "resolution notes are required", apperrors.ErrValidation)
	}

	result, replayed, err := runIdempotent(ctx, s.guard, companyID, domain.OpResolveSuspense, req.IdempotencyKey, itemID, func(ctx context.Context) (dto.ReconciliationResult, error) {
		_, item, err := s.loadOpenItem(ctx, companyID, statementID, itemID)
		if err != nil {
			return dto.ReconciliationResult{}, err
		}
		if !item.IsSuspense || item.SuspenseResolved {
			return dto.ReconciliationResult{}, apperrors.NewConflictError("item " + itemID + " is not an unresolved suspense item")
		}

		if err := s.statementRepo.ResolveSuspense(ctx, statementID, itemID, req.Notes, userID, time.Now()); err != nil {
			return dto.ReconciliationResult{}, err
		}

		logger.Info("Suspense item resolved", slog.String("item_id", itemID), slog.String("user_id", userID))

		item.SuspenseResolved = true
		item.SuspenseNotes = req.Notes
		return resultFromItem(item), nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MutationResponse{Replayed: replayed, Result: result}, nil
}

// CreateMovementFromSuspense synthesizes a treasury movement mirroring a
// bank-only suspense item (fees, interest charges, ...) and matches the item
// to it in the same transaction. The new movement is born reconciled and
// carries the item's book, date and signed amount.
func (s *reconciliationService) CreateMovementFromSuspense(ctx context.Context, companyID, statementID, itemID string, req dto.MovementFromSuspenseRequest, userID string) (*dto.MutationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, replayed, err := runIdempotent(ctx, s.guard, companyID, domain.OpMovementFromSuspense, req.IdempotencyKey, itemID, func(ctx context.Context) (dto.ReconciliationResult, error) {
		statement, item, err := s.loadOpenItem(ctx, companyID, statementID, itemID)
		if err != nil {
			return dto.ReconciliationResult{}, err
		}
		if !item.IsSuspense || item.SuspenseResolved || item.Matched {
			return dto.ReconciliationResult{}, apperrors.NewConflictError("item " + itemID + " is not an open suspense item")
		}

		now := time.Now()
		movement := domain.TreasuryMovement{
			MovementID:   uuid.NewString(),
			CompanyID:    companyID,
			AccountID:    statement.AccountID,
			ValueDate:    item.ValueDate,
			MovementType: req.MovementType,
			Amount:       item.SignedAmount(),
			Description:  req.Description,
			Book:         item.Book,
			Reconciled:   true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		if err := s.statementRepo.ApplyMovementFromSuspense(ctx, *item, movement, userID, now); err != nil {
			return dto.ReconciliationResult{}, err
		}

		logger.Info("Movement created from suspense item", slog.String("item_id", itemID), slog.String("movement_id", movement.MovementID), slog.String("user_id", userID))

		confidence := 100
		item.Matched = true
		item.MatchType = domain.MatchManual
		item.MatchConfidence = &confidence
		item.MovementID = &movement.MovementID
		item.IsSuspense = false
		item.SuspenseResolved = false
		return resultFromItem(item), nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MutationResponse{Replayed: replayed, Result: result}, nil
}

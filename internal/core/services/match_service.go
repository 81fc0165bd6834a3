package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/dto"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/finvela/bank_recon_svc/internal/utils/matching"
)

// matchService runs the batch auto-match pass over a statement's pending
// items. The pass is deterministic: items are walked in line order and ties
// between candidate movements break on confidence, then date distance, then
// movement ID, so two runs over the same data always produce the same links.
type matchService struct {
	statementRepo portsrepo.StatementRepositoryFacade
	movementRepo  portsrepo.MovementRepositoryFacade
	cfg           matching.Config
}

// NewMatchService creates a new MatchService.
func NewMatchService(statementRepo portsrepo.StatementRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade, cfg matching.Config) portssvc.MatchSvcFacade {
	if cfg.DateToleranceDays == 0 && cfg.DateDecayPerDay == 0 {
		cfg = matching.DefaultConfig()
	}
	return &matchService{
		statementRepo: statementRepo,
		movementRepo:  movementRepo,
		cfg:           cfg,
	}
}

// Ensure matchService implements the portssvc.MatchSvcFacade interface
var _ portssvc.MatchSvcFacade = (*matchService)(nil)

// pickCandidate selects the best still-unclaimed movement for one item.
// Returns nil when no candidate clears the confidence threshold.
func (s *matchService) pickCandidate(item domain.StatementItem, movements []domain.TreasuryMovement, claimed map[string]struct{}) (*domain.TreasuryMovement, int) {
	var best *domain.TreasuryMovement
	bestScore := 0
	bestDays := 0

	for i := range movements {
		movement := &movements[i]
		if _, taken := claimed[movement.MovementID]; taken {
			continue
		}

		score := matching.Confidence(item, *movement, s.cfg)
		if score < s.cfg.MinConfidence {
			continue
		}

		days := matching.DateDistanceDays(item.ValueDate, movement.ValueDate)
		switch {
		case score > bestScore:
		case score == bestScore && days < bestDays:
		case score == bestScore && days == bestDays && best != nil && movement.MovementID < best.MovementID:
		default:
			continue
		}
		best = movement
		bestScore = score
		bestDays = days
	}

	return best, bestScore
}

// RunAutoMatch links pending items of an open statement to unreconciled
// movements of the same account. Exact amount-and-date pairs become
// AUTO_EXACT, degraded pairs above the threshold become AUTO_FUZZY, and each
// movement is claimed by at most one item per pass.
func (s *matchService) RunAutoMatch(ctx context.Context, companyID, statementID string, userID string) (*dto.AutoMatchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	statement, err := s.statementRepo.FindStatementByID(ctx, companyID, statementID)
	if err != nil {
		return nil, err
	}
	if statement.State != domain.StatementOpen {
		return nil, apperrors.NewConflictError("statement " + statementID + " is not open")
	}

	items, err := s.statementRepo.FindItemsByStatementID(ctx, statementID)
	if err != nil {
		return nil, err
	}

	pending := make([]domain.StatementItem, 0, len(items))
	for _, item := range items {
		if item.Pending() {
			pending = append(pending, item)
		}
	}
	if len(pending) == 0 {
		logger.Info("Auto-match pass found no pending items", slog.String("statement_id", statementID))
		return &dto.AutoMatchResponse{StatementID: statementID, Matched: 0, Skipped: 0}, nil
	}

	tolerance := time.Duration(s.cfg.DateToleranceDays) * 24 * time.Hour
	from, to := pending[0].ValueDate, pending[0].ValueDate
	for _, item := range pending[1:] {
		if item.ValueDate.Before(from) {
			from = item.ValueDate
		}
		if item.ValueDate.After(to) {
			to = item.ValueDate
		}
	}
	movements, err := s.movementRepo.FindUnmatchedMovements(ctx, companyID, statement.AccountID, from.Add(-tolerance), to.Add(tolerance))
	if err != nil {
		return nil, err
	}

	claimed := make(map[string]struct{}, len(pending))
	links := make([]domain.MatchLink, 0, len(pending))
	for _, item := range pending {
		candidate, score := s.pickCandidate(item, movements, claimed)
		if candidate == nil {
			continue
		}
		claimed[candidate.MovementID] = struct{}{}

		matchType := domain.MatchAutoFuzzy
		if score == 100 {
			matchType = domain.MatchAutoExact
		}
		links = append(links, domain.MatchLink{
			StatementID: statementID,
			ItemID:      item.ItemID,
			MovementID:  candidate.MovementID,
			MatchType:   matchType,
			Confidence:  score,
		})
	}

	applied, err := s.statementRepo.ApplyAutoMatches(ctx, statementID, links, userID, time.Now())
	if err != nil {
		logger.Error("Failed to apply auto-match links", slog.String("error", err.Error()), slog.String("statement_id", statementID))
		return nil, err
	}

	skipped := len(pending) - applied
	logger.Info("Auto-match pass completed",
		slog.String("statement_id", statementID),
		slog.Int("pending", len(pending)),
		slog.Int("matched", applied),
		slog.Int("skipped", skipped),
	)

	return &dto.AutoMatchResponse{
		StatementID: statementID,
		Matched:     applied,
		Skipped:     skipped,
	}, nil
}

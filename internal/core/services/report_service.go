package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portsrepo "github.com/finvela/bank_recon_svc/internal/core/ports/repositories"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/shopspring/decimal"
)

// reportService assembles the reconciliation report consumed by the external
// renderer. It is a pure read over the statement, its items and movements;
// assembling a report mutates nothing and works on open and closed
// statements alike.
type reportService struct {
	statementRepo portsrepo.StatementRepositoryFacade
	movementRepo  portsrepo.MovementRepositoryFacade
}

// NewReportService creates a new ReportService.
func NewReportService(statementRepo portsrepo.StatementRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade) portssvc.ReportSvcFacade {
	return &reportService{
		statementRepo: statementRepo,
		movementRepo:  movementRepo,
	}
}

// Ensure reportService implements the portssvc.ReportSvcFacade interface
var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// Generate builds the full report for one statement: the declared and
// computed balances, both account-level book balances, the items grouped by
// reconciliation state with their linked movements, and the match breakdown.
func (s *reportService) Generate(ctx context.Context, companyID, statementID string) (*domain.ReconciliationReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	statement, err := s.statementRepo.FindStatementByID(ctx, companyID, statementID)
	if err != nil {
		return nil, err
	}

	items, err := s.statementRepo.FindItemsByStatementID(ctx, statementID)
	if err != nil {
		return nil, err
	}

	diffs, err := s.statementRepo.FindJustifiedDifferences(ctx, statementID)
	if err != nil {
		return nil, err
	}

	movementIDs := make([]string, 0, len(items))
	for _, item := range items {
		if item.MovementID != nil {
			movementIDs = append(movementIDs, *item.MovementID)
		}
	}
	movements := map[string]domain.TreasuryMovement{}
	if len(movementIDs) > 0 {
		movements, err = s.movementRepo.FindMovementsByIDs(ctx, companyID, movementIDs)
		if err != nil {
			return nil, err
		}
	}

	official, err := s.movementRepo.SumMovements(ctx, companyID, statement.AccountID, domain.BookOfficial)
	if err != nil {
		return nil, err
	}
	extended, err := s.movementRepo.SumMovements(ctx, companyID, statement.AccountID, domain.BookExtended)
	if err != nil {
		return nil, err
	}

	report := &domain.ReconciliationReport{
		StatementID:            statement.StatementID,
		AccountID:              statement.AccountID,
		PeriodLabel:            statement.PeriodLabel,
		State:                  statement.State,
		GeneratedAt:            time.Now(),
		DeclaredOpeningBalance: statement.DeclaredOpeningBalance,
		DeclaredClosingBalance: statement.DeclaredClosingBalance,
		ComputedClosingBalance: statement.ComputedClosingBalance(items),
		OfficialAccountBalance: official,
		ExtendedAccountBalance: extended,
		TotalDebits:            decimal.Zero,
		TotalCredits:           decimal.Zero,
		ReconciledItems:        []domain.ReportItem{},
		PendingItems:           []domain.ReportItem{},
		SuspenseItems:          []domain.ReportItem{},
		MatchBreakdown: map[domain.MatchType]int{
			domain.MatchAutoExact: 0,
			domain.MatchAutoFuzzy: 0,
			domain.MatchManual:    0,
		},
		JustifiedDifferences: diffs,
		ClosedBy:             statement.ClosedBy,
		ClosedAt:             statement.ClosedAt,
		ClosingNotes:         statement.ClosingNotes,
	}

	for _, item := range items {
		report.TotalDebits = report.TotalDebits.Add(item.DebitAmount)
		report.TotalCredits = report.TotalCredits.Add(item.CreditAmount)

		entry := domain.ReportItem{Item: item}
		if item.MovementID != nil {
			if movement, ok := movements[*item.MovementID]; ok {
				entry.Movement = &movement
			}
		}

		switch {
		case item.Matched:
			report.MatchBreakdown[item.MatchType]++
			report.ReconciledItems = append(report.ReconciledItems, entry)
		case item.IsSuspense:
			report.SuspenseItems = append(report.SuspenseItems, entry)
		default:
			report.PendingItems = append(report.PendingItems, entry)
		}
	}

	logger.Info("Reconciliation report generated",
		slog.String("statement_id", statementID),
		slog.Int("reconciled", len(report.ReconciledItems)),
		slog.Int("pending", len(report.PendingItems)),
		slog.Int("suspense", len(report.SuspenseItems)),
	)
	return report, nil
}

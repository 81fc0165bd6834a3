package services_test

import (
	"context"
	"testing"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportServiceTestSuite struct {
	suite.Suite
	mockStatementRepo *MockStatementRepository
	mockMovementRepo  *MockMovementRepository
	service           portssvc.ReportSvcFacade
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockStatementRepo = new(MockStatementRepository)
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.service = services.NewReportService(suite.mockStatementRepo, suite.mockMovementRepo)
}

func (suite *ReportServiceTestSuite) TestGenerate_FullReport() {
	ctx := context.Background()
	movementID := "mov-1"
	confidence := 100

	statement := &domain.Statement{
		StatementID:            testStatementID,
		CompanyID:              testCompanyID,
		AccountID:              testAccountID,
		PeriodLabel:            "2026-03",
		State:                  domain.StatementOpen,
		DeclaredOpeningBalance: decimal.RequireFromString("1000.00"),
		DeclaredClosingBalance: decimal.RequireFromString("1150.00"),
		TotalItems:             3,
		MatchedCount:           1,
		SuspenseCount:          1,
		PendingCount:           1,
	}
	items := []domain.StatementItem{
		{ItemID: "item-1", CreditAmount: decimal.RequireFromString("200.00"), Matched: true, MatchType: domain.MatchAutoExact, MatchConfidence: &confidence, MovementID: &movementID},
		{ItemID: "item-2", DebitAmount: decimal.RequireFromString("50.00")},
		{ItemID: "item-3", DebitAmount: decimal.RequireFromString("12.50"), IsSuspense: true},
	}
	movements := map[string]domain.TreasuryMovement{
		movementID: {MovementID: movementID, Amount: decimal.RequireFromString("200.00"), Reconciled: true},
	}
	diffs := []domain.JustifiedDifference{}

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(statement, nil).Once()
	suite.mockStatementRepo.On("FindItemsByStatementID", ctx, testStatementID).Return(items, nil).Once()
	suite.mockStatementRepo.On("FindJustifiedDifferences", ctx, testStatementID).Return(diffs, nil).Once()
	suite.mockMovementRepo.On("FindMovementsByIDs", ctx, testCompanyID, []string{movementID}).Return(movements, nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, testAccountID, domain.BookOfficial).Return(decimal.RequireFromString("900.00"), nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, testAccountID, domain.BookExtended).Return(decimal.RequireFromString("1250.00"), nil).Once()

	report, err := suite.service.Generate(ctx, testCompanyID, testStatementID)

	suite.Require().NoError(err)
	suite.Equal(testStatementID, report.StatementID)
	suite.Equal(domain.StatementOpen, report.State)

	// 1000 + 200 - 50 - 12.50; the unresolved suspense item still counts.
	suite.True(report.ComputedClosingBalance.Equal(decimal.RequireFromString("1137.50")))
	suite.True(report.TotalCredits.Equal(decimal.RequireFromString("200.00")))
	suite.True(report.TotalDebits.Equal(decimal.RequireFromString("62.50")))
	suite.True(report.OfficialAccountBalance.Equal(decimal.RequireFromString("900.00")))
	suite.True(report.ExtendedAccountBalance.Equal(decimal.RequireFromString("1250.00")))

	suite.Require().Len(report.ReconciledItems, 1)
	suite.Require().NotNil(report.ReconciledItems[0].Movement)
	suite.Equal(movementID, report.ReconciledItems[0].Movement.MovementID)
	suite.Len(report.PendingItems, 1)
	suite.Len(report.SuspenseItems, 1)
	suite.Nil(report.SuspenseItems[0].Movement)

	suite.Equal(1, report.MatchBreakdown[domain.MatchAutoExact])
	suite.Equal(0, report.MatchBreakdown[domain.MatchAutoFuzzy])
	suite.Equal(0, report.MatchBreakdown[domain.MatchManual])
}

func (suite *ReportServiceTestSuite) TestGenerate_ResolvedSuspenseExcludedFromComputedBalance() {
	ctx := context.Background()
	statement := &domain.Statement{
		StatementID:            testStatementID,
		CompanyID:              testCompanyID,
		AccountID:              testAccountID,
		State:                  domain.StatementOpen,
		DeclaredOpeningBalance: decimal.RequireFromString("100.00"),
	}
	items := []domain.StatementItem{
		{ItemID: "item-1", DebitAmount: decimal.RequireFromString("40.00"), IsSuspense: true, SuspenseResolved: true},
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(statement, nil).Once()
	suite.mockStatementRepo.On("FindItemsByStatementID", ctx, testStatementID).Return(items, nil).Once()
	suite.mockStatementRepo.On("FindJustifiedDifferences", ctx, testStatementID).Return([]domain.JustifiedDifference{}, nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, testAccountID, domain.BookOfficial).Return(decimal.Zero, nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, testAccountID, domain.BookExtended).Return(decimal.Zero, nil).Once()

	report, err := suite.service.Generate(ctx, testCompanyID, testStatementID)

	suite.Require().NoError(err)
	// The resolved suspense debit is excluded, so the computed balance stays
	// at the declared opening.
	suite.True(report.ComputedClosingBalance.Equal(decimal.RequireFromString("100.00")))
	// The item itself still shows up in the suspense section.
	suite.Len(report.SuspenseItems, 1)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "FindMovementsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestGenerate_StatementNotFound() {
	ctx := context.Background()

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Generate(ctx, testCompanyID, testStatementID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

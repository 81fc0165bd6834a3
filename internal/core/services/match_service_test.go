package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/finvela/bank_recon_svc/internal/core/services"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/utils/matching"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testCompanyID   = "company-1"
	testAccountID   = "account-1"
	testStatementID = "statement-1"
	testUserID      = "user-1"
)

func testDate(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func openStatement() *domain.Statement {
	return &domain.Statement{
		StatementID: testStatementID,
		CompanyID:   testCompanyID,
		AccountID:   testAccountID,
		State:       domain.StatementOpen,
		TotalItems:  3,
		PendingCount: 3,
	}
}

func pendingItem(id string, lineNumber int, credit string, valueDate time.Time, description string) domain.StatementItem {
	return domain.StatementItem{
		ItemID:       id,
		StatementID:  testStatementID,
		LineNumber:   lineNumber,
		ValueDate:    valueDate,
		Description:  description,
		CreditAmount: decimal.RequireFromString(credit),
		MatchType:    domain.MatchNone,
	}
}

func unmatchedMovement(id string, amount string, valueDate time.Time, description string) domain.TreasuryMovement {
	return domain.TreasuryMovement{
		MovementID:  id,
		CompanyID:   testCompanyID,
		AccountID:   testAccountID,
		ValueDate:   valueDate,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		Book:        domain.BookOfficial,
	}
}

type MatchServiceTestSuite struct {
	suite.Suite
	mockStatementRepo *MockStatementRepository
	mockMovementRepo  *MockMovementRepository
	service           portssvc.MatchSvcFacade
}

func (suite *MatchServiceTestSuite) SetupTest() {
	suite.mockStatementRepo = new(MockStatementRepository)
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.service = services.NewMatchService(suite.mockStatementRepo, suite.mockMovementRepo, matching.DefaultConfig())
}

func (suite *MatchServiceTestSuite) TestRunAutoMatch_ExactPairs() {
	ctx := context.Background()
	items := []domain.StatementItem{
		pendingItem("item-1", 1, "100.00", testDate(10), "acme invoice"),
		pendingItem("item-2", 2, "55.00", testDate(12), "utility bill"),
	}
	movements := []domain.TreasuryMovement{
		unmatchedMovement("mov-1", "100.00", testDate(10), "acme invoice"),
		unmatchedMovement("mov-2", "55.00", testDate(12), "utilities"),
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(openStatement(), nil).Once()
	suite.mockStatementRepo.On("FindItemsByStatementID", ctx, testStatementID).Return(items, nil).Once()
	suite.mockMovementRepo.On("FindUnmatchedMovements", ctx, testCompanyID, testAccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(movements, nil).Once()
	suite.mockStatementRepo.On("ApplyAutoMatches", ctx, testStatementID, mock.MatchedBy(func(links []domain.MatchLink) bool {
		if len(links) != 2 {
			return false
		}
		return links[0].MovementID == "mov-1" && links[0].MatchType == domain.MatchAutoExact && links[0].Confidence == 100 &&
			links[1].MovementID == "mov-2" && links[1].MatchType == domain.MatchAutoExact
	}), testUserID, mock.AnythingOfType("time.Time")).Return(2, nil).Once()

	resp, err := suite.service.RunAutoMatch(ctx, testCompanyID, testStatementID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(2, resp.Matched)
	suite.Equal(0, resp.Skipped)
	suite.mockStatementRepo.AssertExpectations(suite.T())
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MatchServiceTestSuite) TestRunAutoMatch_FuzzyBelowThresholdSkipped() {
	ctx := context.Background()
	items := []domain.StatementItem{
		pendingItem("item-1", 1, "100.00", testDate(10), ""),
	}
	// Same amount but three days off: 100 - 3*15 = 55, below the default
	// threshold of 60.
	movements := []domain.TreasuryMovement{
		unmatchedMovement("mov-1", "100.00", testDate(13), ""),
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(openStatement(), nil).Once()
	suite.mockStatementRepo.On("FindItemsByStatementID", ctx, testStatementID).Return(items, nil).Once()
	suite.mockMovementRepo.On("FindUnmatchedMovements", ctx, testCompanyID, testAccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(movements, nil).Once()
	suite.mockStatementRepo.On("ApplyAutoMatches", ctx, testStatementID, []domain.MatchLink{}, testUserID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()

	resp, err := suite.service.RunAutoMatch(ctx, testCompanyID, testStatementID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Matched)
	suite.Equal(1, resp.Skipped)
}

func (suite *MatchServiceTestSuite) TestRunAutoMatch_TieBreaksOnDateThenID() {
	ctx := context.Background()
	items := []domain.StatementItem{
		pendingItem("item-1", 1, "100.00", testDate(10), ""),
	}
	// mov-b is closer in date; mov-a and mov-c tie on everything, so the
	// smaller movement ID wins among them.
	movements := []domain.TreasuryMovement{
		unmatchedMovement("mov-a", "100.00", testDate(12), ""),
		unmatchedMovement("mov-b", "100.00", testDate(11), ""),
		unmatchedMovement("mov-c", "100.00", testDate(12), ""),
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(openStatement(), nil).Once()
	suite.mockStatementRepo.On("FindItemsByStatementID", ctx, testStatementID).Return(items, nil).Once()
	suite.mockMovementRepo.On("FindUnmatchedMovements", ctx, testCompanyID, testAccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(movements, nil).Once()
	suite.mockStatementRepo.On("ApplyAutoMatches", ctx, testStatementID, mock.MatchedBy(func(links []domain.MatchLink) bool {
		return len(links) == 1 && links[0].MovementID == "mov-b" && links[0].MatchType == domain.MatchAutoFuzzy
	}), testUserID, mock.AnythingOfType("time.Time")).Return(1, nil).Once()

	resp, err := suite.service.RunAutoMatch(ctx, testCompanyID, testStatementID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Matched)
}

func (suite *MatchServiceTestSuite) TestRunAutoMatch_MovementClaimedOnce() {
	ctx := context.Background()
	// Two identical pending items but only one candidate movement: the first
	// item in line order claims it, the second stays pending.
	items := []domain.StatementItem{
		pendingItem("item-1", 1, "100.00", testDate(10), ""),
		pendingItem("item-2", 2, "100.00", testDate(10), ""),
	}
	movements := []domain.TreasuryMovement{
		unmatchedMovement("mov-1", "100.00", testDate(10), ""),
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(openStatement(), nil).Once()
	suite.mockStatementRepo.On("FindItemsByStatementID", ctx, testStatementID).Return(items, nil).Once()
	suite.mockMovementRepo.On("FindUnmatchedMovements", ctx, testCompanyID, testAccountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(movements, nil).Once()
	suite.mockStatementRepo.On("ApplyAutoMatches", ctx, testStatementID, mock.MatchedBy(func(links []domain.MatchLink) bool {
		return len(links) == 1 && links[0].ItemID == "item-1"
	}), testUserID, mock.AnythingOfType("time.Time")).Return(1, nil).Once()

	resp, err := suite.service.RunAutoMatch(ctx, testCompanyID, testStatementID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Matched)
	suite.Equal(1, resp.Skipped)
}

func (suite *MatchServiceTestSuite) TestRunAutoMatch_ClosedStatementRejected() {
	ctx := context.Background()
	closed := openStatement()
	closed.State = domain.StatementClosed

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(closed, nil).Once()

	resp, err := suite.service.RunAutoMatch(ctx, testCompanyID, testStatementID, testUserID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockStatementRepo.AssertNotCalled(suite.T(), "ApplyAutoMatches", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MatchServiceTestSuite) TestRunAutoMatch_NoPendingItems() {
	ctx := context.Background()
	matched := pendingItem("item-1", 1, "100.00", testDate(10), "")
	matched.Matched = true

	suite.mockStatementRepo.On("FindStatementByID", ctx, testCompanyID, testStatementID).Return(openStatement(), nil).Once()
	suite.mockStatementRepo.On("FindItemsByStatementID", ctx, testStatementID).Return([]domain.StatementItem{matched}, nil).Once()

	resp, err := suite.service.RunAutoMatch(ctx, testCompanyID, testStatementID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Matched)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "FindUnmatchedMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MatchServiceTestSuite))
}

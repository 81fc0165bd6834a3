package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/core/services"
	"github.com/finvela/bank_recon_svc/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockMovementRepo *MockMovementRepository
	service          portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockMovementRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Operating EUR",
		IBAN:         "ES9121000418450200051332",
		CurrencyCode: "EUR",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.BankAccount")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, testCompanyID, req, testUserID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(testCompanyID, account.CompanyID)
	suite.Equal(req.Name, account.Name)
	suite.True(account.IsActive)
	suite.Equal(testUserID, account.CreatedBy)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateIBAN() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Dup", IBAN: "ES91", CurrencyCode: "EUR"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.BankAccount")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, testCompanyID, req, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestRecordMovement_Success() {
	ctx := context.Background()
	account := &domain.BankAccount{AccountID: testAccountID, CompanyID: testCompanyID}
	req := dto.RecordMovementRequest{
		ValueDate:    testDate(12),
		MovementType: domain.MovementTransfer,
		Amount:       decimal.RequireFromString("-250.00"),
		Description:  "Supplier payment",
		Book:         domain.BookOfficial,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, testCompanyID, testAccountID).Return(account, nil).Once()
	suite.mockMovementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.TreasuryMovement) bool {
		return m.AccountID == testAccountID &&
			m.Amount.Equal(decimal.RequireFromString("-250.00")) &&
			m.Book == domain.BookOfficial &&
			!m.Reconciled
	})).Return(nil).Once()

	movement, err := suite.service.RecordMovement(ctx, testCompanyID, testAccountID, req, testUserID)

	suite.Require().NoError(err)
	suite.NotEmpty(movement.MovementID)
	suite.False(movement.Reconciled)
	suite.Equal(testUserID, movement.CreatedBy)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRecordMovement_ZeroAmountRejected() {
	ctx := context.Background()
	req := dto.RecordMovementRequest{
		ValueDate:    testDate(12),
		MovementType: domain.MovementFee,
		Amount:       decimal.Zero,
		Book:         domain.BookExtended,
	}

	_, err := suite.service.RecordMovement(ctx, testCompanyID, testAccountID, req, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestBalance_BooksDiverge() {
	ctx := context.Background()
	account := &domain.BankAccount{AccountID: testAccountID, CompanyID: testCompanyID}

	// The extended book carries movements the official book does not, so the
	// two views legitimately disagree.
	suite.mockAccountRepo.On("FindAccountByID", ctx, testCompanyID, testAccountID).Return(account, nil).Twice()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, testAccountID, domain.BookOfficial).Return(decimal.RequireFromString("900.00"), nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, testAccountID, domain.BookExtended).Return(decimal.RequireFromString("1250.00"), nil).Once()

	official, err := suite.service.Balance(ctx, testCompanyID, testAccountID, domain.BookOfficial)
	suite.Require().NoError(err)
	extended, err := suite.service.Balance(ctx, testCompanyID, testAccountID, domain.BookExtended)
	suite.Require().NoError(err)

	suite.True(official.Equal(decimal.RequireFromString("900.00")))
	suite.True(extended.Equal(decimal.RequireFromString("1250.00")))
	suite.False(official.Equal(extended))
}

func (suite *AccountServiceTestSuite) TestBalance_UnknownBookRejected() {
	ctx := context.Background()

	_, err := suite.service.Balance(ctx, testCompanyID, testAccountID, domain.Book("SHADOW"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SumMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestBalance_UnknownAccount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, testCompanyID, testAccountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Balance(ctx, testCompanyID, testAccountID, domain.BookExtended)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccountsWithBalances() {
	ctx := context.Background()
	accounts := []domain.BankAccount{
		{AccountID: "acc-1", CompanyID: testCompanyID, Name: "Operating"},
		{AccountID: "acc-2", CompanyID: testCompanyID, Name: "Savings"},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, testCompanyID).Return(accounts, nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, "acc-1", domain.BookOfficial).Return(decimal.RequireFromString("100.00"), nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, "acc-1", domain.BookExtended).Return(decimal.RequireFromString("120.00"), nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, "acc-2", domain.BookOfficial).Return(decimal.RequireFromString("0"), nil).Once()
	suite.mockMovementRepo.On("SumMovements", ctx, testCompanyID, "acc-2", domain.BookExtended).Return(decimal.RequireFromString("0"), nil).Once()

	resp, err := suite.service.ListAccountsWithBalances(ctx, testCompanyID)

	suite.Require().NoError(err)
	suite.Require().Len(resp, 2)
	suite.Equal("acc-1", resp[0].AccountID)
	suite.True(resp[0].OfficialBalance.Equal(decimal.RequireFromString("100.00")))
	suite.True(resp[0].ExtendedBalance.Equal(decimal.RequireFromString("120.00")))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

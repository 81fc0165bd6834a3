package services_test

import (
	"context"
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

// MockStatementRepository is a mock type for the StatementRepositoryFacade interface
type MockStatementRepository struct {
	mock.Mock
}

func (m *MockStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement, items []domain.StatementItem) error {
	args := m.Called(ctx, statement, items)
	return args.Error(0)
}

func (m *MockStatementRepository) FindStatementByID(ctx context.Context, companyID, statementID string) (*domain.Statement, error) {
	args := m.Called(ctx, companyID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) ListStatementsByAccount(ctx context.Context, companyID, accountID string, limit int) ([]domain.Statement, error) {
	args := m.Called(ctx, companyID, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) FindItemByID(ctx context.Context, statementID, itemID string) (*domain.StatementItem, error) {
	args := m.Called(ctx, statementID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatementItem), args.Error(1)
}

func (m *MockStatementRepository) FindItemsByStatementID(ctx context.Context, statementID string) ([]domain.StatementItem, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementItem), args.Error(1)
}

func (m *MockStatementRepository) FindJustifiedDifferences(ctx context.Context, statementID string) ([]domain.JustifiedDifference, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JustifiedDifference), args.Error(1)
}

func (m *MockStatementRepository) CloseStatement(ctx context.Context, companyID, statementID string, differences []domain.JustifiedDifference, closedBy string, closingNotes string, closedAt time.Time) error {
	args := m.Called(ctx, companyID, statementID, differences, closedBy, closingNotes, closedAt)
	return args.Error(0)
}

func (m *MockStatementRepository) ApplyMatch(ctx context.Context, link domain.MatchLink, updatedBy string, now time.Time) error {
	args := m.Called(ctx, link, updatedBy, now)
	return args.Error(0)
}

func (m *MockStatementRepository) ApplyAutoMatches(ctx context.Context, statementID string, links []domain.MatchLink, updatedBy string, now time.Time) (int, error) {
	args := m.Called(ctx, statementID, links, updatedBy, now)
	return args.Int(0), args.Error(1)
}

func (m *MockStatementRepository) ApplyUnmatch(ctx context.Context, statementID, itemID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, statementID, itemID, updatedBy, now)
	return args.Error(0)
}

func (m *MockStatementRepository) FlagSuspense(ctx context.Context, statementID, itemID, notes string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, statementID, itemID, notes, updatedBy, now)
	return args.Error(0)
}

func (m *MockStatementRepository) ResolveSuspense(ctx context.Context, statementID, itemID, notes string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, statementID, itemID, notes, updatedBy, now)
	return args.Error(0)
}

func (m *MockStatementRepository) ApplyMovementFromSuspense(ctx context.Context, item domain.StatementItem, movement domain.TreasuryMovement, updatedBy string, now time.Time) error {
	args := m.Called(ctx, item, movement, updatedBy, now)
	return args.Error(0)
}

// MockMovementRepository is a mock type for the MovementRepositoryFacade interface
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.TreasuryMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, companyID, movementID string) (*domain.TreasuryMovement, error) {
	args := m.Called(ctx, companyID, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasuryMovement), args.Error(1)
}

func (m *MockMovementRepository) FindUnmatchedMovements(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.TreasuryMovement, error) {
	args := m.Called(ctx, companyID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TreasuryMovement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementsByIDs(ctx context.Context, companyID string, movementIDs []string) (map[string]domain.TreasuryMovement, error) {
	args := m.Called(ctx, companyID, movementIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TreasuryMovement), args.Error(1)
}

func (m *MockMovementRepository) SumMovements(ctx context.Context, companyID, accountID string, book domain.Book) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, book)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockIdempotencyRepository is a mock type for the IdempotencyRepositoryFacade interface
type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) InsertPending(ctx context.Context, record domain.IdempotencyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) FindRecord(ctx context.Context, companyID string, kind domain.OperationKind, key string) (*domain.IdempotencyRecord, error) {
	args := m.Called(ctx, companyID, kind, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdempotencyRecord), args.Error(1)
}

func (m *MockIdempotencyRepository) MarkCompleted(ctx context.Context, companyID string, kind domain.OperationKind, key string, result []byte, entityID string) error {
	args := m.Called(ctx, companyID, kind, key, result, entityID)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) DeleteRecord(ctx context.Context, companyID string, kind domain.OperationKind, key string) error {
	args := m.Called(ctx, companyID, kind, key)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/core/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, entityID int64, code int) (*domain.Account, error) {
	args := m.Called(ctx, entityID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, entityID int64, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, entityID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	entityID int64
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.entityID = 1
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        11100,
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.entityID, 11100).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.entityID, account.EntityID)
	suite.Equal(11100, account.Code)
	// NormalBalance omitted in the request falls back to the type default.
	suite.Equal(domain.DebitNormal, account.NormalBalance)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CodeTypeMismatch() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        21000,
		Name:        "Not an asset",
		AccountType: domain.Asset,
	}

	_, err := suite.service.CreateAccount(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccountCode)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_IdempotentOnExistingCode() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:     uuid.NewString(),
		EntityID:      suite.entityID,
		Code:          11100,
		Name:          "Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	req := dto.CreateAccountRequest{
		Code:        11100,
		Name:        "Cash again",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.entityID, 11100).Return(existing, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.AccountID, account.AccountID)
	suite.Equal("Cash", account.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ExplicitNormalBalance() {
	ctx := context.Background()
	contra := domain.CreditNormal
	req := dto.CreateAccountRequest{
		Code:          15100,
		Name:          "Accumulated Depreciation",
		AccountType:   domain.Asset,
		NormalBalance: &contra,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.entityID, 15100).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CreditNormal, account.NormalBalance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_WrongEntity() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		EntityID:  99,
		Code:      11100,
	}
	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.entityID, account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_MissingAccount() {
	ctx := context.Background()
	knownID := uuid.NewString()
	missingID := uuid.NewString()
	accounts := map[string]domain.Account{
		knownID: {AccountID: knownID, EntityID: suite.entityID},
	}
	suite.mockRepo.On("FindAccountsByIDs", ctx, []string{knownID, missingID}).Return(accounts, nil).Once()

	_, err := suite.service.GetAccountsByIDs(ctx, suite.entityID, []string{knownID, missingID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_ForeignEntity() {
	ctx := context.Background()
	ownID := uuid.NewString()
	foreignID := uuid.NewString()
	accounts := map[string]domain.Account{
		ownID:     {AccountID: ownID, EntityID: suite.entityID},
		foreignID: {AccountID: foreignID, EntityID: 99},
	}
	suite.mockRepo.On("FindAccountsByIDs", ctx, []string{ownID, foreignID}).Return(accounts, nil).Once()

	_, err := suite.service.GetAccountsByIDs(ctx, suite.entityID, []string{ownID, foreignID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), EntityID: suite.entityID, Code: 11100, Balance: decimal.NewFromInt(500)},
		{AccountID: uuid.NewString(), EntityID: suite.entityID, Code: 41000, Balance: decimal.NewFromInt(500)},
	}
	suite.mockRepo.On("ListAccounts", ctx, suite.entityID, true).Return(accounts, nil).Once()

	got, err := suite.service.ListAccounts(ctx, suite.entityID, true)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

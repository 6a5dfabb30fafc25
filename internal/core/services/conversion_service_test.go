package services_test

import (
	"context"
	"testing"
	"time"

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

// --- Mock EntityRepository ---
type MockEntityRepository struct {
	mock.Mock
}

var _ portsrepo.EntityRepositoryFacade = (*MockEntityRepository)(nil)

func (m *MockEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) (*domain.Entity, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, entityID int64) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) UpdateEntityStatus(ctx context.Context, entityID int64, status domain.EntityStatus, userID string, now time.Time) error {
	args := m.Called(ctx, entityID, status, userID, now)
	return args.Error(0)
}

// --- Mock ConversionRepository ---
type MockConversionRepository struct {
	mock.Mock
}

var _ portsrepo.ConversionRepositoryFacade = (*MockConversionRepository)(nil)

func (m *MockConversionRepository) SaveConversion(ctx context.Context, record domain.ConversionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConversionRepository) FindConversionBySource(ctx context.Context, sourceEntityID int64) (*domain.ConversionRecord, error) {
	args := m.Called(ctx, sourceEntityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionRecord), args.Error(1)
}

func (m *MockConversionRepository) ListConversions(ctx context.Context) ([]domain.ConversionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversionRecord), args.Error(1)
}

// --- Test Suite Setup ---

type ConversionServiceTestSuite struct {
	suite.Suite
	mockEntityRepo     *MockEntityRepository
	mockConversionRepo *MockConversionRepository
	mockReportingRepo  *MockReportingRepository
	mockAccountSvc     *MockAccountService
	mockJournalSvc     *MockJournalService
	mockPeriodLockSvc  *MockPeriodLockService
	service            portssvc.ConversionSvcFacade
	source             *domain.Entity
	target             *domain.Entity
	effectiveDate      time.Time
	userID             string
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockEntityRepo = new(MockEntityRepository)
	suite.mockConversionRepo = new(MockConversionRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockPeriodLockSvc = new(MockPeriodLockService)
	suite.service = services.NewConversionService(
		suite.mockEntityRepo,
		suite.mockConversionRepo,
		suite.mockReportingRepo,
		suite.mockAccountSvc,
		suite.mockJournalSvc,
		suite.mockPeriodLockSvc,
	)

	suite.source = &domain.Entity{EntityID: 1, Name: "Avista LLC", LegalType: domain.LLC, Status: domain.EntityActive}
	suite.target = &domain.Entity{EntityID: 2, Name: "Avista Inc", LegalType: domain.CCorp, Status: domain.EntityActive}
	suite.effectiveDate = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.userID = uuid.NewString()
}

func (suite *ConversionServiceTestSuite) request(totalShares int64) dto.ConversionRequest {
	return dto.ConversionRequest{
		SourceEntityID: suite.source.EntityID,
		TargetEntityID: suite.target.EntityID,
		EffectiveDate:  suite.effectiveDate,
		ParValue:       decimal.NewFromFloat(1.00),
		TotalShares:    totalShares,
	}
}

func (suite *ConversionServiceTestSuite) expectParties() {
	ctx := context.Background()
	suite.mockEntityRepo.On("FindEntityByID", ctx, suite.source.EntityID).Return(suite.source, nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, suite.target.EntityID).Return(suite.target, nil).Once()
}

func (suite *ConversionServiceTestSuite) expectSourceActivity() {
	ctx := context.Background()
	activity := []domain.AccountActivity{
		activityRow(11100, domain.Asset, domain.DebitNormal, 1000, 0),
		activityRow(21000, domain.Liability, domain.CreditNormal, 0, 200),
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.source.EntityID, (*time.Time)(nil), suite.effectiveDate, false).Return(activity, nil).Once()
}

// --- Test Cases ---

func (suite *ConversionServiceTestSuite) TestConversionPreview_Success() {
	ctx := context.Background()
	suite.expectParties()
	suite.expectSourceActivity()

	preview, err := suite.service.ConversionPreview(ctx, suite.request(500))

	suite.Require().NoError(err)
	suite.True(preview.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(preview.TotalLiabilities.Equal(decimal.NewFromInt(200)))
	suite.True(preview.EquityTotal.Equal(decimal.NewFromInt(800)))
	suite.True(preview.CommonStock.Equal(decimal.NewFromInt(500)))
	suite.True(preview.APIC.Equal(decimal.NewFromInt(300)))
}

func (suite *ConversionServiceTestSuite) TestConversionPreview_NegativeAPIC() {
	ctx := context.Background()
	suite.expectParties()
	suite.expectSourceActivity()

	// 1000 shares at par 1.00 exceeds the 800 equity carried over.
	_, err := suite.service.ConversionPreview(ctx, suite.request(1000))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConversionServiceTestSuite) TestConversionPreview_SameParties() {
	ctx := context.Background()
	req := suite.request(500)
	req.TargetEntityID = req.SourceEntityID

	_, err := suite.service.ConversionPreview(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntityRepo.AssertNotCalled(suite.T(), "FindEntityByID", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConversionPreview_SourceNotLLC() {
	ctx := context.Background()
	suite.source.LegalType = domain.CCorp
	suite.mockEntityRepo.On("FindEntityByID", ctx, suite.source.EntityID).Return(suite.source, nil).Once()

	_, err := suite.service.ConversionPreview(ctx, suite.request(500))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConversionServiceTestSuite) TestConversionPreview_SourceAlreadyConverted() {
	ctx := context.Background()
	suite.source.Status = domain.EntityConverted
	suite.mockEntityRepo.On("FindEntityByID", ctx, suite.source.EntityID).Return(suite.source, nil).Once()

	_, err := suite.service.ConversionPreview(ctx, suite.request(500))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConversionServiceTestSuite) TestConversionExecute_DuplicateSource() {
	ctx := context.Background()
	suite.expectParties()
	existing := &domain.ConversionRecord{ConversionID: uuid.NewString(), SourceEntityID: suite.source.EntityID}
	suite.mockConversionRepo.On("FindConversionBySource", ctx, suite.source.EntityID).Return(existing, nil).Once()

	_, err := suite.service.ConversionExecute(ctx, suite.request(500), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPeriodLockSvc.AssertNotCalled(suite.T(), "SetLockedThrough", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConversionExecute_Success() {
	ctx := context.Background()
	suite.expectParties()
	suite.mockConversionRepo.On("FindConversionBySource", ctx, suite.source.EntityID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectSourceActivity()

	suite.mockPeriodLockSvc.On("SetLockedThrough", ctx, suite.source.EntityID, suite.effectiveDate, suite.userID).Return(nil).Once()

	cash := &domain.Account{AccountID: uuid.NewString(), EntityID: suite.target.EntityID, Code: 11100}
	stock := &domain.Account{AccountID: uuid.NewString(), EntityID: suite.target.EntityID, Code: 31000}
	apic := &domain.Account{AccountID: uuid.NewString(), EntityID: suite.target.EntityID, Code: 31100}
	obe := &domain.Account{AccountID: uuid.NewString(), EntityID: suite.target.EntityID, Code: 39900}
	suite.mockAccountSvc.On("CreateAccount", ctx, suite.target.EntityID, dto.CreateAccountRequest{Code: 11100, Name: "Cash", AccountType: domain.Asset}, suite.userID).Return(cash, nil).Once()
	suite.mockAccountSvc.On("CreateAccount", ctx, suite.target.EntityID, dto.CreateAccountRequest{Code: 31000, Name: "Common Stock", AccountType: domain.Equity}, suite.userID).Return(stock, nil).Once()
	suite.mockAccountSvc.On("CreateAccount", ctx, suite.target.EntityID, dto.CreateAccountRequest{Code: 31100, Name: "Additional Paid-In Capital", AccountType: domain.Equity}, suite.userID).Return(apic, nil).Once()
	suite.mockAccountSvc.On("CreateAccount", ctx, suite.target.EntityID, dto.CreateAccountRequest{Code: 39900, Name: "Opening Balance Equity", AccountType: domain.Equity}, suite.userID).Return(obe, nil).Once()

	var entryReq dto.CreateEntryRequest
	openingEntry := &domain.JournalEntry{EntryID: uuid.NewString(), EntityID: suite.target.EntityID}
	suite.mockJournalSvc.On("CreateSystemEntry", ctx, suite.target.EntityID, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			entryReq = args.Get(2).(dto.CreateEntryRequest)
		}).
		Return(openingEntry, nil).Once()

	var savedRecord domain.ConversionRecord
	suite.mockConversionRepo.On("SaveConversion", ctx, mock.AnythingOfType("domain.ConversionRecord")).
		Run(func(args mock.Arguments) {
			savedRecord = args.Get(1).(domain.ConversionRecord)
		}).
		Return(nil).Once()
	suite.mockEntityRepo.On("UpdateEntityStatus", ctx, suite.source.EntityID, domain.EntityConverted, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	record, err := suite.service.ConversionExecute(ctx, suite.request(500), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(openingEntry.EntryID, record.OpeningEntryID)
	suite.True(record.EquityTotal.Equal(decimal.NewFromInt(800)))
	suite.True(record.CommonStock.Equal(decimal.NewFromInt(500)))
	suite.True(record.APIC.Equal(decimal.NewFromInt(300)))
	suite.Equal(savedRecord.ConversionID, record.ConversionID)

	// Opening entry on the target is dated the day after the effective date
	// and carries the full equity split.
	suite.True(entryReq.Date.Equal(suite.effectiveDate.AddDate(0, 0, 1)))
	suite.Require().NotNil(entryReq.Reference)
	suite.Equal("CONV-1-2", *entryReq.Reference)
	suite.Require().Len(entryReq.Lines, 4)
	suite.Equal(cash.AccountID, entryReq.Lines[0].AccountID)
	suite.True(entryReq.Lines[0].Debit.Equal(decimal.NewFromInt(1000)))
	suite.Equal(obe.AccountID, entryReq.Lines[1].AccountID)
	suite.True(entryReq.Lines[1].Credit.Equal(decimal.NewFromInt(200)))
	suite.Equal(stock.AccountID, entryReq.Lines[2].AccountID)
	suite.True(entryReq.Lines[2].Credit.Equal(decimal.NewFromInt(500)))
	suite.Equal(apic.AccountID, entryReq.Lines[3].AccountID)
	suite.True(entryReq.Lines[3].Credit.Equal(decimal.NewFromInt(300)))

	suite.mockEntityRepo.AssertExpectations(suite.T())
	suite.mockConversionRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestListConversions() {
	ctx := context.Background()
	records := []domain.ConversionRecord{{ConversionID: uuid.NewString()}}
	suite.mockConversionRepo.On("ListConversions", ctx).Return(records, nil).Once()

	got, err := suite.service.ListConversions(ctx)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

// --- Run Test Suite ---
func TestConversionService(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}

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
	"github.com/avistalabs/ledger_backend/internal/platform/config"
)

// --- Mock BankTransactionRepository ---
type MockBankTxnRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransactionRepositoryFacade = (*MockBankTxnRepository)(nil)

func (m *MockBankTxnRepository) SaveTransaction(ctx context.Context, txn domain.BankTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockBankTxnRepository) FindTransactionByID(ctx context.Context, txnID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTxnRepository) ListUnreconciled(ctx context.Context, entityID int64) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTxnRepository) MarkReconciled(ctx context.Context, txnID string, journalEntryID *string, userID string, now time.Time) error {
	args := m.Called(ctx, txnID, journalEntryID, userID, now)
	return args.Error(0)
}

func (m *MockBankTxnRepository) ReplaceWithParts(ctx context.Context, original domain.BankTransaction, parts []domain.BankTransaction) error {
	args := m.Called(ctx, original, parts)
	return args.Error(0)
}

func (m *MockBankTxnRepository) SumCleared(ctx context.Context, entityID int64, through time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, entityID, through)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBankTxnRepository) HasUnreconciledThrough(ctx context.Context, entityID int64, through time.Time) (bool, error) {
	args := m.Called(ctx, entityID, through)
	return args.Bool(0), args.Error(1)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListUnreconciled(ctx context.Context, entityID int64) ([]domain.Document, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) HasUnpostedTotals(ctx context.Context, entityID int64, through time.Time) (bool, error) {
	args := m.Called(ctx, entityID, through)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) CountOverdueOpen(ctx context.Context, entityID int64, asOf time.Time, agingDays int) (int, error) {
	args := m.Called(ctx, entityID, asOf, agingDays)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepository) MarkReconciled(ctx context.Context, documentID string, userID string, now time.Time) error {
	args := m.Called(ctx, documentID, userID, now)
	return args.Error(0)
}

func (m *MockDocumentRepository) LinkJournalEntry(ctx context.Context, documentID string, journalEntryID string, status domain.DocumentStatus, userID string, now time.Time) error {
	args := m.Called(ctx, documentID, journalEntryID, status, userID, now)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) SaveSnapshot(ctx context.Context, snapshot domain.ReconciliationSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockReconciliationRepository) FindLatestSnapshot(ctx context.Context, entityID int64, year, month int) (*domain.ReconciliationSnapshot, error) {
	args := m.Called(ctx, entityID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSnapshot), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, entityID int64, start *time.Time, end time.Time, postedOnly bool) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, entityID, start, end, postedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

// --- Mock JournalService (as used by the closing workflow) ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) CreateEntry(ctx context.Context, entityID int64, req dto.CreateEntryRequest, creatorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, entityID int64, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, entityID int64, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, entityID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, entityID int64, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Approve(ctx context.Context, entityID int64, entryID string, approverID string, approve bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID, approverID, approve)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Post(ctx context.Context, entityID int64, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateAdjustingEntry(ctx context.Context, entityID int64, entryID string, notes string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID, notes, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) BatchPost(ctx context.Context, entityID int64, req dto.BatchPostRequest, userID string) (*dto.BatchPostResponse, error) {
	args := m.Called(ctx, entityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BatchPostResponse), args.Error(1)
}

func (m *MockJournalService) CreateSystemEntry(ctx context.Context, entityID int64, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock PeriodLockService ---
type MockPeriodLockService struct {
	mock.Mock
}

var _ portssvc.PeriodLockSvcFacade = (*MockPeriodLockService)(nil)

func (m *MockPeriodLockService) GetLockedThrough(ctx context.Context, entityID int64) (*time.Time, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockPeriodLockService) SetLockedThrough(ctx context.Context, entityID int64, date time.Time, userID string) error {
	args := m.Called(ctx, entityID, date, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ClosingServiceTestSuite struct {
	suite.Suite
	mockBankTxnRepo   *MockBankTxnRepository
	mockDocumentRepo  *MockDocumentRepository
	mockReconRepo     *MockReconciliationRepository
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockJournalSvc    *MockJournalService
	mockPeriodLockSvc *MockPeriodLockService
	service           portssvc.ClosingSvcFacade
	entityID          int64
	userID            string
	periodEnd         time.Time
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockBankTxnRepo = new(MockBankTxnRepository)
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockPeriodLockSvc = new(MockPeriodLockService)

	cfg := &config.Config{AgingThresholdDays: 90}
	suite.service = services.NewClosingService(
		suite.mockBankTxnRepo,
		suite.mockDocumentRepo,
		suite.mockReconRepo,
		suite.mockReportingRepo,
		suite.mockAccountRepo,
		suite.mockJournalSvc,
		suite.mockPeriodLockSvc,
		cfg,
	)

	suite.entityID = 1
	suite.userID = uuid.NewString()
	suite.periodEnd = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
}

func activityRow(code int, accountType domain.AccountType, normal domain.NormalBalance, debit, credit int64) domain.AccountActivity {
	return domain.AccountActivity{
		AccountID:     uuid.NewString(),
		Code:          code,
		AccountType:   accountType,
		NormalBalance: normal,
		DebitTotal:    decimal.NewFromInt(debit),
		CreditTotal:   decimal.NewFromInt(credit),
	}
}

func (suite *ClosingServiceTestSuite) expectCleanGates() {
	ctx := context.Background()
	snapshot := &domain.ReconciliationSnapshot{
		EntityID:      suite.entityID,
		Year:          2025,
		Month:         6,
		TieOutPercent: decimal.NewFromInt(100),
	}
	suite.mockReconRepo.On("FindLatestSnapshot", ctx, suite.entityID, 2025, 6).Return(snapshot, nil).Once()
	suite.mockDocumentRepo.On("HasUnpostedTotals", ctx, suite.entityID, suite.periodEnd).Return(false, nil).Once()
	suite.mockDocumentRepo.On("CountOverdueOpen", ctx, suite.entityID, suite.periodEnd, 90).Return(0, nil).Once()
}

// --- Test Cases ---

func (suite *ClosingServiceTestSuite) TestClosePreview_SnapshotClearsBankGate() {
	ctx := context.Background()
	suite.expectCleanGates()

	preview, err := suite.service.ClosePreview(ctx, suite.entityID, 2025, 6)

	suite.Require().NoError(err)
	suite.False(preview.BankUnreconciled)
	suite.False(preview.DocsUnposted)
	suite.True(preview.AgingOK)
	suite.False(preview.Blocked())
	suite.True(preview.PeriodEnd.Equal(suite.periodEnd))
	// A finalized snapshot settles the bank gate without scanning rows.
	suite.mockBankTxnRepo.AssertNotCalled(suite.T(), "HasUnreconciledThrough", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestClosePreview_PartialTieOutBlocks() {
	ctx := context.Background()
	snapshot := &domain.ReconciliationSnapshot{TieOutPercent: decimal.NewFromFloat(98.75)}
	suite.mockReconRepo.On("FindLatestSnapshot", ctx, suite.entityID, 2025, 6).Return(snapshot, nil).Once()
	suite.mockDocumentRepo.On("HasUnpostedTotals", ctx, suite.entityID, suite.periodEnd).Return(false, nil).Once()
	suite.mockDocumentRepo.On("CountOverdueOpen", ctx, suite.entityID, suite.periodEnd, 90).Return(0, nil).Once()

	preview, err := suite.service.ClosePreview(ctx, suite.entityID, 2025, 6)

	suite.Require().NoError(err)
	suite.True(preview.BankUnreconciled)
	suite.True(preview.Blocked())
}

func (suite *ClosingServiceTestSuite) TestClosePreview_NoSnapshotFallsBackToScan() {
	ctx := context.Background()
	suite.mockReconRepo.On("FindLatestSnapshot", ctx, suite.entityID, 2025, 6).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBankTxnRepo.On("HasUnreconciledThrough", ctx, suite.entityID, suite.periodEnd).Return(true, nil).Once()
	suite.mockDocumentRepo.On("HasUnpostedTotals", ctx, suite.entityID, suite.periodEnd).Return(false, nil).Once()
	suite.mockDocumentRepo.On("CountOverdueOpen", ctx, suite.entityID, suite.periodEnd, 90).Return(0, nil).Once()

	preview, err := suite.service.ClosePreview(ctx, suite.entityID, 2025, 6)

	suite.Require().NoError(err)
	suite.True(preview.BankUnreconciled)
}

func (suite *ClosingServiceTestSuite) TestCloseRun_BlockedByUnpostedDocs() {
	ctx := context.Background()
	snapshot := &domain.ReconciliationSnapshot{TieOutPercent: decimal.NewFromInt(100)}
	suite.mockReconRepo.On("FindLatestSnapshot", ctx, suite.entityID, 2025, 6).Return(snapshot, nil).Once()
	suite.mockDocumentRepo.On("HasUnpostedTotals", ctx, suite.entityID, suite.periodEnd).Return(true, nil).Once()
	suite.mockDocumentRepo.On("CountOverdueOpen", ctx, suite.entityID, suite.periodEnd, 90).Return(0, nil).Once()

	_, err := suite.service.CloseRun(ctx, suite.entityID, 2025, 6, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCloseBlocked)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateSystemEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPeriodLockSvc.AssertNotCalled(suite.T(), "SetLockedThrough", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestCloseRun_PostsClosingEntryAndLocks() {
	ctx := context.Background()
	suite.expectCleanGates()

	activity := []domain.AccountActivity{
		activityRow(41000, domain.Revenue, domain.CreditNormal, 0, 500),
		activityRow(52000, domain.Expense, domain.DebitNormal, 200, 0),
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.entityID, mock.AnythingOfType("*time.Time"), suite.periodEnd, false).Return(activity, nil).Once()

	summary := &domain.Account{AccountID: uuid.NewString(), EntityID: suite.entityID, Code: 39000}
	retained := &domain.Account{AccountID: uuid.NewString(), EntityID: suite.entityID, Code: 32000}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.entityID, 39000).Return(summary, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.entityID, 32000).Return(retained, nil).Once()

	var entryReq dto.CreateEntryRequest
	closingEntry := &domain.JournalEntry{EntryID: uuid.NewString(), EntityID: suite.entityID}
	suite.mockJournalSvc.On("CreateSystemEntry", ctx, suite.entityID, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			entryReq = args.Get(2).(dto.CreateEntryRequest)
		}).
		Return(closingEntry, nil).Once()
	suite.mockPeriodLockSvc.On("SetLockedThrough", ctx, suite.entityID, suite.periodEnd, suite.userID).Return(nil).Once()

	resp, err := suite.service.CloseRun(ctx, suite.entityID, 2025, 6, suite.userID)

	suite.Require().NoError(err)
	suite.True(resp.NetIncome.Equal(decimal.NewFromInt(300)))
	suite.Require().NotNil(resp.ClosingEntryID)
	suite.Equal(closingEntry.EntryID, *resp.ClosingEntryID)

	// Positive net income debits the income summary and credits retained
	// earnings, dated the period end.
	suite.Require().Len(entryReq.Lines, 2)
	suite.Equal(summary.AccountID, entryReq.Lines[0].AccountID)
	suite.True(entryReq.Lines[0].Debit.Equal(decimal.NewFromInt(300)))
	suite.Equal(retained.AccountID, entryReq.Lines[1].AccountID)
	suite.True(entryReq.Lines[1].Credit.Equal(decimal.NewFromInt(300)))
	suite.True(entryReq.Date.Equal(suite.periodEnd))
	suite.Require().NotNil(entryReq.Reference)
	suite.Equal("CLOSE-2025-06", *entryReq.Reference)
	suite.mockPeriodLockSvc.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCloseRun_NetLossReversesSides() {
	ctx := context.Background()
	suite.expectCleanGates()

	activity := []domain.AccountActivity{
		activityRow(41000, domain.Revenue, domain.CreditNormal, 0, 100),
		activityRow(52000, domain.Expense, domain.DebitNormal, 300, 0),
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.entityID, mock.AnythingOfType("*time.Time"), suite.periodEnd, false).Return(activity, nil).Once()

	summary := &domain.Account{AccountID: uuid.NewString(), EntityID: suite.entityID, Code: 39000}
	retained := &domain.Account{AccountID: uuid.NewString(), EntityID: suite.entityID, Code: 32000}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.entityID, 39000).Return(summary, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.entityID, 32000).Return(retained, nil).Once()

	var entryReq dto.CreateEntryRequest
	closingEntry := &domain.JournalEntry{EntryID: uuid.NewString(), EntityID: suite.entityID}
	suite.mockJournalSvc.On("CreateSystemEntry", ctx, suite.entityID, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			entryReq = args.Get(2).(dto.CreateEntryRequest)
		}).
		Return(closingEntry, nil).Once()
	suite.mockPeriodLockSvc.On("SetLockedThrough", ctx, suite.entityID, suite.periodEnd, suite.userID).Return(nil).Once()

	resp, err := suite.service.CloseRun(ctx, suite.entityID, 2025, 6, suite.userID)

	suite.Require().NoError(err)
	suite.True(resp.NetIncome.Equal(decimal.NewFromInt(-200)))
	// A loss debits retained earnings and credits the income summary.
	suite.Require().Len(entryReq.Lines, 2)
	suite.Equal(retained.AccountID, entryReq.Lines[0].AccountID)
	suite.True(entryReq.Lines[0].Debit.Equal(decimal.NewFromInt(200)))
	suite.Equal(summary.AccountID, entryReq.Lines[1].AccountID)
	suite.True(entryReq.Lines[1].Credit.Equal(decimal.NewFromInt(200)))
}

func (suite *ClosingServiceTestSuite) TestCloseRun_ZeroNetIncomeSkipsEntry() {
	ctx := context.Background()
	suite.expectCleanGates()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.entityID, mock.AnythingOfType("*time.Time"), suite.periodEnd, false).Return([]domain.AccountActivity{}, nil).Once()
	suite.mockPeriodLockSvc.On("SetLockedThrough", ctx, suite.entityID, suite.periodEnd, suite.userID).Return(nil).Once()

	resp, err := suite.service.CloseRun(ctx, suite.entityID, 2025, 6, suite.userID)

	suite.Require().NoError(err)
	suite.True(resp.NetIncome.IsZero())
	suite.Nil(resp.ClosingEntryID)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateSystemEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPeriodLockSvc.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCloseRun_OverdueDocsWarnButDoNotBlock() {
	ctx := context.Background()
	snapshot := &domain.ReconciliationSnapshot{TieOutPercent: decimal.NewFromInt(100)}
	suite.mockReconRepo.On("FindLatestSnapshot", ctx, suite.entityID, 2025, 6).Return(snapshot, nil).Once()
	suite.mockDocumentRepo.On("HasUnpostedTotals", ctx, suite.entityID, suite.periodEnd).Return(false, nil).Once()
	suite.mockDocumentRepo.On("CountOverdueOpen", ctx, suite.entityID, suite.periodEnd, 90).Return(3, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.entityID, mock.AnythingOfType("*time.Time"), suite.periodEnd, false).Return([]domain.AccountActivity{}, nil).Once()
	suite.mockPeriodLockSvc.On("SetLockedThrough", ctx, suite.entityID, suite.periodEnd, suite.userID).Return(nil).Once()

	resp, err := suite.service.CloseRun(ctx, suite.entityID, 2025, 6, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(resp)
}

// --- Run Test Suite ---
func TestClosingService(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}

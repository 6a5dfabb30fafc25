package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
	entityID int64
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.entityID = 1
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_NetsToOneSide() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	activity := []domain.AccountActivity{
		activityRow(11100, domain.Asset, domain.DebitNormal, 1500, 500),
		activityRow(41000, domain.Revenue, domain.CreditNormal, 0, 1000),
	}
	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, (*time.Time)(nil), asOf, true).Return(activity, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.entityID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 2)
	suite.True(tb.Rows[0].Debit.Equal(decimal.NewFromInt(1000)))
	suite.True(tb.Rows[0].Credit.IsZero())
	suite.True(tb.Rows[1].Credit.Equal(decimal.NewFromInt(1000)))
	suite.True(tb.Rows[1].Debit.IsZero())
	suite.True(tb.TotalDebits.Equal(tb.TotalCredits))
	suite.True(tb.InBalance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_OutOfBalanceIsReportedNotRejected() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	activity := []domain.AccountActivity{
		activityRow(11100, domain.Asset, domain.DebitNormal, 1000, 0),
		activityRow(41000, domain.Revenue, domain.CreditNormal, 0, 999),
	}
	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, (*time.Time)(nil), asOf, true).Return(activity, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.entityID, asOf)

	suite.Require().NoError(err)
	suite.False(tb.InBalance)
	suite.True(tb.TotalDebits.Equal(decimal.NewFromInt(1000)))
	suite.True(tb.TotalCredits.Equal(decimal.NewFromInt(999)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_SectionsByCodeRange() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	activity := []domain.AccountActivity{
		activityRow(41500, domain.Revenue, domain.CreditNormal, 0, 900),
		activityRow(52000, domain.Expense, domain.DebitNormal, 400, 0),
		activityRow(11100, domain.Asset, domain.DebitNormal, 500, 0),
	}
	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, &start, end, false).Return(activity, nil).Once()

	is, err := suite.service.IncomeStatement(ctx, suite.entityID, start, end)

	suite.Require().NoError(err)
	suite.Require().Len(is.Revenue, 1)
	suite.Equal("Operating Revenue", is.Revenue[0].Label)
	suite.True(is.Revenue[0].Total.Equal(decimal.NewFromInt(900)))
	suite.Require().Len(is.Expenses, 1)
	suite.Equal("Personnel", is.Expenses[0].Label)
	suite.True(is.Expenses[0].Total.Equal(decimal.NewFromInt(400)))
	suite.True(is.NetIncome.Equal(decimal.NewFromInt(500)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_CatchAllSection() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	activity := []domain.AccountActivity{
		activityRow(55000, domain.Expense, domain.DebitNormal, 120, 0),
	}
	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, &start, end, false).Return(activity, nil).Once()

	is, err := suite.service.IncomeStatement(ctx, suite.entityID, start, end)

	suite.Require().NoError(err)
	suite.Require().Len(is.Expenses, 1)
	suite.Equal("Operating Expenses", is.Expenses[0].Label)
	suite.True(is.TotalExpenses.Equal(decimal.NewFromInt(120)))
	suite.Empty(is.Revenue)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_FoldsUnclosedEarningsIntoEquity() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	activity := []domain.AccountActivity{
		activityRow(11100, domain.Asset, domain.DebitNormal, 1000, 0),
		activityRow(21000, domain.Liability, domain.CreditNormal, 0, 200),
		activityRow(41000, domain.Revenue, domain.CreditNormal, 0, 800),
	}
	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, (*time.Time)(nil), asOf, false).Return(activity, nil).Once()

	bs, err := suite.service.BalanceSheet(ctx, suite.entityID, asOf)

	suite.Require().NoError(err)
	suite.True(bs.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(bs.TotalLiabilities.Equal(decimal.NewFromInt(200)))
	// Unclosed revenue appears as current period earnings so the sheet balances.
	suite.Require().NotEmpty(bs.Equity)
	last := bs.Equity[len(bs.Equity)-1]
	suite.Equal("Current Period Earnings", last.Label)
	suite.True(last.Total.Equal(decimal.NewFromInt(800)))
	suite.True(bs.TotalEquity.Equal(decimal.NewFromInt(800)))
	suite.True(bs.Balanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_NoEarningsSectionWhenClosed() {
	ctx := context.Background()
	asOf := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	activity := []domain.AccountActivity{
		activityRow(11100, domain.Asset, domain.DebitNormal, 1000, 0),
		activityRow(21000, domain.Liability, domain.CreditNormal, 0, 200),
		activityRow(32000, domain.Equity, domain.CreditNormal, 0, 800),
	}
	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, (*time.Time)(nil), asOf, false).Return(activity, nil).Once()

	bs, err := suite.service.BalanceSheet(ctx, suite.entityID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(bs.Equity, 1)
	suite.Equal("Equity", bs.Equity[0].Label)
	suite.True(bs.Balanced)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_OnlyCashRangeCounts() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	activity := []domain.AccountActivity{
		activityRow(11100, domain.Asset, domain.DebitNormal, 500, 200),
		activityRow(41000, domain.Revenue, domain.CreditNormal, 0, 300),
		activityRow(12000, domain.Asset, domain.DebitNormal, 300, 0),
	}
	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, &start, end, false).Return(activity, nil).Once()

	cf, err := suite.service.CashFlow(ctx, suite.entityID, start, end)

	suite.Require().NoError(err)
	suite.Require().Len(cf.Lines, 1)
	suite.Equal(11100, cf.Lines[0].Code)
	suite.True(cf.NetCashChange.Equal(decimal.NewFromInt(300)))
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

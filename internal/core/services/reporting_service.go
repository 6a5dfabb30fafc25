package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/middleware"
	"github.com/avistalabs/ledger_backend/internal/utils/accounting"
)

// reportingService is the statement generator. It classifies raw per-account
// activity into presentation sections by account-code range; the totals
// themselves only depend on the underlying debits and credits.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists every account with posted activity as of a date, netted
// to a single side. An out-of-balance result is reported to the caller, not
// returned as an error: it means the ledger itself is corrupt.
func (s *reportingService) TrialBalance(ctx context.Context, entityID int64, asOf time.Time) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetAccountActivity(ctx, entityID, nil, asOf, true)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		EntityID:     entityID,
		AsOf:         asOf,
		Rows:         make([]domain.TrialBalanceRow, 0, len(activity)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, a := range activity {
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			Code:        a.Code,
			Name:        a.Name,
			AccountType: a.AccountType,
		}
		net := a.DebitTotal.Sub(a.CreditTotal)
		if net.IsNegative() {
			row.Credit = net.Neg()
		} else {
			row.Debit = net
		}
		tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}
	tb.InBalance = tb.TotalDebits.Equal(tb.TotalCredits)
	if !tb.InBalance {
		logger.Error("Trial balance out of balance",
			slog.Int64("entity_id", entityID),
			slog.String("total_debits", tb.TotalDebits.String()),
			slog.String("total_credits", tb.TotalCredits.String()))
	}
	return tb, nil
}

// sectionSpec is one presentation bucket keyed by an account-code range.
type sectionSpec struct {
	label     string
	low, high int
}

// buildSections distributes activity rows of one account type into labelled
// code-range buckets, with a catch-all for codes outside every range. Empty
// sections are dropped.
func buildSections(activity []domain.AccountActivity, accountType domain.AccountType, specs []sectionSpec, catchAll string) ([]domain.StatementSection, decimal.Decimal) {
	sections := make([]domain.StatementSection, len(specs)+1)
	for i, spec := range specs {
		sections[i].Label = spec.label
	}
	sections[len(specs)].Label = catchAll

	total := decimal.Zero
	for _, a := range activity {
		if a.AccountType != accountType {
			continue
		}
		amount := accounting.NetBalance(a.DebitTotal, a.CreditTotal, a.NormalBalance)
		line := domain.StatementLine{
			AccountID: a.AccountID,
			Code:      a.Code,
			Name:      a.Name,
			Amount:    amount,
		}
		idx := len(specs)
		for i, spec := range specs {
			if accounting.InRange(a.Code, spec.low, spec.high) {
				idx = i
				break
			}
		}
		sections[idx].Lines = append(sections[idx].Lines, line)
		sections[idx].Total = sections[idx].Total.Add(amount)
		total = total.Add(amount)
	}

	out := sections[:0]
	for _, sec := range sections {
		if len(sec.Lines) > 0 {
			out = append(out, sec)
		}
	}
	return out, total
}

// IncomeStatement nets revenue against expenses over a window, approved
// basis.
func (s *reportingService) IncomeStatement(ctx context.Context, entityID int64, start, end time.Time) (*domain.IncomeStatement, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, entityID, &start, end, false)
	if err != nil {
		return nil, err
	}

	revenue, totalRevenue := buildSections(activity, domain.Revenue, []sectionSpec{
		{"Operating Revenue", accounting.OperatingRevenueLow, accounting.OperatingRevenueHigh},
		{"Other Income", accounting.OtherIncomeLow, accounting.OtherIncomeHigh},
	}, "Other Revenue")

	expenses, totalExpenses := buildSections(activity, domain.Expense, []sectionSpec{
		{"Cost of Revenue", accounting.CostOfRevenueLow, accounting.CostOfRevenueHigh},
		{"Personnel", accounting.PersonnelLow, accounting.PersonnelHigh},
	}, "Operating Expenses")

	return &domain.IncomeStatement{
		EntityID:      entityID,
		Start:         start,
		End:           end,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetIncome:     totalRevenue.Sub(totalExpenses),
	}, nil
}

// BalanceSheet is the position as of a date, approved basis. Unclosed revenue
// and expense activity is folded into equity as current period earnings so
// the statement balances mid-period too.
func (s *reportingService) BalanceSheet(ctx context.Context, entityID int64, asOf time.Time) (*domain.BalanceSheet, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, entityID, nil, asOf, false)
	if err != nil {
		return nil, err
	}

	assets, totalAssets := buildSections(activity, domain.Asset, []sectionSpec{
		{"Current Assets", accounting.CurrentAssetLow, accounting.CurrentAssetHigh},
		{"Non-Current Assets", accounting.NonCurrentAssetLow, accounting.NonCurrentAssetHigh},
	}, "Other Assets")

	liabilities, totalLiabilities := buildSections(activity, domain.Liability, []sectionSpec{
		{"Current Liabilities", accounting.CurrentLiabilityLow, accounting.CurrentLiabilityHigh},
		{"Long-Term Liabilities", accounting.LongTermLiabilityLow, accounting.LongTermLiabilityHigh},
	}, "Other Liabilities")

	equity, totalEquity := buildSections(activity, domain.Equity, nil, "Equity")

	earnings := decimal.Zero
	for _, a := range activity {
		switch a.AccountType {
		case domain.Revenue:
			earnings = earnings.Add(accounting.NetBalance(a.DebitTotal, a.CreditTotal, a.NormalBalance))
		case domain.Expense:
			earnings = earnings.Sub(accounting.NetBalance(a.DebitTotal, a.CreditTotal, a.NormalBalance))
		}
	}
	if !earnings.IsZero() {
		equity = append(equity, domain.StatementSection{
			Label: "Current Period Earnings",
			Lines: []domain.StatementLine{{Name: "Net income not yet closed", Amount: earnings}},
			Total: earnings,
		})
		totalEquity = totalEquity.Add(earnings)
	}

	return &domain.BalanceSheet{
		EntityID:         entityID,
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		Balanced:         totalAssets.Equal(totalLiabilities.Add(totalEquity)),
	}, nil
}

// CashFlow is the net debit-credit movement over the cash account range for
// the window.
func (s *reportingService) CashFlow(ctx context.Context, entityID int64, start, end time.Time) (*domain.CashFlow, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, entityID, &start, end, false)
	if err != nil {
		return nil, err
	}

	cf := &domain.CashFlow{
		EntityID:      entityID,
		Start:         start,
		End:           end,
		NetCashChange: decimal.Zero,
	}
	for _, a := range activity {
		if !accounting.IsCashAccount(a.Code) {
			continue
		}
		change := a.DebitTotal.Sub(a.CreditTotal)
		cf.Lines = append(cf.Lines, domain.StatementLine{
			AccountID: a.AccountID,
			Code:      a.Code,
			Name:      a.Name,
			Amount:    change,
		})
		cf.NetCashChange = cf.NetCashChange.Add(change)
	}
	return cf, nil
}

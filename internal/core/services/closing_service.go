package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
	"github.com/avistalabs/ledger_backend/internal/middleware"
	"github.com/avistalabs/ledger_backend/internal/platform/config"
	"github.com/avistalabs/ledger_backend/internal/utils/accounting"
)

// Well-known account codes the closing entry posts against.
const (
	incomeSummaryCode    = 39000
	retainedEarningsCode = 32000
)

// closingService runs the month-end close workflow: gate checks, the closing
// entry sweeping net income into retained earnings, and the period lock.
type closingService struct {
	bankTxnRepo    portsrepo.BankTransactionRepositoryFacade
	documentRepo   portsrepo.DocumentRepositoryFacade
	reconRepo      portsrepo.ReconciliationRepositoryFacade
	reportingRepo  portsrepo.ReportingRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	journalSvc     portssvc.JournalSvcFacade
	periodLockSvc  portssvc.PeriodLockSvcFacade
	agingThreshold int
}

// NewClosingService creates a new closing service.
func NewClosingService(
	bankTxnRepo portsrepo.BankTransactionRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	reconRepo portsrepo.ReconciliationRepositoryFacade,
	reportingRepo portsrepo.ReportingRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	journalSvc portssvc.JournalSvcFacade,
	periodLockSvc portssvc.PeriodLockSvcFacade,
	cfg *config.Config,
) portssvc.ClosingSvcFacade {
	return &closingService{
		bankTxnRepo:    bankTxnRepo,
		documentRepo:   documentRepo,
		reconRepo:      reconRepo,
		reportingRepo:  reportingRepo,
		accountRepo:    accountRepo,
		journalSvc:     journalSvc,
		periodLockSvc:  periodLockSvc,
		agingThreshold: cfg.AgingThresholdDays,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// periodBounds returns the first and last instant-of-day of a calendar month
// in UTC.
func periodBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}

// ClosePreview evaluates the close gates without side effects.
//
// The bank gate prefers the finalized reconciliation snapshot for the period:
// a 100 percent tie-out clears the gate even if stray unmatched rows exist.
// Without a snapshot it falls back to scanning for unreconciled transactions.
func (s *closingService) ClosePreview(ctx context.Context, entityID int64, year, month int) (*dto.ClosePreviewResponse, error) {
	_, periodEnd := periodBounds(year, month)

	bankUnreconciled, err := s.bankGate(ctx, entityID, year, month, periodEnd)
	if err != nil {
		return nil, err
	}

	docsUnposted, err := s.documentRepo.HasUnpostedTotals(ctx, entityID, periodEnd)
	if err != nil {
		return nil, err
	}

	overdue, err := s.documentRepo.CountOverdueOpen(ctx, entityID, periodEnd, s.agingThreshold)
	if err != nil {
		return nil, err
	}

	return &dto.ClosePreviewResponse{
		EntityID:         entityID,
		PeriodEnd:        periodEnd,
		BankUnreconciled: bankUnreconciled,
		DocsUnposted:     docsUnposted,
		AgingOK:          overdue == 0,
	}, nil
}

func (s *closingService) bankGate(ctx context.Context, entityID int64, year, month int, periodEnd time.Time) (bool, error) {
	snapshot, err := s.reconRepo.FindLatestSnapshot(ctx, entityID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.bankTxnRepo.HasUnreconciledThrough(ctx, entityID, periodEnd)
		}
		return false, err
	}
	return snapshot.TieOutPercent.LessThan(decimal.NewFromInt(100)), nil
}

// CloseRun re-checks the gates, sweeps the period's net income from the
// income summary account into retained earnings with a system entry, and
// advances the period lock to the period end. A failing aging check warns but
// does not block.
func (s *closingService) CloseRun(ctx context.Context, entityID int64, year, month int, userID string) (*dto.CloseRunResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	preview, err := s.ClosePreview(ctx, entityID, year, month)
	if err != nil {
		return nil, err
	}
	if preview.Blocked() {
		return nil, fmt.Errorf("%w: bank_unreconciled=%t docs_unposted=%t",
			apperrors.ErrCloseBlocked, preview.BankUnreconciled, preview.DocsUnposted)
	}
	if !preview.AgingOK {
		logger.Warn("Closing with overdue open documents", slog.Int64("entity_id", entityID))
	}

	periodStart, periodEnd := periodBounds(year, month)
	netIncome, err := s.netIncome(ctx, entityID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	resp := &dto.CloseRunResponse{
		EntityID:  entityID,
		PeriodEnd: periodEnd,
		NetIncome: netIncome,
	}

	if !netIncome.IsZero() {
		entry, err := s.postClosingEntry(ctx, entityID, periodEnd, netIncome, userID)
		if err != nil {
			return nil, err
		}
		resp.ClosingEntryID = &entry.EntryID
	}

	if err := s.periodLockSvc.SetLockedThrough(ctx, entityID, periodEnd, userID); err != nil {
		return nil, err
	}

	logger.Info("Period closed",
		slog.Int64("entity_id", entityID),
		slog.String("period_end", periodEnd.Format("2006-01-02")),
		slog.String("net_income", netIncome.String()))
	return resp, nil
}

// netIncome sums revenue minus expense activity over the period, approved
// basis.
func (s *closingService) netIncome(ctx context.Context, entityID int64, start, end time.Time) (decimal.Decimal, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, entityID, &start, end, false)
	if err != nil {
		return decimal.Zero, err
	}
	net := decimal.Zero
	for _, a := range activity {
		switch a.AccountType {
		case domain.Revenue:
			net = net.Add(accounting.NetBalance(a.DebitTotal, a.CreditTotal, a.NormalBalance))
		case domain.Expense:
			net = net.Sub(accounting.NetBalance(a.DebitTotal, a.CreditTotal, a.NormalBalance))
		}
	}
	return net, nil
}

// postClosingEntry posts the two-line sweep: positive net income debits the
// income summary and credits retained earnings, a loss reverses the sides.
func (s *closingService) postClosingEntry(ctx context.Context, entityID int64, periodEnd time.Time, netIncome decimal.Decimal, userID string) (*domain.JournalEntry, error) {
	summary, err := s.accountRepo.FindAccountByCode(ctx, entityID, incomeSummaryCode)
	if err != nil {
		return nil, fmt.Errorf("income summary account (%d) lookup failed: %w", incomeSummaryCode, err)
	}
	retained, err := s.accountRepo.FindAccountByCode(ctx, entityID, retainedEarningsCode)
	if err != nil {
		return nil, fmt.Errorf("retained earnings account (%d) lookup failed: %w", retainedEarningsCode, err)
	}

	amount := netIncome.Abs()
	debitID, creditID := summary.AccountID, retained.AccountID
	if netIncome.IsNegative() {
		debitID, creditID = retained.AccountID, summary.AccountID
	}

	ref := fmt.Sprintf("CLOSE-%s", periodEnd.Format("2006-01"))
	req := dto.CreateEntryRequest{
		Date:        periodEnd,
		Description: fmt.Sprintf("Closing entry for %s", periodEnd.Format("January 2006")),
		Reference:   &ref,
		Lines: []dto.CreateLineRequest{
			{AccountID: debitID, Description: "Close net income", Debit: amount},
			{AccountID: creditID, Description: "Close net income", Credit: amount},
		},
	}
	return s.journalSvc.CreateSystemEntry(ctx, entityID, req, userID)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
	"github.com/avistalabs/ledger_backend/internal/middleware"
	"github.com/avistalabs/ledger_backend/internal/platform/config"
)

// splitTolerance is the rounding slack allowed when split parts are compared
// to the original transaction amount.
var splitTolerance = decimal.NewFromFloat(0.01)

// reconciliationService matches bank transactions against document-derived
// records and records period tie-out snapshots.
type reconciliationService struct {
	bankTxnRepo  portsrepo.BankTransactionRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	journalRepo  portsrepo.JournalRepositoryFacade
	reconRepo    portsrepo.ReconciliationRepositoryFacade
	journalSvc   portssvc.JournalSvcFacade
	cfg          *config.Config
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(
	bankTxnRepo portsrepo.BankTransactionRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	reconRepo portsrepo.ReconciliationRepositoryFacade,
	journalSvc portssvc.JournalSvcFacade,
	cfg *config.Config,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		bankTxnRepo:  bankTxnRepo,
		documentRepo: documentRepo,
		journalRepo:  journalRepo,
		reconRepo:    reconRepo,
		journalSvc:   journalSvc,
		cfg:          cfg,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) CreateBankTransaction(ctx context.Context, entityID int64, req dto.CreateBankTransactionRequest, userID string) (*domain.BankTransaction, error) {
	now := time.Now()
	txn := domain.BankTransaction{
		TransactionID: uuid.NewString(),
		EntityID:      entityID,
		TxnDate:       req.TxnDate,
		Amount:        req.Amount,
		Description:   req.Description,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if err := s.bankTxnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *reconciliationService) ListUnreconciled(ctx context.Context, entityID int64) ([]domain.BankTransaction, error) {
	return s.bankTxnRepo.ListUnreconciled(ctx, entityID)
}

// matches reports whether a document qualifies for a bank transaction:
// amounts within tolerance, vendor name appearing in the transaction
// description when the vendor is known, and dates within the day window.
func matches(txn domain.BankTransaction, doc domain.Document, tolerance decimal.Decimal, dayWindow int) bool {
	if doc.Total.Sub(txn.Amount.Abs()).Abs().GreaterThan(tolerance) {
		return false
	}
	if doc.Vendor != "" && !strings.Contains(strings.ToLower(txn.Description), strings.ToLower(doc.Vendor)) {
		return false
	}
	gap := txn.TxnDate.Sub(doc.DocDate)
	if gap < 0 {
		gap = -gap
	}
	return gap <= time.Duration(dayWindow)*24*time.Hour
}

// AutoMatch pairs each unreconciled bank transaction with the first
// qualifying document, marks both reconciled and carries the document's
// journal entry link onto the transaction. First match wins; no scoring.
func (s *reconciliationService) AutoMatch(ctx context.Context, entityID int64, req dto.AutoMatchRequest, userID string) (*dto.AutoMatchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tolerance := s.cfg.ReconAmountTolerance
	if req.Tolerance != nil {
		tolerance = *req.Tolerance
	}
	dayWindow := s.cfg.ReconDayWindow
	if req.DayWindow != nil {
		dayWindow = *req.DayWindow
	}

	txns, err := s.bankTxnRepo.ListUnreconciled(ctx, entityID)
	if err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.ListUnreconciled(ctx, entityID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	claimed := make(map[string]bool, len(docs))
	resp := &dto.AutoMatchResponse{Scanned: len(txns)}
	for _, txn := range txns {
		for _, doc := range docs {
			if claimed[doc.DocumentID] || !matches(txn, doc, tolerance, dayWindow) {
				continue
			}
			if err := s.bankTxnRepo.MarkReconciled(ctx, txn.TransactionID, doc.JournalEntryID, userID, now); err != nil {
				return nil, err
			}
			if err := s.documentRepo.MarkReconciled(ctx, doc.DocumentID, userID, now); err != nil {
				return nil, err
			}
			claimed[doc.DocumentID] = true
			resp.Matched++
			break
		}
	}
	logger.Info("Auto-match completed",
		slog.Int64("entity_id", entityID), slog.Int("scanned", resp.Scanned), slog.Int("matched", resp.Matched))
	return resp, nil
}

// getEntityTransaction loads a transaction and verifies it belongs to the
// entity.
func (s *reconciliationService) getEntityTransaction(ctx context.Context, entityID int64, txnID string) (*domain.BankTransaction, error) {
	txn, err := s.bankTxnRepo.FindTransactionByID(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if txn.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// ManualMatch links a transaction to a journal entry unconditionally. The
// operator's judgement overrides the matching heuristics.
func (s *reconciliationService) ManualMatch(ctx context.Context, entityID int64, txnID string, journalEntryID string, userID string) error {
	if _, err := s.getEntityTransaction(ctx, entityID, txnID); err != nil {
		return err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		return err
	}
	if entry.EntityID != entityID {
		return apperrors.ErrNotFound
	}
	return s.bankTxnRepo.MarkReconciled(ctx, txnID, &journalEntryID, userID, time.Now())
}

// Split divides an unreconciled transaction into parts that must sum to its
// absolute amount within a cent. Each part keeps the original's sign and
// date; the first part overwrites the row, the rest are inserted fresh.
func (s *reconciliationService) Split(ctx context.Context, entityID int64, txnID string, req dto.SplitRequest, userID string) ([]domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.getEntityTransaction(ctx, entityID, txnID)
	if err != nil {
		return nil, err
	}
	if original.Reconciled {
		return nil, fmt.Errorf("%w: transaction %s is already reconciled", apperrors.ErrValidation, txnID)
	}

	sum := decimal.Zero
	for _, part := range req.Parts {
		if !part.Amount.Abs().IsPositive() {
			return nil, fmt.Errorf("%w: split part amounts must be non-zero", apperrors.ErrValidation)
		}
		sum = sum.Add(part.Amount.Abs())
	}
	if sum.Sub(original.Amount.Abs()).Abs().GreaterThan(splitTolerance) {
		return nil, fmt.Errorf("%w: parts sum to %s, original is %s",
			apperrors.ErrSplitMismatch, sum.String(), original.Amount.Abs().String())
	}

	sign := decimal.NewFromInt(1)
	if original.Amount.IsNegative() {
		sign = sign.Neg()
	}

	now := time.Now()
	parts := make([]domain.BankTransaction, len(req.Parts))
	for i, part := range req.Parts {
		p := *original
		p.Amount = part.Amount.Abs().Mul(sign)
		if part.Description != "" {
			p.Description = part.Description
		}
		p.Touch(userID, now)
		if i > 0 {
			p.TransactionID = uuid.NewString()
			p.AuditFields = domain.NewAuditFields(userID, now)
		}
		parts[i] = p
	}

	if err := s.bankTxnRepo.ReplaceWithParts(ctx, *original, parts); err != nil {
		return nil, err
	}
	logger.Info("Bank transaction split",
		slog.String("transaction_id", txnID), slog.Int("parts", len(parts)))
	return parts, nil
}

// CreateEntryFromTransaction posts a two-line balanced entry on the
// transaction's absolute amount, then marks the transaction reconciled
// against it.
func (s *reconciliationService) CreateEntryFromTransaction(ctx context.Context, entityID int64, txnID string, req dto.CreateEntryFromTransactionRequest, userID string) (*domain.JournalEntry, error) {
	txn, err := s.getEntityTransaction(ctx, entityID, txnID)
	if err != nil {
		return nil, err
	}
	if txn.Reconciled {
		return nil, fmt.Errorf("%w: transaction %s is already reconciled", apperrors.ErrValidation, txnID)
	}

	amount := txn.Amount.Abs()
	ref := "BANK-" + txn.TransactionID
	entryReq := dto.CreateEntryRequest{
		Date:        txn.TxnDate,
		Description: txn.Description,
		Reference:   &ref,
		Lines: []dto.CreateLineRequest{
			{AccountID: req.DebitAccountID, Description: txn.Description, Debit: amount},
			{AccountID: req.CreditAccountID, Description: txn.Description, Credit: amount},
		},
	}
	entry, err := s.journalSvc.CreateSystemEntry(ctx, entityID, entryReq, userID)
	if err != nil {
		return nil, err
	}
	if err := s.bankTxnRepo.MarkReconciled(ctx, txnID, &entry.EntryID, userID, time.Now()); err != nil {
		return nil, err
	}
	return entry, nil
}

// Finalize records the period tie-out: the statement ending balance against
// the cleared-transaction total through the period end. The snapshot is
// append-only; re-finalizing writes a new row.
func (s *reconciliationService) Finalize(ctx context.Context, entityID int64, req dto.FinalizeReconciliationRequest, userID string) (*domain.ReconciliationSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, periodEnd := periodBounds(req.Year, req.Month)
	cleared, err := s.bankTxnRepo.SumCleared(ctx, entityID, periodEnd)
	if err != nil {
		return nil, err
	}

	// tie_out = max(0, 100 - |statement - cleared| / max(1, |statement|) * 100)
	hundred := decimal.NewFromInt(100)
	denom := decimal.Max(decimal.NewFromInt(1), req.StatementBalance.Abs())
	tieOut := hundred.Sub(req.StatementBalance.Sub(cleared).Abs().Div(denom).Mul(hundred))
	if tieOut.IsNegative() {
		tieOut = decimal.Zero
	}

	snapshot := domain.ReconciliationSnapshot{
		SnapshotID:       uuid.NewString(),
		EntityID:         entityID,
		Year:             req.Year,
		Month:            req.Month,
		StatementBalance: req.StatementBalance,
		ClearedBalance:   cleared,
		TieOutPercent:    tieOut.Round(2),
		CreatedAt:        time.Now(),
		CreatedBy:        userID,
	}
	if err := s.reconRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	logger.Info("Reconciliation finalized",
		slog.Int64("entity_id", entityID),
		slog.Int("year", req.Year), slog.Int("month", req.Month),
		slog.String("tie_out_percent", snapshot.TieOutPercent.String()))
	return &snapshot, nil
}

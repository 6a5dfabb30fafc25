package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

// CreateBankTransactionRequest is one row of a bank-sync batch. Amount is
// signed: negative for outflows.
type CreateBankTransactionRequest struct {
	TxnDate     time.Time       `json:"txnDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// AutoMatchRequest tunes a matching run. Nil fields fall back to the
// configured defaults.
type AutoMatchRequest struct {
	Tolerance *decimal.Decimal `json:"tolerance,omitempty"`
	DayWindow *int             `json:"dayWindow,omitempty"`
}

// AutoMatchResponse summarises a matching run.
type AutoMatchResponse struct {
	Scanned int `json:"scanned"`
	Matched int `json:"matched"`
}

// ManualMatchRequest links a bank transaction to a journal entry
// unconditionally.
type ManualMatchRequest struct {
	JournalEntryID string `json:"journalEntryID" binding:"required"`
}

// SplitPart is one slice of a split bank transaction.
type SplitPart struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// SplitRequest divides one bank transaction into parts that must sum to the
// original amount.
type SplitRequest struct {
	Parts []SplitPart `json:"parts" binding:"required,min=2,dive"`
}

// CreateEntryFromTransactionRequest posts a two-line balanced entry straight
// from a bank transaction.
type CreateEntryFromTransactionRequest struct {
	DebitAccountID  string `json:"debitAccountID" binding:"required"`
	CreditAccountID string `json:"creditAccountID" binding:"required"`
}

// FinalizeReconciliationRequest records the statement tie-out for a period.
type FinalizeReconciliationRequest struct {
	Year             int             `json:"year" binding:"required"`
	Month            int             `json:"month" binding:"required,min=1,max=12"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
}

// BankTransactionResponse is the API view of a bank transaction.
type BankTransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	EntityID       int64           `json:"entityID"`
	TxnDate        time.Time       `json:"txnDate"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Reconciled     bool            `json:"reconciled"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
}

// SnapshotResponse is the API view of a reconciliation snapshot.
type SnapshotResponse struct {
	SnapshotID       string          `json:"snapshotID"`
	EntityID         int64           `json:"entityID"`
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	ClearedBalance   decimal.Decimal `json:"clearedBalance"`
	TieOutPercent    decimal.Decimal `json:"tieOutPercent"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToBankTransactionResponse converts a domain.BankTransaction.
func ToBankTransactionResponse(t *domain.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		TransactionID:  t.TransactionID,
		EntityID:       t.EntityID,
		TxnDate:        t.TxnDate,
		Amount:         t.Amount,
		Description:    t.Description,
		Reconciled:     t.Reconciled,
		JournalEntryID: t.JournalEntryID,
	}
}

// ToBankTransactionResponses converts a slice of bank transactions.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	out := make([]BankTransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToBankTransactionResponse(&txns[i])
	}
	return out
}

// ToSnapshotResponse converts a domain.ReconciliationSnapshot.
func ToSnapshotResponse(s *domain.ReconciliationSnapshot) SnapshotResponse {
	return SnapshotResponse{
		SnapshotID:       s.SnapshotID,
		EntityID:         s.EntityID,
		Year:             s.Year,
		Month:            s.Month,
		StatementBalance: s.StatementBalance,
		ClearedBalance:   s.ClearedBalance,
		TieOutPercent:    s.TieOutPercent,
		CreatedAt:        s.CreatedAt,
	}
}

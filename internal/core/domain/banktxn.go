package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is an external bank feed row. The bank-sync collaborator
// inserts these; afterwards only the reconciliation matcher mutates them.
// Amount is signed: negative for outflows, positive for inflows.
type BankTransaction struct {
	TransactionID  string          `json:"transactionID"` // Primary key (UUID)
	EntityID       int64           `json:"entityID"`
	TxnDate        time.Time       `json:"txnDate"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Reconciled     bool            `json:"reconciled"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"` // Set when matched
	AuditFields
}

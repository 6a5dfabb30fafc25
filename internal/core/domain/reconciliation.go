package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationSnapshot is the immutable result of finalizing a bank
// reconciliation for an entity and period: the statement ending balance, the
// ledger's cleared-transaction total, and the tie-out percentage between
// them.
type ReconciliationSnapshot struct {
	SnapshotID       string          `json:"snapshotID"` // Primary key (UUID)
	EntityID         int64           `json:"entityID"`
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	ClearedBalance   decimal.Decimal `json:"clearedBalance"`
	TieOutPercent    decimal.Decimal `json:"tieOutPercent"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

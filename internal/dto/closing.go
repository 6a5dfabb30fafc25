package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosePreviewResponse reports the period-close gating conditions. The
// preview has no side effects.
type ClosePreviewResponse struct {
	EntityID         int64     `json:"entityID"`
	PeriodEnd        time.Time `json:"periodEnd"`
	BankUnreconciled bool      `json:"bankUnreconciled"`
	DocsUnposted     bool      `json:"docsUnposted"`
	AgingOK          bool      `json:"agingOK"`
}

// Blocked reports whether the hard gates would stop a close run. A failing
// aging check warns but does not block.
func (r *ClosePreviewResponse) Blocked() bool {
	return r.BankUnreconciled || r.DocsUnposted
}

// CloseRunResponse reports a completed period close.
type CloseRunResponse struct {
	EntityID       int64           `json:"entityID"`
	PeriodEnd      time.Time       `json:"periodEnd"`
	NetIncome      decimal.Decimal `json:"netIncome"`
	ClosingEntryID *string         `json:"closingEntryID,omitempty"`
}

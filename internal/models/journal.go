package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus mirrors domain.ApprovalStatus at the storage layer.
type ApprovalStatus string

// JournalEntry is the storage representation of a journal entry header.
type JournalEntry struct {
	EntryID        string
	EntityID       int64
	EntryNumber    string
	Sequence       int64
	EntryDate      time.Time
	Description    string
	Reference      *string
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	Status         ApprovalStatus
	IsPosted       bool
	PostedAt       *time.Time
	ApprovedBy     *string
	ApprovedAt     *time.Time
	AdjustsEntryID *string
	AuditFields
}

// JournalLine is the storage representation of one entry line.
type JournalLine struct {
	LineID      string
	EntryID     string
	AccountID   string
	LineNumber  int
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

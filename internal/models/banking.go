package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is the storage representation of a bank feed row.
type BankTransaction struct {
	TransactionID  string
	EntityID       int64
	TxnDate        time.Time
	Amount         decimal.Decimal
	Description    string
	Reconciled     bool
	JournalEntryID *string
	AuditFields
}

// Document is the storage representation of a document-derived record.
type Document struct {
	DocumentID     string
	EntityID       int64
	Kind           string
	Vendor         string
	Total          decimal.Decimal
	DocDate        time.Time
	DueDate        *time.Time
	Status         string
	Reconciled     bool
	JournalEntryID *string
	AuditFields
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes the paper trail a record came from.
type DocumentKind string

const (
	DocReceipt DocumentKind = "RECEIPT"
	DocBill    DocumentKind = "BILL"    // accounts payable
	DocInvoice DocumentKind = "INVOICE" // accounts receivable
)

// DocumentStatus tracks whether the document still needs a posting or a
// payment.
type DocumentStatus string

const (
	DocOpen   DocumentStatus = "OPEN"
	DocPosted DocumentStatus = "POSTED"
	DocPaid   DocumentStatus = "PAID"
)

// Document is a record produced by the document-ingestion collaborator
// (receipt, AP bill, AR invoice). The ledger core reads documents for the
// period-close gates and the reconciliation matcher; it never extracts text
// itself.
type Document struct {
	DocumentID     string          `json:"documentID"` // Primary key (UUID)
	EntityID       int64           `json:"entityID"`
	Kind           DocumentKind    `json:"kind"`
	Vendor         string          `json:"vendor"`
	Total          decimal.Decimal `json:"total"`
	DocDate        time.Time       `json:"docDate"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	Status         DocumentStatus  `json:"status"`
	Reconciled     bool            `json:"reconciled"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}

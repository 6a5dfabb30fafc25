package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

// CreateDocumentRequest records a document-derived draft from the ingestion
// collaborator (vendor, amount and dates already extracted upstream).
type CreateDocumentRequest struct {
	Kind    domain.DocumentKind `json:"kind" binding:"required,oneof=RECEIPT BILL INVOICE"`
	Vendor  string              `json:"vendor" binding:"required"`
	Total   decimal.Decimal     `json:"total" binding:"required"`
	DocDate time.Time           `json:"docDate" binding:"required"`
	DueDate *time.Time          `json:"dueDate,omitempty"`
}

// CreateEntryFromDocumentRequest drafts a two-line journal entry from a
// document and links the entry back to it.
type CreateEntryFromDocumentRequest struct {
	DebitAccountID  string `json:"debitAccountID" binding:"required"`
	CreditAccountID string `json:"creditAccountID" binding:"required"`
}

// DocumentResponse is the API view of a document record.
type DocumentResponse struct {
	DocumentID     string          `json:"documentID"`
	EntityID       int64           `json:"entityID"`
	Kind           string          `json:"kind"`
	Vendor         string          `json:"vendor"`
	Total          decimal.Decimal `json:"total"`
	DocDate        time.Time       `json:"docDate"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	Status         string          `json:"status"`
	Reconciled     bool            `json:"reconciled"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
}

// ToDocumentResponse converts a domain.Document.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:     d.DocumentID,
		EntityID:       d.EntityID,
		Kind:           string(d.Kind),
		Vendor:         d.Vendor,
		Total:          d.Total,
		DocDate:        d.DocDate,
		DueDate:        d.DueDate,
		Status:         string(d.Status),
		Reconciled:     d.Reconciled,
		JournalEntryID: d.JournalEntryID,
	}
}

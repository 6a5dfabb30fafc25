package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

// CreateLineRequest is one line of a new journal entry. Exactly one of Debit
// and Credit must be positive.
type CreateLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest carries a new journal entry with its lines.
type CreateEntryRequest struct {
	Date        time.Time           `json:"date" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Reference   *string             `json:"reference,omitempty"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest carries header edits for an unposted entry.
type UpdateEntryRequest struct {
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	Reference   *string    `json:"reference,omitempty"`
}

// ApproveEntryRequest records an approval decision.
type ApproveEntryRequest struct {
	Approve bool `json:"approve"`
}

// BatchPostRequest posts approved entries either by explicit ids or by an
// entity-wide date range. Already-posted entries are skipped.
type BatchPostRequest struct {
	EntryIDs []string   `json:"entryIDs,omitempty"`
	FromDate *time.Time `json:"fromDate,omitempty"`
	ToDate   *time.Time `json:"toDate,omitempty"`
}

// BatchPostResponse summarises a batch post run.
type BatchPostResponse struct {
	Posted  int `json:"posted"`
	Skipped int `json:"skipped"`
}

// CreateAdjustingEntryRequest spawns a reversing entry for a posted original.
type CreateAdjustingEntryRequest struct {
	Notes string `json:"notes"`
}

// ListEntriesParams paginate entry listings.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// LineResponse is the API view of a journal line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	LineNumber  int             `json:"lineNumber"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse is the API view of a journal entry.
type EntryResponse struct {
	EntryID        string          `json:"entryID"`
	EntityID       int64           `json:"entityID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      *string         `json:"reference,omitempty"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Status         string          `json:"status"`
	IsPosted       bool            `json:"isPosted"`
	PostedAt       *time.Time      `json:"postedAt,omitempty"`
	ApprovedBy     *string         `json:"approvedBy,omitempty"`
	AdjustsEntryID *string         `json:"adjustsEntryID,omitempty"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	Lines          []LineResponse  `json:"lines,omitempty"`
}

// ListEntriesResponse is a paginated entry listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.JournalLine to its API view.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		LineNumber:  l.LineNumber,
		Description: l.Description,
		Debit:       l.Debit,
		Credit:      l.Credit,
	}
}

// ToEntryResponse converts a domain.JournalEntry to its API view.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:        e.EntryID,
		EntityID:       e.EntityID,
		EntryNumber:    e.EntryNumber,
		EntryDate:      e.EntryDate,
		Description:    e.Description,
		Reference:      e.Reference,
		TotalDebit:     e.TotalDebit,
		TotalCredit:    e.TotalCredit,
		Status:         string(e.Status),
		IsPosted:       e.IsPosted,
		PostedAt:       e.PostedAt,
		ApprovedBy:     e.ApprovedBy,
		AdjustsEntryID: e.AdjustsEntryID,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}

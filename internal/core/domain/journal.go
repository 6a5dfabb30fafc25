package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
)

// ApprovalStatus indicates where a journal entry sits in the approval
// workflow. Posting is tracked separately: a posted entry keeps status
// APPROVED and carries IsPosted=true.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// JournalEntry is the header of a balanced double-entry posting. Entry
// numbers are sequential per entity, formatted JE-{entity:03d}-{seq:06d}.
type JournalEntry struct {
	EntryID     string          `json:"entryID"` // Primary key (UUID)
	EntityID    int64           `json:"entityID"`
	EntryNumber string          `json:"entryNumber"`
	Sequence    int64           `json:"sequence"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Reference   *string         `json:"reference,omitempty"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Status      ApprovalStatus  `json:"status"`
	IsPosted    bool            `json:"isPosted"`
	PostedAt    *time.Time      `json:"postedAt,omitempty"`
	ApprovedBy  *string         `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time      `json:"approvedAt,omitempty"`
	// AdjustsEntryID links an adjusting entry back to the posted entry it
	// reverses. Nil for ordinary entries.
	AdjustsEntryID *string `json:"adjustsEntryID,omitempty"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is a single line of a journal entry affecting one account.
// Exactly one of Debit and Credit is non-zero.
type JournalLine struct {
	LineID      string          `json:"lineID"` // Primary key (UUID)
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	LineNumber  int             `json:"lineNumber"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// FormatEntryNumber renders the sequential entry number for an entity.
func FormatEntryNumber(entityID int64, sequence int64) string {
	return fmt.Sprintf("JE-%03d-%06d", entityID, sequence)
}

// IsAdjusting reports whether this entry reverses a posted original.
func (e *JournalEntry) IsAdjusting() bool {
	return e.AdjustsEntryID != nil
}

// The approval workflow is modeled with typed states so that illegal
// transitions do not exist as methods: only a PendingEntry can be approved or
// rejected, and only an ApprovedEntry can be posted. Services obtain the
// typed view via AsPending / AsApproved, which enforce the runtime guard, and
// the repository commits the transition with a conditional update keyed on
// the current status so concurrent approvers race to a single winner.

// PendingEntry is a journal entry in the PENDING state.
type PendingEntry struct {
	JournalEntry
}

// ApprovedEntry is a journal entry in the APPROVED state, not yet posted.
type ApprovedEntry struct {
	JournalEntry
}

// RejectedEntry is a journal entry in the REJECTED state. Terminal.
type RejectedEntry struct {
	JournalEntry
}

// PostedEntry is an approved entry made permanent. Immutable.
type PostedEntry struct {
	JournalEntry
}

// AsPending narrows the entry to its pending view, failing with ErrNotPending
// for any other state.
func (e JournalEntry) AsPending() (PendingEntry, error) {
	if e.Status != StatusPending {
		return PendingEntry{}, fmt.Errorf("%w: entry %s has status %s", apperrors.ErrNotPending, e.EntryNumber, e.Status)
	}
	return PendingEntry{e}, nil
}

// AsApproved narrows the entry to its approved-but-unposted view.
func (e JournalEntry) AsApproved() (ApprovedEntry, error) {
	if e.Status != StatusApproved {
		return ApprovedEntry{}, fmt.Errorf("%w: entry %s has status %s, expected APPROVED", apperrors.ErrValidation, e.EntryNumber, e.Status)
	}
	return ApprovedEntry{e}, nil
}

// Approve transitions a pending entry to APPROVED. The approver must differ
// from the creator.
func (p PendingEntry) Approve(approverID string, now time.Time) (ApprovedEntry, error) {
	if approverID == p.CreatedBy {
		return ApprovedEntry{}, fmt.Errorf("%w: entry %s was created by %s", apperrors.ErrSelfApproval, p.EntryNumber, p.CreatedBy)
	}
	e := p.JournalEntry
	e.Status = StatusApproved
	e.ApprovedBy = &approverID
	e.ApprovedAt = &now
	e.Touch(approverID, now)
	return ApprovedEntry{e}, nil
}

// Reject transitions a pending entry to REJECTED. The same identity rule as
// Approve applies.
func (p PendingEntry) Reject(approverID string, now time.Time) (RejectedEntry, error) {
	if approverID == p.CreatedBy {
		return RejectedEntry{}, fmt.Errorf("%w: entry %s was created by %s", apperrors.ErrSelfApproval, p.EntryNumber, p.CreatedBy)
	}
	e := p.JournalEntry
	e.Status = StatusRejected
	e.ApprovedBy = &approverID
	e.ApprovedAt = &now
	e.Touch(approverID, now)
	return RejectedEntry{e}, nil
}

// Post marks an approved entry as posted. From this point the entry and its
// lines are immutable.
func (a ApprovedEntry) Post(now time.Time) PostedEntry {
	e := a.JournalEntry
	e.IsPosted = true
	e.PostedAt = &now
	e.LastUpdatedAt = now
	return PostedEntry{e}
}

// ValidateBalanced checks the double-entry invariant on a set of lines: every
// line single-sided and positive, total debits equal to total credits, and
// the total strictly positive.
func ValidateBalanced(lines []JournalLine) (totalDebit, totalCredit decimal.Decimal, err error) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	if len(lines) < 2 {
		return totalDebit, totalCredit, fmt.Errorf("%w: an entry needs at least two lines", apperrors.ErrUnbalanced)
	}
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return totalDebit, totalCredit, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, line.LineNumber)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return totalDebit, totalCredit, fmt.Errorf("%w: line %d must have exactly one of debit or credit set", apperrors.ErrValidation, line.LineNumber)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		return totalDebit, totalCredit, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}
	if !totalDebit.IsPositive() {
		return totalDebit, totalCredit, fmt.Errorf("%w: entry total must be greater than zero", apperrors.ErrUnbalanced)
	}
	return totalDebit, totalCredit, nil
}

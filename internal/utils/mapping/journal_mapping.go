package mapping

import (
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	"github.com/avistalabs/ledger_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its storage model.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		EntityID:       d.EntityID,
		EntryNumber:    d.EntryNumber,
		Sequence:       d.Sequence,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		Reference:      d.Reference,
		TotalDebit:     d.TotalDebit,
		TotalCredit:    d.TotalCredit,
		Status:         models.ApprovalStatus(d.Status),
		IsPosted:       d.IsPosted,
		PostedAt:       d.PostedAt,
		ApprovedBy:     d.ApprovedBy,
		ApprovedAt:     d.ApprovedAt,
		AdjustsEntryID: d.AdjustsEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a storage JournalEntry to the domain.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		EntityID:       m.EntityID,
		EntryNumber:    m.EntryNumber,
		Sequence:       m.Sequence,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		Reference:      m.Reference,
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		Status:         domain.ApprovalStatus(m.Status),
		IsPosted:       m.IsPosted,
		PostedAt:       m.PostedAt,
		ApprovedBy:     m.ApprovedBy,
		ApprovedAt:     m.ApprovedAt,
		AdjustsEntryID: m.AdjustsEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its storage model.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		LineNumber:  d.LineNumber,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// ToDomainJournalLine converts a storage JournalLine to the domain.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		LineNumber:  m.LineNumber,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}

// ToDomainJournalLineSlice converts a slice of storage lines to the domain.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

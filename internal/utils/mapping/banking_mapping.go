package mapping

import (
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	"github.com/avistalabs/ledger_backend/internal/models"
)

// ToModelBankTransaction converts a domain BankTransaction to its storage
// model.
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID:  d.TransactionID,
		EntityID:       d.EntityID,
		TxnDate:        d.TxnDate,
		Amount:         d.Amount,
		Description:    d.Description,
		Reconciled:     d.Reconciled,
		JournalEntryID: d.JournalEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankTransaction converts a storage BankTransaction to the domain.
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:  m.TransactionID,
		EntityID:       m.EntityID,
		TxnDate:        m.TxnDate,
		Amount:         m.Amount,
		Description:    m.Description,
		Reconciled:     m.Reconciled,
		JournalEntryID: m.JournalEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDocument converts a domain Document to its storage model.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
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
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a storage Document to the domain.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:     m.DocumentID,
		EntityID:       m.EntityID,
		Kind:           domain.DocumentKind(m.Kind),
		Vendor:         m.Vendor,
		Total:          m.Total,
		DocDate:        m.DocDate,
		DueDate:        m.DueDate,
		Status:         domain.DocumentStatus(m.Status),
		Reconciled:     m.Reconciled,
		JournalEntryID: m.JournalEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

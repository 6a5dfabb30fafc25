package mapping

import (
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	"github.com/avistalabs/ledger_backend/internal/models"
)

// ToModelAccount converts a domain Account to its storage model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		EntityID:        d.EntityID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		NormalBalance:   models.NormalBalance(d.NormalBalance),
		ParentAccountID: d.ParentAccountID,
		IsActive:        d.IsActive,
		Balance:         d.Balance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a storage Account to the domain.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		EntityID:        m.EntityID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		NormalBalance:   domain.NormalBalance(m.NormalBalance),
		ParentAccountID: m.ParentAccountID,
		IsActive:        m.IsActive,
		Balance:         m.Balance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// Package services implements the core business logic behind the service
// facades.
package services

import (
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/platform/config"
)

// NewServiceContainer wires every service onto the repository provider.
// Construction order follows the dependency chain: identity and registry
// services first, then the journal engine, then the workflows composed on
// top of it.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	entitySvc := NewEntityService(repos.Entity)
	userSvc := NewUserService(repos.User)
	authSvc := NewAuthService(repos.User, cfg)
	accountSvc := NewAccountService(repos.Account)
	journalSvc := NewJournalService(repos.Journal, repos.PeriodLock, accountSvc, entitySvc)
	periodLockSvc := NewPeriodLockService(repos.PeriodLock)
	closingSvc := NewClosingService(repos.BankTxn, repos.Document, repos.Reconciliation,
		repos.Reporting, repos.Account, journalSvc, periodLockSvc, cfg)
	conversionSvc := NewConversionService(repos.Entity, repos.Conversion, repos.Reporting,
		accountSvc, journalSvc, periodLockSvc)
	reconciliationSvc := NewReconciliationService(repos.BankTxn, repos.Document, repos.Journal,
		repos.Reconciliation, journalSvc, cfg)
	documentSvc := NewDocumentService(repos.Document, journalSvc)
	reportingSvc := NewReportingService(repos.Reporting)

	return &portssvc.ServiceContainer{
		Entity:         entitySvc,
		User:           userSvc,
		Auth:           authSvc,
		Account:        accountSvc,
		Journal:        journalSvc,
		PeriodLock:     periodLockSvc,
		Closing:        closingSvc,
		Conversion:     conversionSvc,
		Reconciliation: reconciliationSvc,
		Document:       documentSvc,
		Reporting:      reportingSvc,
	}
}

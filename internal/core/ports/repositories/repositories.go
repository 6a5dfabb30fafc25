// Package repositories defines the persistence interfaces the core services
// depend on. Implementations live under internal/repositories.
package repositories

// RepositoryProvider aggregates all repository facades for dependency
// injection into the service container.
type RepositoryProvider struct {
	Entity         EntityRepositoryFacade
	User           UserRepositoryFacade
	Account        AccountRepositoryFacade
	Journal        JournalRepositoryFacade
	PeriodLock     PeriodLockRepositoryFacade
	BankTxn        BankTransactionRepositoryFacade
	Document       DocumentRepositoryFacade
	Conversion     ConversionRepositoryFacade
	Reconciliation ReconciliationRepositoryFacade
	Reporting      ReportingRepositoryFacade
}

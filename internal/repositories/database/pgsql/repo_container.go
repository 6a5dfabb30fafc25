// Package pgsql implements the repository facades on PostgreSQL via pgx.
package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Entity:         newPgxEntityRepository(pool),
		User:           newPgxUserRepository(pool),
		Account:        newPgxAccountRepository(pool),
		Journal:        newPgxJournalRepository(pool),
		PeriodLock:     newPgxPeriodLockRepository(pool),
		BankTxn:        newPgxBankTransactionRepository(pool),
		Document:       newPgxDocumentRepository(pool),
		Conversion:     newPgxConversionRepository(pool),
		Reconciliation: newPgxReconciliationRepository(pool),
		Reporting:      newPgxReportingRepository(pool),
	}
}

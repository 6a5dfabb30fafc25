package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	"github.com/avistalabs/ledger_backend/internal/models"
	"github.com/avistalabs/ledger_backend/internal/utils/mapping"
)

const bankTxnColumns = `transaction_id, entity_id, txn_date, amount, description, reconciled, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxBankTransactionRepository persists external bank feed rows.
type PgxBankTransactionRepository struct {
	BaseRepository
}

func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryFacade {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

func bankTxnArgs(m models.BankTransaction) []any {
	return []any{
		m.TransactionID,
		m.EntityID,
		m.TxnDate,
		m.Amount,
		m.Description,
		m.Reconciled,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func scanBankTxn(row pgx.Row) (*models.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.EntityID,
		&m.TxnDate,
		&m.Amount,
		&m.Description,
		&m.Reconciled,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveTransaction inserts a bank feed row.
func (r *PgxBankTransactionRepository) SaveTransaction(ctx context.Context, txn domain.BankTransaction) error {
	m := mapping.ToModelBankTransaction(txn)
	query := `
		INSERT INTO bank_transactions (` + bankTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	if _, err := r.Pool.Exec(ctx, query, bankTxnArgs(m)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert bank transaction "+m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a bank transaction by id.
func (r *PgxBankTransactionRepository) FindTransactionByID(ctx context.Context, txnID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE transaction_id = $1;`
	m, err := scanBankTxn(r.Pool.QueryRow(ctx, query, txnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank transaction "+txnID, err)
	}
	d := mapping.ToDomainBankTransaction(*m)
	return &d, nil
}

// ListUnreconciled returns the entity's unmatched transactions in date order.
func (r *PgxBankTransactionRepository) ListUnreconciled(ctx context.Context, entityID int64) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTxnColumns + `
		FROM bank_transactions
		WHERE entity_id = $1 AND reconciled = false
		ORDER BY txn_date, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list unreconciled bank transactions", err)
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		m, err := scanBankTxn(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		txns = append(txns, mapping.ToDomainBankTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank transaction rows", err)
	}
	return txns, nil
}

// MarkReconciled flags a transaction as matched, recording the journal entry
// it cleared against when one exists.
func (r *PgxBankTransactionRepository) MarkReconciled(ctx context.Context, txnID string, journalEntryID *string, userID string, now time.Time) error {
	query := `
		UPDATE bank_transactions
		SET reconciled = true, journal_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND reconciled = false;
	`
	tag, err := r.Pool.Exec(ctx, query, txnID, journalEntryID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark bank transaction reconciled "+txnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceWithParts rewrites the original row with the first part and inserts
// the remaining parts, all unreconciled, in one transaction.
func (r *PgxBankTransactionRepository) ReplaceWithParts(ctx context.Context, original domain.BankTransaction, parts []domain.BankTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	first := mapping.ToModelBankTransaction(parts[0])
	tag, err := tx.Exec(ctx, `
		UPDATE bank_transactions
		SET amount = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND reconciled = false;
	`, original.TransactionID, first.Amount, first.Description, first.LastUpdatedAt, first.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to rewrite split transaction "+original.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	batch := &pgx.Batch{}
	insert := `INSERT INTO bank_transactions (` + bankTxnColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	for _, part := range parts[1:] {
		batch.Queue(insert, bankTxnArgs(mapping.ToModelBankTransaction(part))...)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert split parts for "+original.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// SumCleared totals reconciled transaction amounts for the entity through the
// given date.
func (r *PgxBankTransactionRepository) SumCleared(ctx context.Context, entityID int64, through time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM bank_transactions
		WHERE entity_id = $1 AND reconciled = true AND txn_date <= $2;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, entityID, through).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum cleared bank transactions", err)
	}
	return total, nil
}

// HasUnreconciledThrough reports whether any unmatched transactions remain on
// or before the given date.
func (r *PgxBankTransactionRepository) HasUnreconciledThrough(ctx context.Context, entityID int64, through time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bank_transactions
			WHERE entity_id = $1 AND reconciled = false AND txn_date <= $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, entityID, through).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check unreconciled bank transactions", err)
	}
	return exists, nil
}

package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	"github.com/avistalabs/ledger_backend/internal/models"
	"github.com/avistalabs/ledger_backend/internal/utils/accounting"
	"github.com/avistalabs/ledger_backend/internal/utils/mapping"
)

const accountColumns = `account_id, entity_id, code, name, account_type, normal_balance, parent_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository persists chart-of-accounts entries.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.EntityID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.NormalBalance,
		&m.ParentAccountID,
		&m.IsActive,
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

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.EntityID,
		m.Code,
		m.Name,
		m.AccountType,
		m.NormalBalance,
		m.ParentAccountID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// FindAccountByCode retrieves an account by its entity-scoped code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, entityID int64, code int) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND code = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, entityID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code", err)
	}
	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// FindAccountsByIDs retrieves a set of accounts keyed by id.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// ListAccounts returns an entity's accounts ordered by code, each annotated
// with its running balance over approved journal lines, netted to the
// account's normal side.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, entityID int64, activeOnly bool) ([]domain.Account, error) {
	query := `
		SELECT a.account_id, a.entity_id, a.code, a.name, a.account_type, a.normal_balance,
		       a.parent_account_id, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
		       COALESCE(t.debit_total, 0), COALESCE(t.credit_total, 0)
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, SUM(l.debit) AS debit_total, SUM(l.credit) AS credit_total
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.entity_id = $1 AND e.status = 'APPROVED'
			GROUP BY l.account_id
		) t ON t.account_id = a.account_id
		WHERE a.entity_id = $1 AND ($2 = false OR a.is_active = true)
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, activeOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var m models.Account
		var debitTotal, creditTotal decimal.Decimal
		err := rows.Scan(
			&m.AccountID,
			&m.EntityID,
			&m.Code,
			&m.Name,
			&m.AccountType,
			&m.NormalBalance,
			&m.ParentAccountID,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&debitTotal,
			&creditTotal,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		d := mapping.ToDomainAccount(m)
		d.Balance = accounting.NetBalance(debitTotal, creditTotal, d.NormalBalance)
		accounts = append(accounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

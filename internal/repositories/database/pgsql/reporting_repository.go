package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
)

// PgxReportingRepository aggregates journal lines per account for the
// statement services.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetAccountActivity sums debit and credit line amounts per account over the
// window. Only approved entries contribute; with postedOnly the entry must
// also be posted. The results come back in account-code order.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, entityID int64, start *time.Time, end time.Time, postedOnly bool) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.normal_balance,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.entity_id = $1
		  AND e.status = 'APPROVED'
		  AND e.entry_date <= $2
		  AND ($3 = false OR e.is_posted = true)
		  AND ($4::timestamptz IS NULL OR e.entry_date >= $4)
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.normal_balance
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, end, postedOnly, start)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate account activity", err)
	}
	defer rows.Close()

	activity := []domain.AccountActivity{}
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(
			&a.AccountID,
			&a.Code,
			&a.Name,
			&a.AccountType,
			&a.NormalBalance,
			&a.DebitTotal,
			&a.CreditTotal,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return activity, nil
}

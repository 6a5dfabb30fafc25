package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
)

// PgxReconciliationRepository persists immutable tie-out snapshots.
type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

// SaveSnapshot inserts a snapshot. Snapshots are never updated; re-finalizing
// a period appends a new row.
func (r *PgxReconciliationRepository) SaveSnapshot(ctx context.Context, snapshot domain.ReconciliationSnapshot) error {
	query := `
		INSERT INTO reconciliation_snapshots
			(snapshot_id, entity_id, year, month, statement_balance, cleared_balance, tie_out_percent, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		snapshot.SnapshotID,
		snapshot.EntityID,
		snapshot.Year,
		snapshot.Month,
		snapshot.StatementBalance,
		snapshot.ClearedBalance,
		snapshot.TieOutPercent,
		snapshot.CreatedAt,
		snapshot.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation snapshot", err)
	}
	return nil
}

// FindLatestSnapshot returns the most recent snapshot for the entity and
// period, or ErrNotFound.
func (r *PgxReconciliationRepository) FindLatestSnapshot(ctx context.Context, entityID int64, year, month int) (*domain.ReconciliationSnapshot, error) {
	query := `
		SELECT snapshot_id, entity_id, year, month, statement_balance, cleared_balance, tie_out_percent, created_at, created_by
		FROM reconciliation_snapshots
		WHERE entity_id = $1 AND year = $2 AND month = $3
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var s domain.ReconciliationSnapshot
	err := r.Pool.QueryRow(ctx, query, entityID, year, month).Scan(
		&s.SnapshotID,
		&s.EntityID,
		&s.Year,
		&s.Month,
		&s.StatementBalance,
		&s.ClearedBalance,
		&s.TieOutPercent,
		&s.CreatedAt,
		&s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation snapshot", err)
	}
	return &s, nil
}

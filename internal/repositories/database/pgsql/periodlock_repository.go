package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
)

// PgxPeriodLockRepository persists the per-entity posting watermark.
type PgxPeriodLockRepository struct {
	BaseRepository
}

func newPgxPeriodLockRepository(pool *pgxpool.Pool) portsrepo.PeriodLockRepositoryFacade {
	return &PgxPeriodLockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodLockRepositoryFacade = (*PgxPeriodLockRepository)(nil)

// FindLock retrieves the entity's period lock, or ErrNotFound when the entity
// has never been locked.
func (r *PgxPeriodLockRepository) FindLock(ctx context.Context, entityID int64) (*domain.PeriodLock, error) {
	query := `
		SELECT entity_id, locked_through, updated_at, updated_by
		FROM period_locks
		WHERE entity_id = $1;
	`
	var lock domain.PeriodLock
	err := r.Pool.QueryRow(ctx, query, entityID).Scan(
		&lock.EntityID,
		&lock.LockedThrough,
		&lock.UpdatedAt,
		&lock.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period lock", err)
	}
	return &lock, nil
}

// UpsertLock writes the locked-through date. GREATEST on the stored value
// keeps the watermark monotonic even under concurrent writers.
func (r *PgxPeriodLockRepository) UpsertLock(ctx context.Context, entityID int64, lockedThrough time.Time, userID string, now time.Time) error {
	query := `
		INSERT INTO period_locks (entity_id, locked_through, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entity_id) DO UPDATE
		SET locked_through = GREATEST(period_locks.locked_through, EXCLUDED.locked_through),
		    updated_at = EXCLUDED.updated_at,
		    updated_by = EXCLUDED.updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, entityID, lockedThrough, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert period lock", err)
	}
	return nil
}

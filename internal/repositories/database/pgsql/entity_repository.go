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

// PgxEntityRepository persists accounting entities.
type PgxEntityRepository struct {
	BaseRepository
}

func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

// SaveEntity inserts a new entity. The entity id is assigned by the database
// sequence and returned on the persisted copy.
func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) (*domain.Entity, error) {
	query := `
		INSERT INTO entities (name, legal_type, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING entity_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		entity.Name,
		entity.LegalType,
		entity.Status,
		entity.CreatedAt,
		entity.CreatedBy,
		entity.LastUpdatedAt,
		entity.LastUpdatedBy,
	).Scan(&entity.EntityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert entity", err)
	}
	return &entity, nil
}

// FindEntityByID retrieves an entity by its id.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID int64) (*domain.Entity, error) {
	query := `
		SELECT entity_id, name, legal_type, status, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE entity_id = $1;
	`
	var e domain.Entity
	err := r.Pool.QueryRow(ctx, query, entityID).Scan(
		&e.EntityID,
		&e.Name,
		&e.LegalType,
		&e.Status,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entity", err)
	}
	return &e, nil
}

// ListEntities returns all entities ordered by id.
func (r *PgxEntityRepository) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	query := `
		SELECT entity_id, name, legal_type, status, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		ORDER BY entity_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list entities", err)
	}
	defer rows.Close()

	entities := []domain.Entity{}
	for rows.Next() {
		var e domain.Entity
		if err := rows.Scan(
			&e.EntityID,
			&e.Name,
			&e.LegalType,
			&e.Status,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entity row", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entity rows", err)
	}
	return entities, nil
}

// UpdateEntityStatus updates an entity's status.
func (r *PgxEntityRepository) UpdateEntityStatus(ctx context.Context, entityID int64, status domain.EntityStatus, userID string, now time.Time) error {
	query := `
		UPDATE entities
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entity_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entityID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entity status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

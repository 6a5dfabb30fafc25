package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
)

const conversionColumns = `conversion_id, source_entity_id, target_entity_id, effective_date, equity_total,
	common_stock, apic, opening_entry_id, created_at, created_by`

// PgxConversionRepository persists the append-only conversion audit trail.
type PgxConversionRepository struct {
	BaseRepository
}

func newPgxConversionRepository(pool *pgxpool.Pool) portsrepo.ConversionRepositoryFacade {
	return &PgxConversionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ConversionRepositoryFacade = (*PgxConversionRepository)(nil)

func scanConversion(row pgx.Row) (*domain.ConversionRecord, error) {
	var c domain.ConversionRecord
	err := row.Scan(
		&c.ConversionID,
		&c.SourceEntityID,
		&c.TargetEntityID,
		&c.EffectiveDate,
		&c.EquityTotal,
		&c.CommonStock,
		&c.APIC,
		&c.OpeningEntryID,
		&c.CreatedAt,
		&c.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveConversion inserts a conversion record. The unique index on the source
// entity makes a second conversion of the same entity fail with ErrDuplicate.
func (r *PgxConversionRepository) SaveConversion(ctx context.Context, record domain.ConversionRecord) error {
	query := `
		INSERT INTO conversions (` + conversionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.ConversionID,
		record.SourceEntityID,
		record.TargetEntityID,
		record.EffectiveDate,
		record.EquityTotal,
		record.CommonStock,
		record.APIC,
		record.OpeningEntryID,
		record.CreatedAt,
		record.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert conversion record", err)
	}
	return nil
}

// FindConversionBySource retrieves the conversion record for a source entity.
func (r *PgxConversionRepository) FindConversionBySource(ctx context.Context, sourceEntityID int64) (*domain.ConversionRecord, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions WHERE source_entity_id = $1;`
	c, err := scanConversion(r.Pool.QueryRow(ctx, query, sourceEntityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find conversion record", err)
	}
	return c, nil
}

// ListConversions returns all conversion records, newest first.
func (r *PgxConversionRepository) ListConversions(ctx context.Context) ([]domain.ConversionRecord, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list conversion records", err)
	}
	defer rows.Close()

	records := []domain.ConversionRecord{}
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan conversion row", err)
		}
		records = append(records, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating conversion rows", err)
	}
	return records, nil
}

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
	"github.com/avistalabs/ledger_backend/internal/models"
	"github.com/avistalabs/ledger_backend/internal/utils/mapping"
)

const documentColumns = `document_id, entity_id, kind, vendor, total, doc_date, due_date, status, reconciled,
	journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxDocumentRepository persists document-derived records.
type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.EntityID,
		&m.Kind,
		&m.Vendor,
		&m.Total,
		&m.DocDate,
		&m.DueDate,
		&m.Status,
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

// SaveDocument inserts a document record.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.EntityID,
		m.Kind,
		m.Vendor,
		m.Total,
		m.DocDate,
		m.DueDate,
		m.Status,
		m.Reconciled,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a document by id.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}
	d := mapping.ToDomainDocument(*m)
	return &d, nil
}

// ListUnreconciled returns unreconciled documents that already carry a posted
// journal entry link, in document-date order. These are match candidates.
func (r *PgxDocumentRepository) ListUnreconciled(ctx context.Context, entityID int64) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE entity_id = $1 AND reconciled = false AND journal_entry_id IS NOT NULL
		ORDER BY doc_date, document_id;
	`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list unreconciled documents", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		docs = append(docs, mapping.ToDomainDocument(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return docs, nil
}

// HasUnpostedTotals reports whether any document dated in or before the
// period carries a total but no journal entry.
func (r *PgxDocumentRepository) HasUnpostedTotals(ctx context.Context, entityID int64, through time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM documents
			WHERE entity_id = $1 AND doc_date <= $2 AND total <> 0 AND journal_entry_id IS NULL
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, entityID, through).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check unposted document totals", err)
	}
	return exists, nil
}

// CountOverdueOpen counts OPEN bills and invoices due more than agingDays
// before asOf.
func (r *PgxDocumentRepository) CountOverdueOpen(ctx context.Context, entityID int64, asOf time.Time, agingDays int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM documents
		WHERE entity_id = $1
		  AND status = 'OPEN'
		  AND kind IN ('BILL', 'INVOICE')
		  AND due_date IS NOT NULL
		  AND due_date < $2 - make_interval(days => $3);
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, entityID, asOf, agingDays).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count overdue documents", err)
	}
	return count, nil
}

// MarkReconciled flags a document as matched to a bank transaction.
func (r *PgxDocumentRepository) MarkReconciled(ctx context.Context, documentID string, userID string, now time.Time) error {
	query := `
		UPDATE documents
		SET reconciled = true, last_updated_at = $2, last_updated_by = $3
		WHERE document_id = $1 AND reconciled = false;
	`
	tag, err := r.Pool.Exec(ctx, query, documentID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark document reconciled "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LinkJournalEntry attaches a journal entry to the document and advances its
// status.
func (r *PgxDocumentRepository) LinkJournalEntry(ctx context.Context, documentID string, journalEntryID string, status domain.DocumentStatus, userID string, now time.Time) error {
	query := `
		UPDATE documents
		SET journal_entry_id = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, documentID, journalEntryID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal entry to document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	"github.com/avistalabs/ledger_backend/internal/models"
	"github.com/avistalabs/ledger_backend/internal/utils/mapping"
	"github.com/avistalabs/ledger_backend/internal/utils/pagination"
)

const entryColumns = `entry_id, entity_id, entry_number, sequence, entry_date, description, reference,
	total_debit, total_credit, status, is_posted, posted_at, approved_by, approved_at, adjusts_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxJournalRepository persists journal entries and their lines.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry persists an entry header and its lines in one transaction.
// The per-entity sequence row serializes number assignment: the upsert takes
// a row lock, so concurrent creators queue rather than duplicate numbers.
// The period lock is re-read inside the same transaction so a lock advanced
// after the service-level check still rejects the entry.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Re-validate the period lock immediately before commit. Adjusting
	// entries are exempt from the date check. Same day-granularity rule as
	// the service-level check.
	if !entry.IsAdjusting() {
		var lockedThrough time.Time
		err := tx.QueryRow(ctx,
			`SELECT locked_through FROM period_locks WHERE entity_id = $1 FOR SHARE;`,
			entry.EntityID,
		).Scan(&lockedThrough)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, "failed to read period lock", err)
		}
		if err == nil && (domain.PeriodLock{LockedThrough: lockedThrough}).Covers(entry.EntryDate) {
			return nil, fmt.Errorf("%w: entity %d is locked through %s",
				apperrors.ErrPeriodLocked, entry.EntityID, lockedThrough.Format("2006-01-02"))
		}
	}

	// Assign the next sequential entry number for the entity.
	err = tx.QueryRow(ctx, `
		INSERT INTO entry_sequences (entity_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (entity_id) DO UPDATE SET last_value = entry_sequences.last_value + 1
		RETURNING last_value;
	`, entry.EntityID).Scan(&entry.Sequence)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to assign entry sequence", err)
	}
	entry.EntryNumber = domain.FormatEntryNumber(entry.EntityID, entry.Sequence)

	m := mapping.ToModelJournalEntry(entry)
	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`,
		m.EntryID,
		m.EntityID,
		m.EntryNumber,
		m.Sequence,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.TotalDebit,
		m.TotalCredit,
		m.Status,
		m.IsPosted,
		m.PostedAt,
		m.ApprovedBy,
		m.ApprovedAt,
		m.AdjustsEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, line_number, description, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		lm := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.EntryID,
			lm.AccountID,
			lm.LineNumber,
			lm.Description,
			lm.Debit,
			lm.Credit,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal lines for entry "+m.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntityID,
		&m.EntryNumber,
		&m.Sequence,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.IsPosted,
		&m.PostedAt,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.AdjustsEntryID,
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

// FindEntryByID retrieves an entry header by id.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	d := mapping.ToDomainJournalEntry(*m)
	return &d, nil
}

// FindLinesByEntryID retrieves an entry's lines in line-number order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, line_number, description, debit, credit
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.LineNumber,
			&l.Description,
			&l.Debit,
			&l.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries returns a page of an entity's entries, newest first, with a
// keyset cursor on (entry_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, entityID int64, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []any{entityID}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entity_id = $1`

	if nextToken != nil && *nextToken != "" {
		cur, err := pagination.Decode(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, cur.EntryDate, cur.CreatedAt)
	}
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt}.Encode()
		token = &t
	}
	return entries, token, nil
}

// UpdateEntryDecision commits an approval decision. The WHERE clause on the
// PENDING status makes concurrent approvals race to a single winner; the
// loser sees zero rows and gets ErrNotPending.
func (r *PgxJournalRepository) UpdateEntryDecision(ctx context.Context, entryID string, to domain.ApprovalStatus, approverID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, approved_by = $3, approved_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, to, approverID, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry decision for "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotPending, entryID)
	}
	return nil
}

// MarkPosted flips the posted flag for an approved, unposted entry. Returns
// false when no row qualified (already posted, or not approved).
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, entryID string, at time.Time) (bool, error) {
	query := `
		UPDATE journal_entries
		SET is_posted = true, posted_at = $2, last_updated_at = $2
		WHERE entry_id = $1 AND status = 'APPROVED' AND is_posted = false;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, at)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to mark entry posted "+entryID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateEntryHeader rewrites the mutable header fields of an unposted entry.
// The posted guard is repeated here so a concurrent post cannot be overwritten.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1 AND is_posted = false;
	`
	tag, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry header "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrImmutable, entry.EntryID)
	}
	return nil
}

// ListApprovedUnposted returns approved-but-unposted entries for an entity,
// optionally bounded by an entry-date range.
func (r *PgxJournalRepository) ListApprovedUnposted(ctx context.Context, entityID int64, from, to *time.Time) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE entity_id = $1 AND status = 'APPROVED' AND is_posted = false`
	args := []any{entityID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	query += " ORDER BY sequence;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list approved unposted entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

// EntityRepositoryFacade persists accounting entities.
type EntityRepositoryFacade interface {
	// SaveEntity inserts a new entity; the database assigns the entity id,
	// returned on the persisted copy.
	SaveEntity(ctx context.Context, entity domain.Entity) (*domain.Entity, error)
	FindEntityByID(ctx context.Context, entityID int64) (*domain.Entity, error)
	ListEntities(ctx context.Context) ([]domain.Entity, error)
	UpdateEntityStatus(ctx context.Context, entityID int64, status domain.EntityStatus, userID string, now time.Time) error
}

// UserRepositoryFacade persists user identities.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AccountRepositoryFacade persists chart-of-accounts entries.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, entityID int64, code int) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// ListAccounts returns accounts ordered by code. Each account carries its
	// running balance over approved lines, netted to its normal side.
	ListAccounts(ctx context.Context, entityID int64, activeOnly bool) ([]domain.Account, error)
}

// JournalRepositoryFacade persists journal entries and their lines.
type JournalRepositoryFacade interface {
	// SaveEntry persists an entry and its lines in one transaction. The
	// repository assigns the next per-entity sequence number (serialized on a
	// sequence row) and re-validates the period lock immediately before
	// commit; entries dated on or before the locked-through date fail with
	// ErrPeriodLocked unless the entry is adjusting. The persisted entry,
	// with sequence and number filled in, is returned.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	ListEntries(ctx context.Context, entityID int64, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	// UpdateEntryDecision commits an approval decision with a conditional
	// update keyed on the PENDING status. Zero rows affected surfaces as
	// ErrNotPending so concurrent approvers resolve to a single winner.
	UpdateEntryDecision(ctx context.Context, entryID string, to domain.ApprovalStatus, approverID string, at time.Time) error
	// MarkPosted flips the posted flag for an approved, unposted entry. It
	// reports false without error when the entry was already posted.
	MarkPosted(ctx context.Context, entryID string, at time.Time) (bool, error)
	// UpdateEntryHeader rewrites mutable header fields of an unposted entry.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error
	ListApprovedUnposted(ctx context.Context, entityID int64, from, to *time.Time) ([]domain.JournalEntry, error)
}

// PeriodLockRepositoryFacade persists the per-entity posting watermark.
type PeriodLockRepositoryFacade interface {
	FindLock(ctx context.Context, entityID int64) (*domain.PeriodLock, error)
	// UpsertLock writes the locked-through date. The stored date never moves
	// backwards regardless of the supplied value.
	UpsertLock(ctx context.Context, entityID int64, lockedThrough time.Time, userID string, now time.Time) error
}

// BankTransactionRepositoryFacade persists external bank feed rows.
type BankTransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn domain.BankTransaction) error
	FindTransactionByID(ctx context.Context, txnID string) (*domain.BankTransaction, error)
	ListUnreconciled(ctx context.Context, entityID int64) ([]domain.BankTransaction, error)
	MarkReconciled(ctx context.Context, txnID string, journalEntryID *string, userID string, now time.Time) error
	// ReplaceWithParts rewrites the original row with the first part and
	// inserts the remaining parts, all unreconciled, in one transaction.
	ReplaceWithParts(ctx context.Context, original domain.BankTransaction, parts []domain.BankTransaction) error
	// SumCleared totals reconciled transaction amounts for the entity through
	// the given date.
	SumCleared(ctx context.Context, entityID int64, through time.Time) (decimal.Decimal, error)
	HasUnreconciledThrough(ctx context.Context, entityID int64, through time.Time) (bool, error)
}

// DocumentRepositoryFacade persists document-derived records.
type DocumentRepositoryFacade interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	// ListUnreconciled returns unreconciled documents with a posted journal
	// entry link, ordered by document date. Auto-match candidates.
	ListUnreconciled(ctx context.Context, entityID int64) ([]domain.Document, error)
	// HasUnpostedTotals reports whether any document carries a total but no
	// posted journal entry.
	HasUnpostedTotals(ctx context.Context, entityID int64, through time.Time) (bool, error)
	// CountOverdueOpen counts OPEN bills and invoices whose due date is more
	// than agingDays before asOf.
	CountOverdueOpen(ctx context.Context, entityID int64, asOf time.Time, agingDays int) (int, error)
	MarkReconciled(ctx context.Context, documentID string, userID string, now time.Time) error
	LinkJournalEntry(ctx context.Context, documentID string, journalEntryID string, status domain.DocumentStatus, userID string, now time.Time) error
}

// ConversionRepositoryFacade persists the append-only conversion audit trail.
type ConversionRepositoryFacade interface {
	SaveConversion(ctx context.Context, record domain.ConversionRecord) error
	FindConversionBySource(ctx context.Context, sourceEntityID int64) (*domain.ConversionRecord, error)
	ListConversions(ctx context.Context) ([]domain.ConversionRecord, error)
}

// ReconciliationRepositoryFacade persists immutable tie-out snapshots.
type ReconciliationRepositoryFacade interface {
	SaveSnapshot(ctx context.Context, snapshot domain.ReconciliationSnapshot) error
	// FindLatestSnapshot returns the most recent snapshot for the entity and
	// period, or ErrNotFound.
	FindLatestSnapshot(ctx context.Context, entityID int64, year, month int) (*domain.ReconciliationSnapshot, error)
}

// ReportingRepositoryFacade aggregates journal lines per account.
type ReportingRepositoryFacade interface {
	// GetAccountActivity sums debit and credit line amounts per account over
	// [start, end]. A nil start means from the beginning of time. With
	// postedOnly, only lines of posted entries count; otherwise all approved
	// entries (posted included) count. Rejected and pending entries never
	// contribute.
	GetAccountActivity(ctx context.Context, entityID int64, start *time.Time, end time.Time, postedOnly bool) ([]domain.AccountActivity, error)
}

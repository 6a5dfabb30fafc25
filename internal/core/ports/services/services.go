// Package services defines the service facades the handlers depend on.
package services

import (
	"context"
	"time"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
	"github.com/avistalabs/ledger_backend/internal/dto"
)

// EntitySvcFacade manages accounting entities.
type EntitySvcFacade interface {
	CreateEntity(ctx context.Context, req dto.CreateEntityRequest, creatorID string) (*domain.Entity, error)
	GetEntityByID(ctx context.Context, entityID int64) (*domain.Entity, error)
	ListEntities(ctx context.Context) ([]domain.Entity, error)
}

// UserSvcFacade manages user identities.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvcFacade authenticates users and issues bearer tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// AccountSvcFacade is the Account Registry: chart-of-accounts validation and
// balance-annotated listings.
type AccountSvcFacade interface {
	// CreateAccount validates the code/type mapping and is idempotent on
	// (entity, code): an existing account is returned as-is.
	CreateAccount(ctx context.Context, entityID int64, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, entityID int64, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, entityID int64, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, entityID int64, activeOnly bool) ([]domain.Account, error)
}

// JournalSvcFacade is the Journal Engine: creation, approval, posting,
// reversal and batch posting of balanced entries.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, entityID int64, req dto.CreateEntryRequest, creatorID string) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, entityID int64, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, entityID int64, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	UpdateEntry(ctx context.Context, entityID int64, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)
	// Approve records an approval decision by a different identity than the
	// entry's creator.
	Approve(ctx context.Context, entityID int64, entryID string, approverID string, approve bool) (*domain.JournalEntry, error)
	// Post makes an approved entry permanent. Posting an already-posted entry
	// is a no-op success.
	Post(ctx context.Context, entityID int64, entryID string, userID string) (*domain.JournalEntry, error)
	// CreateAdjustingEntry spawns a pending entry mirroring a posted
	// original with debit and credit swapped on every line.
	CreateAdjustingEntry(ctx context.Context, entityID int64, entryID string, notes string, userID string) (*domain.JournalEntry, error)
	BatchPost(ctx context.Context, entityID int64, req dto.BatchPostRequest, userID string) (*dto.BatchPostResponse, error)
	// CreateSystemEntry persists a system-derived entry (closing, opening
	// balance, reconciliation posting) that bypasses the approval workflow:
	// it is saved approved and posted in one step.
	CreateSystemEntry(ctx context.Context, entityID int64, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)
}

// PeriodLockSvcFacade is the Period Lock Manager. SetLockedThrough is called
// only by the closing and conversion services.
type PeriodLockSvcFacade interface {
	GetLockedThrough(ctx context.Context, entityID int64) (*time.Time, error)
	SetLockedThrough(ctx context.Context, entityID int64, date time.Time, userID string) error
}

// ClosingSvcFacade runs the month-end close workflow.
type ClosingSvcFacade interface {
	ClosePreview(ctx context.Context, entityID int64, year, month int) (*dto.ClosePreviewResponse, error)
	CloseRun(ctx context.Context, entityID int64, year, month int, userID string) (*dto.CloseRunResponse, error)
}

// ConversionSvcFacade converts one entity into another, posting opening
// balances and locking the source.
type ConversionSvcFacade interface {
	ConversionPreview(ctx context.Context, req dto.ConversionRequest) (*dto.ConversionPreviewResponse, error)
	ConversionExecute(ctx context.Context, req dto.ConversionRequest, userID string) (*domain.ConversionRecord, error)
	ListConversions(ctx context.Context) ([]domain.ConversionRecord, error)
}

// ReconciliationSvcFacade matches bank transactions against ledger-derived
// records and records tie-out snapshots.
type ReconciliationSvcFacade interface {
	CreateBankTransaction(ctx context.Context, entityID int64, req dto.CreateBankTransactionRequest, userID string) (*domain.BankTransaction, error)
	ListUnreconciled(ctx context.Context, entityID int64) ([]domain.BankTransaction, error)
	AutoMatch(ctx context.Context, entityID int64, req dto.AutoMatchRequest, userID string) (*dto.AutoMatchResponse, error)
	ManualMatch(ctx context.Context, entityID int64, txnID string, journalEntryID string, userID string) error
	Split(ctx context.Context, entityID int64, txnID string, req dto.SplitRequest, userID string) ([]domain.BankTransaction, error)
	CreateEntryFromTransaction(ctx context.Context, entityID int64, txnID string, req dto.CreateEntryFromTransactionRequest, userID string) (*domain.JournalEntry, error)
	Finalize(ctx context.Context, entityID int64, req dto.FinalizeReconciliationRequest, userID string) (*domain.ReconciliationSnapshot, error)
}

// DocumentSvcFacade records document-derived drafts and turns them into
// journal entries (the document-ingestion collaborator's contract).
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, entityID int64, req dto.CreateDocumentRequest, userID string) (*domain.Document, error)
	CreateEntryFromDocument(ctx context.Context, entityID int64, documentID string, req dto.CreateEntryFromDocumentRequest, userID string) (*domain.JournalEntry, error)
}

// ReportingSvcFacade is the Statement Generator.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, entityID int64, asOf time.Time) (*domain.TrialBalance, error)
	IncomeStatement(ctx context.Context, entityID int64, start, end time.Time) (*domain.IncomeStatement, error)
	BalanceSheet(ctx context.Context, entityID int64, asOf time.Time) (*domain.BalanceSheet, error)
	CashFlow(ctx context.Context, entityID int64, start, end time.Time) (*domain.CashFlow, error)
}

// ServiceContainer aggregates every service facade for route registration.
type ServiceContainer struct {
	Entity         EntitySvcFacade
	User           UserSvcFacade
	Auth           AuthSvcFacade
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	PeriodLock     PeriodLockSvcFacade
	Closing        ClosingSvcFacade
	Conversion     ConversionSvcFacade
	Reconciliation ReconciliationSvcFacade
	Document       DocumentSvcFacade
	Reporting      ReportingSvcFacade
}

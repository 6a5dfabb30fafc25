package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
	"github.com/avistalabs/ledger_backend/internal/middleware"
)

const defaultListLimit = 50

// journalService is the journal engine: creation, approval, posting, reversal
// and batch posting of balanced entries.
type journalService struct {
	journalRepo    portsrepo.JournalRepositoryFacade
	periodLockRepo portsrepo.PeriodLockRepositoryFacade
	accountSvc     portssvc.AccountSvcFacade
	entitySvc      portssvc.EntitySvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	periodLockRepo portsrepo.PeriodLockRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	entitySvc portssvc.EntitySvcFacade,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:    journalRepo,
		periodLockRepo: periodLockRepo,
		accountSvc:     accountSvc,
		entitySvc:      entitySvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts line requests to domain lines, assigning ids and line
// numbers, and validates the double-entry invariant.
func (s *journalService) buildLines(ctx context.Context, entityID int64, entryID string, reqLines []dto.CreateLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	accountIDs := make([]string, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lr.AccountID,
			LineNumber:  i + 1,
			Description: lr.Description,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
		}
		accountIDs[i] = lr.AccountID
	}

	if _, _, err := domain.ValidateBalanced(lines); err != nil {
		return nil, err
	}

	// Every referenced account must exist in this entity's chart.
	if _, err := s.accountSvc.GetAccountsByIDs(ctx, entityID, accountIDs); err != nil {
		return nil, err
	}
	return lines, nil
}

// checkPeriodOpen rejects entry dates on or before the entity's locked-through
// date, compared by UTC calendar date. The repository repeats this check
// inside the save transaction; this early check just gives a cheap failure
// before line validation.
func (s *journalService) checkPeriodOpen(ctx context.Context, entityID int64, entryDate time.Time) error {
	lock, err := s.periodLockRepo.FindLock(ctx, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if lock.Covers(entryDate) {
		return fmt.Errorf("%w: entity %d is locked through %s",
			apperrors.ErrPeriodLocked, entityID, lock.LockedThrough.Format("2006-01-02"))
	}
	return nil
}

func (s *journalService) CreateEntry(ctx context.Context, entityID int64, req dto.CreateEntryRequest, creatorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entitySvc.GetEntityByID(ctx, entityID); err != nil {
		return nil, err
	}
	entryDate := domain.DateOnly(req.Date)
	if err := s.checkPeriodOpen(ctx, entityID, entryDate); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	lines, err := s.buildLines(ctx, entityID, entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	totalDebit, totalCredit, err := domain.ValidateBalanced(lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntityID:    entityID,
		EntryDate:   entryDate,
		Description: req.Description,
		Reference:   req.Reference,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Status:      domain.StatusPending,
		AuditFields: domain.NewAuditFields(creatorID, now),
	}

	saved, err := s.journalRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.Int64("entity_id", entityID))
		return nil, err
	}
	saved.Lines = lines
	logger.Info("Journal entry created",
		slog.String("entry_number", saved.EntryNumber), slog.String("entry_id", saved.EntryID))
	return saved, nil
}

func (s *journalService) GetEntry(ctx context.Context, entityID int64, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, entityID int64, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, entityID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateEntry edits the header of an unposted entry. Posted entries are
// immutable; correcting one takes an adjusting entry.
func (s *journalService) UpdateEntry(ctx context.Context, entityID int64, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntry(ctx, entityID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsPosted {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrImmutable, entry.EntryNumber)
	}

	if req.Date != nil {
		newDate := domain.DateOnly(*req.Date)
		if err := s.checkPeriodOpen(ctx, entityID, newDate); err != nil {
			return nil, err
		}
		entry.EntryDate = newDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = req.Reference
	}
	entry.Touch(userID, time.Now())

	if err := s.journalRepo.UpdateEntryHeader(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Approve records an approval decision. The approver must differ from the
// entry's creator; the state transition itself lives on the domain types and
// the repository resolves concurrent decisions to a single winner.
func (s *journalService) Approve(ctx context.Context, entityID int64, entryID string, approverID string, approve bool) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntry(ctx, entityID, entryID)
	if err != nil {
		return nil, err
	}
	pending, err := entry.AsPending()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var decided domain.JournalEntry
	if approve {
		approved, err := pending.Approve(approverID, now)
		if err != nil {
			return nil, err
		}
		decided = approved.JournalEntry
	} else {
		rejected, err := pending.Reject(approverID, now)
		if err != nil {
			return nil, err
		}
		decided = rejected.JournalEntry
	}

	if err := s.journalRepo.UpdateEntryDecision(ctx, entryID, decided.Status, approverID, now); err != nil {
		logger.Warn("Approval decision not committed",
			slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Journal entry decision recorded",
		slog.String("entry_number", decided.EntryNumber), slog.String("status", string(decided.Status)))
	return &decided, nil
}

// Post makes an approved entry permanent. Posting an already-posted entry is
// a no-op success so batch runs and retries stay idempotent.
func (s *journalService) Post(ctx context.Context, entityID int64, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntry(ctx, entityID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsPosted {
		return entry, nil
	}
	approved, err := entry.AsApproved()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	posted := approved.Post(now)
	didPost, err := s.journalRepo.MarkPosted(ctx, entryID, now)
	if err != nil {
		return nil, err
	}
	if !didPost {
		// A concurrent poster won; re-read for the authoritative timestamps.
		return s.GetEntry(ctx, entityID, entryID)
	}
	logger.Info("Journal entry posted", slog.String("entry_number", posted.EntryNumber))
	result := posted.JournalEntry
	return &result, nil
}

// CreateAdjustingEntry spawns a pending entry mirroring a posted original with
// debit and credit swapped on every line. The adjusting entry goes through the
// normal approval workflow but is exempt from the period lock.
func (s *journalService) CreateAdjustingEntry(ctx context.Context, entityID int64, entryID string, notes string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetEntry(ctx, entityID, entryID)
	if err != nil {
		return nil, err
	}
	if !original.IsPosted {
		return nil, fmt.Errorf("%w: entry %s is not posted, edit it instead", apperrors.ErrValidation, original.EntryNumber)
	}

	adjID := uuid.NewString()
	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     adjID,
			AccountID:   l.AccountID,
			LineNumber:  l.LineNumber,
			Description: l.Description,
			Debit:       l.Credit,
			Credit:      l.Debit,
		}
	}

	description := "Adjusting entry for " + original.EntryNumber
	if notes != "" {
		description = description + ": " + notes
	}

	now := time.Now()
	adjusting := domain.JournalEntry{
		EntryID:        adjID,
		EntityID:       entityID,
		EntryDate:      original.EntryDate,
		Description:    description,
		Reference:      &original.EntryNumber,
		TotalDebit:     original.TotalCredit,
		TotalCredit:    original.TotalDebit,
		Status:         domain.StatusPending,
		AdjustsEntryID: &original.EntryID,
		AuditFields:    domain.NewAuditFields(userID, now),
	}

	saved, err := s.journalRepo.SaveEntry(ctx, adjusting, lines)
	if err != nil {
		logger.Error("Failed to save adjusting entry", slog.String("error", err.Error()), slog.String("original", original.EntryNumber))
		return nil, err
	}
	saved.Lines = lines
	logger.Info("Adjusting entry created",
		slog.String("entry_number", saved.EntryNumber), slog.String("adjusts", original.EntryNumber))
	return saved, nil
}

// BatchPost posts approved entries either by explicit ids or by a date range.
// Entries that are already posted, or not approved, count as skipped rather
// than failing the batch.
func (s *journalService) BatchPost(ctx context.Context, entityID int64, req dto.BatchPostRequest, userID string) (*dto.BatchPostResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var candidates []domain.JournalEntry
	if len(req.EntryIDs) > 0 {
		for _, id := range req.EntryIDs {
			entry, err := s.journalRepo.FindEntryByID(ctx, id)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					continue
				}
				return nil, err
			}
			if entry.EntityID != entityID {
				continue
			}
			candidates = append(candidates, *entry)
		}
	} else {
		var err error
		candidates, err = s.journalRepo.ListApprovedUnposted(ctx, entityID, req.FromDate, req.ToDate)
		if err != nil {
			return nil, err
		}
	}

	resp := &dto.BatchPostResponse{}
	now := time.Now()
	for _, entry := range candidates {
		if entry.Status != domain.StatusApproved || entry.IsPosted {
			resp.Skipped++
			continue
		}
		didPost, err := s.journalRepo.MarkPosted(ctx, entry.EntryID, now)
		if err != nil {
			return nil, err
		}
		if didPost {
			resp.Posted++
		} else {
			resp.Skipped++
		}
	}
	logger.Info("Batch post completed",
		slog.Int64("entity_id", entityID), slog.Int("posted", resp.Posted), slog.Int("skipped", resp.Skipped))
	return resp, nil
}

// CreateSystemEntry persists a system-derived entry (closing, opening balance,
// reconciliation posting) that bypasses the approval workflow: it is saved
// approved and immediately posted.
func (s *journalService) CreateSystemEntry(ctx context.Context, entityID int64, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryID := uuid.NewString()
	lines, err := s.buildLines(ctx, entityID, entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	totalDebit, totalCredit, err := domain.ValidateBalanced(lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	systemActor := "system"
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntityID:    entityID,
		EntryDate:   domain.DateOnly(req.Date),
		Description: req.Description,
		Reference:   req.Reference,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Status:      domain.StatusApproved,
		IsPosted:    true,
		PostedAt:    &now,
		ApprovedBy:  &systemActor,
		ApprovedAt:  &now,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	saved, err := s.journalRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		logger.Error("Failed to save system entry", slog.String("error", err.Error()), slog.Int64("entity_id", entityID))
		return nil, err
	}
	saved.Lines = lines
	logger.Info("System entry posted", slog.String("entry_number", saved.EntryNumber))
	return saved, nil
}

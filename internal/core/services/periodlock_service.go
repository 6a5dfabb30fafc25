package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/middleware"
)

// periodLockService manages the per-entity posting watermark. The closing and
// conversion services are its only writers; the journal engine only reads.
type periodLockService struct {
	lockRepo portsrepo.PeriodLockRepositoryFacade
}

// NewPeriodLockService creates a new period lock service.
func NewPeriodLockService(lockRepo portsrepo.PeriodLockRepositoryFacade) portssvc.PeriodLockSvcFacade {
	return &periodLockService{lockRepo: lockRepo}
}

var _ portssvc.PeriodLockSvcFacade = (*periodLockService)(nil)

// GetLockedThrough returns the entity's locked-through date, or nil when the
// entity has never been locked.
func (s *periodLockService) GetLockedThrough(ctx context.Context, entityID int64) (*time.Time, error) {
	lock, err := s.lockRepo.FindLock(ctx, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lock.LockedThrough, nil
}

// SetLockedThrough advances the watermark. The repository clamps the stored
// value so it never moves backwards.
func (s *periodLockService) SetLockedThrough(ctx context.Context, entityID int64, date time.Time, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.lockRepo.UpsertLock(ctx, entityID, date, userID, time.Now()); err != nil {
		logger.Error("Failed to advance period lock", slog.Int64("entity_id", entityID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Period lock advanced",
		slog.Int64("entity_id", entityID), slog.String("locked_through", date.Format("2006-01-02")))
	return nil
}

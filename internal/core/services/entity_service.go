package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
	"github.com/avistalabs/ledger_backend/internal/middleware"
)

// entityService manages accounting entities.
type entityService struct {
	entityRepo portsrepo.EntityRepositoryFacade
}

// NewEntityService creates a new entity service.
func NewEntityService(entityRepo portsrepo.EntityRepositoryFacade) portssvc.EntitySvcFacade {
	return &entityService{entityRepo: entityRepo}
}

var _ portssvc.EntitySvcFacade = (*entityService)(nil)

func (s *entityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, creatorID string) (*domain.Entity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	entity := domain.Entity{
		Name:        req.Name,
		LegalType:   req.LegalType,
		Status:      domain.EntityActive,
		AuditFields: domain.NewAuditFields(creatorID, now),
	}

	saved, err := s.entityRepo.SaveEntity(ctx, entity)
	if err != nil {
		logger.Error("Failed to save entity", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}
	logger.Info("Entity created", slog.Int64("entity_id", saved.EntityID), slog.String("legal_type", string(saved.LegalType)))
	return saved, nil
}

func (s *entityService) GetEntityByID(ctx context.Context, entityID int64) (*domain.Entity, error) {
	return s.entityRepo.FindEntityByID(ctx, entityID)
}

func (s *entityService) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	return s.entityRepo.ListEntities(ctx)
}

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

// accountService is the account registry: chart-of-accounts validation and
// balance-annotated listings.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates the code against the declared type and persists the
// account. Creation is idempotent on (entity, code): an existing account is
// returned unchanged, so document-ingestion retries cannot fork the chart.
func (s *accountService) CreateAccount(ctx context.Context, entityID int64, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.CodeMatchesType(req.Code, req.AccountType) {
		return nil, fmt.Errorf("%w: code %d, type %s", apperrors.ErrInvalidAccountCode, req.Code, req.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, entityID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}
	if existing != nil {
		logger.Info("Account already exists, returning as-is",
			slog.Int64("entity_id", entityID), slog.Int("code", req.Code))
		return existing, nil
	}

	normal := domain.DefaultNormalBalance(req.AccountType)
	if req.NormalBalance != nil {
		normal = *req.NormalBalance
	}

	if req.ParentAccountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID); err != nil {
			return nil, fmt.Errorf("parent account lookup failed: %w", err)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		EntityID:        entityID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		NormalBalance:   normal,
		ParentAccountID: req.ParentAccountID,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(creatorID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.Int("code", req.Code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.Int("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, entityID int64, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountsByIDs loads a set of accounts and verifies each belongs to the
// entity. A missing or foreign id fails the whole lookup.
func (s *accountService) GetAccountsByIDs(ctx context.Context, entityID int64, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if acc.EntityID != entityID {
			return nil, fmt.Errorf("%w: account %s belongs to another entity", apperrors.ErrValidation, id)
		}
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, entityID int64, activeOnly bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, entityID, activeOnly)
}

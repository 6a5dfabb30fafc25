package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/core/domain"
	portsrepo "github.com/avistalabs/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
	"github.com/avistalabs/ledger_backend/internal/middleware"
	"github.com/avistalabs/ledger_backend/internal/utils/accounting"
)

// Default accounts the conversion opening entry posts against on the target
// entity. Created on demand when missing.
const (
	conversionCashCode = 11100
	commonStockCode    = 31000
	apicCode           = 31100
	openingEquityCode  = 39900
)

// conversionService converts an LLC into a C-Corp: it freezes the source
// ledger, splits its equity into common stock and APIC, and posts the opening
// balances on the target entity.
type conversionService struct {
	entityRepo     portsrepo.EntityRepositoryFacade
	conversionRepo portsrepo.ConversionRepositoryFacade
	reportingRepo  portsrepo.ReportingRepositoryFacade
	accountSvc     portssvc.AccountSvcFacade
	journalSvc     portssvc.JournalSvcFacade
	periodLockSvc  portssvc.PeriodLockSvcFacade
}

// NewConversionService creates a new conversion service.
func NewConversionService(
	entityRepo portsrepo.EntityRepositoryFacade,
	conversionRepo portsrepo.ConversionRepositoryFacade,
	reportingRepo portsrepo.ReportingRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
	periodLockSvc portssvc.PeriodLockSvcFacade,
) portssvc.ConversionSvcFacade {
	return &conversionService{
		entityRepo:     entityRepo,
		conversionRepo: conversionRepo,
		reportingRepo:  reportingRepo,
		accountSvc:     accountSvc,
		journalSvc:     journalSvc,
		periodLockSvc:  periodLockSvc,
	}
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

// validateParties checks the source is an active LLC and the target a
// distinct C-Corp.
func (s *conversionService) validateParties(ctx context.Context, req dto.ConversionRequest) error {
	if req.SourceEntityID == req.TargetEntityID {
		return fmt.Errorf("%w: source and target entity must differ", apperrors.ErrValidation)
	}
	source, err := s.entityRepo.FindEntityByID(ctx, req.SourceEntityID)
	if err != nil {
		return fmt.Errorf("source entity lookup failed: %w", err)
	}
	if source.LegalType != domain.LLC {
		return fmt.Errorf("%w: source entity %d is not an LLC", apperrors.ErrValidation, source.EntityID)
	}
	if source.Status != domain.EntityActive {
		return fmt.Errorf("%w: source entity %d is not active", apperrors.ErrValidation, source.EntityID)
	}
	target, err := s.entityRepo.FindEntityByID(ctx, req.TargetEntityID)
	if err != nil {
		return fmt.Errorf("target entity lookup failed: %w", err)
	}
	if target.LegalType != domain.CCorp {
		return fmt.Errorf("%w: target entity %d is not a C-Corp", apperrors.ErrValidation, target.EntityID)
	}
	return nil
}

// computeSplit derives the equity split from the source balance sheet as of
// the effective date: assets minus liabilities is the equity to carry over,
// par value times shares becomes common stock, the remainder is APIC.
func (s *conversionService) computeSplit(ctx context.Context, req dto.ConversionRequest) (*domain.ConversionSplit, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, req.SourceEntityID, nil, req.EffectiveDate, false)
	if err != nil {
		return nil, err
	}

	assets, liabilities := decimal.Zero, decimal.Zero
	for _, a := range activity {
		switch a.AccountType {
		case domain.Asset:
			assets = assets.Add(accounting.NetBalance(a.DebitTotal, a.CreditTotal, a.NormalBalance))
		case domain.Liability:
			liabilities = liabilities.Add(accounting.NetBalance(a.DebitTotal, a.CreditTotal, a.NormalBalance))
		}
	}

	equity := assets.Sub(liabilities)
	commonStock := req.ParValue.Mul(decimal.NewFromInt(req.TotalShares)).Round(2)
	apic := equity.Sub(commonStock)
	if apic.IsNegative() {
		return nil, fmt.Errorf("%w: par value x shares (%s) exceeds equity (%s)",
			apperrors.ErrValidation, commonStock.String(), equity.String())
	}

	return &domain.ConversionSplit{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		EquityTotal:      equity,
		CommonStock:      commonStock,
		APIC:             apic,
	}, nil
}

func (s *conversionService) ConversionPreview(ctx context.Context, req dto.ConversionRequest) (*dto.ConversionPreviewResponse, error) {
	if err := s.validateParties(ctx, req); err != nil {
		return nil, err
	}
	split, err := s.computeSplit(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.ConversionPreviewResponse{
		SourceEntityID:   req.SourceEntityID,
		TargetEntityID:   req.TargetEntityID,
		EffectiveDate:    req.EffectiveDate,
		TotalAssets:      split.TotalAssets,
		TotalLiabilities: split.TotalLiabilities,
		EquityTotal:      split.EquityTotal,
		CommonStock:      split.CommonStock,
		APIC:             split.APIC,
	}, nil
}

// ConversionExecute runs the conversion: lock the source at the effective
// date, post the opening entry on the target the day after, record the audit
// row and mark the source converted. Execute computes the same split as
// preview, so a preview shown to the user matches what execute posts.
func (s *conversionService) ConversionExecute(ctx context.Context, req dto.ConversionRequest, userID string) (*domain.ConversionRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateParties(ctx, req); err != nil {
		return nil, err
	}
	if _, err := s.conversionRepo.FindConversionBySource(ctx, req.SourceEntityID); err == nil {
		return nil, fmt.Errorf("%w: entity %d was already converted", apperrors.ErrDuplicate, req.SourceEntityID)
	}

	split, err := s.computeSplit(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.periodLockSvc.SetLockedThrough(ctx, req.SourceEntityID, req.EffectiveDate, userID); err != nil {
		return nil, err
	}

	entry, err := s.postOpeningEntry(ctx, req, split, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := domain.ConversionRecord{
		ConversionID:   uuid.NewString(),
		SourceEntityID: req.SourceEntityID,
		TargetEntityID: req.TargetEntityID,
		EffectiveDate:  req.EffectiveDate,
		EquityTotal:    split.EquityTotal,
		CommonStock:    split.CommonStock,
		APIC:           split.APIC,
		OpeningEntryID: entry.EntryID,
		CreatedAt:      now,
		CreatedBy:      userID,
	}
	if err := s.conversionRepo.SaveConversion(ctx, record); err != nil {
		return nil, err
	}

	if err := s.entityRepo.UpdateEntityStatus(ctx, req.SourceEntityID, domain.EntityConverted, userID, now); err != nil {
		return nil, err
	}

	logger.Info("Entity conversion executed",
		slog.Int64("source_entity_id", req.SourceEntityID),
		slog.Int64("target_entity_id", req.TargetEntityID),
		slog.String("equity_total", split.EquityTotal.String()))
	return &record, nil
}

// ListConversions returns the conversion audit trail, newest first.
func (s *conversionService) ListConversions(ctx context.Context) ([]domain.ConversionRecord, error) {
	return s.conversionRepo.ListConversions(ctx)
}

// ensureTargetAccount returns the target-side account for a code, creating it
// when the chart does not have one yet. CreateAccount is idempotent on
// (entity, code).
func (s *conversionService) ensureTargetAccount(ctx context.Context, entityID int64, code int, name string, accountType domain.AccountType, userID string) (*domain.Account, error) {
	return s.accountSvc.CreateAccount(ctx, entityID, dto.CreateAccountRequest{
		Code:        code,
		Name:        name,
		AccountType: accountType,
	}, userID)
}

// postOpeningEntry posts the balanced opening entry on the target entity,
// dated the day after the effective date: debit cash for the carried assets,
// credit opening balance equity for the liabilities, and credit the equity
// split. Zero-amount lines are omitted.
func (s *conversionService) postOpeningEntry(ctx context.Context, req dto.ConversionRequest, split *domain.ConversionSplit, userID string) (*domain.JournalEntry, error) {
	cash, err := s.ensureTargetAccount(ctx, req.TargetEntityID, conversionCashCode, "Cash", domain.Asset, userID)
	if err != nil {
		return nil, err
	}
	stock, err := s.ensureTargetAccount(ctx, req.TargetEntityID, commonStockCode, "Common Stock", domain.Equity, userID)
	if err != nil {
		return nil, err
	}
	apic, err := s.ensureTargetAccount(ctx, req.TargetEntityID, apicCode, "Additional Paid-In Capital", domain.Equity, userID)
	if err != nil {
		return nil, err
	}
	obe, err := s.ensureTargetAccount(ctx, req.TargetEntityID, openingEquityCode, "Opening Balance Equity", domain.Equity, userID)
	if err != nil {
		return nil, err
	}

	lines := []dto.CreateLineRequest{
		{AccountID: cash.AccountID, Description: "Opening balance carried from conversion", Debit: split.TotalAssets},
	}
	if split.TotalLiabilities.IsPositive() {
		lines = append(lines, dto.CreateLineRequest{
			AccountID: obe.AccountID, Description: "Assumed liabilities", Credit: split.TotalLiabilities,
		})
	}
	if split.CommonStock.IsPositive() {
		lines = append(lines, dto.CreateLineRequest{
			AccountID: stock.AccountID, Description: "Common stock issued", Credit: split.CommonStock,
		})
	}
	if split.APIC.IsPositive() {
		lines = append(lines, dto.CreateLineRequest{
			AccountID: apic.AccountID, Description: "Additional paid-in capital", Credit: split.APIC,
		})
	}

	ref := fmt.Sprintf("CONV-%d-%d", req.SourceEntityID, req.TargetEntityID)
	entryReq := dto.CreateEntryRequest{
		Date:        req.EffectiveDate.AddDate(0, 0, 1),
		Description: fmt.Sprintf("Opening balances from conversion of entity %d", req.SourceEntityID),
		Reference:   &ref,
		Lines:       lines,
	}
	return s.journalSvc.CreateSystemEntry(ctx, req.TargetEntityID, entryReq, userID)
}

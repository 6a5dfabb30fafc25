package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

// ConversionRequest carries the inputs of an entity conversion. Preview and
// execute take identical inputs.
type ConversionRequest struct {
	SourceEntityID int64           `json:"sourceEntityID" binding:"required"`
	TargetEntityID int64           `json:"targetEntityID" binding:"required"`
	EffectiveDate  time.Time       `json:"effectiveDate" binding:"required"`
	ParValue       decimal.Decimal `json:"parValue" binding:"required"`
	TotalShares    int64           `json:"totalShares" binding:"required,min=1"`
}

// ConversionPreviewResponse is the computed equity split, with no mutation.
type ConversionPreviewResponse struct {
	SourceEntityID   int64           `json:"sourceEntityID"`
	TargetEntityID   int64           `json:"targetEntityID"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	EquityTotal      decimal.Decimal `json:"equityTotal"`
	CommonStock      decimal.Decimal `json:"commonStock"`
	APIC             decimal.Decimal `json:"apic"`
}

// ConversionRecordResponse is the API view of the append-only audit record.
type ConversionRecordResponse struct {
	ConversionID   string          `json:"conversionID"`
	SourceEntityID int64           `json:"sourceEntityID"`
	TargetEntityID int64           `json:"targetEntityID"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	EquityTotal    decimal.Decimal `json:"equityTotal"`
	CommonStock    decimal.Decimal `json:"commonStock"`
	APIC           decimal.Decimal `json:"apic"`
	OpeningEntryID string          `json:"openingEntryID"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToConversionRecordResponse converts a domain.ConversionRecord.
func ToConversionRecordResponse(r *domain.ConversionRecord) ConversionRecordResponse {
	return ConversionRecordResponse{
		ConversionID:   r.ConversionID,
		SourceEntityID: r.SourceEntityID,
		TargetEntityID: r.TargetEntityID,
		EffectiveDate:  r.EffectiveDate,
		EquityTotal:    r.EquityTotal,
		CommonStock:    r.CommonStock,
		APIC:           r.APIC,
		OpeningEntryID: r.OpeningEntryID,
		CreatedAt:      r.CreatedAt,
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRecord is the append-only audit trail of an entity conversion
// (LLC into C-Corp). One record per conversion; never mutated.
type ConversionRecord struct {
	ConversionID   string          `json:"conversionID"` // Primary key (UUID)
	SourceEntityID int64           `json:"sourceEntityID"`
	TargetEntityID int64           `json:"targetEntityID"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	EquityTotal    decimal.Decimal `json:"equityTotal"`
	CommonStock    decimal.Decimal `json:"commonStock"`
	APIC           decimal.Decimal `json:"apic"`
	OpeningEntryID string          `json:"openingEntryID"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ConversionSplit is the computed equity split of a conversion preview.
type ConversionSplit struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	EquityTotal      decimal.Decimal `json:"equityTotal"`
	CommonStock      decimal.Decimal `json:"commonStock"`
	APIC             decimal.Decimal `json:"apic"`
}

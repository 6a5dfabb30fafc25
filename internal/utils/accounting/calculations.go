package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

// NetBalance nets an account's summed debit and credit activity to a single
// signed figure on the account's normal side. A positive result means the
// balance sits on its conventional side.
func NetBalance(debitTotal, creditTotal decimal.Decimal, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.DebitNormal {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}

// Account-code range boundaries used for statement classification. Totals
// never depend on these; they only drive presentation buckets.
const (
	CurrentAssetLow     = 11000
	CurrentAssetHigh    = 12999
	NonCurrentAssetLow  = 15000
	NonCurrentAssetHigh = 17999

	CurrentLiabilityLow   = 21000
	CurrentLiabilityHigh  = 22999
	LongTermLiabilityLow  = 25000
	LongTermLiabilityHigh = 27999

	OperatingRevenueLow  = 41000
	OperatingRevenueHigh = 41999
	OtherIncomeLow       = 49000
	OtherIncomeHigh      = 49999

	CostOfRevenueLow  = 51000
	CostOfRevenueHigh = 51099
	PersonnelLow      = 52000
	PersonnelHigh     = 52999

	// Cash accounts occupy the 111xx range; the cash-flow statement sums
	// their debit-credit movement.
	CashAccountLow  = 11100
	CashAccountHigh = 11199
)

// InRange reports whether code lies in [low, high].
func InRange(code, low, high int) bool {
	return code >= low && code <= high
}

// IsCashAccount reports whether an account code is in the cash range.
func IsCashAccount(code int) bool {
	return InRange(code, CashAccountLow, CashAccountHigh)
}

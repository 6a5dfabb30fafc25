package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account's balance conventionally
// increases.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// Account is one entry in an entity's chart of accounts. Codes are five
// digits and the leading digit encodes the account type:
// 1 asset, 2 liability, 3 equity, 4 revenue, 5 expense.
type Account struct {
	AccountID       string        `json:"accountID"` // Primary key (UUID)
	EntityID        int64         `json:"entityID"`
	Code            int           `json:"code"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	ParentAccountID *string       `json:"parentAccountID,omitempty"` // Nullable, self-referencing
	IsActive        bool          `json:"isActive"`
	AuditFields
	// Balance is the computed running balance over approved lines, netted to
	// the account's normal side. Populated by list operations.
	Balance decimal.Decimal `json:"balance"`
}

// leadingDigitByType maps each account type to the required leading digit of
// its five-digit code.
var leadingDigitByType = map[AccountType]int{
	Asset:     1,
	Liability: 2,
	Equity:    3,
	Revenue:   4,
	Expense:   5,
}

// CodeMatchesType reports whether a five-digit account code carries the
// leading digit required by the given account type.
func CodeMatchesType(code int, accountType AccountType) bool {
	if code < 10000 || code > 59999 {
		return false
	}
	want, ok := leadingDigitByType[accountType]
	if !ok {
		return false
	}
	return code/10000 == want
}

// DefaultNormalBalance returns the conventional normal balance side for an
// account type: debit for assets and expenses, credit for the rest.
func DefaultNormalBalance(accountType AccountType) NormalBalance {
	switch accountType {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the raw per-account aggregation the reporting repository
// returns: summed debit and credit line amounts over some window and posting
// basis. Statement services classify and net these rows.
type AccountActivity struct {
	AccountID     string
	Code          int
	Name          string
	AccountType   AccountType
	NormalBalance NormalBalance
	DebitTotal    decimal.Decimal
	CreditTotal   decimal.Decimal
}

// TrialBalanceRow is one account netted to a single side per its normal
// balance.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        int             `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account with posted activity as of a date. A
// false InBalance indicates ledger corruption, not a normal business state.
type TrialBalance struct {
	EntityID     int64             `json:"entityID"`
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	InBalance    bool              `json:"inBalance"`
}

// StatementLine is one account's contribution to a financial statement
// section.
type StatementLine struct {
	AccountID string          `json:"accountID"`
	Code      int             `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// StatementSection groups statement lines under a presentation category with
// a subtotal.
type StatementSection struct {
	Label string          `json:"label"`
	Lines []StatementLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// IncomeStatement is revenue minus expenses over a window, derived from
// approved journal lines.
type IncomeStatement struct {
	EntityID      int64              `json:"entityID"`
	Start         time.Time          `json:"start"`
	End           time.Time          `json:"end"`
	Revenue       []StatementSection `json:"revenue"`
	Expenses      []StatementSection `json:"expenses"`
	TotalRevenue  decimal.Decimal    `json:"totalRevenue"`
	TotalExpenses decimal.Decimal    `json:"totalExpenses"`
	NetIncome     decimal.Decimal    `json:"netIncome"`
}

// BalanceSheet is the position statement as of a date. Balanced is advisory:
// assets == liabilities + equity should hold by construction.
type BalanceSheet struct {
	EntityID         int64              `json:"entityID"`
	AsOf             time.Time          `json:"asOf"`
	Assets           []StatementSection `json:"assets"`
	Liabilities      []StatementSection `json:"liabilities"`
	Equity           []StatementSection `json:"equity"`
	TotalAssets      decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities decimal.Decimal    `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal    `json:"totalEquity"`
	Balanced         bool               `json:"balanced"`
}

// CashFlow is the net change in cash accounts over a window.
type CashFlow struct {
	EntityID      int64           `json:"entityID"`
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	NetCashChange decimal.Decimal `json:"netCashChange"`
	Lines         []StatementLine `json:"lines"`
}

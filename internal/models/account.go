package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// NormalBalance mirrors domain.NormalBalance at the storage layer.
type NormalBalance string

// Account is the storage representation of a chart-of-accounts entry.
type Account struct {
	AccountID       string
	EntityID        int64
	Code            int
	Name            string
	AccountType     AccountType
	NormalBalance   NormalBalance
	ParentAccountID *string
	IsActive        bool
	Balance         decimal.Decimal
	AuditFields
}

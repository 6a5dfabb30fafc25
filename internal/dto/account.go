package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

// CreateAccountRequest carries the fields needed to create a chart-of-accounts
// entry. NormalBalance defaults to the conventional side for the type when
// omitted.
type CreateAccountRequest struct {
	Code            int                   `json:"code" binding:"required,min=10000,max=59999"`
	Name            string                `json:"name" binding:"required"`
	AccountType     domain.AccountType    `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance   *domain.NormalBalance `json:"normalBalance,omitempty" binding:"omitempty,oneof=DEBIT CREDIT"`
	ParentAccountID *string               `json:"parentAccountID,omitempty"`
}

// AccountResponse is the API view of an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	EntityID      int64           `json:"entityID"`
	Code          int             `json:"code"`
	Name          string          `json:"name"`
	AccountType   string          `json:"accountType"`
	NormalBalance string          `json:"normalBalance"`
	IsActive      bool            `json:"isActive"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its API view.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		EntityID:      a.EntityID,
		Code:          a.Code,
		Name:          a.Name,
		AccountType:   string(a.AccountType),
		NormalBalance: string(a.NormalBalance),
		IsActive:      a.IsActive,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

func TestCodeMatchesType(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		accountType domain.AccountType
		want        bool
	}{
		{"asset in asset range", 11100, domain.Asset, true},
		{"liability in liability range", 21000, domain.Liability, true},
		{"equity in equity range", 32000, domain.Equity, true},
		{"revenue in revenue range", 41500, domain.Revenue, true},
		{"expense in expense range", 52000, domain.Expense, true},
		{"asset code declared as liability", 11100, domain.Liability, false},
		{"equity code declared as asset", 39000, domain.Asset, false},
		{"code below range", 9999, domain.Asset, false},
		{"code above range", 60000, domain.Expense, false},
		{"four digit code", 1100, domain.Asset, false},
		{"unknown account type", 11100, domain.AccountType("OTHER"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CodeMatchesType(tt.code, tt.accountType))
		})
	}
}

func TestDefaultNormalBalance(t *testing.T) {
	assert.Equal(t, domain.DebitNormal, domain.DefaultNormalBalance(domain.Asset))
	assert.Equal(t, domain.DebitNormal, domain.DefaultNormalBalance(domain.Expense))
	assert.Equal(t, domain.CreditNormal, domain.DefaultNormalBalance(domain.Liability))
	assert.Equal(t, domain.CreditNormal, domain.DefaultNormalBalance(domain.Equity))
	assert.Equal(t, domain.CreditNormal, domain.DefaultNormalBalance(domain.Revenue))
}

package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

func TestNetBalance(t *testing.T) {
	tests := []struct {
		name   string
		debit  float64
		credit float64
		normal domain.NormalBalance
		want   float64
	}{
		{"debit-normal account with debit surplus", 1000, 200, domain.DebitNormal, 800},
		{"debit-normal account with credit surplus", 200, 1000, domain.DebitNormal, -800},
		{"credit-normal account with credit surplus", 200, 1000, domain.CreditNormal, 800},
		{"credit-normal account with debit surplus", 1000, 200, domain.CreditNormal, -800},
		{"no activity", 0, 0, domain.DebitNormal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalance(decimal.NewFromFloat(tt.debit), decimal.NewFromFloat(tt.credit), tt.normal)
			assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)), "got %s, want %v", got, tt.want)
		})
	}
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(11000, CurrentAssetLow, CurrentAssetHigh))
	assert.True(t, InRange(12999, CurrentAssetLow, CurrentAssetHigh))
	assert.False(t, InRange(13000, CurrentAssetLow, CurrentAssetHigh))
	assert.False(t, InRange(10999, CurrentAssetLow, CurrentAssetHigh))
}

func TestIsCashAccount(t *testing.T) {
	assert.True(t, IsCashAccount(11100))
	assert.True(t, IsCashAccount(11199))
	assert.False(t, IsCashAccount(11200))
	assert.False(t, IsCashAccount(21100))
}

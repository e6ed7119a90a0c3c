package trade

import (
	"testing"

	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeCommission(t *testing.T) {
	tenMillion := decimal.NewFromInt(10_000_000)

	tests := []struct {
		name        string
		amount      decimal.Decimal
		rate        float64
		isAgentSale bool
		want        decimal.Decimal
	}{
		{"ten percent", tenMillion, 10, true, decimal.NewFromInt(1_000_000)},
		{"five percent", tenMillion, 5, true, decimal.NewFromInt(500_000)},
		{"fifteen percent", tenMillion, 15, true, decimal.NewFromInt(1_500_000)},
		{"twenty five percent", tenMillion, 25, true, decimal.NewFromInt(2_500_000)},
		{"not an agent sale", tenMillion, 10, false, decimal.Zero},
		{"not an agent sale with high rate", tenMillion, 99, false, decimal.Zero},
		{"zero rate", tenMillion, 0, true, decimal.Zero},
		{"zero amount", decimal.Zero, 10, true, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCommission(tt.amount, valueobject.NewPercentageFromFloat(tt.rate), tt.isAgentSale)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCommissionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from CommissionStatus
		to   CommissionStatus
		want bool
	}{
		{CommissionStatusDraft, CommissionStatusConfirmed, true},
		{CommissionStatusDraft, CommissionStatusInvoiced, false},
		{CommissionStatusConfirmed, CommissionStatusInvoiced, true},
		{CommissionStatusConfirmed, CommissionStatusDraft, false},
		{CommissionStatusInvoiced, CommissionStatusPaid, true},
		{CommissionStatusInvoiced, CommissionStatusConfirmed, false},
		{CommissionStatusPaid, CommissionStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCommissionStatus_IsValid(t *testing.T) {
	for _, s := range []CommissionStatus{CommissionStatusDraft, CommissionStatusConfirmed, CommissionStatusInvoiced, CommissionStatusPaid} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, CommissionStatus("cancelled").IsValid())
	assert.True(t, CommissionStatusPaid.HasInvoice())
	assert.False(t, CommissionStatusConfirmed.HasInvoice())
}

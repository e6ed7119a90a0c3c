package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage_Of(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		amount string
		want   string
	}{
		{"ten percent of ten million", 10, "10000000", "1000000"},
		{"five percent", 5, "10000000", "500000"},
		{"twenty five percent", 25, "10000000", "2500000"},
		{"fractional rate", 12.5, "200", "25"},
		{"zero rate", 0, "10000000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPercentageFromFloat(tt.rate).Of(decimal.RequireFromString(tt.amount))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestPercentage_InRange(t *testing.T) {
	lo, hi := decimal.Zero, decimal.NewFromInt(100)

	assert.True(t, NewPercentageFromFloat(0).InRange(lo, hi))
	assert.True(t, NewPercentageFromFloat(100).InRange(lo, hi))
	assert.True(t, NewPercentageFromFloat(42.5).InRange(lo, hi))
	assert.False(t, NewPercentageFromFloat(-0.01).InRange(lo, hi))
	assert.False(t, NewPercentageFromFloat(100.01).InRange(lo, hi))
}

func TestNewPercentageFromString(t *testing.T) {
	p, err := NewPercentageFromString("7.25")
	require.NoError(t, err)
	assert.Equal(t, "7.25%", p.String())

	_, err = NewPercentageFromString("abc")
	assert.Error(t, err)
}

func TestPercentage_JSON(t *testing.T) {
	var p Percentage
	require.NoError(t, json.Unmarshal([]byte(`15.5`), &p))
	assert.True(t, p.Equals(NewPercentageFromFloat(15.5)))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"15.5"`, string(data))
}

func TestPercentage_Scan(t *testing.T) {
	var p Percentage
	require.NoError(t, p.Scan("10.00"))
	assert.True(t, p.Equals(NewPercentageFromFloat(10)))

	v, err := p.Value()
	require.NoError(t, err)
	assert.Equal(t, "10", v)
}

package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percentage is an immutable percentage value such as a commission rate.
// 10 means ten percent.
type Percentage struct {
	value decimal.Decimal
}

// NewPercentage creates a percentage from a decimal value
func NewPercentage(value decimal.Decimal) Percentage {
	return Percentage{value: value}
}

// NewPercentageFromFloat creates a percentage from a float64 value
func NewPercentageFromFloat(value float64) Percentage {
	return Percentage{value: decimal.NewFromFloat(value)}
}

// NewPercentageFromString parses a percentage such as "12.5"
func NewPercentageFromString(value string) (Percentage, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Percentage{}, fmt.Errorf("invalid percentage string: %w", err)
	}
	return Percentage{value: d}, nil
}

// ZeroPercent returns 0%
func ZeroPercent() Percentage {
	return Percentage{value: decimal.Zero}
}

// Decimal returns the underlying value
func (p Percentage) Decimal() decimal.Decimal {
	return p.value
}

// IsZero returns true for 0%
func (p Percentage) IsZero() bool {
	return p.value.IsZero()
}

// IsPositive returns true when the percentage is above zero
func (p Percentage) IsPositive() bool {
	return p.value.IsPositive()
}

// InRange reports whether the value lies within [lo, hi]
func (p Percentage) InRange(lo, hi decimal.Decimal) bool {
	return p.value.GreaterThanOrEqual(lo) && p.value.LessThanOrEqual(hi)
}

// Of returns amount * p / 100
func (p Percentage) Of(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.value).Div(hundred)
}

// Equals compares two percentages by value
func (p Percentage) Equals(other Percentage) bool {
	return p.value.Equal(other.value)
}

// String returns the percentage with a trailing percent sign
func (p Percentage) String() string {
	return p.value.String() + "%"
}

// MarshalJSON encodes the percentage as a JSON number
func (p Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// UnmarshalJSON decodes a JSON number or numeric string
func (p *Percentage) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("invalid percentage: %w", err)
	}
	p.value = d
	return nil
}

// Value implements driver.Valuer
func (p Percentage) Value() (driver.Value, error) {
	return p.value.Value()
}

// Scan implements sql.Scanner
func (p *Percentage) Scan(src interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("failed to scan percentage: %w", err)
	}
	p.value = d
	return nil
}

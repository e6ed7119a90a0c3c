package partner

import (
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Commission rate bounds, expressed in percent
var (
	MinCommissionRate     = decimal.Zero
	MaxCommissionRate     = decimal.NewFromInt(100)
	DefaultCommissionRate = valueobject.NewPercentage(decimal.NewFromInt(10))
)

// ErrInvalidRate is returned whenever a commission rate falls outside [0, 100]
var ErrInvalidRate = shared.NewDomainError("INVALID_RATE", "Commission rate must be between 0 and 100")

// CheckCommissionRateBounds fails with INVALID_RATE when rate is negative or above 100.
// Sales orders apply it unconditionally.
func CheckCommissionRateBounds(rate valueobject.Percentage) error {
	if rate.Decimal().LessThan(MinCommissionRate) {
		return shared.NewDomainError(ErrInvalidRate.Code, "Commission rate cannot be negative")
	}
	if rate.Decimal().GreaterThan(MaxCommissionRate) {
		return shared.NewDomainError(ErrInvalidRate.Code, "Commission rate cannot exceed 100")
	}
	return nil
}

// ValidateCommissionRate is the party-level rate guard. Principals are exempt,
// so a principal keeps whatever rate it was stored with.
func ValidateCommissionRate(rate valueobject.Percentage, isPrincipal bool) error {
	if isPrincipal {
		return nil
	}
	return CheckCommissionRateBounds(rate)
}

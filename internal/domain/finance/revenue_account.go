package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultRevenueCodePrefix is the chart-of-accounts prefix for operating revenue
const DefaultRevenueCodePrefix = "41"

// ErrNoRevenueAccount is returned when neither lookup finds an account
var ErrNoRevenueAccount = shared.NewDomainError("NO_REVENUE_ACCOUNT", "No revenue account is configured for commission invoices")

// RevenueAccountResolver picks the account a commission line is booked to:
// first the lowest-coded non-deprecated account under CodePrefix, then the
// lowest-coded account of Category. It never falls back to a made-up account.
type RevenueAccountResolver struct {
	accounts   AccountRepository
	CodePrefix string
	Category   AccountCategory
}

// NewRevenueAccountResolver creates a resolver with the default prefix and category
func NewRevenueAccountResolver(accounts AccountRepository) *RevenueAccountResolver {
	return &RevenueAccountResolver{
		accounts:   accounts,
		CodePrefix: DefaultRevenueCodePrefix,
		Category:   AccountCategoryIncome,
	}
}

// Resolve returns the revenue account for the tenant
func (r *RevenueAccountResolver) Resolve(ctx context.Context, tenantID uuid.UUID) (*Account, error) {
	account, err := r.accounts.FindFirstActiveByCodePrefix(ctx, tenantID, r.CodePrefix)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("lookup account by prefix %q: %w", r.CodePrefix, err)
	}

	account, err = r.accounts.FindFirstByCategory(ctx, tenantID, r.Category)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("lookup account by category %q: %w", r.Category, err)
	}
	return nil, ErrNoRevenueAccount
}

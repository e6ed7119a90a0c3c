package finance

import (
	"strings"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountCategory classifies a chart-of-accounts entry
type AccountCategory string

const (
	AccountCategoryAsset     AccountCategory = "asset"
	AccountCategoryLiability AccountCategory = "liability"
	AccountCategoryEquity    AccountCategory = "equity"
	AccountCategoryIncome    AccountCategory = "income"
	AccountCategoryExpense   AccountCategory = "expense"
)

// IsValid checks if the category is a valid AccountCategory
func (c AccountCategory) IsValid() bool {
	switch c {
	case AccountCategoryAsset, AccountCategoryLiability, AccountCategoryEquity,
		AccountCategoryIncome, AccountCategoryExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountCategory
func (c AccountCategory) String() string {
	return string(c)
}

// Account is an entry of the chart of accounts
type Account struct {
	shared.TenantAggregateRoot
	Code       string
	Name       string
	Category   AccountCategory
	Deprecated bool
}

// NewAccount creates a new active account
func NewAccount(tenantID uuid.UUID, code, name string, category AccountCategory) (*Account, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot exceed 20 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CATEGORY", "Account category is not valid")
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                strings.TrimSpace(name),
		Category:            category,
	}, nil
}

// Deprecate hides the account from new postings
func (a *Account) Deprecate() {
	a.Deprecated = true
	a.Touch()
}

// Reactivate makes a deprecated account usable again
func (a *Account) Reactivate() {
	a.Deprecated = false
	a.Touch()
}

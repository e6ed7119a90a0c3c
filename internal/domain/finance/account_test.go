package finance

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	tenantID := uuid.New()

	account, err := NewAccount(tenantID, " 411000 ", "Commission Revenue", AccountCategoryIncome)
	require.NoError(t, err)
	assert.Equal(t, "411000", account.Code)
	assert.False(t, account.Deprecated)

	account.Deprecate()
	assert.True(t, account.Deprecated)
	account.Reactivate()
	assert.False(t, account.Deprecated)

	_, err = NewAccount(tenantID, "", "Name", AccountCategoryIncome)
	assert.Error(t, err)
	_, err = NewAccount(tenantID, "41", "Name", AccountCategory("other"))
	assert.Error(t, err)
}

// mockAccountRepository is a testify mock of AccountRepository
type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *mockAccountRepository) FindFirstActiveByCodePrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (*Account, error) {
	args := m.Called(ctx, tenantID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *mockAccountRepository) FindFirstByCategory(ctx context.Context, tenantID uuid.UUID, category AccountCategory) (*Account, error) {
	args := m.Called(ctx, tenantID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *mockAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Account, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]Account), args.Get(1).(int64), args.Error(2)
}

func (m *mockAccountRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepository) Save(ctx context.Context, account *Account) error {
	return m.Called(ctx, account).Error(0)
}

func TestRevenueAccountResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	revenue, _ := NewAccount(tenantID, "411000", "Commission Revenue", AccountCategoryIncome)
	otherIncome, _ := NewAccount(tenantID, "710000", "Other Income", AccountCategoryIncome)

	t.Run("prefers the prefix lookup", func(t *testing.T) {
		repo := new(mockAccountRepository)
		repo.On("FindFirstActiveByCodePrefix", ctx, tenantID, "41").Return(revenue, nil)

		got, err := NewRevenueAccountResolver(repo).Resolve(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, revenue.ID, got.ID)
		repo.AssertNotCalled(t, "FindFirstByCategory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to income category", func(t *testing.T) {
		repo := new(mockAccountRepository)
		repo.On("FindFirstActiveByCodePrefix", ctx, tenantID, "41").Return(nil, shared.ErrNotFound)
		repo.On("FindFirstByCategory", ctx, tenantID, AccountCategoryIncome).Return(otherIncome, nil)

		got, err := NewRevenueAccountResolver(repo).Resolve(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "710000", got.Code)
	})

	t.Run("fails when neither lookup matches", func(t *testing.T) {
		repo := new(mockAccountRepository)
		repo.On("FindFirstActiveByCodePrefix", ctx, tenantID, "41").Return(nil, shared.ErrNotFound)
		repo.On("FindFirstByCategory", ctx, tenantID, AccountCategoryIncome).Return(nil, shared.ErrNotFound)

		got, err := NewRevenueAccountResolver(repo).Resolve(ctx, tenantID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrNoRevenueAccount)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		repo := new(mockAccountRepository)
		repo.On("FindFirstActiveByCodePrefix", ctx, tenantID, "41").Return(nil, errors.New("connection refused"))

		_, err := NewRevenueAccountResolver(repo).Resolve(ctx, tenantID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoRevenueAccount)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("honours a configured prefix", func(t *testing.T) {
		repo := new(mockAccountRepository)
		repo.On("FindFirstActiveByCodePrefix", ctx, tenantID, "4").Return(revenue, nil)

		resolver := NewRevenueAccountResolver(repo)
		resolver.CodePrefix = "4"
		_, err := resolver.Resolve(ctx, tenantID)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

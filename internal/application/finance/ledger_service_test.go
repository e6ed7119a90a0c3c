package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/reseller/internal/domain/finance"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Account, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Account), args.Error(1)
}

func (m *MockAccountRepository) FindFirstActiveByCodePrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (*finance.Account, error) {
	args := m.Called(ctx, tenantID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Account), args.Error(1)
}

func (m *MockAccountRepository) FindFirstByCategory(ctx context.Context, tenantID uuid.UUID, category finance.AccountCategory) (*finance.Account, error) {
	args := m.Called(ctx, tenantID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Account, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]finance.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindBySourceOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]finance.Invoice, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceDate time.Time) (string, error) {
	args := m.Called(ctx, tenantID, invoiceDate)
	return args.String(0), args.Error(1)
}

var testTenantID = uuid.New()

func newTestAccount(t *testing.T, code string, category finance.AccountCategory) *finance.Account {
	t.Helper()
	account, err := finance.NewAccount(testTenantID, code, "Account "+code, category)
	require.NoError(t, err)
	return account
}

func TestLedgerService_ResolveRevenueAccount_PrefixFirst(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := NewLedgerService(accounts, new(MockInvoiceRepository))
	ctx := context.Background()
	sales := newTestAccount(t, "4100", finance.AccountCategoryIncome)

	accounts.On("FindFirstActiveByCodePrefix", ctx, testTenantID, "41").Return(sales, nil)

	got, err := svc.ResolveRevenueAccount(ctx, testTenantID)

	require.NoError(t, err)
	assert.Equal(t, "4100", got.Code)
	accounts.AssertNotCalled(t, "FindFirstByCategory", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerService_ResolveRevenueAccount_CategoryFallback(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := NewLedgerService(accounts, new(MockInvoiceRepository))
	ctx := context.Background()
	other := newTestAccount(t, "7000", finance.AccountCategoryIncome)

	accounts.On("FindFirstActiveByCodePrefix", ctx, testTenantID, "41").Return(nil, shared.ErrNotFound)
	accounts.On("FindFirstByCategory", ctx, testTenantID, finance.AccountCategoryIncome).Return(other, nil)

	got, err := svc.ResolveRevenueAccount(ctx, testTenantID)

	require.NoError(t, err)
	assert.Equal(t, "7000", got.Code)
}

func TestLedgerService_ResolveRevenueAccount_CustomPolicy(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := NewLedgerService(accounts, new(MockInvoiceRepository))
	svc.SetRevenueAccountPolicy(RevenueAccountPolicy{CodePrefix: "70"})
	ctx := context.Background()

	accounts.On("FindFirstActiveByCodePrefix", ctx, testTenantID, "70").Return(nil, shared.ErrNotFound)
	accounts.On("FindFirstByCategory", ctx, testTenantID, finance.AccountCategoryIncome).Return(nil, shared.ErrNotFound)

	_, err := svc.ResolveRevenueAccount(ctx, testTenantID)

	assert.ErrorIs(t, err, finance.ErrNoRevenueAccount)
}

func TestLedgerService_PostInvoice(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	svc := NewLedgerService(new(MockAccountRepository), invoices)
	ctx := context.Background()
	account := newTestAccount(t, "4100", finance.AccountCategoryIncome)
	principalID := uuid.New()

	invoiceDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	invoices.On("GenerateInvoiceNumber", ctx, testTenantID, invoiceDate).Return("CINV-20240101-00001", nil)
	invoices.On("Save", ctx, mock.AnythingOfType("*finance.Invoice")).Return(nil)

	invoice, err := svc.PostInvoice(ctx, testTenantID, finance.InvoiceDraft{
		PartnerID:     principalID,
		PartnerName:   "Principal",
		InvoiceOrigin: "SO-001",
		InvoiceDate:   invoiceDate,
		Lines: []finance.InvoiceLineInput{{
			Description: "Commission - SO-001 - Agent",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(50),
			Account:     account,
		}},
	})

	require.NoError(t, err)
	assert.True(t, invoice.IsPosted())
	assert.Equal(t, finance.InvoiceTypeOutInvoice, invoice.Type)
	assert.True(t, invoice.AmountTotal.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "CINV-20240101-00001", invoice.InvoiceNumber)
	invoices.AssertExpectations(t)
}

func TestLedgerService_PostInvoice_NumberUsesInvoiceDate(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	svc := NewLedgerService(new(MockAccountRepository), invoices)
	ctx := context.Background()
	account := newTestAccount(t, "4100", finance.AccountCategoryIncome)

	var numberDate time.Time
	invoices.On("GenerateInvoiceNumber", ctx, testTenantID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { numberDate = args.Get(2).(time.Time) }).
		Return("CINV-20240101-00002", nil)
	invoices.On("Save", ctx, mock.AnythingOfType("*finance.Invoice")).Return(nil)

	invoice, err := svc.PostInvoice(ctx, testTenantID, finance.InvoiceDraft{
		PartnerID: uuid.New(),
		Lines: []finance.InvoiceLineInput{{
			Description: "Commission",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(5),
			Account:     account,
		}},
	})

	require.NoError(t, err)
	assert.False(t, numberDate.IsZero())
	assert.Equal(t, numberDate, invoice.InvoiceDate)
}

func TestLedgerService_PostInvoice_NumberFailure(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	svc := NewLedgerService(new(MockAccountRepository), invoices)
	ctx := context.Background()

	invoices.On("GenerateInvoiceNumber", ctx, testTenantID, mock.Anything).Return("", errors.New("db down"))

	_, err := svc.PostInvoice(ctx, testTenantID, finance.InvoiceDraft{PartnerID: uuid.New()})

	require.Error(t, err)
	invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLedgerService_WithRepositoriesKeepsPolicy(t *testing.T) {
	svc := NewLedgerService(nil, nil)
	svc.SetRevenueAccountPolicy(RevenueAccountPolicy{CodePrefix: "42", Category: finance.AccountCategoryEquity})
	accounts := new(MockAccountRepository)
	scoped := svc.WithRepositories(accounts, new(MockInvoiceRepository))
	ctx := context.Background()
	account := newTestAccount(t, "4200", finance.AccountCategoryIncome)

	accounts.On("FindFirstActiveByCodePrefix", ctx, testTenantID, "42").Return(account, nil)

	got, err := scoped.ResolveRevenueAccount(ctx, testTenantID)

	require.NoError(t, err)
	assert.Equal(t, account, got)
}

func TestAccountService_Create(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := NewAccountService(accounts)
	ctx := context.Background()

	accounts.On("ExistsByCode", ctx, testTenantID, "4100").Return(false, nil)
	accounts.On("Save", ctx, mock.AnythingOfType("*finance.Account")).Return(nil)

	resp, err := svc.Create(ctx, testTenantID, CreateAccountRequest{Code: "4100", Name: "Commission income", Category: "income"})

	require.NoError(t, err)
	assert.Equal(t, "4100", resp.Code)
	assert.Equal(t, "income", resp.Category)
	assert.False(t, resp.Deprecated)
}

func TestAccountService_Create_Duplicate(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := NewAccountService(accounts)
	ctx := context.Background()

	accounts.On("ExistsByCode", ctx, testTenantID, "4100").Return(true, nil)

	_, err := svc.Create(ctx, testTenantID, CreateAccountRequest{Code: "4100", Name: "Dup", Category: "income"})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestAccountService_Deprecate(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := NewAccountService(accounts)
	ctx := context.Background()
	account := newTestAccount(t, "4100", finance.AccountCategoryIncome)

	accounts.On("FindByIDForTenant", ctx, testTenantID, account.ID).Return(account, nil)
	accounts.On("Save", ctx, account).Return(nil)

	resp, err := svc.Deprecate(ctx, testTenantID, account.ID)

	require.NoError(t, err)
	assert.True(t, resp.Deprecated)
}

package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/reseller/internal/domain/partner"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPartyRepository is a mock implementation of PartyRepository
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Party, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Party), args.Error(1)
}

func (m *MockPartyRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Party, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Party), args.Error(1)
}

func (m *MockPartyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, role partner.PartyRole, filter shared.Filter) ([]partner.Party, int64, error) {
	args := m.Called(ctx, tenantID, role, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]partner.Party), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartyRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartyRepository) Save(ctx context.Context, party *partner.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) SaveWithLock(ctx context.Context, party *partner.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var testTenantID = uuid.New()

func ratePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestPartyService_Create_DefaultRate(t *testing.T) {
	repo := new(MockPartyRepository)
	svc := NewPartyService(repo)
	ctx := context.Background()

	repo.On("ExistsByCode", ctx, testTenantID, "AG-001").Return(false, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*partner.Party")).Return(nil)

	resp, err := svc.Create(ctx, testTenantID, CreatePartyRequest{Code: "ag-001", Name: "Agent One", IsAgent: true})

	require.NoError(t, err)
	assert.Equal(t, "AG-001", resp.Code)
	assert.True(t, resp.IsAgent)
	assert.True(t, resp.CommissionRate.Equal(decimal.NewFromInt(10)))
	repo.AssertExpectations(t)
}

func TestPartyService_Create_ConfiguredDefaultRate(t *testing.T) {
	repo := new(MockPartyRepository)
	svc := NewPartyService(repo)
	svc.SetDefaultRate(valueobject.NewPercentage(decimal.NewFromInt(7)))
	ctx := context.Background()

	repo.On("ExistsByCode", ctx, testTenantID, "AG-002").Return(false, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := svc.Create(ctx, testTenantID, CreatePartyRequest{Code: "AG-002", Name: "Agent Two"})

	require.NoError(t, err)
	assert.True(t, resp.CommissionRate.Equal(decimal.NewFromInt(7)))
}

func TestPartyService_Create_RateOutOfRange(t *testing.T) {
	repo := new(MockPartyRepository)
	svc := NewPartyService(repo)
	ctx := context.Background()

	repo.On("ExistsByCode", ctx, testTenantID, "AG-003").Return(false, nil)

	_, err := svc.Create(ctx, testTenantID, CreatePartyRequest{Code: "AG-003", Name: "Agent", CommissionRate: ratePtr(150)})

	assert.ErrorIs(t, err, partner.ErrInvalidRate)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPartyService_Create_PrincipalSkipsRateBound(t *testing.T) {
	repo := new(MockPartyRepository)
	svc := NewPartyService(repo)
	ctx := context.Background()

	repo.On("ExistsByCode", ctx, testTenantID, "PR-001").Return(false, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := svc.Create(ctx, testTenantID, CreatePartyRequest{
		Code: "PR-001", Name: "Principal", IsPrincipal: true, CommissionRate: ratePtr(150),
	})

	require.NoError(t, err)
	assert.True(t, resp.CommissionRate.Equal(decimal.NewFromInt(150)))
}

func TestPartyService_Create_DuplicateCode(t *testing.T) {
	repo := new(MockPartyRepository)
	svc := NewPartyService(repo)
	ctx := context.Background()

	repo.On("ExistsByCode", ctx, testTenantID, "AG-001").Return(true, nil)

	_, err := svc.Create(ctx, testTenantID, CreatePartyRequest{Code: "AG-001", Name: "Dup"})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestPartyService_Create_PublishesEvents(t *testing.T) {
	repo := new(MockPartyRepository)
	publisher := new(MockEventPublisher)
	svc := NewPartyService(repo)
	svc.SetEventPublisher(publisher)
	ctx := context.Background()

	repo.On("ExistsByCode", ctx, testTenantID, "AG-009").Return(false, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == partner.EventTypePartyCreated
	})).Return(nil)

	_, err := svc.Create(ctx, testTenantID, CreatePartyRequest{Code: "AG-009", Name: "Agent"})

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestPartyService_Update_DropPrincipalWithOutOfRangeRate(t *testing.T) {
	repo := new(MockPartyRepository)
	svc := NewPartyService(repo)
	ctx := context.Background()

	party, err := partner.NewParty(testTenantID, "PR-002", "Principal",
		partner.WithPrincipalRole(),
		partner.WithCommissionRate(valueobject.NewPercentage(decimal.NewFromInt(150))),
	)
	require.NoError(t, err)
	repo.On("FindByIDForTenant", ctx, testTenantID, party.ID).Return(party, nil)

	off := false
	_, err = svc.Update(ctx, testTenantID, party.ID, UpdatePartyRequest{IsPrincipal: &off})

	assert.ErrorIs(t, err, partner.ErrInvalidRate)
	assert.True(t, party.IsPrincipal)
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestPartyService_Update_DropPrincipalAndFixRate(t *testing.T) {
	repo := new(MockPartyRepository)
	svc := NewPartyService(repo)
	ctx := context.Background()

	party, err := partner.NewParty(testTenantID, "PR-003", "Principal",
		partner.WithPrincipalRole(),
		partner.WithCommissionRate(valueobject.NewPercentage(decimal.NewFromInt(150))),
	)
	require.NoError(t, err)
	repo.On("FindByIDForTenant", ctx, testTenantID, party.ID).Return(party, nil)
	repo.On("SaveWithLock", ctx, party).Return(nil)

	off, on := false, true
	resp, err := svc.Update(ctx, testTenantID, party.ID, UpdatePartyRequest{
		IsPrincipal:    &off,
		IsAgent:        &on,
		CommissionRate: ratePtr(25),
	})

	require.NoError(t, err)
	assert.False(t, resp.IsPrincipal)
	assert.True(t, resp.IsAgent)
	assert.True(t, resp.CommissionRate.Equal(decimal.NewFromInt(25)))
}

func TestPartyService_List_ByRole(t *testing.T) {
	repo := new(MockPartyRepository)
	svc := NewPartyService(repo)
	ctx := context.Background()

	agent, err := partner.NewParty(testTenantID, "AG-010", "Agent", partner.WithAgentRole())
	require.NoError(t, err)
	repo.On("FindAllForTenant", ctx, testTenantID, partner.PartyRoleAgent, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]partner.Party{*agent}, int64(1), nil)

	items, total, err := svc.List(ctx, testTenantID, PartyListFilter{Role: "agent"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "AG-010", items[0].Code)
}

func TestPartyService_List_InvalidRole(t *testing.T) {
	svc := NewPartyService(new(MockPartyRepository))

	_, _, err := svc.List(context.Background(), testTenantID, PartyListFilter{Role: "customer"})

	require.Error(t, err)
}

func TestPartyService_Update_StaleVersion(t *testing.T) {
	repo := new(MockPartyRepository)
	publisher := new(MockEventPublisher)
	svc := NewPartyService(repo)
	svc.SetEventPublisher(publisher)
	ctx := context.Background()

	party, err := partner.NewParty(testTenantID, "AG-010", "Agent", partner.WithAgentRole())
	require.NoError(t, err)
	party.ClearDomainEvents()
	repo.On("FindByIDForTenant", ctx, testTenantID, party.ID).Return(party, nil)
	repo.On("SaveWithLock", ctx, party).Return(shared.ErrConcurrencyConflict)

	_, err = svc.Update(ctx, testTenantID, party.ID, UpdatePartyRequest{CommissionRate: ratePtr(12)})

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

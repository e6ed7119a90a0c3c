package persistence

import (
	"context"
	"testing"

	"github.com/erp/reseller/internal/domain/partner"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParty(t *testing.T, tenantID uuid.UUID, code, name string, opts ...partner.PartyOption) *partner.Party {
	t.Helper()
	p, err := partner.NewParty(tenantID, code, name, opts...)
	require.NoError(t, err)
	return p
}

func TestGormPartyRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPartyRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	agent := newTestParty(t, tenantID, "ag-001", "Acme Resellers", partner.WithAgentRole(),
		partner.WithCommissionRate(valueobject.NewPercentageFromFloat(7.5)))
	require.NoError(t, repo.Save(ctx, agent))

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, agent.ID)
		require.NoError(t, err)
		assert.Equal(t, "AG-001", found.Code)
		assert.True(t, found.IsAgent)
		assert.False(t, found.IsPrincipal)
		assert.Equal(t, "7.5", found.CommissionRate.Decimal().String())
	})

	t.Run("finds by code case-insensitively", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, tenantID, "ag-001")
		require.NoError(t, err)
		assert.Equal(t, agent.ID, found.ID)
	})

	t.Run("other tenant does not see the party", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), agent.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update persists role change", func(t *testing.T) {
		require.NoError(t, agent.SetRoles(true, true))
		require.NoError(t, repo.Save(ctx, agent))

		found, err := repo.FindByIDForTenant(ctx, tenantID, agent.ID)
		require.NoError(t, err)
		assert.True(t, found.IsPrincipal)
	})

	t.Run("exists by code", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, tenantID, "AG-001")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, tenantID, "AG-404")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormPartyRepository_DuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPartyRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	require.NoError(t, repo.Save(ctx, newTestParty(t, tenantID, "P-1", "First")))
	err := repo.Save(ctx, newTestParty(t, tenantID, "P-1", "Second"))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestGormPartyRepository_FindAllForTenant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPartyRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	require.NoError(t, repo.Save(ctx, newTestParty(t, tenantID, "A-1", "Agent One", partner.WithAgentRole())))
	require.NoError(t, repo.Save(ctx, newTestParty(t, tenantID, "A-2", "Agent Two", partner.WithAgentRole())))
	require.NoError(t, repo.Save(ctx, newTestParty(t, tenantID, "V-1", "Vendor One", partner.WithPrincipalRole())))
	require.NoError(t, repo.Save(ctx, newTestParty(t, tenantID, "C-1", "Plain Customer")))
	require.NoError(t, repo.Save(ctx, newTestParty(t, uuid.New(), "X-1", "Foreign Agent", partner.WithAgentRole())))

	tests := []struct {
		name   string
		role   partner.PartyRole
		search string
		want   []string
	}{
		{name: "all parties", role: partner.PartyRoleAny, want: []string{"A-1", "A-2", "C-1", "V-1"}},
		{name: "agents only", role: partner.PartyRoleAgent, want: []string{"A-1", "A-2"}},
		{name: "principals only", role: partner.PartyRolePrincipal, want: []string{"V-1"}},
		{name: "search narrows agents", role: partner.PartyRoleAgent, search: "two", want: []string{"A-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := shared.DefaultFilter()
			filter.OrderBy = "code"
			filter.OrderDir = "asc"
			filter.Search = tt.search

			parties, total, err := repo.FindAllForTenant(ctx, tenantID, tt.role, filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)

			codes := make([]string, len(parties))
			for i, p := range parties {
				codes[i] = p.Code
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestGormPartyRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps version on update", func(t *testing.T) {
		repo := NewGormPartyRepository(setupTestDB(t))
		tenantID := uuid.New()
		agent := newTestParty(t, tenantID, "AG-100", "Agent", partner.WithAgentRole())
		require.NoError(t, repo.Save(ctx, agent))

		require.NoError(t, agent.SetCommissionRate(valueobject.NewPercentageFromFloat(12.5)))
		require.NoError(t, repo.SaveWithLock(ctx, agent))
		assert.Equal(t, 2, agent.Version)

		found, err := repo.FindByIDForTenant(ctx, tenantID, agent.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version)
		assert.Equal(t, "12.5", found.CommissionRate.Decimal().String())
	})

	t.Run("stale copy is rejected", func(t *testing.T) {
		repo := NewGormPartyRepository(setupTestDB(t))
		tenantID := uuid.New()
		agent := newTestParty(t, tenantID, "AG-200", "Agent", partner.WithAgentRole())
		require.NoError(t, repo.Save(ctx, agent))

		first, err := repo.FindByIDForTenant(ctx, tenantID, agent.ID)
		require.NoError(t, err)
		second, err := repo.FindByIDForTenant(ctx, tenantID, agent.ID)
		require.NoError(t, err)

		require.NoError(t, first.SetCommissionRate(valueobject.NewPercentageFromFloat(20)))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.SetCommissionRate(valueobject.NewPercentageFromFloat(30)))
		err = repo.SaveWithLock(ctx, second)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)

		found, err := repo.FindByIDForTenant(ctx, tenantID, agent.ID)
		require.NoError(t, err)
		assert.Equal(t, "20", found.CommissionRate.Decimal().String())
	})

	t.Run("unknown party", func(t *testing.T) {
		repo := NewGormPartyRepository(setupTestDB(t))
		err := repo.SaveWithLock(ctx, newTestParty(t, uuid.New(), "AG-404", "Ghost"))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

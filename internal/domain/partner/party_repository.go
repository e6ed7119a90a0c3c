package partner

import (
	"context"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
)

// PartyRole narrows directory listings to agents or principals
type PartyRole string

const (
	PartyRoleAny       PartyRole = ""
	PartyRoleAgent     PartyRole = "agent"
	PartyRolePrincipal PartyRole = "principal"
)

// IsValid checks if the role filter is valid
func (r PartyRole) IsValid() bool {
	switch r {
	case PartyRoleAny, PartyRoleAgent, PartyRolePrincipal:
		return true
	}
	return false
}

// PartyRepository defines the interface for party persistence
type PartyRepository interface {
	// FindByIDForTenant finds a party by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Party, error)

	// FindByCode finds a party by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Party, error)

	// FindAllForTenant lists parties, optionally restricted to one role
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, role PartyRole, filter shared.Filter) ([]Party, int64, error)

	// ExistsByCode checks if a party with the given code exists in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// Save creates or updates a party
	Save(ctx context.Context, party *Party) error

	// SaveWithLock updates a party only if its stored version still matches.
	// It fails with CONCURRENT_MODIFICATION when the stored version moved on.
	SaveWithLock(ctx context.Context, party *Party) error
}

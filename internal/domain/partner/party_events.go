package partner

import (
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constant for Party
const AggregateTypeParty = "Party"

// Event type constants for Party
const (
	EventTypePartyCreated               = "PartyCreated"
	EventTypePartyRolesChanged          = "PartyRolesChanged"
	EventTypePartyCommissionRateChanged = "PartyCommissionRateChanged"
)

// PartyCreatedEvent is published when a party is added to the directory
type PartyCreatedEvent struct {
	shared.BaseDomainEvent
	PartyID        uuid.UUID              `json:"party_id"`
	Code           string                 `json:"code"`
	Name           string                 `json:"name"`
	IsAgent        bool                   `json:"is_agent"`
	IsPrincipal    bool                   `json:"is_principal"`
	CommissionRate valueobject.Percentage `json:"commission_rate"`
}

// NewPartyCreatedEvent creates a new PartyCreatedEvent
func NewPartyCreatedEvent(p *Party) *PartyCreatedEvent {
	return &PartyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartyCreated, AggregateTypeParty, p.ID, p.TenantID),
		PartyID:         p.ID,
		Code:            p.Code,
		Name:            p.Name,
		IsAgent:         p.IsAgent,
		IsPrincipal:     p.IsPrincipal,
		CommissionRate:  p.CommissionRate,
	}
}

// PartyRolesChangedEvent is published when the agent or principal flag changes
type PartyRolesChangedEvent struct {
	shared.BaseDomainEvent
	PartyID     uuid.UUID `json:"party_id"`
	IsAgent     bool      `json:"is_agent"`
	IsPrincipal bool      `json:"is_principal"`
}

// NewPartyRolesChangedEvent creates a new PartyRolesChangedEvent
func NewPartyRolesChangedEvent(p *Party) *PartyRolesChangedEvent {
	return &PartyRolesChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartyRolesChanged, AggregateTypeParty, p.ID, p.TenantID),
		PartyID:         p.ID,
		IsAgent:         p.IsAgent,
		IsPrincipal:     p.IsPrincipal,
	}
}

// PartyCommissionRateChangedEvent is published when the default rate changes
type PartyCommissionRateChangedEvent struct {
	shared.BaseDomainEvent
	PartyID uuid.UUID              `json:"party_id"`
	OldRate valueobject.Percentage `json:"old_rate"`
	NewRate valueobject.Percentage `json:"new_rate"`
}

// NewPartyCommissionRateChangedEvent creates a new PartyCommissionRateChangedEvent
func NewPartyCommissionRateChangedEvent(p *Party, oldRate valueobject.Percentage) *PartyCommissionRateChangedEvent {
	return &PartyCommissionRateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartyCommissionRateChanged, AggregateTypeParty, p.ID, p.TenantID),
		PartyID:         p.ID,
		OldRate:         oldRate,
		NewRate:         p.CommissionRate,
	}
}

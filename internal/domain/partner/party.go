package partner

import (
	"strings"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Party is an entry in the party directory. A party may act as an agent
// (earns commission), a principal (pays commission), both, or neither.
type Party struct {
	shared.TenantAggregateRoot
	Code           string
	Name           string
	IsAgent        bool
	IsPrincipal    bool
	CommissionRate valueobject.Percentage
}

// PartyOption configures a party at creation time
type PartyOption func(*Party)

// WithAgentRole marks the party as a commission-earning agent
func WithAgentRole() PartyOption {
	return func(p *Party) { p.IsAgent = true }
}

// WithPrincipalRole marks the party as a commission-paying principal
func WithPrincipalRole() PartyOption {
	return func(p *Party) { p.IsPrincipal = true }
}

// WithCommissionRate overrides the default commission rate
func WithCommissionRate(rate valueobject.Percentage) PartyOption {
	return func(p *Party) { p.CommissionRate = rate }
}

// NewParty creates a party. Without WithCommissionRate the rate defaults to 10%.
func NewParty(tenantID uuid.UUID, code, name string, opts ...PartyOption) (*Party, error) {
	if err := validatePartyCode(code); err != nil {
		return nil, err
	}
	if err := validatePartyName(name); err != nil {
		return nil, err
	}

	party := &Party{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(strings.TrimSpace(code)),
		Name:                strings.TrimSpace(name),
		CommissionRate:      DefaultCommissionRate,
	}
	for _, opt := range opts {
		opt(party)
	}

	if err := ValidateCommissionRate(party.CommissionRate, party.IsPrincipal); err != nil {
		return nil, err
	}

	party.AddDomainEvent(NewPartyCreatedEvent(party))
	return party, nil
}

// Rename changes the display name
func (p *Party) Rename(name string) error {
	if err := validatePartyName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.touch()
	return nil
}

// SetRoles replaces both role flags. Dropping the principal role makes the
// stored rate subject to the bound check again.
func (p *Party) SetRoles(isAgent, isPrincipal bool) error {
	if err := ValidateCommissionRate(p.CommissionRate, isPrincipal); err != nil {
		return err
	}
	if p.IsAgent == isAgent && p.IsPrincipal == isPrincipal {
		return nil
	}

	p.IsAgent = isAgent
	p.IsPrincipal = isPrincipal
	p.touch()
	p.AddDomainEvent(NewPartyRolesChangedEvent(p))
	return nil
}

// SetCommissionRate changes the default rate offered to orders
func (p *Party) SetCommissionRate(rate valueobject.Percentage) error {
	if err := ValidateCommissionRate(rate, p.IsPrincipal); err != nil {
		return err
	}
	if p.CommissionRate.Equals(rate) {
		return nil
	}

	old := p.CommissionRate
	p.CommissionRate = rate
	p.touch()
	p.AddDomainEvent(NewPartyCommissionRateChangedEvent(p, old))
	return nil
}

// DefaultRate returns the rate an order should copy when this party is
// selected as its agent. A zero rate means there is no default.
func (p *Party) DefaultRate() (valueobject.Percentage, bool) {
	if !p.CommissionRate.IsPositive() {
		return valueobject.ZeroPercent(), false
	}
	return p.CommissionRate, true
}

func (p *Party) touch() {
	p.Touch()
}

func validatePartyCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Party code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Party code cannot exceed 50 characters")
	}
	return nil
}

func validatePartyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Party name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Party name cannot exceed 200 characters")
	}
	return nil
}

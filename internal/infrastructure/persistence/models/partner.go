package models

import (
	"github.com/erp/reseller/internal/domain/partner"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PartyModel is the persistence model for the Party aggregate root.
type PartyModel struct {
	TenantAggregateModel
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_party_tenant_code,priority:2"`
	Name           string          `gorm:"type:varchar(200);not null"`
	IsAgent        bool            `gorm:"not null;default:false;index"`
	IsPrincipal    bool            `gorm:"not null;default:false;index"`
	CommissionRate decimal.Decimal `gorm:"type:numeric;not null;default:10"`
}

// TableName returns the table name for GORM
func (PartyModel) TableName() string {
	return "parties"
}

// ToDomain converts the persistence model to a domain Party.
func (m *PartyModel) ToDomain() *partner.Party {
	return &partner.Party{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		IsAgent:             m.IsAgent,
		IsPrincipal:         m.IsPrincipal,
		CommissionRate:      valueobject.NewPercentage(m.CommissionRate),
	}
}

// FromDomain populates the persistence model from a domain Party.
func (m *PartyModel) FromDomain(p *partner.Party) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.IsAgent = p.IsAgent
	m.IsPrincipal = p.IsPrincipal
	m.CommissionRate = p.CommissionRate.Decimal()
}

// PartyModelFromDomain creates a new persistence model from a domain Party.
func PartyModelFromDomain(p *partner.Party) *PartyModel {
	m := &PartyModel{}
	m.FromDomain(p)
	return m
}

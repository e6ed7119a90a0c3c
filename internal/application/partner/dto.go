package partner

import (
	"time"

	"github.com/erp/reseller/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest represents a request to add a party to the directory
type CreatePartyRequest struct {
	Code           string           `json:"code" binding:"required,min=1,max=50"`
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	IsAgent        bool             `json:"is_agent"`
	IsPrincipal    bool             `json:"is_principal"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

// UpdatePartyRequest represents a partial update of a party. Omitted fields are left unchanged.
type UpdatePartyRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	IsAgent        *bool            `json:"is_agent"`
	IsPrincipal    *bool            `json:"is_principal"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

// PartyListFilter represents filter options for the party directory
type PartyListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=agent principal"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PartyResponse represents a party in API responses
type PartyResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	IsAgent        bool            `json:"is_agent"`
	IsPrincipal    bool            `json:"is_principal"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToPartyResponse converts a domain Party to a response
func ToPartyResponse(p *partner.Party) PartyResponse {
	return PartyResponse{
		ID:             p.ID,
		TenantID:       p.TenantID,
		Code:           p.Code,
		Name:           p.Name,
		IsAgent:        p.IsAgent,
		IsPrincipal:    p.IsPrincipal,
		CommissionRate: p.CommissionRate.Decimal(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToPartyResponses converts a slice of parties
func ToPartyResponses(parties []partner.Party) []PartyResponse {
	responses := make([]PartyResponse, len(parties))
	for i := range parties {
		responses[i] = ToPartyResponse(&parties[i])
	}
	return responses
}

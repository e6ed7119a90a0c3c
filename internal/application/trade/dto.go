package trade

import (
	"time"

	"github.com/erp/reseller/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	OrderNumber   string           `json:"order_number" binding:"required,min=1,max=50"`
	CustomerID    uuid.UUID        `json:"customer_id" binding:"required"`
	CustomerName  string           `json:"customer_name" binding:"required,min=1,max=200"`
	AmountUntaxed decimal.Decimal  `json:"amount_untaxed"`
	AmountTax     *decimal.Decimal `json:"amount_tax"`
	Remark        string           `json:"remark" binding:"max=500"`
	IsAgentSale   bool             `json:"is_agent_sale"`
}

// SetAmountRequest reprices a draft order
type SetAmountRequest struct {
	AmountUntaxed decimal.Decimal  `json:"amount_untaxed"`
	AmountTax     *decimal.Decimal `json:"amount_tax"`
}

// SetAgentSaleRequest toggles the agent-sale flag
type SetAgentSaleRequest struct {
	IsAgentSale *bool `json:"is_agent_sale" binding:"required"`
}

// SelectPartyRequest selects the agent or the principal of an order
type SelectPartyRequest struct {
	PartyID uuid.UUID `json:"party_id" binding:"required"`
}

// SetCommissionRateRequest sets the order's commission rate, in percent
type SetCommissionRateRequest struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// SalesOrderListFilter represents filter options for the sales order list
type SalesOrderListFilter struct {
	Search           string     `form:"search"`
	Status           string     `form:"status" binding:"omitempty,oneof=draft sale cancel"`
	CommissionStatus string     `form:"commission_status" binding:"omitempty,oneof=draft confirmed invoiced paid"`
	IsAgentSale      *bool      `form:"is_agent_sale"`
	AgentID          *uuid.UUID `form:"agent_id"`
	PrincipalID      *uuid.UUID `form:"principal_id"`
	Page             int        `form:"page" binding:"omitempty,min=1"`
	PageSize         int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy          string     `form:"order_by"`
	OrderDir         string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SalesOrderResponse represents a sales order with its commission terms
type SalesOrderResponse struct {
	ID                  uuid.UUID       `json:"id"`
	TenantID            uuid.UUID       `json:"tenant_id"`
	OrderNumber         string          `json:"order_number"`
	CustomerID          uuid.UUID       `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	AmountUntaxed       decimal.Decimal `json:"amount_untaxed"`
	AmountTax           decimal.Decimal `json:"amount_tax"`
	AmountTotal         decimal.Decimal `json:"amount_total"`
	Status              string          `json:"status"`
	Remark              string          `json:"remark,omitempty"`
	IsAgentSale         bool            `json:"is_agent_sale"`
	AgentID             *uuid.UUID      `json:"agent_id,omitempty"`
	AgentName           string          `json:"agent_name,omitempty"`
	PrincipalID         *uuid.UUID      `json:"principal_id,omitempty"`
	PrincipalName       string          `json:"principal_name,omitempty"`
	CommissionRate      decimal.Decimal `json:"commission_rate"`
	CommissionAmount    decimal.Decimal `json:"commission_amount"`
	CommissionStatus    string          `json:"commission_status"`
	CommissionInvoiceID *uuid.UUID      `json:"commission_invoice_id,omitempty"`
	ConfirmedAt         *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt         *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Version             int             `json:"version"`
}

// CommissionInvoiceResult describes the document created for a commission so
// the caller can open it
type CommissionInvoiceResult struct {
	DocumentID     uuid.UUID       `json:"document_id"`
	DocumentNumber string          `json:"document_number"`
	DisplayName    string          `json:"display_name"`
	Total          decimal.Decimal `json:"total"`
	Model          string          `json:"model"`
	View           string          `json:"view"`
}

// Navigation descriptor values of CommissionInvoiceResult
const (
	CommissionInvoiceModel = "commission_invoice"
	CommissionInvoiceView  = "form"
)

// ToSalesOrderResponse converts a domain SalesOrder to a response
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:                  o.ID,
		TenantID:            o.TenantID,
		OrderNumber:         o.OrderNumber,
		CustomerID:          o.CustomerID,
		CustomerName:        o.CustomerName,
		AmountUntaxed:       o.AmountUntaxed,
		AmountTax:           o.AmountTax,
		AmountTotal:         o.AmountTotal,
		Status:              o.Status.String(),
		Remark:              o.Remark,
		IsAgentSale:         o.IsAgentSale,
		AgentID:             o.AgentID,
		AgentName:           o.AgentName,
		PrincipalID:         o.PrincipalID,
		PrincipalName:       o.PrincipalName,
		CommissionRate:      o.CommissionRate.Decimal(),
		CommissionAmount:    o.CommissionAmount,
		CommissionStatus:    o.CommissionStatus.String(),
		CommissionInvoiceID: o.CommissionInvoiceID,
		ConfirmedAt:         o.ConfirmedAt,
		CancelledAt:         o.CancelledAt,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Version:             o.Version,
	}
}

// ToSalesOrderResponses converts a slice of orders
func ToSalesOrderResponses(orders []trade.SalesOrder) []SalesOrderResponse {
	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}
	return responses
}

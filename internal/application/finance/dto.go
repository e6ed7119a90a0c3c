package finance

import (
	"time"

	"github.com/erp/reseller/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to add a chart-of-accounts entry
type CreateAccountRequest struct {
	Code     string `json:"code" binding:"required,min=1,max=20"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Category string `json:"category" binding:"required,oneof=asset liability equity income expense"`
}

// AccountListFilter represents filter options for the chart of accounts
type AccountListFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category" binding:"omitempty,oneof=asset liability equity income expense"`
	Deprecated *bool  `form:"deprecated"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Deprecated bool      `json:"deprecated"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	Type          string                `json:"type"`
	PartnerID     uuid.UUID             `json:"partner_id"`
	PartnerName   string                `json:"partner_name"`
	InvoiceOrigin string                `json:"invoice_origin"`
	SourceOrderID *uuid.UUID            `json:"source_order_id,omitempty"`
	InvoiceDate   time.Time             `json:"invoice_date"`
	Status        string                `json:"status"`
	AmountTotal   decimal.Decimal       `json:"amount_total"`
	Lines         []InvoiceLineResponse `json:"lines"`
	PostedAt      *time.Time            `json:"posted_at,omitempty"`
}

// ToAccountResponse converts a domain Account to a response
func ToAccountResponse(a *finance.Account) AccountResponse {
	return AccountResponse{
		ID:         a.ID,
		Code:       a.Code,
		Name:       a.Name,
		Category:   a.Category.String(),
		Deprecated: a.Deprecated,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ToInvoiceResponse converts a domain Invoice to a response
func ToInvoiceResponse(inv *finance.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ID:          l.ID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
		}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Type:          string(inv.Type),
		PartnerID:     inv.PartnerID,
		PartnerName:   inv.PartnerName,
		InvoiceOrigin: inv.InvoiceOrigin,
		SourceOrderID: inv.SourceOrderID,
		InvoiceDate:   inv.InvoiceDate,
		Status:        string(inv.Status),
		AmountTotal:   inv.AmountTotal,
		Lines:         lines,
		PostedAt:      inv.PostedAt,
	}
}

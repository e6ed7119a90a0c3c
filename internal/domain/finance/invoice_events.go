package finance

import (
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Invoice
const AggregateTypeInvoice = "Invoice"

// EventTypeInvoicePosted is raised when an invoice is posted to the ledger
const EventTypeInvoicePosted = "InvoicePosted"

// InvoicePostedEvent is raised when an invoice is posted to the ledger
type InvoicePostedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	PartnerID     uuid.UUID       `json:"partner_id"`
	InvoiceOrigin string          `json:"invoice_origin"`
	AmountTotal   decimal.Decimal `json:"amount_total"`
}

// NewInvoicePostedEvent creates a new InvoicePostedEvent
func NewInvoicePostedEvent(inv *Invoice) *InvoicePostedEvent {
	return &InvoicePostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePosted, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		PartnerID:       inv.PartnerID,
		InvoiceOrigin:   inv.InvoiceOrigin,
		AmountTotal:     inv.AmountTotal,
	}
}

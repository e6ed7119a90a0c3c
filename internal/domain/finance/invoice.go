package finance

import (
	"fmt"
	"time"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceType mirrors the document kinds of the ledger
type InvoiceType string

const (
	InvoiceTypeOutInvoice InvoiceType = "out_invoice"
)

// InvoiceStatus represents the posting state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusPosted InvoiceStatus = "posted"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusPosted
}

// InvoiceLine is a single revenue line of an invoice
type InvoiceLine struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	AccountID   uuid.UUID
	AccountCode string
}

// InvoiceLineInput is the payload used to add a line
type InvoiceLineInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Account     *Account
}

// InvoiceDraft describes a document to be created and posted in one step
type InvoiceDraft struct {
	Type          InvoiceType
	PartnerID     uuid.UUID
	PartnerName   string
	InvoiceOrigin string
	SourceOrderID *uuid.UUID
	InvoiceDate   time.Time
	Lines         []InvoiceLineInput
}

// Invoice is a customer financial document. Once posted it is immutable.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber string
	Type          InvoiceType
	PartnerID     uuid.UUID
	PartnerName   string
	InvoiceOrigin string
	SourceOrderID *uuid.UUID
	InvoiceDate   time.Time
	Status        InvoiceStatus
	AmountTotal   decimal.Decimal
	Lines         []InvoiceLine
	PostedAt      *time.Time
}

// NewInvoice builds a draft invoice from the draft payload
func NewInvoice(tenantID uuid.UUID, invoiceNumber string, draft InvoiceDraft) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if draft.Type == "" {
		draft.Type = InvoiceTypeOutInvoice
	}
	if draft.PartnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Invoice partner cannot be empty")
	}
	if len(draft.Lines) == 0 {
		return nil, shared.NewDomainError("NO_LINES", "Invoice must contain at least one line")
	}
	if draft.InvoiceDate.IsZero() {
		draft.InvoiceDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		Type:                draft.Type,
		PartnerID:           draft.PartnerID,
		PartnerName:         draft.PartnerName,
		InvoiceOrigin:       draft.InvoiceOrigin,
		SourceOrderID:       draft.SourceOrderID,
		InvoiceDate:         draft.InvoiceDate,
		Status:              InvoiceStatusDraft,
		AmountTotal:         decimal.Zero,
		Lines:               make([]InvoiceLine, 0, len(draft.Lines)),
	}

	for i, in := range draft.Lines {
		if err := inv.addLine(in); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return inv, nil
}

func (inv *Invoice) addLine(in InvoiceLineInput) error {
	if in.Description == "" {
		return shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if !in.Quantity.IsPositive() {
		return shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
	}
	if in.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_LINE", "Line unit price cannot be negative")
	}
	if in.Account == nil {
		return shared.NewDomainError("INVALID_LINE", "Line account is required")
	}

	amount := in.Quantity.Mul(in.UnitPrice)
	inv.Lines = append(inv.Lines, InvoiceLine{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Amount:      amount,
		AccountID:   in.Account.ID,
		AccountCode: in.Account.Code,
	})
	inv.AmountTotal = inv.AmountTotal.Add(amount)
	return nil
}

// Post finalizes the invoice. Posting is irreversible.
func (inv *Invoice) Post() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post invoice in %s status", inv.Status))
	}
	if !inv.AmountTotal.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice total must be positive")
	}

	now := time.Now()
	inv.Status = InvoiceStatusPosted
	inv.PostedAt = &now
	inv.Touch()
	inv.AddDomainEvent(NewInvoicePostedEvent(inv))
	return nil
}

// IsPosted returns true once the invoice has been posted
func (inv *Invoice) IsPosted() bool {
	return inv.Status == InvoiceStatusPosted
}

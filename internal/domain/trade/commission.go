package trade

import (
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CommissionStatus tracks the commission of an agent sale.
// Transitions only move forward: draft -> confirmed -> invoiced -> paid.
type CommissionStatus string

const (
	CommissionStatusDraft     CommissionStatus = "draft"
	CommissionStatusConfirmed CommissionStatus = "confirmed"
	CommissionStatusInvoiced  CommissionStatus = "invoiced"
	CommissionStatusPaid      CommissionStatus = "paid"
)

// IsValid checks if the status is a valid CommissionStatus
func (s CommissionStatus) IsValid() bool {
	switch s {
	case CommissionStatusDraft, CommissionStatusConfirmed, CommissionStatusInvoiced, CommissionStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of CommissionStatus
func (s CommissionStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can move forward to target
func (s CommissionStatus) CanTransitionTo(target CommissionStatus) bool {
	switch s {
	case CommissionStatusDraft:
		return target == CommissionStatusConfirmed
	case CommissionStatusConfirmed:
		return target == CommissionStatusInvoiced
	case CommissionStatusInvoiced:
		return target == CommissionStatusPaid
	}
	return false
}

// HasInvoice reports whether an order in this status must carry an invoice reference
func (s CommissionStatus) HasInvoice() bool {
	return s == CommissionStatusInvoiced || s == CommissionStatusPaid
}

// ComputeCommission returns amountUntaxed * rate / 100 for an agent sale with
// a positive rate, and zero otherwise.
func ComputeCommission(amountUntaxed decimal.Decimal, rate valueobject.Percentage, isAgentSale bool) decimal.Decimal {
	if !isAgentSale || !rate.IsPositive() {
		return decimal.Zero
	}
	return rate.Of(amountUntaxed)
}

// Commission lifecycle errors. Each precondition has its own code.
var (
	ErrMissingAgent           = shared.NewDomainError("MISSING_AGENT", "An agent must be selected for an agent sale")
	ErrMissingPrincipal       = shared.NewDomainError("MISSING_PRINCIPAL", "A principal must be selected for an agent sale")
	ErrNotAgentSale           = shared.NewDomainError("NOT_AGENT_SALE", "Order is not an agent sale")
	ErrOrderNotConfirmed      = shared.NewDomainError("ORDER_NOT_CONFIRMED", "Order must be confirmed before invoicing its commission")
	ErrCommissionNotConfirmed = shared.NewDomainError("COMMISSION_NOT_CONFIRMED", "Commission must be confirmed before it can be invoiced")
	ErrInvoiceAlreadyExists   = shared.NewDomainError("INVOICE_ALREADY_EXISTS", "A commission invoice already exists for this order")
	ErrMissingParty           = shared.NewDomainError("MISSING_PARTY", "Both agent and principal are required to invoice a commission")
	ErrZeroCommission         = shared.NewDomainError("ZERO_COMMISSION", "Commission amount must be greater than zero")
	ErrNotAnAgent             = shared.NewDomainError("NOT_AN_AGENT", "Selected party is not registered as an agent")
	ErrNotAPrincipal          = shared.NewDomainError("NOT_A_PRINCIPAL", "Selected party is not registered as a principal")
	ErrCommissionLocked       = shared.NewDomainError("COMMISSION_LOCKED", "Commission terms cannot change after the commission is confirmed")
)

package trade

import (
	"fmt"

	"github.com/erp/reseller/internal/domain/partner"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SetAgentSale sets the agent-sale flag. Clearing the flag resets agent,
// principal, rate and invoice reference and forces the commission back to
// draft, whatever state it was in. Callers that clear the flag on an
// invoiced order discard the link to the issued document.
func (o *SalesOrder) SetAgentSale(isAgentSale bool) {
	if isAgentSale == o.IsAgentSale {
		return
	}

	o.IsAgentSale = isAgentSale
	if !isAgentSale {
		previous := o.CommissionStatus
		o.AgentID = nil
		o.AgentName = ""
		o.PrincipalID = nil
		o.PrincipalName = ""
		o.CommissionRate = valueobject.ZeroPercent()
		o.CommissionStatus = CommissionStatusDraft
		o.CommissionInvoiceID = nil
		o.AddDomainEvent(NewCommissionResetEvent(o, previous))
	}

	o.recomputeCommission()
	o.Touch()
}

// SelectAgent assigns the commission-earning agent. When the agent carries a
// positive default rate it is copied into the order; a zero rate leaves the
// order's rate as it was. The copy is not kept in sync afterwards.
func (o *SalesOrder) SelectAgent(agent *partner.Party) error {
	if err := o.ensureCommissionEditable(); err != nil {
		return err
	}
	if agent == nil {
		return ErrMissingAgent
	}
	if !agent.IsAgent {
		return ErrNotAnAgent
	}

	rate, hasDefault := agent.DefaultRate()
	if hasDefault {
		if err := partner.CheckCommissionRateBounds(rate); err != nil {
			return err
		}
		o.CommissionRate = rate
	}

	id := agent.ID
	o.AgentID = &id
	o.AgentName = agent.Name

	o.recomputeCommission()
	o.Touch()
	return nil
}

// SelectPrincipal assigns the commission-paying principal
func (o *SalesOrder) SelectPrincipal(principal *partner.Party) error {
	if err := o.ensureCommissionEditable(); err != nil {
		return err
	}
	if principal == nil {
		return ErrMissingPrincipal
	}
	if !principal.IsPrincipal {
		return ErrNotAPrincipal
	}

	id := principal.ID
	o.PrincipalID = &id
	o.PrincipalName = principal.Name
	o.Touch()
	return nil
}

// SetCommissionRate sets the order's own rate. The [0, 100] bound applies to
// every order regardless of the parties' roles.
func (o *SalesOrder) SetCommissionRate(rate valueobject.Percentage) error {
	if err := o.ensureCommissionEditable(); err != nil {
		return err
	}
	if err := partner.CheckCommissionRateBounds(rate); err != nil {
		return err
	}

	o.CommissionRate = rate
	o.recomputeCommission()
	o.Touch()
	return nil
}

// CheckConfirmable runs the agent-sale checks that must pass before the
// order may be confirmed. Non agent sales always pass.
func (o *SalesOrder) CheckConfirmable() error {
	if !o.IsAgentSale {
		return nil
	}
	if o.AgentID == nil {
		return ErrMissingAgent
	}
	if o.PrincipalID == nil {
		return ErrMissingPrincipal
	}
	if !o.CommissionRate.IsPositive() {
		return shared.NewDomainError(partner.ErrInvalidRate.Code, "Commission rate must be greater than zero for an agent sale")
	}
	return nil
}

// ConfirmCommission moves the commission of an agent sale to confirmed. It is
// called once the order itself has been confirmed; non agent sales are left alone.
func (o *SalesOrder) ConfirmCommission() error {
	if !o.IsAgentSale {
		return nil
	}
	if !o.IsConfirmed() {
		return ErrOrderNotConfirmed
	}
	if !o.CommissionStatus.CanTransitionTo(CommissionStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm commission in %s status", o.CommissionStatus))
	}

	o.CommissionStatus = CommissionStatusConfirmed
	o.Touch()
	o.AddDomainEvent(NewCommissionConfirmedEvent(o))
	return nil
}

// CheckCommissionInvoiceable evaluates every precondition of commission
// invoicing in order and returns the first failure. An order that already
// moved past confirmed reports INVOICE_ALREADY_EXISTS rather than
// COMMISSION_NOT_CONFIRMED.
func (o *SalesOrder) CheckCommissionInvoiceable() error {
	switch {
	case !o.IsAgentSale:
		return ErrNotAgentSale
	case !o.IsConfirmed():
		return ErrOrderNotConfirmed
	case o.CommissionStatus != CommissionStatusConfirmed && !o.CommissionStatus.HasInvoice():
		return ErrCommissionNotConfirmed
	case o.CommissionStatus.HasInvoice() || o.CommissionInvoiceID != nil:
		return ErrInvoiceAlreadyExists
	case o.AgentID == nil || o.PrincipalID == nil:
		return ErrMissingParty
	case !o.CommissionAmount.IsPositive():
		return ErrZeroCommission
	}
	return nil
}

// AttachCommissionInvoice records the issued document and moves the commission to invoiced
func (o *SalesOrder) AttachCommissionInvoice(invoiceID uuid.UUID, total decimal.Decimal) error {
	if err := o.CheckCommissionInvoiceable(); err != nil {
		return err
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !total.Equal(o.CommissionAmount) {
		return shared.NewDomainError("INVOICE_AMOUNT_MISMATCH",
			fmt.Sprintf("Invoice total %s does not match commission amount %s", total, o.CommissionAmount))
	}

	o.CommissionInvoiceID = &invoiceID
	o.CommissionStatus = CommissionStatusInvoiced
	o.Touch()
	o.AddDomainEvent(NewCommissionInvoicedEvent(o))
	return nil
}

// MarkCommissionPaid settles an invoiced commission
func (o *SalesOrder) MarkCommissionPaid() error {
	if !o.IsAgentSale {
		return ErrNotAgentSale
	}
	if !o.CommissionStatus.CanTransitionTo(CommissionStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark commission paid in %s status", o.CommissionStatus))
	}

	o.CommissionStatus = CommissionStatusPaid
	o.Touch()
	o.AddDomainEvent(NewCommissionPaidEvent(o))
	return nil
}

func (o *SalesOrder) ensureCommissionEditable() error {
	if !o.IsAgentSale {
		return ErrNotAgentSale
	}
	if o.CommissionStatus != CommissionStatusDraft {
		return ErrCommissionLocked
	}
	return nil
}

func (o *SalesOrder) recomputeCommission() {
	o.CommissionAmount = ComputeCommission(o.AmountUntaxed, o.CommissionRate, o.IsAgentSale)
}

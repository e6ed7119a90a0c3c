package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the sales state of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "sale"
	OrderStatusCancelled OrderStatus = "cancel"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusCancelled
	}
	return false
}

// SalesOrder is a customer order. Besides the sales fields it owns the
// commission fields of an agent sale (see sales_order_commission.go).
type SalesOrder struct {
	shared.TenantAggregateRoot
	OrderNumber   string
	CustomerID    uuid.UUID
	CustomerName  string
	AmountUntaxed decimal.Decimal
	AmountTax     decimal.Decimal
	AmountTotal   decimal.Decimal
	Status        OrderStatus
	Remark        string
	ConfirmedAt   *time.Time
	CancelledAt   *time.Time

	IsAgentSale         bool
	AgentID             *uuid.UUID
	AgentName           string
	PrincipalID         *uuid.UUID
	PrincipalName       string
	CommissionRate      valueobject.Percentage
	CommissionAmount    decimal.Decimal
	CommissionStatus    CommissionStatus
	CommissionInvoiceID *uuid.UUID
}

// NewSalesOrder creates a new draft sales order
func NewSalesOrder(tenantID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &SalesOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		AmountUntaxed:       decimal.Zero,
		AmountTax:           decimal.Zero,
		AmountTotal:         decimal.Zero,
		Status:              OrderStatusDraft,
		CommissionRate:      valueobject.ZeroPercent(),
		CommissionAmount:    decimal.Zero,
		CommissionStatus:    CommissionStatusDraft,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// SetAmounts replaces the untaxed and tax amounts. Only draft orders can be repriced.
func (o *SalesOrder) SetAmounts(untaxed, tax decimal.Decimal) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change amounts of order in %s status", o.Status))
	}
	if untaxed.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Untaxed amount cannot be negative")
	}
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Tax amount cannot be negative")
	}

	o.AmountUntaxed = untaxed
	o.AmountTax = tax
	o.AmountTotal = untaxed.Add(tax)
	o.recomputeCommission()
	o.Touch()
	return nil
}

// SetRemark sets the order remark
func (o *SalesOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// Confirm moves the order into the locked sales state
func (o *SalesOrder) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.Touch()

	o.AddDomainEvent(NewSalesOrderConfirmedEvent(o))
	return nil
}

// Cancel cancels the order. An order whose commission is already invoiced
// cannot be cancelled.
func (o *SalesOrder) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if o.CommissionInvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel an order with an invoiced commission")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.Touch()

	o.AddDomainEvent(NewSalesOrderCancelledEvent(o))
	return nil
}

// IsDraft returns true if the order is in draft status
func (o *SalesOrder) IsDraft() bool {
	return o.Status == OrderStatusDraft
}

// IsConfirmed returns true if the order is in the locked sales state
func (o *SalesOrder) IsConfirmed() bool {
	return o.Status == OrderStatusConfirmed
}

// CanModify returns true if the order's sales fields can be modified
func (o *SalesOrder) CanModify() bool {
	return o.Status == OrderStatusDraft
}

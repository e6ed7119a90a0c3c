package trade

import (
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSalesOrder = "SalesOrder"

// Event type constants
const (
	EventTypeSalesOrderCreated   = "SalesOrderCreated"
	EventTypeSalesOrderConfirmed = "SalesOrderConfirmed"
	EventTypeSalesOrderCancelled = "SalesOrderCancelled"
	EventTypeCommissionConfirmed = "CommissionConfirmed"
	EventTypeCommissionInvoiced  = "CommissionInvoiced"
	EventTypeCommissionPaid      = "CommissionPaid"
	EventTypeCommissionReset     = "CommissionReset"
)

// SalesOrderCreatedEvent is raised when a new sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(order *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, AggregateTypeSalesOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
	}
}

// SalesOrderConfirmedEvent is raised when a sales order is confirmed
type SalesOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	AmountUntaxed decimal.Decimal `json:"amount_untaxed"`
	AmountTotal   decimal.Decimal `json:"amount_total"`
	IsAgentSale   bool            `json:"is_agent_sale"`
}

// NewSalesOrderConfirmedEvent creates a new SalesOrderConfirmedEvent
func NewSalesOrderConfirmedEvent(order *SalesOrder) *SalesOrderConfirmedEvent {
	return &SalesOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderConfirmed, AggregateTypeSalesOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		AmountUntaxed:   order.AmountUntaxed,
		AmountTotal:     order.AmountTotal,
		IsAgentSale:     order.IsAgentSale,
	}
}

// SalesOrderCancelledEvent is raised when a sales order is cancelled
type SalesOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// NewSalesOrderCancelledEvent creates a new SalesOrderCancelledEvent
func NewSalesOrderCancelledEvent(order *SalesOrder) *SalesOrderCancelledEvent {
	return &SalesOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCancelled, AggregateTypeSalesOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
	}
}

// CommissionEvent carries the commission terms of an order at the time of the change
type CommissionEvent struct {
	shared.BaseDomainEvent
	OrderID          uuid.UUID        `json:"order_id"`
	OrderNumber      string           `json:"order_number"`
	AgentID          *uuid.UUID       `json:"agent_id,omitempty"`
	PrincipalID      *uuid.UUID       `json:"principal_id,omitempty"`
	CommissionAmount decimal.Decimal  `json:"commission_amount"`
	Status           CommissionStatus `json:"status"`
	InvoiceID        *uuid.UUID       `json:"invoice_id,omitempty"`
}

func newCommissionEvent(eventType string, order *SalesOrder) CommissionEvent {
	return CommissionEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(eventType, AggregateTypeSalesOrder, order.ID, order.TenantID),
		OrderID:          order.ID,
		OrderNumber:      order.OrderNumber,
		AgentID:          order.AgentID,
		PrincipalID:      order.PrincipalID,
		CommissionAmount: order.CommissionAmount,
		Status:           order.CommissionStatus,
		InvoiceID:        order.CommissionInvoiceID,
	}
}

// CommissionConfirmedEvent is raised when an agent sale's commission is confirmed
type CommissionConfirmedEvent struct {
	CommissionEvent
}

// NewCommissionConfirmedEvent creates a new CommissionConfirmedEvent
func NewCommissionConfirmedEvent(order *SalesOrder) *CommissionConfirmedEvent {
	return &CommissionConfirmedEvent{CommissionEvent: newCommissionEvent(EventTypeCommissionConfirmed, order)}
}

// CommissionInvoicedEvent is raised once the commission document is posted
type CommissionInvoicedEvent struct {
	CommissionEvent
}

// NewCommissionInvoicedEvent creates a new CommissionInvoicedEvent
func NewCommissionInvoicedEvent(order *SalesOrder) *CommissionInvoicedEvent {
	return &CommissionInvoicedEvent{CommissionEvent: newCommissionEvent(EventTypeCommissionInvoiced, order)}
}

// CommissionPaidEvent is raised when an invoiced commission is settled
type CommissionPaidEvent struct {
	CommissionEvent
}

// NewCommissionPaidEvent creates a new CommissionPaidEvent
func NewCommissionPaidEvent(order *SalesOrder) *CommissionPaidEvent {
	return &CommissionPaidEvent{CommissionEvent: newCommissionEvent(EventTypeCommissionPaid, order)}
}

// CommissionResetEvent is raised when clearing the agent-sale flag wipes the commission terms
type CommissionResetEvent struct {
	CommissionEvent
	PreviousStatus CommissionStatus `json:"previous_status"`
}

// NewCommissionResetEvent creates a new CommissionResetEvent
func NewCommissionResetEvent(order *SalesOrder, previous CommissionStatus) *CommissionResetEvent {
	return &CommissionResetEvent{
		CommissionEvent: newCommissionEvent(EventTypeCommissionReset, order),
		PreviousStatus:  previous,
	}
}

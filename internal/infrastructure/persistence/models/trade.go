package models

import (
	"time"

	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/erp/reseller/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	TenantAggregateModel
	OrderNumber   string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_order_tenant_number,priority:2"`
	CustomerID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName  string            `gorm:"type:varchar(200);not null"`
	AmountUntaxed decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTax     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTotal   decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Status        trade.OrderStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Remark        string            `gorm:"type:text"`
	ConfirmedAt   *time.Time        `gorm:"index"`
	CancelledAt   *time.Time

	IsAgentSale         bool                   `gorm:"not null;default:false;index"`
	AgentID             *uuid.UUID             `gorm:"type:uuid;index"`
	AgentName           string                 `gorm:"type:varchar(200)"`
	PrincipalID         *uuid.UUID             `gorm:"type:uuid;index"`
	PrincipalName       string                 `gorm:"type:varchar(200)"`
	CommissionRate      decimal.Decimal        `gorm:"type:numeric;not null;default:0"`
	CommissionAmount    decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	CommissionStatus    trade.CommissionStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	CommissionInvoiceID *uuid.UUID             `gorm:"type:uuid;uniqueIndex:idx_sales_order_commission_invoice,where:commission_invoice_id IS NOT NULL"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder.
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	return &trade.SalesOrder{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OrderNumber:         m.OrderNumber,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		AmountUntaxed:       m.AmountUntaxed,
		AmountTax:           m.AmountTax,
		AmountTotal:         m.AmountTotal,
		Status:              m.Status,
		Remark:              m.Remark,
		ConfirmedAt:         m.ConfirmedAt,
		CancelledAt:         m.CancelledAt,
		IsAgentSale:         m.IsAgentSale,
		AgentID:             m.AgentID,
		AgentName:           m.AgentName,
		PrincipalID:         m.PrincipalID,
		PrincipalName:       m.PrincipalName,
		CommissionRate:      valueobject.NewPercentage(m.CommissionRate),
		CommissionAmount:    m.CommissionAmount,
		CommissionStatus:    m.CommissionStatus,
		CommissionInvoiceID: m.CommissionInvoiceID,
	}
}

// FromDomain populates the persistence model from a domain SalesOrder.
func (m *SalesOrderModel) FromDomain(o *trade.SalesOrder) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.CustomerName = o.CustomerName
	m.AmountUntaxed = o.AmountUntaxed
	m.AmountTax = o.AmountTax
	m.AmountTotal = o.AmountTotal
	m.Status = o.Status
	m.Remark = o.Remark
	m.ConfirmedAt = o.ConfirmedAt
	m.CancelledAt = o.CancelledAt
	m.IsAgentSale = o.IsAgentSale
	m.AgentID = o.AgentID
	m.AgentName = o.AgentName
	m.PrincipalID = o.PrincipalID
	m.PrincipalName = o.PrincipalName
	m.CommissionRate = o.CommissionRate.Decimal()
	m.CommissionAmount = o.CommissionAmount
	m.CommissionStatus = o.CommissionStatus
	m.CommissionInvoiceID = o.CommissionInvoiceID
}

// SalesOrderModelFromDomain creates a new persistence model from a domain SalesOrder.
func SalesOrderModelFromDomain(o *trade.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{}
	m.FromDomain(o)
	return m
}

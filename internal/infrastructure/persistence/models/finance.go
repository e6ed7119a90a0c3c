package models

import (
	"time"

	"github.com/erp/reseller/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the chart of accounts.
type AccountModel struct {
	TenantAggregateModel
	Code       string                  `gorm:"type:varchar(20);not null;uniqueIndex:idx_account_tenant_code,priority:2"`
	Name       string                  `gorm:"type:varchar(200);not null"`
	Category   finance.AccountCategory `gorm:"type:varchar(20);not null;index"`
	Deprecated bool                    `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account.
func (m *AccountModel) ToDomain() *finance.Account {
	return &finance.Account{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Category:            m.Category,
		Deprecated:          m.Deprecated,
	}
}

// FromDomain populates the persistence model from a domain Account.
func (m *AccountModel) FromDomain(a *finance.Account) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Code = a.Code
	m.Name = a.Name
	m.Category = a.Category
	m.Deprecated = a.Deprecated
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *finance.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	Type          finance.InvoiceType   `gorm:"type:varchar(20);not null"`
	PartnerID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	PartnerName   string                `gorm:"type:varchar(200);not null"`
	InvoiceOrigin string                `gorm:"type:varchar(100)"`
	SourceOrderID *uuid.UUID            `gorm:"type:uuid;index"`
	InvoiceDate   time.Time             `gorm:"type:date;not null"`
	Status        finance.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	AmountTotal   decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	PostedAt      *time.Time
	Lines         []InvoiceLineModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *finance.Invoice {
	inv := &finance.Invoice{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		InvoiceNumber:       m.InvoiceNumber,
		Type:                m.Type,
		PartnerID:           m.PartnerID,
		PartnerName:         m.PartnerName,
		InvoiceOrigin:       m.InvoiceOrigin,
		SourceOrderID:       m.SourceOrderID,
		InvoiceDate:         m.InvoiceDate,
		Status:              m.Status,
		AmountTotal:         m.AmountTotal,
		PostedAt:            m.PostedAt,
		Lines:               make([]finance.InvoiceLine, len(m.Lines)),
	}
	for i := range m.Lines {
		inv.Lines[i] = m.Lines[i].ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice.
func (m *InvoiceModel) FromDomain(inv *finance.Invoice) {
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.Type = inv.Type
	m.PartnerID = inv.PartnerID
	m.PartnerName = inv.PartnerName
	m.InvoiceOrigin = inv.InvoiceOrigin
	m.SourceOrderID = inv.SourceOrderID
	m.InvoiceDate = inv.InvoiceDate
	m.Status = inv.Status
	m.AmountTotal = inv.AmountTotal
	m.PostedAt = inv.PostedAt
	m.Lines = make([]InvoiceLineModel, len(inv.Lines))
	for i := range inv.Lines {
		m.Lines[i].FromDomain(inv.Lines[i])
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *finance.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceLineModel is the persistence model for an invoice line.
type InvoiceLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountCode string          `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain InvoiceLine.
func (m *InvoiceLineModel) ToDomain() finance.InvoiceLine {
	return finance.InvoiceLine{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
	}
}

// FromDomain populates the persistence model from a domain InvoiceLine.
func (m *InvoiceLineModel) FromDomain(l finance.InvoiceLine) {
	m.ID = l.ID
	m.InvoiceID = l.InvoiceID
	m.Description = l.Description
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.Amount = l.Amount
	m.AccountID = l.AccountID
	m.AccountCode = l.AccountCode
}

package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/erp/reseller/internal/domain/finance"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForTenant loads an invoice with its lines
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Invoice, error) {
	var m models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.ToDomain(), nil
}

// FindBySourceOrder returns invoices originating from a sales order
func (r *GormInvoiceRepository) FindBySourceOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]finance.Invoice, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND source_order_id = ?", tenantID, orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	invoices := make([]finance.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices, nil
}

// Save creates an invoice together with its lines. A number taken by a
// concurrent posting is reported as a conflict the caller may retry.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	m := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(m).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.NewDomainError("CONCURRENT_MODIFICATION", "Invoice number was taken by a concurrent posting")
			}
			return err
		}
		if len(m.Lines) == 0 {
			return nil
		}
		return tx.Create(&m.Lines).Error
	})
}

// GenerateInvoiceNumber returns the next number of the invoice day.
// Format: CINV-YYYYMMDD-XXXXX
//
// On PostgreSQL a transaction-scoped advisory lock on tenant and day is taken
// first, so concurrent postings inside transactions are numbered one after
// the other and the lock is released on commit or rollback.
func (r *GormInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceDate time.Time) (string, error) {
	prefix := fmt.Sprintf("CINV-%s-", invoiceDate.UTC().Format("20060102"))
	db := r.db.WithContext(ctx)

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", tenantID.String()+":"+prefix).Error; err != nil {
			return "", fmt.Errorf("lock invoice sequence: %w", err)
		}
	}

	var numbers []string
	if err := db.Model(&models.InvoiceModel{}).
		Where("tenant_id = ? AND invoice_number LIKE ?", tenantID, prefix+"%").
		Order("invoice_number DESC").
		Limit(1).
		Pluck("invoice_number", &numbers).Error; err != nil {
		return "", err
	}

	next := 1
	if len(numbers) > 0 {
		parts := strings.Split(numbers[0], "-")
		if len(parts) != 3 {
			return "", fmt.Errorf("malformed invoice number %q", numbers[0])
		}
		var last int
		if _, err := fmt.Sscanf(parts[2], "%d", &last); err != nil {
			return "", fmt.Errorf("parse invoice number %q: %w", numbers[0], err)
		}
		next = last + 1
	}

	return fmt.Sprintf("%s%05d", prefix, next), nil
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ finance.InvoiceRepository = (*GormInvoiceRepository)(nil)

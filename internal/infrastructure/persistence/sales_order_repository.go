package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/trade"
	"github.com/erp/reseller/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByIDForTenant finds a sales order by ID within a tenant
func (r *GormSalesOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.SalesOrder, error) {
	var m models.SalesOrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.ToDomain(), nil
}

// FindByOrderNumber finds a sales order by order number for a tenant
func (r *GormSalesOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*trade.SalesOrder, error) {
	var m models.SalesOrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&m).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.ToDomain(), nil
}

// FindAllForTenant lists sales orders. Recognised filters: status,
// commission_status, is_agent_sale, agent_id, principal_id.
func (r *GormSalesOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).Where("tenant_id = ?", tenantID)

	for _, key := range []string{"status", "commission_status", "is_agent_sale", "agent_id", "principal_id"} {
		if v, ok := filter.Filters[key]; ok && v != nil && v != "" {
			query = query.Where(key+" = ?", v)
		}
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SalesOrderModel
	if err := applyPaging(query, filter, SalesOrderSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]trade.SalesOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// ExistsByOrderNumber checks if an order number is already used in the tenant
func (r *GormSalesOrderRepository) ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a new sales order
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	m := models.SalesOrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError("ALREADY_EXISTS", "Order number already exists")
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking (version check). A unique
// violation on the commission invoice reference means another transaction
// already invoiced the order.
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		result := tx.Model(&models.SalesOrderModel{}).
			Where("id = ? AND tenant_id = ?", order.ID, order.TenantID).
			Select("version").
			Scan(&currentVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != order.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}

		m := models.SalesOrderModelFromDomain(order)
		result = tx.Model(&models.SalesOrderModel{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Updates(map[string]interface{}{
				"amount_untaxed":        m.AmountUntaxed,
				"amount_tax":            m.AmountTax,
				"amount_total":          m.AmountTotal,
				"status":                m.Status,
				"remark":                m.Remark,
				"confirmed_at":          m.ConfirmedAt,
				"cancelled_at":          m.CancelledAt,
				"is_agent_sale":         m.IsAgentSale,
				"agent_id":              m.AgentID,
				"agent_name":            m.AgentName,
				"principal_id":          m.PrincipalID,
				"principal_name":        m.PrincipalName,
				"commission_rate":       m.CommissionRate,
				"commission_amount":     m.CommissionAmount,
				"commission_status":     m.CommissionStatus,
				"commission_invoice_id": m.CommissionInvoiceID,
				"version":               currentVersion + 1,
				"updated_at":            time.Now(),
			})
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return trade.ErrInvoiceAlreadyExists
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}

		order.IncrementVersion()
		return nil
	})
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)

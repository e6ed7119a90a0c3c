package trade

import (
	"context"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByIDForTenant finds a sales order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber finds a sales order by its order number
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*SalesOrder, error)

	// FindAllForTenant lists sales orders, optionally filtered by commission status
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SalesOrder, int64, error)

	// ExistsByOrderNumber checks if an order number is already used in the tenant
	ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error)

	// Save creates a new sales order
	Save(ctx context.Context, order *SalesOrder) error

	// SaveWithLock updates an existing order with optimistic locking.
	// It fails with CONCURRENT_MODIFICATION when the stored version moved on.
	SaveWithLock(ctx context.Context, order *SalesOrder) error
}

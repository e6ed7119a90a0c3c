package finance

import (
	"context"
	"time"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository defines the interface for chart-of-accounts persistence
type AccountRepository interface {
	// FindByIDForTenant finds an account by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)

	// FindFirstActiveByCodePrefix returns the lowest-coded non-deprecated account
	// whose code starts with prefix, or shared.ErrNotFound
	FindFirstActiveByCodePrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (*Account, error)

	// FindFirstByCategory returns the lowest-coded account of the category, or shared.ErrNotFound
	FindFirstByCategory(ctx context.Context, tenantID uuid.UUID, category AccountCategory) (*Account, error)

	// FindAllForTenant lists the chart of accounts
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Account, int64, error)

	// ExistsByCode checks if an account code is already used in the tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForTenant loads an invoice with its lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindBySourceOrder returns invoices originating from a sales order
	FindBySourceOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]Invoice, error)

	// Save creates an invoice together with its lines
	Save(ctx context.Context, invoice *Invoice) error

	// GenerateInvoiceNumber returns the next invoice number for the tenant on
	// the given invoice date. Called inside a transaction, it serializes
	// concurrent callers of the same tenant and day until commit.
	GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceDate time.Time) (string, error)
}

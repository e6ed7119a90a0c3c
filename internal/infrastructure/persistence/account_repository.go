package persistence

import (
	"context"

	"github.com/erp/reseller/internal/domain/finance"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByIDForTenant finds an account by ID within a tenant
func (r *GormAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Account, error) {
	var m models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.ToDomain(), nil
}

// FindFirstActiveByCodePrefix returns the lowest-coded non-deprecated account under prefix
func (r *GormAccountRepository) FindFirstActiveByCodePrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (*finance.Account, error) {
	var m models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code LIKE ? AND deprecated = ?", tenantID, prefix+"%", false).
		Order("code ASC").
		First(&m).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.ToDomain(), nil
}

// FindFirstByCategory returns the lowest-coded account of the category, deprecated or not
func (r *GormAccountRepository) FindFirstByCategory(ctx context.Context, tenantID uuid.UUID, category finance.AccountCategory) (*finance.Account, error) {
	var m models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND category = ?", tenantID, category).
		Order("code ASC").
		First(&m).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.ToDomain(), nil
}

// FindAllForTenant lists the chart of accounts. Recognised filters: category, deprecated.
func (r *GormAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where("tenant_id = ?", tenantID)
	if v, ok := filter.Filters["category"]; ok && v != "" {
		query = query.Where("category = ?", v)
	}
	if v, ok := filter.Filters["deprecated"]; ok {
		query = query.Where("deprecated = ?", v)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AccountModel
	if err := applyPaging(query, filter, AccountSortFields, "code").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]finance.Account, len(rows))
	for i := range rows {
		accounts[i] = *rows[i].ToDomain()
	}
	return accounts, total, nil
}

// ExistsByCode checks if an account code is already used in the tenant
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	m := models.AccountModelFromDomain(account)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError("ALREADY_EXISTS", "Account code already exists")
		}
		return err
	}
	return nil
}

// Ensure GormAccountRepository implements AccountRepository
var _ finance.AccountRepository = (*GormAccountRepository)(nil)

package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/erp/reseller/internal/domain/partner"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartyRepository implements PartyRepository using GORM
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// FindByIDForTenant finds a party by ID within a tenant
func (r *GormPartyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Party, error) {
	var m models.PartyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.ToDomain(), nil
}

// FindByCode finds a party by its code within a tenant
func (r *GormPartyRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Party, error) {
	var m models.PartyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&m).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.ToDomain(), nil
}

// FindAllForTenant lists parties, optionally restricted to agents or principals
func (r *GormPartyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, role partner.PartyRole, filter shared.Filter) ([]partner.Party, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PartyModel{}).Where("tenant_id = ?", tenantID)

	switch role {
	case partner.PartyRoleAgent:
		query = query.Where("is_agent = ?", true)
	case partner.PartyRolePrincipal:
		query = query.Where("is_principal = ?", true)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PartyModel
	if err := applyPaging(query, filter, PartySortFields, "code").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	parties := make([]partner.Party, len(rows))
	for i := range rows {
		parties[i] = *rows[i].ToDomain()
	}
	return parties, total, nil
}

// ExistsByCode checks if a party with the given code exists in the tenant
func (r *GormPartyRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PartyModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a party
func (r *GormPartyRepository) Save(ctx context.Context, party *partner.Party) error {
	m := models.PartyModelFromDomain(party)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError("ALREADY_EXISTS", "Party code already exists")
		}
		return err
	}
	return nil
}

// SaveWithLock updates a party with optimistic locking (version check)
func (r *GormPartyRepository) SaveWithLock(ctx context.Context, party *partner.Party) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		result := tx.Model(&models.PartyModel{}).
			Where("id = ? AND tenant_id = ?", party.ID, party.TenantID).
			Select("version").
			Scan(&currentVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != party.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The party has been modified by another user")
		}

		m := models.PartyModelFromDomain(party)
		result = tx.Model(&models.PartyModel{}).
			Where("id = ? AND version = ?", party.ID, currentVersion).
			Updates(map[string]interface{}{
				"name":            m.Name,
				"is_agent":        m.IsAgent,
				"is_principal":    m.IsPrincipal,
				"commission_rate": m.CommissionRate,
				"version":         currentVersion + 1,
				"updated_at":      time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The party has been modified by another user")
		}

		party.IncrementVersion()
		return nil
	})
}

// Ensure GormPartyRepository implements PartyRepository
var _ partner.PartyRepository = (*GormPartyRepository)(nil)

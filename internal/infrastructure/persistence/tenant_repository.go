package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByIDForOwner finds a tenant by ID within an owner's scope
func (r *GormTenantRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*rental.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all of an owner's tenants ordered by room number
func (r *GormTenantRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]rental.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("room_no ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	tenants := make([]rental.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, nil
}

// FindByRoomNo finds an owner's tenant by room number
func (r *GormTenantRepository) FindByRoomNo(ctx context.Context, ownerID uuid.UUID, roomNo string) (*rental.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND room_no = ?", ownerID, roomNo).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *rental.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewFieldError(shared.CodeAlreadyExists, "room_no", "A tenant with this room number already exists")
		}
		return err
	}
	return nil
}

// DeleteForOwner deletes a tenant and its electricity readings
func (r *GormTenantRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.TenantModel{}, "owner_id = ? AND id = ?", ownerID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&models.ElectricityReadingModel{}, "tenant_id = ?", id).Error
	})
}

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

// GormReadingRepository implements ReadingRepository using GORM.
// Readings carry no owner column; owner scoping joins through the
// tenants table.
type GormReadingRepository struct {
	db *gorm.DB
}

// NewGormReadingRepository creates a new GormReadingRepository
func NewGormReadingRepository(db *gorm.DB) *GormReadingRepository {
	return &GormReadingRepository{db: db}
}

// FindByIDForOwner finds a reading by ID within an owner's tenant set
func (r *GormReadingRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*rental.ElectricityReading, error) {
	var model models.ElectricityReadingModel
	if err := r.ownerScoped(ctx, ownerID).
		Where("electricity_readings.id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all readings within an owner's tenant set with filtering
func (r *GormReadingRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter rental.ReadingFilter) ([]rental.ElectricityReading, error) {
	var readingModels []models.ElectricityReadingModel
	query := r.ownerScoped(ctx, ownerID)
	if filter.TenantID != nil {
		query = query.Where("electricity_readings.tenant_id = ?", *filter.TenantID)
	}
	if filter.Month != nil {
		query = query.Where("electricity_readings.month = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("electricity_readings.year = ?", *filter.Year)
	}
	if err := query.
		Order("electricity_readings.year DESC, electricity_readings.month DESC, tenants.room_no ASC").
		Find(&readingModels).Error; err != nil {
		return nil, err
	}
	readings := make([]rental.ElectricityReading, len(readingModels))
	for i, model := range readingModels {
		readings[i] = *model.ToDomain()
	}
	return readings, nil
}

// FindByTenantAndPeriod finds the unique reading for a tenant and billing period
func (r *GormReadingRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period rental.Period) (*rental.ElectricityReading, error) {
	var model models.ElectricityReadingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND month = ? AND year = ?", tenantID, period.Month, period.Year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestBefore finds the tenant's reading for the nearest period
// strictly earlier than the given one
func (r *GormReadingRepository) FindLatestBefore(ctx context.Context, tenantID uuid.UUID, period rental.Period) (*rental.ElectricityReading, error) {
	var model models.ElectricityReadingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("(year < ?) OR (year = ? AND month < ?)", period.Year, period.Year, period.Month).
		Order("year DESC, month DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForPeriodByOwner finds all readings for a billing period within an
// owner's tenant set, ordered by room number
func (r *GormReadingRepository) FindForPeriodByOwner(ctx context.Context, ownerID uuid.UUID, period rental.Period) ([]rental.ElectricityReading, error) {
	var readingModels []models.ElectricityReadingModel
	if err := r.ownerScoped(ctx, ownerID).
		Where("electricity_readings.month = ? AND electricity_readings.year = ?", period.Month, period.Year).
		Order("tenants.room_no ASC").
		Find(&readingModels).Error; err != nil {
		return nil, err
	}
	readings := make([]rental.ElectricityReading, len(readingModels))
	for i, model := range readingModels {
		readings[i] = *model.ToDomain()
	}
	return readings, nil
}

// TenantIDsWithReading returns the distinct tenant IDs that have a
// reading for the billing period within an owner's tenant set
func (r *GormReadingRepository) TenantIDsWithReading(ctx context.Context, ownerID uuid.UUID, period rental.Period) ([]uuid.UUID, error) {
	var tenantIDs []uuid.UUID
	if err := r.ownerScoped(ctx, ownerID).
		Where("electricity_readings.month = ? AND electricity_readings.year = ?", period.Month, period.Year).
		Distinct().
		Pluck("electricity_readings.tenant_id", &tenantIDs).Error; err != nil {
		return nil, err
	}
	return tenantIDs, nil
}

// Save creates or updates a reading
func (r *GormReadingRepository) Save(ctx context.Context, reading *rental.ElectricityReading) error {
	model := models.ElectricityReadingModelFromDomain(reading)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeDuplicatePeriod, "A reading already exists for this tenant and period")
		}
		return err
	}
	return nil
}

// DeleteForOwner deletes a reading within an owner's tenant set
func (r *GormReadingRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id IN (?)", id,
			r.db.Model(&models.TenantModel{}).Select("id").Where("owner_id = ?", ownerID)).
		Delete(&models.ElectricityReadingModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormReadingRepository) ownerScoped(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ElectricityReadingModel{}).
		Select("electricity_readings.*").
		Joins("JOIN tenants ON tenants.id = electricity_readings.tenant_id").
		Where("tenants.owner_id = ?", ownerID)
}

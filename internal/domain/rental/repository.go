package rental

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantRepository persists Tenant aggregates. All lookups are scoped to
// an owner; records outside the scope behave as if they do not exist.
type TenantRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Tenant, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Tenant, error)
	FindByRoomNo(ctx context.Context, ownerID uuid.UUID, roomNo string) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	// DeleteForOwner removes the tenant and cascades to its readings.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// ReadingFilter narrows reading list queries
type ReadingFilter struct {
	TenantID *uuid.UUID
	Month    *int
	Year     *int
}

// ReadingRepository persists ElectricityReading aggregates. Readings are
// owned indirectly through their tenant, so owner-scoped lookups join
// against the tenant set.
type ReadingRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*ElectricityReading, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter ReadingFilter) ([]ElectricityReading, error)
	// FindByTenantAndPeriod returns the unique reading for the period,
	// or shared.ErrNotFound.
	FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period Period) (*ElectricityReading, error)
	// FindLatestBefore returns the tenant's reading for the chronologically
	// nearest period strictly earlier than the given one, ordered by
	// (year, month) descending, or shared.ErrNotFound.
	FindLatestBefore(ctx context.Context, tenantID uuid.UUID, period Period) (*ElectricityReading, error)
	// FindForPeriodByOwner returns all readings for the period whose tenant
	// belongs to the owner, ordered by tenant room number.
	FindForPeriodByOwner(ctx context.Context, ownerID uuid.UUID, period Period) ([]ElectricityReading, error)
	// TenantIDsWithReading returns the distinct tenant IDs that have a
	// reading for the period within the owner's tenant set.
	TenantIDsWithReading(ctx context.Context, ownerID uuid.UUID, period Period) ([]uuid.UUID, error)
	Save(ctx context.Context, reading *ElectricityReading) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// ExpenseCategoryRepository persists ExpenseCategory aggregates
type ExpenseCategoryRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*ExpenseCategory, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]ExpenseCategory, error)
	FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*ExpenseCategory, error)
	Save(ctx context.Context, category *ExpenseCategory) error
	// DeleteForOwner removes the category; linked expenses keep existing
	// with a nil category reference.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// ExpenseFilter narrows expense list queries
type ExpenseFilter struct {
	CategoryID *uuid.UUID
	Month      *int
	Year       *int
}

// ExpenseRepository persists Expense aggregates
type ExpenseRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter ExpenseFilter) ([]Expense, error)
	// SumForPeriod totals expense amounts for the period. An empty period
	// sums to decimal zero, never an error.
	SumForPeriod(ctx context.Context, ownerID uuid.UUID, period Period) (decimal.Decimal, error)
	Save(ctx context.Context, expense *Expense) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

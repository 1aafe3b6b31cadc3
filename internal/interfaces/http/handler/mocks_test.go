package handler

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/rentledger/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTenantRepository implements rental.TenantRepository for testing
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*rental.Tenant, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]rental.Tenant, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByRoomNo(ctx context.Context, ownerID uuid.UUID, roomNo string) (*rental.Tenant, error) {
	args := m.Called(ctx, ownerID, roomNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *rental.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockReadingRepository implements rental.ReadingRepository for testing
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*rental.ElectricityReading, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.ElectricityReading), args.Error(1)
}

func (m *MockReadingRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter rental.ReadingFilter) ([]rental.ElectricityReading, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.ElectricityReading), args.Error(1)
}

func (m *MockReadingRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period rental.Period) (*rental.ElectricityReading, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.ElectricityReading), args.Error(1)
}

func (m *MockReadingRepository) FindLatestBefore(ctx context.Context, tenantID uuid.UUID, period rental.Period) (*rental.ElectricityReading, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.ElectricityReading), args.Error(1)
}

func (m *MockReadingRepository) FindForPeriodByOwner(ctx context.Context, ownerID uuid.UUID, period rental.Period) ([]rental.ElectricityReading, error) {
	args := m.Called(ctx, ownerID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.ElectricityReading), args.Error(1)
}

func (m *MockReadingRepository) TenantIDsWithReading(ctx context.Context, ownerID uuid.UUID, period rental.Period) ([]uuid.UUID, error) {
	args := m.Called(ctx, ownerID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockReadingRepository) Save(ctx context.Context, reading *rental.ElectricityReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockExpenseRepository implements rental.ExpenseRepository for testing
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*rental.Expense, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter rental.ExpenseFilter) ([]rental.Expense, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SumForPeriod(ctx context.Context, ownerID uuid.UUID, period rental.Period) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, period)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *rental.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockCategoryRepository implements rental.ExpenseCategoryRepository for testing
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*rental.ExpenseCategory, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.ExpenseCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]rental.ExpenseCategory, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.ExpenseCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*rental.ExpenseCategory, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.ExpenseCategory), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *rental.ExpenseCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// setupTestRouter creates a gin engine in test mode with the request
// authenticated as the given owner
func setupTestRouter(t *testing.T, ownerID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, ownerID.String())
		c.Next()
	})
	return engine
}

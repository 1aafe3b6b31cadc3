package rental

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTenantRepository is a mock implementation of TenantRepository
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

// MockReadingRepository is a mock implementation of ReadingRepository
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
	return args.Get(0).([]rental.ElectricityReading), args.Error(1)
}

func (m *MockReadingRepository) TenantIDsWithReading(ctx context.Context, ownerID uuid.UUID, period rental.Period) ([]uuid.UUID, error) {
	args := m.Called(ctx, ownerID, period)
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

// MockExpenseCategoryRepository is a mock implementation of ExpenseCategoryRepository
type MockExpenseCategoryRepository struct {
	mock.Mock
}

func (m *MockExpenseCategoryRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*rental.ExpenseCategory, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseCategoryRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]rental.ExpenseCategory, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]rental.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseCategoryRepository) FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*rental.ExpenseCategory, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseCategoryRepository) Save(ctx context.Context, category *rental.ExpenseCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockExpenseCategoryRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockExpenseRepository is a mock implementation of ExpenseRepository
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

// Test helper functions
func newTestOwnerID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func newTestCategoryID() uuid.UUID {
	return uuid.MustParse("33333333-3333-3333-3333-333333333333")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createTestTenant(ownerID uuid.UUID, name, roomNo, rent string) *rental.Tenant {
	tenant, _ := rental.NewTenant(ownerID, name, roomNo, "0000000000", time.Now(), dec(rent))
	return tenant
}

func createTestReading(tenantID uuid.UUID, month, year int, prev, curr, rate string) *rental.ElectricityReading {
	period, _ := rental.NewPeriod(month, year)
	reading, _ := rental.NewElectricityReading(tenantID, period, dec(prev), dec(curr), dec(rate))
	return reading
}

package rental

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReadingService_CreateReading_Success(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)
	prev := dec("220.0")

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindByTenantAndPeriod", ctx, tenantID, period).Return(nil, shared.ErrNotFound)
	mockReadingRepo.On("Save", ctx, mock.AnythingOfType("*rental.ElectricityReading")).Return(nil)

	result, err := service.CreateReading(ctx, ownerID, CreateReadingRequest{
		TenantID:        tenantID,
		Month:           10,
		Year:            2025,
		PreviousReading: &prev,
		CurrentReading:  dec("350.0"),
		RatePerUnit:     dec("6.5"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, result.TotalUnits.Equal(dec("130.0")))
	assert.True(t, result.CalculatedBill.Equal(dec("845.00")))
	assert.False(t, result.IsPaid)
	mockReadingRepo.AssertExpectations(t)
	mockTenantRepo.AssertExpectations(t)
}

func TestReadingService_CreateReading_IgnoresRequestedPaidFlag(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)
	prev := dec("100")

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindByTenantAndPeriod", ctx, tenantID, period).Return(nil, shared.ErrNotFound)
	mockReadingRepo.On("Save", ctx, mock.AnythingOfType("*rental.ElectricityReading")).Return(nil)

	result, err := service.CreateReading(ctx, ownerID, CreateReadingRequest{
		TenantID:        tenantID,
		Month:           10,
		Year:            2025,
		PreviousReading: &prev,
		CurrentReading:  dec("150"),
		RatePerUnit:     dec("8"),
		IsPaid:          true,
	})

	assert.NoError(t, err)
	assert.False(t, result.IsPaid)
}

func TestReadingService_CreateReading_DuplicatePeriod(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)
	existing := createTestReading(tenantID, 10, 2025, "100", "200", "6.5")

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindByTenantAndPeriod", ctx, tenantID, period).Return(existing, nil)

	result, err := service.CreateReading(ctx, ownerID, CreateReadingRequest{
		TenantID:       tenantID,
		Month:          10,
		Year:           2025,
		CurrentReading: dec("350"),
		RatePerUnit:    dec("6.5"),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_PERIOD", domainErr.Code)
	mockReadingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReadingService_CreateReading_InvalidMonth(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	result, err := service.CreateReading(context.Background(), newTestOwnerID(), CreateReadingRequest{
		TenantID:       newTestTenantID(),
		Month:          13,
		Year:           2025,
		CurrentReading: dec("350"),
		RatePerUnit:    dec("6.5"),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
	mockTenantRepo.AssertNotCalled(t, "FindByIDForOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadingService_CreateReading_ForeignTenantLooksMissing(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(nil, shared.ErrNotFound)

	result, err := service.CreateReading(ctx, ownerID, CreateReadingRequest{
		TenantID:       tenantID,
		Month:          10,
		Year:           2025,
		CurrentReading: dec("350"),
		RatePerUnit:    dec("6.5"),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReadingService_CreateReading_AutoResolvesPrevious(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)
	// September is the nearest earlier period even when older readings exist
	september := createTestReading(tenantID, 9, 2025, "150", "220", "6.5")

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindByTenantAndPeriod", ctx, tenantID, period).Return(nil, shared.ErrNotFound)
	mockReadingRepo.On("FindLatestBefore", ctx, tenantID, period).Return(september, nil)
	mockReadingRepo.On("Save", ctx, mock.AnythingOfType("*rental.ElectricityReading")).Return(nil)

	result, err := service.CreateReading(ctx, ownerID, CreateReadingRequest{
		TenantID:       tenantID,
		Month:          10,
		Year:           2025,
		CurrentReading: dec("350"),
		RatePerUnit:    dec("6.5"),
	})

	assert.NoError(t, err)
	assert.True(t, result.PreviousReading.Equal(dec("220")))
	assert.True(t, result.TotalUnits.Equal(dec("130")))
	assert.True(t, result.CalculatedBill.Equal(dec("845.0")))
	mockReadingRepo.AssertExpectations(t)
}

func TestReadingService_CreateReading_ExplicitPreviousSkipsResolution(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)
	prev := dec("300")

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindByTenantAndPeriod", ctx, tenantID, period).Return(nil, shared.ErrNotFound)
	mockReadingRepo.On("Save", ctx, mock.AnythingOfType("*rental.ElectricityReading")).Return(nil)

	result, err := service.CreateReading(ctx, ownerID, CreateReadingRequest{
		TenantID:        tenantID,
		Month:           10,
		Year:            2025,
		PreviousReading: &prev,
		CurrentReading:  dec("350"),
		RatePerUnit:     dec("6.5"),
	})

	assert.NoError(t, err)
	assert.True(t, result.PreviousReading.Equal(dec("300")))
	mockReadingRepo.AssertNotCalled(t, "FindLatestBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadingService_CreateReading_ResolutionFaultFallsBackToZero(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindByTenantAndPeriod", ctx, tenantID, period).Return(nil, shared.ErrNotFound)
	mockReadingRepo.On("FindLatestBefore", ctx, tenantID, period).Return(nil, errors.New("connection reset"))
	mockReadingRepo.On("Save", ctx, mock.AnythingOfType("*rental.ElectricityReading")).Return(nil)

	result, err := service.CreateReading(ctx, ownerID, CreateReadingRequest{
		TenantID:       tenantID,
		Month:          10,
		Year:           2025,
		CurrentReading: dec("350"),
		RatePerUnit:    dec("6.5"),
	})

	assert.NoError(t, err)
	assert.True(t, result.PreviousReading.IsZero())
	mockReadingRepo.AssertExpectations(t)
}

func TestReadingService_CreateReading_CurrentBelowResolvedPrevious(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)
	september := createTestReading(tenantID, 9, 2025, "150", "400", "6.5")

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindByTenantAndPeriod", ctx, tenantID, period).Return(nil, shared.ErrNotFound)
	mockReadingRepo.On("FindLatestBefore", ctx, tenantID, period).Return(september, nil)

	result, err := service.CreateReading(ctx, ownerID, CreateReadingRequest{
		TenantID:       tenantID,
		Month:          10,
		Year:           2025,
		CurrentReading: dec("350"),
		RatePerUnit:    dec("6.5"),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_READING", domainErr.Code)
	mockReadingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReadingService_UpdateReading_RecomputesAndSetsPaid(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	reading := createTestReading(newTestTenantID(), 10, 2025, "220", "350", "6.5")
	paid := true

	mockReadingRepo.On("FindByIDForOwner", ctx, ownerID, reading.ID).Return(reading, nil)
	mockReadingRepo.On("Save", ctx, reading).Return(nil)

	result, err := service.UpdateReading(ctx, ownerID, reading.ID, UpdateReadingRequest{
		PreviousReading: dec("220"),
		CurrentReading:  dec("360"),
		RatePerUnit:     dec("7"),
		IsPaid:          &paid,
	})

	assert.NoError(t, err)
	assert.True(t, result.TotalUnits.Equal(dec("140")))
	assert.True(t, result.CalculatedBill.Equal(dec("980")))
	assert.True(t, result.IsPaid)
	mockReadingRepo.AssertExpectations(t)
	mockReadingRepo.AssertNotCalled(t, "FindLatestBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadingService_UpdateReading_PaidFlagUntouchedWhenOmitted(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	reading := createTestReading(newTestTenantID(), 10, 2025, "220", "350", "6.5")
	reading.SetPaid(true)

	mockReadingRepo.On("FindByIDForOwner", ctx, ownerID, reading.ID).Return(reading, nil)
	mockReadingRepo.On("Save", ctx, reading).Return(nil)

	result, err := service.UpdateReading(ctx, ownerID, reading.ID, UpdateReadingRequest{
		PreviousReading: dec("220"),
		CurrentReading:  dec("355"),
		RatePerUnit:     dec("6.5"),
	})

	assert.NoError(t, err)
	assert.True(t, result.IsPaid)
}

func TestReadingService_GetPreviousReading_ReturnsNearestEarlier(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(1, 2026)
	december := createTestReading(tenantID, 12, 2025, "350", "480", "6.5")

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindLatestBefore", ctx, tenantID, period).Return(december, nil)

	value, err := service.GetPreviousReading(ctx, ownerID, tenantID, 1, 2026)

	assert.NoError(t, err)
	assert.True(t, value.Equal(dec("480")))
}

func TestReadingService_GetPreviousReading_NoPriorReturnsZero(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindLatestBefore", ctx, tenantID, period).Return(nil, shared.ErrNotFound)

	value, err := service.GetPreviousReading(ctx, ownerID, tenantID, 10, 2025)

	assert.NoError(t, err)
	assert.True(t, value.IsZero())
}

func TestReadingService_GetPreviousReading_LookupFaultReturnsZero(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	tenantID := newTestTenantID()
	tenant := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)

	mockTenantRepo.On("FindByIDForOwner", ctx, ownerID, tenantID).Return(tenant, nil)
	mockReadingRepo.On("FindLatestBefore", ctx, tenantID, period).Return(nil, errors.New("timeout"))

	value, err := service.GetPreviousReading(ctx, ownerID, tenantID, 10, 2025)

	assert.NoError(t, err)
	assert.True(t, value.IsZero())
}

func TestReadingService_GetPreviousReading_InvalidPeriod(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	_, err := service.GetPreviousReading(context.Background(), newTestOwnerID(), newTestTenantID(), 0, 2025)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
}

func TestReadingService_FindMissingReadings(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	r101 := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	r102 := createTestTenant(ownerID, "Ravi Nair", "R102", "6800.00")
	period, _ := rental.NewPeriod(10, 2025)

	mockTenantRepo.On("FindAllForOwner", ctx, ownerID).Return([]rental.Tenant{*r101, *r102}, nil)
	mockReadingRepo.On("TenantIDsWithReading", ctx, ownerID, period).Return([]uuid.UUID{r101.ID}, nil)

	result, err := service.FindMissingReadings(ctx, ownerID, 10, 2025)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.MissingCount)
	assert.Len(t, result.MissingTenants, 1)
	assert.Equal(t, r102.ID, result.MissingTenants[0].ID)
	assert.Equal(t, "R102", result.MissingTenants[0].RoomNo)
}

func TestReadingService_FindMissingReadings_NoneMissing(t *testing.T) {
	mockReadingRepo := new(MockReadingRepository)
	mockTenantRepo := new(MockTenantRepository)
	service := NewReadingService(mockReadingRepo, mockTenantRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()
	r101 := createTestTenant(ownerID, "Asha Verma", "R101", "7500.00")
	period, _ := rental.NewPeriod(10, 2025)

	mockTenantRepo.On("FindAllForOwner", ctx, ownerID).Return([]rental.Tenant{*r101}, nil)
	mockReadingRepo.On("TenantIDsWithReading", ctx, ownerID, period).Return([]uuid.UUID{r101.ID}, nil)

	result, err := service.FindMissingReadings(ctx, ownerID, 10, 2025)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.MissingCount)
	assert.Empty(t, result.MissingTenants)
}

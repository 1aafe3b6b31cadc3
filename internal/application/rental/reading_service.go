package rental

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReadingService provides application-level electricity reading operations:
// creation with previous-reading auto-resolution, updates, the
// previous-reading lookup and the missing-reading audit.
type ReadingService struct {
	readingRepo rental.ReadingRepository
	tenantRepo  rental.TenantRepository
	logger      *zap.Logger
}

// NewReadingService creates a new ReadingService
func NewReadingService(readingRepo rental.ReadingRepository, tenantRepo rental.TenantRepository, logger *zap.Logger) *ReadingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadingService{
		readingRepo: readingRepo,
		tenantRepo:  tenantRepo,
		logger:      logger,
	}
}

// ReadingResponse represents a reading in API responses
type ReadingResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	TotalUnits      decimal.Decimal `json:"total_units"`
	CalculatedBill  decimal.Decimal `json:"calculated_bill"`
	IsPaid          bool            `json:"is_paid"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateReadingRequest represents a request to record a reading.
// PreviousReading is optional: when omitted or zero the service derives it
// from the tenant's most recent earlier period. IsPaid is accepted but
// ignored; new readings always start unpaid.
type CreateReadingRequest struct {
	TenantID        uuid.UUID        `json:"tenant_id" binding:"required"`
	Month           int              `json:"month" binding:"required"`
	Year            int              `json:"year" binding:"required"`
	PreviousReading *decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal  `json:"current_reading"`
	RatePerUnit     decimal.Decimal  `json:"rate_per_unit"`
	IsPaid          bool             `json:"is_paid"`
}

// UpdateReadingRequest represents a request to update a reading.
// Previous-reading auto-resolution never re-runs on update.
type UpdateReadingRequest struct {
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	IsPaid          *bool           `json:"is_paid"`
}

// MissingReadingsResponse lists the owner's tenants with no reading
// for a period
type MissingReadingsResponse struct {
	MissingCount   int              `json:"missing_count"`
	MissingTenants []TenantResponse `json:"missing_tenants"`
}

// CreateReading records a new reading for a billing period. Exactly one
// reading may exist per (tenant, month, year); a second create for the
// same period fails with DUPLICATE_PERIOD.
func (s *ReadingService) CreateReading(ctx context.Context, ownerID uuid.UUID, req CreateReadingRequest) (*ReadingResponse, error) {
	period, err := rental.NewPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	// Cross-owner references must look like nonexistence
	if _, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, req.TenantID); err != nil {
		return nil, err
	}

	if _, err := s.readingRepo.FindByTenantAndPeriod(ctx, req.TenantID, period); err == nil {
		return nil, shared.NewDomainError(shared.CodeDuplicatePeriod,
			"A reading already exists for this tenant and period")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	previous := decimal.Zero
	if req.PreviousReading != nil {
		previous = *req.PreviousReading
	}

	reading, err := rental.NewElectricityReading(req.TenantID, period, previous, req.CurrentReading, req.RatePerUnit)
	if err != nil {
		return nil, err
	}

	// Auto-resolution runs only at creation and only when the caller
	// left the starting value empty or zero.
	if previous.IsZero() {
		if resolved, ok := s.resolvePreviousReading(ctx, req.TenantID, period); ok {
			if err := reading.SetPreviousReading(resolved); err != nil {
				return nil, err
			}
		}
	}

	if err := s.readingRepo.Save(ctx, reading); err != nil {
		return nil, err
	}

	return toReadingResponse(reading), nil
}

// resolvePreviousReading finds the current_reading of the nearest strictly
// earlier period. Lookup faults never abort the create; they are logged
// and the caller-supplied value stands.
func (s *ReadingService) resolvePreviousReading(ctx context.Context, tenantID uuid.UUID, period rental.Period) (decimal.Decimal, bool) {
	last, err := s.readingRepo.FindLatestBefore(ctx, tenantID, period)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("previous reading lookup failed, falling back to supplied value",
				zap.String("tenant_id", tenantID.String()),
				zap.Int("month", period.Month),
				zap.Int("year", period.Year),
				zap.Error(err),
			)
		}
		return decimal.Zero, false
	}
	return last.CurrentReading, true
}

// GetReading returns one reading within the owner's scope
func (s *ReadingService) GetReading(ctx context.Context, ownerID, id uuid.UUID) (*ReadingResponse, error) {
	reading, err := s.readingRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toReadingResponse(reading), nil
}

// ListReadings lists the owner's readings, optionally filtered by tenant
// and period
func (s *ReadingService) ListReadings(ctx context.Context, ownerID uuid.UUID, filter rental.ReadingFilter) ([]ReadingResponse, error) {
	readings, err := s.readingRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ReadingResponse, len(readings))
	for i := range readings {
		responses[i] = *toReadingResponse(&readings[i])
	}
	return responses, nil
}

// UpdateReading applies field changes, re-validates the meter values and
// recomputes the derived fields. Payment status changes only when the
// request carries an explicit flag.
func (s *ReadingService) UpdateReading(ctx context.Context, ownerID, id uuid.UUID, req UpdateReadingRequest) (*ReadingResponse, error) {
	reading, err := s.readingRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := reading.Update(req.PreviousReading, req.CurrentReading, req.RatePerUnit); err != nil {
		return nil, err
	}
	if req.IsPaid != nil {
		reading.SetPaid(*req.IsPaid)
	}

	if err := s.readingRepo.Save(ctx, reading); err != nil {
		return nil, err
	}
	return toReadingResponse(reading), nil
}

// DeleteReading removes one reading within the owner's scope
func (s *ReadingService) DeleteReading(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.readingRepo.DeleteForOwner(ctx, ownerID, id)
}

// GetPreviousReading returns the current_reading of the tenant's nearest
// strictly earlier period, or zero when none exists. Internal lookup
// faults are logged and degrade to zero; they never reach the caller.
func (s *ReadingService) GetPreviousReading(ctx context.Context, ownerID, tenantID uuid.UUID, month, year int) (decimal.Decimal, error) {
	period, err := rental.NewPeriod(month, year)
	if err != nil {
		return decimal.Zero, err
	}
	if _, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, tenantID); err != nil {
		return decimal.Zero, err
	}

	last, err := s.readingRepo.FindLatestBefore(ctx, tenantID, period)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("previous reading lookup failed, returning zero",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
		return decimal.Zero, nil
	}
	return last.CurrentReading, nil
}

// FindMissingReadings returns the owner's tenants with no reading for the
// period, ordered by room number. No tenants missing is an empty list,
// not an error.
func (s *ReadingService) FindMissingReadings(ctx context.Context, ownerID uuid.UUID, month, year int) (*MissingReadingsResponse, error) {
	period, err := rental.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	tenants, err := s.tenantRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	recordedIDs, err := s.readingRepo.TenantIDsWithReading(ctx, ownerID, period)
	if err != nil {
		return nil, err
	}

	recorded := make(map[uuid.UUID]struct{}, len(recordedIDs))
	for _, id := range recordedIDs {
		recorded[id] = struct{}{}
	}

	missing := make([]TenantResponse, 0)
	for i := range tenants {
		if _, ok := recorded[tenants[i].ID]; !ok {
			missing = append(missing, *toTenantResponse(&tenants[i]))
		}
	}

	return &MissingReadingsResponse{
		MissingCount:   len(missing),
		MissingTenants: missing,
	}, nil
}

func toReadingResponse(r *rental.ElectricityReading) *ReadingResponse {
	return &ReadingResponse{
		ID:              r.ID,
		TenantID:        r.TenantID,
		Month:           r.Month,
		Year:            r.Year,
		PreviousReading: r.PreviousReading,
		CurrentReading:  r.CurrentReading,
		RatePerUnit:     r.RatePerUnit,
		TotalUnits:      r.TotalUnits,
		CalculatedBill:  r.CalculatedBill,
		IsPaid:          r.IsPaid,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

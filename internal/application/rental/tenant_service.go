package rental

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TenantService provides application-level tenant registry operations
type TenantService struct {
	tenantRepo rental.TenantRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo rental.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	RoomNo      string          `json:"room_no"`
	ContactNo   string          `json:"contact_no"`
	JoiningDate time.Time       `json:"joining_date"`
	LeavingDate *time.Time      `json:"leaving_date,omitempty"`
	Rent        decimal.Decimal `json:"rent"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateTenantRequest represents a request to register a tenant
type CreateTenantRequest struct {
	Name        string          `json:"name" binding:"required"`
	RoomNo      string          `json:"room_no" binding:"required"`
	ContactNo   string          `json:"contact_no"`
	JoiningDate time.Time       `json:"joining_date"`
	Rent        decimal.Decimal `json:"rent"`
}

// UpdateTenantRequest represents a request to update a tenant
type UpdateTenantRequest struct {
	Name        string          `json:"name" binding:"required"`
	RoomNo      string          `json:"room_no" binding:"required"`
	ContactNo   string          `json:"contact_no"`
	JoiningDate time.Time       `json:"joining_date"`
	LeavingDate *time.Time      `json:"leaving_date"`
	Rent        decimal.Decimal `json:"rent"`
}

// CreateTenant registers a tenant. Room numbers are unique within the
// owner's tenant set.
func (s *TenantService) CreateTenant(ctx context.Context, ownerID uuid.UUID, req CreateTenantRequest) (*TenantResponse, error) {
	if err := s.checkRoomAvailable(ctx, ownerID, req.RoomNo, uuid.Nil); err != nil {
		return nil, err
	}

	tenant, err := rental.NewTenant(ownerID, req.Name, req.RoomNo, req.ContactNo, req.JoiningDate, req.Rent)
	if err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// GetTenant returns one tenant within the owner's scope
func (s *TenantService) GetTenant(ctx context.Context, ownerID, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// ListTenants lists all of the owner's tenants
func (s *TenantService) ListTenants(ctx context.Context, ownerID uuid.UUID) ([]TenantResponse, error) {
	tenants, err := s.tenantRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = *toTenantResponse(&tenants[i])
	}
	return responses, nil
}

// UpdateTenant applies new tenant details
func (s *TenantService) UpdateTenant(ctx context.Context, ownerID, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.RoomNo != tenant.RoomNo {
		if err := s.checkRoomAvailable(ctx, ownerID, req.RoomNo, id); err != nil {
			return nil, err
		}
	}

	if err := tenant.Update(req.Name, req.RoomNo, req.ContactNo, req.JoiningDate, req.LeavingDate, req.Rent); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// DeleteTenant removes a tenant and cascades to its readings
func (s *TenantService) DeleteTenant(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.tenantRepo.DeleteForOwner(ctx, ownerID, id)
}

func (s *TenantService) checkRoomAvailable(ctx context.Context, ownerID uuid.UUID, roomNo string, selfID uuid.UUID) error {
	existing, err := s.tenantRepo.FindByRoomNo(ctx, ownerID, roomNo)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return shared.NewFieldError(shared.CodeAlreadyExists, "room_no",
			"A tenant with this room number already exists")
	}
	return nil
}

func toTenantResponse(t *rental.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:          t.ID,
		Name:        t.Name,
		RoomNo:      t.RoomNo,
		ContactNo:   t.ContactNo,
		JoiningDate: t.JoiningDate,
		LeavingDate: t.LeavingDate,
		Rent:        t.Rent,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

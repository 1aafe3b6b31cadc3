package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tenant represents one renter managed by an owner account.
// Room numbers are unique within an owner's tenant set.
type Tenant struct {
	shared.OwnedAggregateRoot
	Name        string          `json:"name"`
	RoomNo      string          `json:"room_no"`
	ContactNo   string          `json:"contact_no"`
	JoiningDate time.Time       `json:"joining_date"`
	LeavingDate *time.Time      `json:"leaving_date,omitempty"`
	Rent        decimal.Decimal `json:"rent"`
}

// NewTenant creates a new tenant for the given owner
func NewTenant(ownerID uuid.UUID, name, roomNo, contactNo string, joiningDate time.Time, rent decimal.Decimal) (*Tenant, error) {
	if err := validateTenantFields(name, roomNo, rent); err != nil {
		return nil, err
	}
	if joiningDate.IsZero() {
		joiningDate = time.Now()
	}
	return &Tenant{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		RoomNo:             roomNo,
		ContactNo:          contactNo,
		JoiningDate:        joiningDate,
		Rent:               rent,
	}, nil
}

// Update applies new tenant details
func (t *Tenant) Update(name, roomNo, contactNo string, joiningDate time.Time, leavingDate *time.Time, rent decimal.Decimal) error {
	if err := validateTenantFields(name, roomNo, rent); err != nil {
		return err
	}
	t.Name = name
	t.RoomNo = roomNo
	t.ContactNo = contactNo
	if !joiningDate.IsZero() {
		t.JoiningDate = joiningDate
	}
	t.LeavingDate = leavingDate
	t.Rent = rent
	t.MarkUpdated()
	return nil
}

// MarkLeft records the date the tenant vacated
func (t *Tenant) MarkLeft(leavingDate time.Time) {
	t.LeavingDate = &leavingDate
	t.MarkUpdated()
}

func validateTenantFields(name, roomNo string, rent decimal.Decimal) error {
	if name == "" {
		return shared.NewFieldError(shared.CodeInvalidInput, "name", "Tenant name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewFieldError(shared.CodeInvalidInput, "name", "Tenant name cannot exceed 100 characters")
	}
	if roomNo == "" {
		return shared.NewFieldError(shared.CodeInvalidInput, "room_no", "Room number cannot be empty")
	}
	if len(roomNo) > 10 {
		return shared.NewFieldError(shared.CodeInvalidInput, "room_no", "Room number cannot exceed 10 characters")
	}
	if rent.IsNegative() {
		return shared.NewFieldError(shared.CodeInvalidInput, "rent", "Rent cannot be negative")
	}
	return nil
}

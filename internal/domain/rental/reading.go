package rental

import (
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ElectricityReading is one tenant's meter snapshot for a billing period.
// TotalUnits and CalculatedBill are derived and recomputed on every save;
// they are never independently settable. Exactly one reading exists per
// (tenant, month, year).
type ElectricityReading struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID       `json:"tenant_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	TotalUnits      decimal.Decimal `json:"total_units"`
	CalculatedBill  decimal.Decimal `json:"calculated_bill"`
	IsPaid          bool            `json:"is_paid"`
}

// NewElectricityReading creates a reading for a tenant and period.
// IsPaid starts false regardless of what the caller wants; payment status
// is only togglable on an existing record.
func NewElectricityReading(tenantID uuid.UUID, period Period, previous, current, rate decimal.Decimal) (*ElectricityReading, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewFieldError(shared.CodeInvalidInput, "tenant_id", "Tenant reference cannot be empty")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if err := validateMeterValues(previous, current, rate); err != nil {
		return nil, err
	}

	r := &ElectricityReading{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Month:             period.Month,
		Year:              period.Year,
		PreviousReading:   previous,
		CurrentReading:    current,
		RatePerUnit:       rate,
		IsPaid:            false,
	}
	r.recompute()
	return r, nil
}

// Period returns the reading's billing period
func (r *ElectricityReading) Period() Period {
	return Period{Month: r.Month, Year: r.Year}
}

// SetPreviousReading overwrites the starting meter value and recomputes
// the derived fields. Used by the auto-resolution step at creation time.
func (r *ElectricityReading) SetPreviousReading(previous decimal.Decimal) error {
	if err := validateMeterValues(previous, r.CurrentReading, r.RatePerUnit); err != nil {
		return err
	}
	r.PreviousReading = previous
	r.recompute()
	return nil
}

// Update applies new meter values and recomputes the derived fields.
// Payment status is untouched; previous-reading auto-resolution never
// re-runs on update.
func (r *ElectricityReading) Update(previous, current, rate decimal.Decimal) error {
	if err := validateMeterValues(previous, current, rate); err != nil {
		return err
	}
	r.PreviousReading = previous
	r.CurrentReading = current
	r.RatePerUnit = rate
	r.recompute()
	r.MarkUpdated()
	return nil
}

// SetPaid toggles the payment flag
func (r *ElectricityReading) SetPaid(paid bool) {
	r.IsPaid = paid
	r.MarkUpdated()
}

// recompute derives consumption and cost from the meter values
func (r *ElectricityReading) recompute() {
	r.TotalUnits = r.CurrentReading.Sub(r.PreviousReading)
	r.CalculatedBill = r.TotalUnits.Mul(r.RatePerUnit)
}

func validateMeterValues(previous, current, rate decimal.Decimal) error {
	if previous.IsNegative() {
		return shared.NewFieldError(shared.CodeInvalidReading, "previous_reading", "Previous reading cannot be negative")
	}
	if current.IsNegative() {
		return shared.NewFieldError(shared.CodeInvalidReading, "current_reading", "Current reading cannot be negative")
	}
	if rate.IsNegative() {
		return shared.NewFieldError(shared.CodeInvalidReading, "rate_per_unit", "Rate per unit cannot be negative")
	}
	if current.LessThan(previous) {
		return shared.NewFieldError(shared.CodeInvalidReading, "current_reading",
			"Current reading must be greater than or equal to the previous reading")
	}
	return nil
}

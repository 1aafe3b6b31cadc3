package rental

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
)

// SummaryService aggregates rent, electricity billing and other expenses
// into a monthly report.
type SummaryService struct {
	tenantRepo  rental.TenantRepository
	readingRepo rental.ReadingRepository
	expenseRepo rental.ExpenseRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	tenantRepo rental.TenantRepository,
	readingRepo rental.ReadingRepository,
	expenseRepo rental.ExpenseRepository,
) *SummaryService {
	return &SummaryService{
		tenantRepo:  tenantRepo,
		readingRepo: readingRepo,
		expenseRepo: expenseRepo,
	}
}

// TenantLine is one tenant's electricity entry in a monthly report.
// Only tenants with a reading for the period get a line.
type TenantLine struct {
	TenantID   uuid.UUID       `json:"tenant_id"`
	Name       string          `json:"name"`
	RoomNo     string          `json:"room_no"`
	TotalUnits decimal.Decimal `json:"total_units"`
	Bill       decimal.Decimal `json:"bill"`
	IsPaid     bool            `json:"is_paid"`
}

// Report is the monthly financial summary for one owner
type Report struct {
	Month              string          `json:"month"`
	Year               int             `json:"year"`
	Tenants            []TenantLine    `json:"tenants"`
	TotalRent          decimal.Decimal `json:"total_rent"`
	TotalElectricity   decimal.Decimal `json:"total_electricity"`
	TotalOtherExpenses decimal.Decimal `json:"total_other_expenses"`
	NetBalance         decimal.Decimal `json:"net_balance"`
}

// Summarize builds the report for a period. Rent totals over every tenant
// the owner has; electricity totals only over tenants with a reading for
// the period, and tenants without one are absent from the lines rather
// than zero-filled. Empty data yields zero sums, never an error.
func (s *SummaryService) Summarize(ctx context.Context, ownerID uuid.UUID, month, year int) (*Report, error) {
	period, err := rental.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	tenants, err := s.tenantRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	totalRent := decimal.Zero
	tenantByID := make(map[uuid.UUID]*rental.Tenant, len(tenants))
	for i := range tenants {
		totalRent = totalRent.Add(tenants[i].Rent)
		tenantByID[tenants[i].ID] = &tenants[i]
	}

	readings, err := s.readingRepo.FindForPeriodByOwner(ctx, ownerID, period)
	if err != nil {
		return nil, err
	}
	lines := make([]TenantLine, 0, len(readings))
	totalElectricity := decimal.Zero
	for i := range readings {
		r := &readings[i]
		tenant, ok := tenantByID[r.TenantID]
		if !ok {
			continue
		}
		lines = append(lines, TenantLine{
			TenantID:   r.TenantID,
			Name:       tenant.Name,
			RoomNo:     tenant.RoomNo,
			TotalUnits: r.TotalUnits,
			Bill:       r.CalculatedBill,
			IsPaid:     r.IsPaid,
		})
		totalElectricity = totalElectricity.Add(r.CalculatedBill)
	}

	totalOther, err := s.expenseRepo.SumForPeriod(ctx, ownerID, period)
	if err != nil {
		return nil, err
	}

	return &Report{
		Month:              period.MonthName(),
		Year:               period.Year,
		Tenants:            lines,
		TotalRent:          totalRent,
		TotalElectricity:   totalElectricity,
		TotalOtherExpenses: totalOther,
		NetBalance:         totalRent.Sub(totalElectricity.Add(totalOther)),
	}, nil
}

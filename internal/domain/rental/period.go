package rental

import (
	"fmt"
	"time"

	"github.com/rentledger/backend/internal/domain/shared"
)

// Year bounds accepted for any billing period
const (
	MinYear = 2000
	MaxYear = 2100
)

// Period identifies one billing cycle as a (month, year) pair.
// It is always carried as two small integers, never as a date.
type Period struct {
	Month int
	Year  int
}

// NewPeriod creates a validated Period
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodFromDate derives the Period a date falls into
func PeriodFromDate(date time.Time) Period {
	return Period{Month: int(date.Month()), Year: date.Year()}
}

// Validate checks the month and year bounds
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return shared.NewFieldError(shared.CodeInvalidPeriod, "month", "Month must be an integer between 1 and 12")
	}
	if p.Year < MinYear || p.Year > MaxYear {
		return shared.NewFieldError(shared.CodeInvalidPeriod, "year",
			fmt.Sprintf("Year must be between %d and %d", MinYear, MaxYear))
	}
	return nil
}

// Before reports whether p is strictly earlier than other.
// Comparison is on the (year, month) tuple so December/January
// boundaries order correctly.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// MonthName returns the human-readable English month name
func (p Period) MonthName() string {
	return time.Month(p.Month).String()
}

// String returns the period as "month/year"
func (p Period) String() string {
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}

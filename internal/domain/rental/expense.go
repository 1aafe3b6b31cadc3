package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is a household cost linked to an optional category.
// Month and Year are always derived from Date; they exist as columns
// only to make period queries cheap. The category link is nullable so
// removing a category leaves its expenses intact.
type Expense struct {
	shared.OwnedAggregateRoot
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
}

// NewExpense creates a new expense for the given owner
func NewExpense(ownerID uuid.UUID, categoryID *uuid.UUID, amount decimal.Decimal, date time.Time, description string) (*Expense, error) {
	if err := validateExpenseFields(amount); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}
	if err := PeriodFromDate(date).Validate(); err != nil {
		return nil, err
	}
	e := &Expense{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		CategoryID:         categoryID,
		Amount:             amount,
		Date:               date,
		Description:        description,
	}
	e.syncPeriod()
	return e, nil
}

// Update applies new expense details and re-derives the period
func (e *Expense) Update(categoryID *uuid.UUID, amount decimal.Decimal, date time.Time, description string) error {
	if err := validateExpenseFields(amount); err != nil {
		return err
	}
	if !date.IsZero() {
		if err := PeriodFromDate(date).Validate(); err != nil {
			return err
		}
		e.Date = date
	}
	e.CategoryID = categoryID
	e.Amount = amount
	e.Description = description
	e.syncPeriod()
	e.MarkUpdated()
	return nil
}

// DetachCategory clears the category link (set-null semantics)
func (e *Expense) DetachCategory() {
	e.CategoryID = nil
	e.MarkUpdated()
}

// Period returns the billing period the expense falls into
func (e *Expense) Period() Period {
	return Period{Month: e.Month, Year: e.Year}
}

// syncPeriod recomputes Month/Year from Date; they are never settable directly
func (e *Expense) syncPeriod() {
	p := PeriodFromDate(e.Date)
	e.Month = p.Month
	e.Year = p.Year
}

func validateExpenseFields(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewFieldError(shared.CodeInvalidInput, "amount", "Amount must be greater than zero")
	}
	return nil
}

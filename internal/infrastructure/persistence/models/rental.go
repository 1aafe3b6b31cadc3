package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant aggregate root.
// Room numbers are unique per owner.
type TenantModel struct {
	OwnedAggregateModel
	Name        string    `gorm:"type:varchar(100);not null"`
	RoomNo      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_tenant_owner_room,priority:2"`
	ContactNo   string    `gorm:"type:varchar(20)"`
	JoiningDate time.Time `gorm:"not null"`
	LeavingDate *time.Time
	Rent        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *rental.Tenant {
	t := &rental.Tenant{
		Name:        m.Name,
		RoomNo:      m.RoomNo,
		ContactNo:   m.ContactNo,
		JoiningDate: m.JoiningDate,
		LeavingDate: m.LeavingDate,
		Rent:        m.Rent,
	}
	m.PopulateOwnedAggregateRoot(&t.OwnedAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *rental.Tenant) {
	m.FromDomainOwnedAggregateRoot(t.OwnedAggregateRoot)
	m.Name = t.Name
	m.RoomNo = t.RoomNo
	m.ContactNo = t.ContactNo
	m.JoiningDate = t.JoiningDate
	m.LeavingDate = t.LeavingDate
	m.Rent = t.Rent
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant
func TenantModelFromDomain(t *rental.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// ElectricityReadingModel is the persistence model for the
// ElectricityReading aggregate root. One reading exists per tenant and
// billing period.
type ElectricityReadingModel struct {
	AggregateModel
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_reading_tenant_period,priority:1;index"`
	Month           int             `gorm:"not null;uniqueIndex:idx_reading_tenant_period,priority:2"`
	Year            int             `gorm:"not null;uniqueIndex:idx_reading_tenant_period,priority:3"`
	PreviousReading decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CurrentReading  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	RatePerUnit     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalUnits      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CalculatedBill  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsPaid          bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ElectricityReadingModel) TableName() string {
	return "electricity_readings"
}

// ToDomain converts the persistence model to a domain ElectricityReading
func (m *ElectricityReadingModel) ToDomain() *rental.ElectricityReading {
	r := &rental.ElectricityReading{
		TenantID:        m.TenantID,
		Month:           m.Month,
		Year:            m.Year,
		PreviousReading: m.PreviousReading,
		CurrentReading:  m.CurrentReading,
		RatePerUnit:     m.RatePerUnit,
		TotalUnits:      m.TotalUnits,
		CalculatedBill:  m.CalculatedBill,
		IsPaid:          m.IsPaid,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain ElectricityReading
func (m *ElectricityReadingModel) FromDomain(r *rental.ElectricityReading) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.TenantID = r.TenantID
	m.Month = r.Month
	m.Year = r.Year
	m.PreviousReading = r.PreviousReading
	m.CurrentReading = r.CurrentReading
	m.RatePerUnit = r.RatePerUnit
	m.TotalUnits = r.TotalUnits
	m.CalculatedBill = r.CalculatedBill
	m.IsPaid = r.IsPaid
}

// ElectricityReadingModelFromDomain creates a new persistence model from a domain reading
func ElectricityReadingModelFromDomain(r *rental.ElectricityReading) *ElectricityReadingModel {
	m := &ElectricityReadingModel{}
	m.FromDomain(r)
	return m
}

// ExpenseCategoryModel is the persistence model for the ExpenseCategory
// aggregate root. Names are unique per owner.
type ExpenseCategoryModel struct {
	OwnedAggregateModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_owner_name,priority:2"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain ExpenseCategory
func (m *ExpenseCategoryModel) ToDomain() *rental.ExpenseCategory {
	c := &rental.ExpenseCategory{
		Name:        m.Name,
		Description: m.Description,
	}
	m.PopulateOwnedAggregateRoot(&c.OwnedAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain ExpenseCategory
func (m *ExpenseCategoryModel) FromDomain(c *rental.ExpenseCategory) {
	m.FromDomainOwnedAggregateRoot(c.OwnedAggregateRoot)
	m.Name = c.Name
	m.Description = c.Description
}

// ExpenseCategoryModelFromDomain creates a new persistence model from a domain category
func ExpenseCategoryModelFromDomain(c *rental.ExpenseCategory) *ExpenseCategoryModel {
	m := &ExpenseCategoryModel{}
	m.FromDomain(c)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate root.
// Month and year are stored denormalized for period queries, always
// derived from the expense date.
type ExpenseModel struct {
	OwnedAggregateModel
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Date        time.Time       `gorm:"not null;index"`
	Description string          `gorm:"type:text"`
	Month       int             `gorm:"not null;index:idx_expense_period"`
	Year        int             `gorm:"not null;index:idx_expense_period"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *rental.Expense {
	e := &rental.Expense{
		CategoryID:  m.CategoryID,
		Amount:      m.Amount,
		Date:        m.Date,
		Description: m.Description,
		Month:       m.Month,
		Year:        m.Year,
	}
	m.PopulateOwnedAggregateRoot(&e.OwnedAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Expense
func (m *ExpenseModel) FromDomain(e *rental.Expense) {
	m.FromDomainOwnedAggregateRoot(e.OwnedAggregateRoot)
	m.CategoryID = e.CategoryID
	m.Amount = e.Amount
	m.Date = e.Date
	m.Description = e.Description
	m.Month = e.Month
	m.Year = e.Year
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense
func ExpenseModelFromDomain(e *rental.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

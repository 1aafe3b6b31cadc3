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

// ExpenseService provides application-level operations for expense
// categories and expenses, including the per-period aggregate the
// summary engine consumes.
type ExpenseService struct {
	expenseRepo  rental.ExpenseRepository
	categoryRepo rental.ExpenseCategoryRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo rental.ExpenseRepository, categoryRepo rental.ExpenseCategoryRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// ===================== Category Operations =====================

// CategoryResponse represents an expense category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRequest represents a request to create or update a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory creates a category. Names are unique per owner.
func (s *ExpenseService) CreateCategory(ctx context.Context, ownerID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	if err := s.checkNameAvailable(ctx, ownerID, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	category, err := rental.NewExpenseCategory(ownerID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetCategory returns one category within the owner's scope
func (s *ExpenseService) GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories lists the owner's categories
func (s *ExpenseService) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *toCategoryResponse(&categories[i])
	}
	return responses, nil
}

// UpdateCategory applies new category details
func (s *ExpenseService) UpdateCategory(ctx context.Context, ownerID, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != category.Name {
		if err := s.checkNameAvailable(ctx, ownerID, req.Name, id); err != nil {
			return nil, err
		}
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// DeleteCategory removes a category. Linked expenses keep existing with
// a nil category reference.
func (s *ExpenseService) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.categoryRepo.DeleteForOwner(ctx, ownerID, id)
}

func (s *ExpenseService) checkNameAvailable(ctx context.Context, ownerID uuid.UUID, name string, selfID uuid.UUID) error {
	existing, err := s.categoryRepo.FindByName(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return shared.NewFieldError(shared.CodeAlreadyExists, "name",
			"A category with this name already exists")
	}
	return nil
}

// ===================== Expense Operations =====================

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseRequest represents a request to create or update an expense.
// Month and year are never accepted; they derive from the date.
type ExpenseRequest struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// CreateExpense records an expense. A category link must belong to the
// same owner; a foreign category is indistinguishable from a missing one.
func (s *ExpenseService) CreateExpense(ctx context.Context, ownerID uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	if err := s.verifyCategoryLink(ctx, ownerID, req.CategoryID); err != nil {
		return nil, err
	}

	expense, err := rental.NewExpense(ownerID, req.CategoryID, req.Amount, req.Date, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetExpense returns one expense within the owner's scope
func (s *ExpenseService) GetExpense(ctx context.Context, ownerID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists the owner's expenses, optionally filtered by period
// and category
func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID uuid.UUID, filter rental.ExpenseFilter) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = *toExpenseResponse(&expenses[i])
	}
	return responses, nil
}

// UpdateExpense applies new expense details and re-derives the period
// when the date changed
func (s *ExpenseService) UpdateExpense(ctx context.Context, ownerID, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.verifyCategoryLink(ctx, ownerID, req.CategoryID); err != nil {
		return nil, err
	}

	if err := expense.Update(req.CategoryID, req.Amount, req.Date, req.Description); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes one expense within the owner's scope
func (s *ExpenseService) DeleteExpense(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.expenseRepo.DeleteForOwner(ctx, ownerID, id)
}

// AggregateForPeriod sums the owner's expense amounts for a period.
// An empty period sums to decimal zero.
func (s *ExpenseService) AggregateForPeriod(ctx context.Context, ownerID uuid.UUID, month, year int) (decimal.Decimal, error) {
	period, err := rental.NewPeriod(month, year)
	if err != nil {
		return decimal.Zero, err
	}
	return s.expenseRepo.SumForPeriod(ctx, ownerID, period)
}

func (s *ExpenseService) verifyCategoryLink(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, *categoryID)
	return err
}

func toCategoryResponse(c *rental.ExpenseCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toExpenseResponse(e *rental.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

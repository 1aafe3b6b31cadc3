package rental

import (
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// ExpenseCategory groups household expenses. Names are unique per owner.
type ExpenseCategory struct {
	shared.OwnedAggregateRoot
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewExpenseCategory creates a new category for the given owner
func NewExpenseCategory(ownerID uuid.UUID, name, description string) (*ExpenseCategory, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &ExpenseCategory{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Description:        description,
	}, nil
}

// Update applies new category details
func (c *ExpenseCategory) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	c.MarkUpdated()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewFieldError(shared.CodeInvalidInput, "name", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewFieldError(shared.CodeInvalidInput, "name", "Category name cannot exceed 100 characters")
	}
	return nil
}

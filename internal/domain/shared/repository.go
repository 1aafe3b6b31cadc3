package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OwnedRepository is a repository whose records are scoped to an owner
// account. Lookups outside the owner's scope behave as if the record
// does not exist.
type OwnedRepository[T any] interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*T, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]T, error)
	Save(ctx context.Context, entity *T) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

package repository

import "context"

// Repository defines the generic base interface for data access operations.
//
// T is the entity type and ID its key type.
type Repository[T any, ID comparable] interface {
	// Create inserts a new entity
	Create(ctx context.Context, entity *T) error

	// GetByID returns ErrNotFound if the entity doesn't exist
	GetByID(ctx context.Context, id ID) (*T, error)

	// Update returns ErrNotFound if the entity doesn't exist
	Update(ctx context.Context, entity *T) error

	// Delete returns ErrNotFound if the entity doesn't exist
	Delete(ctx context.Context, id ID) error

	// List returns entities in insertion order
	List(ctx context.Context, opts ListOptions) ([]*T, error)
}

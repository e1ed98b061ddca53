package ingredient

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines all database operations for the ingredient catalog.
type Repository interface {
	List(ctx context.Context) ([]Ingredient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Ingredient, error)
	Create(ctx context.Context, ing *Ingredient) error

	ListCategories(ctx context.Context) ([]Category, error)

	// Idempotent seeding helpers
	EnsureCategory(ctx context.Context, name string, icon, color *string) (uuid.UUID, error)
	EnsureIngredient(
		ctx context.Context,
		name, canonicalName, defaultUnit string,
		aliases []string,
		categoryID *uuid.UUID,
	) (created bool, err error)
}

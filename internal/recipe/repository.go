package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// Repository persists recipes together with their ingredient lines.
// Create and Update are atomic over the recipe row and its lines.
type Repository interface {
	Create(ctx context.Context, recipe *Recipe) error
	Get(ctx context.Context, id uuid.UUID) (*Recipe, error)
	List(ctx context.Context, householdID uuid.UUID) ([]Recipe, error)
	Update(ctx context.Context, recipe *Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
}

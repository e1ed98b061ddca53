package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	// CreateWithHousehold persists a new household and its first user
	// atomically.
	CreateWithHousehold(ctx context.Context, household *Household, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetHousehold(ctx context.Context, id uuid.UUID) (*Household, error)
}

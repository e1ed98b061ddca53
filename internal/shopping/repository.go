package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrListNotFound      = errors.New("shopping list not found")
	ErrItemNotFound      = errors.New("shopping list item not found")
	ErrInvalidListStatus = errors.New("invalid status")
)

// ItemUpdate carries the shopper's edits to one item. Nil fields are left
// untouched.
type ItemUpdate struct {
	IsChecked      *bool
	ActualQuantity *decimal.Decimal
	Notes          *string
}

type Repository interface {
	// CreateWithItems persists a list and all its items atomically.
	CreateWithItems(ctx context.Context, list *List) error
	Get(ctx context.Context, id uuid.UUID) (*List, error)
	ListAll(ctx context.Context, householdID uuid.UUID, status *string) ([]List, error)
	UpdateMeta(ctx context.Context, id uuid.UUID, name *string, status *string) (*List, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UpdateItem(ctx context.Context, listID, itemID uuid.UUID, update ItemUpdate) (*Item, error)
}

package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrLotNotFound          = errors.New("inventory lot not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrInvalidLocation      = errors.New("invalid location")
)

// LotFilter narrows lot listings.
type LotFilter struct {
	IngredientID *uuid.UUID
	Location     *string
	Limit        int
	Offset       int
}

// Repository defines all database operations for lots and their event log.
// Every quantity-changing method appends exactly one event and updates the
// cached lot quantity in the same transaction.
type Repository interface {
	CreateLot(ctx context.Context, lot *Lot) error
	GetLot(ctx context.Context, id uuid.UUID) (*Lot, error)
	ListLots(ctx context.Context, householdID uuid.UUID, filter LotFilter) ([]Lot, error)
	UpdateLotMeta(ctx context.Context, id uuid.UUID, location *string, expiry *time.Time) (*Lot, error)

	ListEvents(ctx context.Context, lotID uuid.UUID) ([]Event, error)
	// ConsumptionEvents returns negative-delta events for one ingredient
	// across all of a household's lots, for restock prediction.
	ConsumptionEvents(ctx context.Context, householdID, ingredientID uuid.UUID) ([]Event, error)

	Consume(ctx context.Context, lotID uuid.UUID, quantity decimal.Decimal, reason string, actor *uuid.UUID) (*Lot, error)
	Discard(ctx context.Context, lotID uuid.UUID, reason string, actor *uuid.UUID) (*Lot, error)
	Transfer(ctx context.Context, lotID uuid.UUID, location string, actor *uuid.UUID) (*Lot, error)
	Adjust(ctx context.Context, lotID uuid.UUID, delta decimal.Decimal, reason string, actor *uuid.UUID) (*Lot, error)

	Aggregate(ctx context.Context, householdID uuid.UUID, location *string) ([]AggregatedItem, error)
	// OnHand sums positive remaining quantities for one ingredient.
	OnHand(ctx context.Context, householdID, ingredientID uuid.UUID) (decimal.Decimal, string, error)
}

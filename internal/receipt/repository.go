package receipt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrItemNotFound     = errors.New("receipt item not found")
	ErrAlreadyProcessed = errors.New("receipt already processed to inventory")
	ErrNotParsed        = errors.New("receipt has not been parsed yet")
)

// Filter narrows receipt listings. Zero values mean "no constraint".
type Filter struct {
	Status          string
	InventoryStatus string
	Limit           int
	Offset          int
}

// ItemUpdate carries the reviewable fields of a receipt item. Nil fields
// are left untouched.
type ItemUpdate struct {
	IngredientID  *uuid.UUID
	SkipInventory *bool
	Quantity      *decimal.Decimal
	Unit          *string
}

type Repository interface {
	Create(ctx context.Context, receipt *Receipt) error
	Get(ctx context.Context, id uuid.UUID) (*Receipt, error)
	List(ctx context.Context, householdID uuid.UUID, filter Filter) ([]Receipt, int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UpdateItem(ctx context.Context, receiptID, itemID uuid.UUID, update ItemUpdate) (*Item, error)
	SetItemLot(ctx context.Context, itemID, lotID uuid.UUID) error
	SetInventoryStatus(ctx context.Context, receiptID uuid.UUID, status string) error
}

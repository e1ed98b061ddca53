package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Storage locations form a closed set.
const (
	LocationPantry  = "pantry"
	LocationFridge  = "fridge"
	LocationFreezer = "freezer"
)

func ValidLocation(location string) bool {
	switch location {
	case LocationPantry, LocationFridge, LocationFreezer:
		return true
	}
	return false
}

// Event types against a lot.
const (
	EventAdd      = "add"
	EventConsume  = "consume"
	EventAdjust   = "adjust"
	EventDiscard  = "discard"
	EventTransfer = "transfer"
)

// Lot sources.
const (
	SourceReceipt = "receipt"
	SourceManual  = "manual"
	SourceBarcode = "barcode"
)

// Lot is a single acquired quantity of one ingredient. InitialQuantity and
// the cost fields are fixed at acquisition; Quantity is a cached remaining
// amount that must always equal InitialQuantity plus the sum of the lot's
// event deltas. Lots are never deleted, only driven toward zero.
type Lot struct {
	ID              uuid.UUID       `json:"id"`
	HouseholdID     uuid.UUID       `json:"household_id"`
	IngredientID    uuid.UUID       `json:"ingredient_id"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Location        string          `json:"location"`
	PurchaseDate    time.Time       `json:"purchase_date"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Currency        string          `json:"currency"`
	Confidence      decimal.Decimal `json:"confidence"`
	SourceType      string          `json:"source_type"` // receipt | manual | barcode
	SourceID        *uuid.UUID      `json:"source_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	IngredientName *string `json:"ingredient_name,omitempty"`
}

// Event is an immutable signed quantity delta against exactly one lot.
// The ledger is append-only; events are the sole source of truth for a
// lot's remaining quantity.
type Event struct {
	ID            uuid.UUID       `json:"id"`
	LotID         uuid.UUID       `json:"lot_id"`
	EventType     string          `json:"event_type"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	Unit          string          `json:"unit"`
	Reason        *string         `json:"reason,omitempty"`
	CreatedBy     *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AggregatedItem is the per-ingredient inventory view.
type AggregatedItem struct {
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	CanonicalName  string          `json:"canonical_name"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	Unit           string          `json:"unit"`
	LotCount       int             `json:"lot_count"`
	Locations      []string        `json:"locations"`
	EarliestExpiry *time.Time      `json:"earliest_expiry,omitempty"`
}

package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OCR pipeline statuses for an uploaded receipt.
const (
	StatusUploaded   = "UPLOADED"
	StatusProcessing = "OCR_PROCESSING"
	StatusParsed     = "PARSED"
	StatusFailed     = "OCR_FAILED"
)

// Inventory review statuses.
const (
	InventoryPending  = "pending"
	InventoryReviewed = "reviewed"
	InventorySkipped  = "skipped"
)

// Receipt is one store visit: header fields plus parsed line items.
// RawOCR keeps the extracted text for re-parsing and debugging.
type Receipt struct {
	ID              uuid.UUID       `json:"id"`
	HouseholdID     uuid.UUID       `json:"household_id"`
	Status          string          `json:"status"`
	InventoryStatus string          `json:"inventory_status"`
	MerchantName    string          `json:"merchant_name"`
	StoreLocation   *string         `json:"store_location,omitempty"`
	PurchaseDate    time.Time       `json:"purchase_date"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	PaymentMethod   *string         `json:"payment_method,omitempty"`
	ImageURL        *string         `json:"image_url,omitempty"`
	RawOCR          *string         `json:"-"`
	OCRError        *string         `json:"ocr_error,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Items []Item `json:"items,omitempty"`
}

// Item is one receipt line. Pant (bottle deposit) and discount lines are
// kept for the total but never matched or put into inventory.
type Item struct {
	ID                   uuid.UUID        `json:"id"`
	ReceiptID            uuid.UUID        `json:"receipt_id"`
	RawName              string           `json:"raw_name"`
	CanonicalName        *string          `json:"canonical_name,omitempty"`
	Quantity             *decimal.Decimal `json:"quantity,omitempty"`
	Unit                 *string          `json:"unit,omitempty"`
	UnitPrice            *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice           decimal.Decimal  `json:"total_price"`
	IsPant               bool             `json:"is_pant"`
	DiscountAmount       decimal.Decimal  `json:"discount_amount"`
	IngredientID         *uuid.UUID       `json:"ingredient_id,omitempty"`
	IngredientConfidence *decimal.Decimal `json:"ingredient_confidence,omitempty"`
	InventoryLotID       *uuid.UUID       `json:"inventory_lot_id,omitempty"`
	SkipInventory        bool             `json:"skip_inventory"`
}

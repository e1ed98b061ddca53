package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shopping list statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// List is a generated shopping list covering a planning window.
type List struct {
	ID             uuid.UUID `json:"id"`
	HouseholdID    uuid.UUID `json:"household_id"`
	Name           string    `json:"name"`
	DateRangeStart time.Time `json:"date_range_start"`
	DateRangeEnd   time.Time `json:"date_range_end"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Items          []Item    `json:"items"`
}

// Item is one ingredient on a list. Required, on-hand and to-buy are all
// in the ingredient's canonical unit and fixed at generation time; checking
// off and actual quantities are the shopper's edits.
type Item struct {
	ID               uuid.UUID        `json:"id"`
	ShoppingListID   uuid.UUID        `json:"shopping_list_id"`
	IngredientID     uuid.UUID        `json:"ingredient_id"`
	IngredientName   *string          `json:"ingredient_name,omitempty"`
	RequiredQuantity decimal.Decimal  `json:"required_quantity"`
	RequiredUnit     string           `json:"required_unit"`
	OnHandQuantity   decimal.Decimal  `json:"on_hand_quantity"`
	ToBuyQuantity    decimal.Decimal  `json:"to_buy_quantity"`
	IsChecked        bool             `json:"is_checked"`
	ActualQuantity   *decimal.Decimal `json:"actual_quantity,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
	SourceMealPlans  []uuid.UUID      `json:"source_meal_plans"`
}

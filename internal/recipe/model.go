package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe is a household-owned dish definition. Servings is the base yield
// that meal plans scale against.
type Recipe struct {
	ID           uuid.UUID          `json:"id"`
	HouseholdID  uuid.UUID          `json:"household_id"`
	Name         string             `json:"name"`
	Description  *string            `json:"description,omitempty"`
	Servings     int                `json:"servings"`
	PrepMinutes  *int               `json:"prep_minutes,omitempty"`
	CookMinutes  *int               `json:"cook_minutes,omitempty"`
	Instructions *string            `json:"instructions,omitempty"`
	Tags         []string           `json:"tags"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty"`
}

// RecipeIngredient is one line of a recipe. IngredientID is set when the
// raw text resolved against the catalog; unresolved lines keep their text
// and still scale and shop by name.
type RecipeIngredient struct {
	ID           uuid.UUID       `json:"id"`
	RecipeID     uuid.UUID       `json:"recipe_id"`
	IngredientID *uuid.UUID      `json:"ingredient_id,omitempty"`
	RawText      string          `json:"raw_text"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Note         *string         `json:"note,omitempty"`
	Position     int             `json:"position"`
}

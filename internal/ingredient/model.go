package ingredient

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is a canonical food entity that raw receipt and recipe text
// resolves to. CanonicalName is unique and must not change once items have
// been matched against it; renames are a separate operation.
type Ingredient struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	CanonicalName string     `json:"canonical_name"`
	DefaultUnit   string     `json:"default_unit"` // g | ml | pcs
	Aliases       []string   `json:"aliases"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Icon  *string   `json:"icon,omitempty"`
	Color *string   `json:"color,omitempty"`
}

// MatchResult is the outcome of resolving a raw name against the catalog.
type MatchResult struct {
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Confidence     decimal.Decimal `json:"confidence"`
	Method         string          `json:"method"` // exact | alias | fuzzy
}

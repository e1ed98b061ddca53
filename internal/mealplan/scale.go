package mealplan

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/recipe"
	"github.com/hamzafer/KjopsMinne/internal/units"
)

// Requirement is one scaled, catalog-resolved ingredient demand in
// canonical units, ready to run against inventory.
type Requirement struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// ScaleIngredients scales recipe lines from the recipe's base yield to the
// planned servings. A base yield of zero or less disables scaling and the
// lines pass through unchanged.
func ScaleIngredients(lines []recipe.RecipeIngredient, recipeServings, plannedServings int) []recipe.RecipeIngredient {
	scaled := make([]recipe.RecipeIngredient, len(lines))
	copy(scaled, lines)

	if recipeServings <= 0 {
		return scaled
	}

	factor := decimal.NewFromInt(int64(plannedServings)).
		Div(decimal.NewFromInt(int64(recipeServings)))

	for i := range scaled {
		scaled[i].Quantity = scaled[i].Quantity.Mul(factor)
	}

	return scaled
}

// Requirements reduces scaled lines to inventory demands: only lines that
// resolved against the catalog and carry a positive quantity count, and
// each is converted to its canonical unit so it is comparable to lots.
func Requirements(lines []recipe.RecipeIngredient) []Requirement {
	var reqs []Requirement
	for _, line := range lines {
		if line.IngredientID == nil || line.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		qty, unit := units.ToCanonical(line.Quantity, line.Unit)
		reqs = append(reqs, Requirement{
			IngredientID: *line.IngredientID,
			Name:         line.Name,
			Quantity:     qty,
			Unit:         unit,
		})
	}
	return reqs
}

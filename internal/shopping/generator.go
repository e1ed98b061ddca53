package shopping

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/mealplan"
	"github.com/hamzafer/KjopsMinne/internal/units"
)

// Demand is one ingredient's total scaled requirement across the planning
// window, in canonical units.
type Demand struct {
	IngredientID    uuid.UUID
	Quantity        decimal.Decimal
	Unit            string
	SourceMealPlans []uuid.UUID
}

// AggregateIngredients sums the scaled ingredient demand of the given
// plans. Quantities are converted to canonical units before summing, so a
// recipe asking for 5 dl and another for 500 ml land in one 1000 ml demand
// instead of two rows in mismatched units. Only catalog-resolved lines
// with a positive quantity count. Output order follows first encounter.
func AggregateIngredients(plans []mealplan.MealPlan) []Demand {
	index := make(map[uuid.UUID]int)
	var demands []Demand

	for _, plan := range plans {
		if plan.Recipe == nil {
			continue
		}

		scaled := mealplan.ScaleIngredients(plan.Recipe.Ingredients, plan.Recipe.Servings, plan.Servings)

		for _, line := range scaled {
			if line.IngredientID == nil || line.Quantity.LessThanOrEqual(decimal.Zero) {
				continue
			}

			qty, unit := units.ToCanonical(line.Quantity, line.Unit)

			i, seen := index[*line.IngredientID]
			if !seen {
				index[*line.IngredientID] = len(demands)
				demands = append(demands, Demand{
					IngredientID:    *line.IngredientID,
					Quantity:        qty,
					Unit:            unit,
					SourceMealPlans: []uuid.UUID{plan.ID},
				})
				continue
			}

			demands[i].Quantity = demands[i].Quantity.Add(qty)
			if !containsID(demands[i].SourceMealPlans, plan.ID) {
				demands[i].SourceMealPlans = append(demands[i].SourceMealPlans, plan.ID)
			}
		}
	}

	return demands
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// CalculateToBuy returns how much must be purchased after counting stock.
// Surplus stock never produces a negative purchase.
func CalculateToBuy(required, onHand decimal.Decimal) decimal.Decimal {
	toBuy := required.Sub(onHand)
	if toBuy.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return toBuy
}

// GenerateListName builds the default "Shopping Jan 02 - Jan 09" name
// unless the caller brought their own.
func GenerateListName(start, end time.Time, customName string) string {
	if customName != "" {
		return customName
	}
	return fmt.Sprintf("Shopping %s - %s", start.Format("Jan 02"), end.Format("Jan 02"))
}

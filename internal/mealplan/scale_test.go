package mealplan

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/recipe"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestScaleIngredients_DoublesQuantities(t *testing.T) {
	lines := []recipe.RecipeIngredient{
		{Name: "melk", Quantity: dec("500"), Unit: "ml"},
		{Name: "mel", Quantity: dec("300"), Unit: "g"},
	}

	scaled := ScaleIngredients(lines, 2, 4)

	if !scaled[0].Quantity.Equal(dec("1000")) {
		t.Errorf("expected 1000, got %s", scaled[0].Quantity)
	}
	if !scaled[1].Quantity.Equal(dec("600")) {
		t.Errorf("expected 600, got %s", scaled[1].Quantity)
	}
}

func TestScaleIngredients_DownScale(t *testing.T) {
	lines := []recipe.RecipeIngredient{
		{Name: "ris", Quantity: dec("400"), Unit: "g"},
	}

	scaled := ScaleIngredients(lines, 4, 1)

	if !scaled[0].Quantity.Equal(dec("100")) {
		t.Errorf("expected 100, got %s", scaled[0].Quantity)
	}
}

// A recipe with no sensible base yield passes quantities through as-is.
func TestScaleIngredients_ZeroServingsPassthrough(t *testing.T) {
	lines := []recipe.RecipeIngredient{
		{Name: "melk", Quantity: dec("500"), Unit: "ml"},
	}

	scaled := ScaleIngredients(lines, 0, 4)

	if !scaled[0].Quantity.Equal(dec("500")) {
		t.Errorf("expected passthrough 500, got %s", scaled[0].Quantity)
	}
}

func TestScaleIngredients_DoesNotMutateInput(t *testing.T) {
	lines := []recipe.RecipeIngredient{
		{Name: "melk", Quantity: dec("500"), Unit: "ml"},
	}

	ScaleIngredients(lines, 2, 4)

	if !lines[0].Quantity.Equal(dec("500")) {
		t.Errorf("input was mutated: %s", lines[0].Quantity)
	}
}

func TestRequirements_FiltersAndConverts(t *testing.T) {
	id := uuid.New()
	lines := []recipe.RecipeIngredient{
		{IngredientID: &id, Name: "melk", Quantity: dec("5"), Unit: "dl"},
		{Name: "salt to taste", Quantity: decimal.Zero},           // unresolved
		{IngredientID: &id, Name: "pepper", Quantity: dec("0")},   // no quantity
	}

	reqs := Requirements(lines)

	if len(reqs) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(reqs))
	}
	if !reqs[0].Quantity.Equal(dec("500")) || reqs[0].Unit != "ml" {
		t.Errorf("expected 500 ml, got %s %s", reqs[0].Quantity, reqs[0].Unit)
	}
}

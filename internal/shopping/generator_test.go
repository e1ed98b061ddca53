package shopping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/mealplan"
	"github.com/hamzafer/KjopsMinne/internal/recipe"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func planWith(servings, recipeServings int, lines ...recipe.RecipeIngredient) mealplan.MealPlan {
	return mealplan.MealPlan{
		ID:       uuid.New(),
		Servings: servings,
		Recipe: &recipe.Recipe{
			Servings:    recipeServings,
			Ingredients: lines,
		},
	}
}

func TestAggregateIngredients_SumsAcrossPlans(t *testing.T) {
	milk := uuid.New()

	planA := planWith(2, 2, recipe.RecipeIngredient{
		IngredientID: &milk, Name: "melk", Quantity: dec("500"), Unit: "ml",
	})
	planB := planWith(2, 2, recipe.RecipeIngredient{
		IngredientID: &milk, Name: "melk", Quantity: dec("300"), Unit: "ml",
	})

	demands := AggregateIngredients([]mealplan.MealPlan{planA, planB})

	if len(demands) != 1 {
		t.Fatalf("expected 1 demand, got %d", len(demands))
	}
	if !demands[0].Quantity.Equal(dec("800")) {
		t.Errorf("expected 800, got %s", demands[0].Quantity)
	}
	if len(demands[0].SourceMealPlans) != 2 {
		t.Errorf("expected 2 source plans, got %d", len(demands[0].SourceMealPlans))
	}
}

// 5 dl and 500 ml are the same ingredient in different units; conversion
// happens before summing so they land in one canonical demand.
func TestAggregateIngredients_MixedUnits(t *testing.T) {
	milk := uuid.New()

	planA := planWith(2, 2, recipe.RecipeIngredient{
		IngredientID: &milk, Name: "melk", Quantity: dec("5"), Unit: "dl",
	})
	planB := planWith(2, 2, recipe.RecipeIngredient{
		IngredientID: &milk, Name: "melk", Quantity: dec("500"), Unit: "ml",
	})

	demands := AggregateIngredients([]mealplan.MealPlan{planA, planB})

	if len(demands) != 1 {
		t.Fatalf("expected 1 demand, got %d", len(demands))
	}
	if !demands[0].Quantity.Equal(dec("1000")) || demands[0].Unit != "ml" {
		t.Errorf("expected 1000 ml, got %s %s", demands[0].Quantity, demands[0].Unit)
	}
}

func TestAggregateIngredients_ScalesByServings(t *testing.T) {
	flour := uuid.New()

	// 300 g for 2 servings, planned for 6.
	plan := planWith(6, 2, recipe.RecipeIngredient{
		IngredientID: &flour, Name: "mel", Quantity: dec("300"), Unit: "g",
	})

	demands := AggregateIngredients([]mealplan.MealPlan{plan})

	if len(demands) != 1 {
		t.Fatalf("expected 1 demand, got %d", len(demands))
	}
	if !demands[0].Quantity.Equal(dec("900")) {
		t.Errorf("expected 900, got %s", demands[0].Quantity)
	}
}

func TestAggregateIngredients_SkipsUnresolvedLines(t *testing.T) {
	plan := planWith(2, 2, recipe.RecipeIngredient{
		Name: "salt to taste", Quantity: decimal.Zero,
	})

	demands := AggregateIngredients([]mealplan.MealPlan{plan})

	if len(demands) != 0 {
		t.Errorf("expected no demands, got %d", len(demands))
	}
}

func TestCalculateToBuy(t *testing.T) {
	cases := []struct {
		required string
		onHand   string
		want     string
	}{
		{"1000", "400", "600"},
		{"500", "500", "0"},
		{"300", "800", "0"}, // surplus never goes negative
		{"250", "0", "250"},
	}

	for _, tc := range cases {
		got := CalculateToBuy(dec(tc.required), dec(tc.onHand))
		if !got.Equal(dec(tc.want)) {
			t.Errorf("CalculateToBuy(%s, %s) = %s, want %s", tc.required, tc.onHand, got, tc.want)
		}
	}
}

func TestGenerateListName(t *testing.T) {
	start := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)

	if got := GenerateListName(start, end, ""); got != "Shopping Jan 02 - Jan 09" {
		t.Errorf("unexpected default name: %q", got)
	}
	if got := GenerateListName(start, end, "Weekend run"); got != "Weekend run" {
		t.Errorf("custom name not honored: %q", got)
	}
}

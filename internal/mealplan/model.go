package mealplan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/recipe"
)

// Meal plan statuses.
const (
	StatusPlanned = "planned"
	StatusCooked  = "cooked"
	StatusSkipped = "skipped"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPlanned, StatusCooked, StatusSkipped:
		return true
	}
	return false
}

// Meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

func ValidMealType(mealType string) bool {
	switch mealType {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Leftover statuses.
const (
	LeftoverAvailable = "available"
	LeftoverConsumed  = "consumed"
	LeftoverDiscarded = "discarded"
)

func ValidLeftoverStatus(status string) bool {
	switch status {
	case LeftoverAvailable, LeftoverConsumed, LeftoverDiscarded:
		return true
	}
	return false
}

// MealPlan schedules a recipe for a date. Cost fields are set once the
// meal is cooked and never recomputed afterwards.
type MealPlan struct {
	ID               uuid.UUID        `json:"id"`
	HouseholdID      uuid.UUID        `json:"household_id"`
	RecipeID         uuid.UUID        `json:"recipe_id"`
	PlannedDate      time.Time        `json:"planned_date"`
	MealType         string           `json:"meal_type"`
	Servings         int              `json:"servings"`
	Status           string           `json:"status"`
	CookedAt         *time.Time       `json:"cooked_at,omitempty"`
	ActualCost       *decimal.Decimal `json:"actual_cost,omitempty"`
	CostPerServing   *decimal.Decimal `json:"cost_per_serving,omitempty"`
	IsLeftoverSource bool             `json:"is_leftover_source"`
	LeftoverFromID   *uuid.UUID       `json:"leftover_from_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	Recipe *recipe.Recipe `json:"recipe,omitempty"`
}

// Leftover tracks surplus servings from a cooked meal until they are
// eaten or thrown out.
type Leftover struct {
	ID                uuid.UUID `json:"id"`
	HouseholdID       uuid.UUID `json:"household_id"`
	MealPlanID        uuid.UUID `json:"meal_plan_id"`
	RecipeID          uuid.UUID `json:"recipe_id"`
	RemainingServings int       `json:"remaining_servings"`
	Status            string    `json:"status"`
	ExpiresAt         time.Time `json:"expires_at"`
	CreatedAt         time.Time `json:"created_at"`
}

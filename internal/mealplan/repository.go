package mealplan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/inventory"
)

var (
	ErrPlanNotFound     = errors.New("meal plan not found")
	ErrAlreadyCooked    = errors.New("meal already cooked")
	ErrLeftoverNotFound = errors.New("leftover not found")
	ErrInvalidMealType  = errors.New("invalid meal type")
	ErrInvalidStatus    = errors.New("invalid status")
)

// PlanFilter narrows meal plan listings.
type PlanFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string
	Limit     int
	Offset    int
}

// IngredientShortage reports demand that inventory could not cover during
// cooking. Cooking proceeds anyway; the shortage is informational.
type IngredientShortage struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// CookOutcome summarizes what one cook consumed and cost.
type CookOutcome struct {
	ActualCost     decimal.Decimal      `json:"actual_cost"`
	CostPerServing decimal.Decimal      `json:"cost_per_serving"`
	Consumed       []inventory.Consumed `json:"inventory_consumed"`
	Shortages      []IngredientShortage `json:"shortages,omitempty"`
}

// Repository persists meal plans and leftovers. Cook is the one compound
// operation: it consumes inventory FIFO and marks the plan cooked in a
// single transaction, so a crash can never leave a half-cooked meal.
type Repository interface {
	Create(ctx context.Context, plan *MealPlan) error
	Get(ctx context.Context, id uuid.UUID) (*MealPlan, error)
	List(ctx context.Context, householdID uuid.UUID, filter PlanFilter) ([]MealPlan, int, error)
	Update(ctx context.Context, plan *MealPlan) error
	Delete(ctx context.Context, id uuid.UUID) error

	Cook(ctx context.Context, planID uuid.UUID, servings int, requirements []Requirement, actor *uuid.UUID) (*MealPlan, *CookOutcome, error)

	CreateLeftover(ctx context.Context, leftover *Leftover) error
	ListLeftovers(ctx context.Context, householdID uuid.UUID, status *string) ([]Leftover, error)
	UpdateLeftover(ctx context.Context, id uuid.UUID, status *string, remainingServings *int) (*Leftover, error)
}

package mealplan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/recipe"
)

type stubPlanRepo struct {
	plans     map[uuid.UUID]*MealPlan
	leftovers []*Leftover

	cookedWith []Requirement
	cookCalls  int
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{plans: map[uuid.UUID]*MealPlan{}}
}

func (r *stubPlanRepo) Create(_ context.Context, plan *MealPlan) error {
	r.plans[plan.ID] = plan
	return nil
}

func (r *stubPlanRepo) Get(_ context.Context, id uuid.UUID) (*MealPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (r *stubPlanRepo) List(context.Context, uuid.UUID, PlanFilter) ([]MealPlan, int, error) {
	return nil, 0, nil
}

func (r *stubPlanRepo) Update(_ context.Context, plan *MealPlan) error {
	r.plans[plan.ID] = plan
	return nil
}

func (r *stubPlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.plans, id)
	return nil
}

func (r *stubPlanRepo) Cook(_ context.Context, planID uuid.UUID, servings int, requirements []Requirement, _ *uuid.UUID) (*MealPlan, *CookOutcome, error) {
	plan, ok := r.plans[planID]
	if !ok {
		return nil, nil, ErrPlanNotFound
	}
	if plan.Status == StatusCooked {
		return nil, nil, ErrAlreadyCooked
	}
	r.cookCalls++
	r.cookedWith = requirements
	plan.Status = StatusCooked
	plan.Servings = servings
	return plan, &CookOutcome{ActualCost: decimal.Zero, CostPerServing: decimal.Zero}, nil
}

func (r *stubPlanRepo) CreateLeftover(_ context.Context, leftover *Leftover) error {
	r.leftovers = append(r.leftovers, leftover)
	return nil
}

func (r *stubPlanRepo) ListLeftovers(context.Context, uuid.UUID, *string) ([]Leftover, error) {
	return nil, nil
}

func (r *stubPlanRepo) UpdateLeftover(context.Context, uuid.UUID, *string, *int) (*Leftover, error) {
	return nil, ErrLeftoverNotFound
}

type stubRecipeRepo struct {
	recipes map[uuid.UUID]*recipe.Recipe
}

func (r *stubRecipeRepo) Create(_ context.Context, rec *recipe.Recipe) error {
	r.recipes[rec.ID] = rec
	return nil
}

func (r *stubRecipeRepo) Get(_ context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return rec, nil
}

func (r *stubRecipeRepo) List(context.Context, uuid.UUID) ([]recipe.Recipe, error) {
	return nil, nil
}

func (r *stubRecipeRepo) Update(_ context.Context, rec *recipe.Recipe) error {
	r.recipes[rec.ID] = rec
	return nil
}

func (r *stubRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.recipes, id)
	return nil
}

// --------------------------------------------------

func setupCookFixture(t *testing.T) (*Service, *stubPlanRepo, *MealPlan) {
	t.Helper()

	ingredientID := uuid.New()
	rec := &recipe.Recipe{
		ID:          uuid.New(),
		HouseholdID: uuid.New(),
		Name:        "Pannekaker",
		Servings:    2,
		Ingredients: []recipe.RecipeIngredient{
			{
				IngredientID: &ingredientID,
				Name:         "hvetemel",
				Quantity:     dec("200"),
				Unit:         "g",
			},
		},
	}
	recipes := &stubRecipeRepo{recipes: map[uuid.UUID]*recipe.Recipe{rec.ID: rec}}
	plans := newStubPlanRepo()
	service := NewService(plans, recipes)

	plan, err := service.Create(context.Background(), NewPlanInput{
		HouseholdID: rec.HouseholdID,
		RecipeID:    rec.ID,
		PlannedDate: time.Now().UTC(),
		MealType:    MealDinner,
		Servings:    4,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return service, plans, plan
}

func TestCook_ScalesRequirementsToPlannedServings(t *testing.T) {
	service, plans, plan := setupCookFixture(t)

	cooked, outcome, _, err := service.Cook(context.Background(), plan.ID, CookInput{}, nil)
	if err != nil {
		t.Fatalf("Cook failed: %v", err)
	}
	if cooked.Status != StatusCooked {
		t.Errorf("expected cooked status, got %q", cooked.Status)
	}
	if outcome == nil {
		t.Fatal("expected a cook outcome")
	}

	// Recipe yields 2, plan wants 4: every line doubles.
	if len(plans.cookedWith) != 1 {
		t.Fatalf("expected one requirement, got %d", len(plans.cookedWith))
	}
	if !plans.cookedWith[0].Quantity.Equal(dec("400")) {
		t.Errorf("expected 400 g demanded, got %s", plans.cookedWith[0].Quantity)
	}
}

func TestCook_SecondCookRejected(t *testing.T) {
	service, plans, plan := setupCookFixture(t)

	if _, _, _, err := service.Cook(context.Background(), plan.ID, CookInput{}, nil); err != nil {
		t.Fatalf("first Cook failed: %v", err)
	}
	if _, _, _, err := service.Cook(context.Background(), plan.ID, CookInput{}, nil); !errors.Is(err, ErrAlreadyCooked) {
		t.Fatalf("expected ErrAlreadyCooked, got %v", err)
	}
	if plans.cookCalls != 1 {
		t.Errorf("expected exactly one cook transaction, got %d", plans.cookCalls)
	}
}

func TestCook_CreatesLeftover(t *testing.T) {
	service, plans, plan := setupCookFixture(t)

	two := 2
	cooked, _, leftover, err := service.Cook(context.Background(), plan.ID, CookInput{
		CreateLeftover:   true,
		LeftoverServings: &two,
	}, nil)
	if err != nil {
		t.Fatalf("Cook failed: %v", err)
	}

	if leftover == nil {
		t.Fatal("expected a leftover")
	}
	if leftover.RemainingServings != 2 {
		t.Errorf("expected 2 servings, got %d", leftover.RemainingServings)
	}
	if leftover.Status != LeftoverAvailable {
		t.Errorf("expected available status, got %q", leftover.Status)
	}
	wantExpiry := time.Now().UTC().AddDate(0, 0, defaultLeftoverDays)
	if diff := leftover.ExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expected expiry ~%s, got %s", wantExpiry, leftover.ExpiresAt)
	}
	if !cooked.IsLeftoverSource {
		t.Error("plan should be marked as a leftover source")
	}
	if len(plans.leftovers) != 1 {
		t.Fatalf("expected one persisted leftover, got %d", len(plans.leftovers))
	}
}

func TestCreate_RejectsInvalidMealType(t *testing.T) {
	recipes := &stubRecipeRepo{recipes: map[uuid.UUID]*recipe.Recipe{}}
	service := NewService(newStubPlanRepo(), recipes)

	_, err := service.Create(context.Background(), NewPlanInput{
		HouseholdID: uuid.New(),
		RecipeID:    uuid.New(),
		MealType:    "brunch",
	})
	if !errors.Is(err, ErrInvalidMealType) {
		t.Fatalf("expected ErrInvalidMealType, got %v", err)
	}
}

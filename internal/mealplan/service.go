package mealplan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hamzafer/KjopsMinne/internal/recipe"
)

// Leftovers keep for three days unless told otherwise.
const defaultLeftoverDays = 3

type Service struct {
	repo    Repository
	recipes recipe.Repository
}

func NewService(repo Repository, recipes recipe.Repository) *Service {
	return &Service{repo: repo, recipes: recipes}
}

type NewPlanInput struct {
	HouseholdID    uuid.UUID
	RecipeID       uuid.UUID
	PlannedDate    time.Time
	MealType       string
	Servings       int
	LeftoverFromID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, in NewPlanInput) (*MealPlan, error) {
	if !ValidMealType(in.MealType) {
		return nil, ErrInvalidMealType
	}

	rec, err := s.recipes.Get(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}

	servings := in.Servings
	if servings <= 0 {
		servings = rec.Servings
	}

	plan := &MealPlan{
		ID:             uuid.New(),
		HouseholdID:    in.HouseholdID,
		RecipeID:       in.RecipeID,
		PlannedDate:    in.PlannedDate,
		MealType:       in.MealType,
		Servings:       servings,
		Status:         StatusPlanned,
		LeftoverFromID: in.LeftoverFromID,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	plan.Recipe = rec
	return plan, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MealPlan, error) {
	plan, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachRecipe(ctx, plan)
	return plan, nil
}

func (s *Service) List(ctx context.Context, householdID uuid.UUID, filter PlanFilter) ([]MealPlan, int, error) {
	if filter.Status != nil && !ValidStatus(*filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

	plans, total, err := s.repo.List(ctx, householdID, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range plans {
		s.attachRecipe(ctx, &plans[i])
	}
	return plans, total, nil
}

type UpdatePlanInput struct {
	PlannedDate *time.Time
	MealType    *string
	Servings    *int
	Status      *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdatePlanInput) (*MealPlan, error) {
	plan, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.PlannedDate != nil {
		plan.PlannedDate = *in.PlannedDate
	}
	if in.MealType != nil {
		if !ValidMealType(*in.MealType) {
			return nil, ErrInvalidMealType
		}
		plan.MealType = *in.MealType
	}
	if in.Servings != nil && *in.Servings > 0 {
		plan.Servings = *in.Servings
	}
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		plan.Status = *in.Status
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	s.attachRecipe(ctx, plan)
	return plan, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type CookInput struct {
	ActualServings   *int
	CreateLeftover   bool
	LeftoverServings *int
}

// Cook consumes inventory for the plan's scaled recipe and records cost.
// Partial stock is not an error: the meal cooks with what is there and any
// uncovered demand comes back as a shortage.
func (s *Service) Cook(ctx context.Context, planID uuid.UUID, in CookInput, actor *uuid.UUID) (*MealPlan, *CookOutcome, *Leftover, error) {
	plan, err := s.repo.Get(ctx, planID)
	if err != nil {
		return nil, nil, nil, err
	}
	if plan.Status == StatusCooked {
		return nil, nil, nil, ErrAlreadyCooked
	}

	rec, err := s.recipes.Get(ctx, plan.RecipeID)
	if err != nil {
		return nil, nil, nil, err
	}

	servings := plan.Servings
	if in.ActualServings != nil && *in.ActualServings > 0 {
		servings = *in.ActualServings
	}

	scaled := ScaleIngredients(rec.Ingredients, rec.Servings, servings)
	requirements := Requirements(scaled)

	plan, outcome, err := s.repo.Cook(ctx, planID, servings, requirements, actor)
	if err != nil {
		return nil, nil, nil, err
	}

	var leftover *Leftover
	if in.CreateLeftover && in.LeftoverServings != nil && *in.LeftoverServings > 0 {
		leftover = &Leftover{
			ID:                uuid.New(),
			HouseholdID:       plan.HouseholdID,
			MealPlanID:        plan.ID,
			RecipeID:          plan.RecipeID,
			RemainingServings: *in.LeftoverServings,
			Status:            LeftoverAvailable,
			ExpiresAt:         time.Now().UTC().AddDate(0, 0, defaultLeftoverDays),
		}
		if err := s.repo.CreateLeftover(ctx, leftover); err != nil {
			return nil, nil, nil, err
		}
		plan.IsLeftoverSource = true
	}

	plan.Recipe = rec
	return plan, outcome, leftover, nil
}

func (s *Service) ListLeftovers(ctx context.Context, householdID uuid.UUID, status *string) ([]Leftover, error) {
	if status != nil && !ValidLeftoverStatus(*status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListLeftovers(ctx, householdID, status)
}

func (s *Service) UpdateLeftover(ctx context.Context, id uuid.UUID, status *string, remainingServings *int) (*Leftover, error) {
	if status != nil && !ValidLeftoverStatus(*status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdateLeftover(ctx, id, status, remainingServings)
}

// attachRecipe is best-effort enrichment; a missing recipe never fails the
// plan read.
func (s *Service) attachRecipe(ctx context.Context, plan *MealPlan) {
	if rec, err := s.recipes.Get(ctx, plan.RecipeID); err == nil {
		plan.Recipe = rec
	}
}

package shopping

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hamzafer/KjopsMinne/internal/inventory"
	"github.com/hamzafer/KjopsMinne/internal/mealplan"
)

type Service struct {
	repo      Repository
	plans     *mealplan.Service
	inventory inventory.Repository
}

func NewService(repo Repository, plans *mealplan.Service, inv inventory.Repository) *Service {
	return &Service{repo: repo, plans: plans, inventory: inv}
}

// GenerateResult reports what a generation run covered.
type GenerateResult struct {
	List                  *List `json:"shopping_list"`
	MealPlansIncluded     int   `json:"meal_plans_included"`
	IngredientsAggregated int   `json:"ingredients_aggregated"`
}

// Generate builds a shopping list from the household's planned (not yet
// cooked) meals in the window, netting aggregated demand against current
// stock. The snapshot is taken at generation time; later inventory changes
// do not rewrite existing lists.
func (s *Service) Generate(
	ctx context.Context,
	householdID uuid.UUID,
	start, end time.Time,
	customName string,
) (*GenerateResult, error) {

	planned := mealplan.StatusPlanned
	plans, _, err := s.plans.List(ctx, householdID, mealplan.PlanFilter{
		StartDate: &start,
		EndDate:   &end,
		Status:    &planned,
	})
	if err != nil {
		return nil, err
	}

	demands := AggregateIngredients(plans)

	list := &List{
		ID:             uuid.New(),
		HouseholdID:    householdID,
		Name:           GenerateListName(start, end, customName),
		DateRangeStart: start,
		DateRangeEnd:   end,
		Status:         StatusActive,
		Items:          make([]Item, 0, len(demands)),
	}

	for _, demand := range demands {
		onHand, _, err := s.inventory.OnHand(ctx, householdID, demand.IngredientID)
		if err != nil {
			return nil, err
		}

		list.Items = append(list.Items, Item{
			ID:               uuid.New(),
			IngredientID:     demand.IngredientID,
			RequiredQuantity: demand.Quantity,
			RequiredUnit:     demand.Unit,
			OnHandQuantity:   onHand,
			ToBuyQuantity:    CalculateToBuy(demand.Quantity, onHand),
			SourceMealPlans:  demand.SourceMealPlans,
		})
	}

	if err := s.repo.CreateWithItems(ctx, list); err != nil {
		return nil, err
	}

	return &GenerateResult{
		List:                  list,
		MealPlansIncluded:     len(plans),
		IngredientsAggregated: len(demands),
	}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*List, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, householdID uuid.UUID, status *string) ([]List, error) {
	if status != nil && !ValidStatus(*status) {
		return nil, ErrInvalidListStatus
	}
	return s.repo.ListAll(ctx, householdID, status)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, name *string, status *string) (*List, error) {
	if status != nil && !ValidStatus(*status) {
		return nil, ErrInvalidListStatus
	}
	return s.repo.UpdateMeta(ctx, id, name, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, listID, itemID uuid.UUID, update ItemUpdate) (*Item, error) {
	return s.repo.UpdateItem(ctx, listID, itemID, update)
}

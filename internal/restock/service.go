package restock

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/inventory"
)

type Service struct {
	inventory inventory.Repository
}

func NewService(inv inventory.Repository) *Service {
	return &Service{inventory: inv}
}

// Prediction is the per-ingredient restock forecast.
type Prediction struct {
	IngredientID           uuid.UUID       `json:"ingredient_id"`
	IngredientName         string          `json:"ingredient_name"`
	CurrentQuantity        decimal.Decimal `json:"current_quantity"`
	Unit                   string          `json:"unit"`
	AverageDailyUsage      decimal.Decimal `json:"average_daily_usage"`
	DaysUntilEmpty         *int            `json:"days_until_empty"`
	PredictedRunoutDate    *time.Time      `json:"predicted_runout_date"`
	RecommendedRestockDate *time.Time      `json:"recommended_restock_date"`
}

// Predictions forecasts runout for every ingredient the household has in
// stock, most urgent first. Ingredients with no consumption history sort
// last; they cannot be projected.
func (s *Service) Predictions(ctx context.Context, householdID uuid.UUID) ([]Prediction, error) {
	stock, err := s.inventory.Aggregate(ctx, householdID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	predictions := make([]Prediction, 0, len(stock))

	for _, item := range stock {
		events, err := s.inventory.ConsumptionEvents(ctx, householdID, item.IngredientID)
		if err != nil {
			return nil, err
		}

		usage := AverageDailyUsage(events)
		runout := PredictRunout(item.TotalQuantity, usage, now, defaultBufferDays)

		predictions = append(predictions, Prediction{
			IngredientID:           item.IngredientID,
			IngredientName:         item.IngredientName,
			CurrentQuantity:        item.TotalQuantity,
			Unit:                   item.Unit,
			AverageDailyUsage:      usage,
			DaysUntilEmpty:         runout.DaysUntilEmpty,
			PredictedRunoutDate:    runout.PredictedRunoutDate,
			RecommendedRestockDate: runout.RecommendedRestockDate,
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		a, b := predictions[i].DaysUntilEmpty, predictions[j].DaysUntilEmpty
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	return predictions, nil
}

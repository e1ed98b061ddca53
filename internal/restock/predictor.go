package restock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/inventory"
)

// A lone consumption event gives no usable time span; assume a week.
const singleEventSpanDays = 7

// Restock a few days before the predicted runout.
const defaultBufferDays = 3

// AverageDailyUsage derives a consumption rate from a household's event
// history for one ingredient. Only negative deltas count; positive
// adjustments are stock corrections, not usage.
func AverageDailyUsage(events []inventory.Event) decimal.Decimal {
	if len(events) == 0 {
		return decimal.Zero
	}

	totalConsumed := decimal.Zero
	for _, e := range events {
		if e.QuantityDelta.LessThan(decimal.Zero) {
			totalConsumed = totalConsumed.Add(e.QuantityDelta.Abs())
		}
	}
	if totalConsumed.IsZero() {
		return decimal.Zero
	}

	days := singleEventSpanDays
	if len(events) > 1 {
		minDate, maxDate := events[0].CreatedAt, events[0].CreatedAt
		for _, e := range events[1:] {
			if e.CreatedAt.Before(minDate) {
				minDate = e.CreatedAt
			}
			if e.CreatedAt.After(maxDate) {
				maxDate = e.CreatedAt
			}
		}
		days = int(maxDate.Sub(minDate).Hours() / 24)
		if days < 1 {
			days = 1
		}
	}

	return totalConsumed.Div(decimal.NewFromInt(int64(days)))
}

// Runout is a forward projection for one ingredient. All fields are nil
// when there is no usage signal to project from.
type Runout struct {
	DaysUntilEmpty         *int
	PredictedRunoutDate    *time.Time
	RecommendedRestockDate *time.Time
}

// PredictRunout projects when stock runs dry at the observed rate, and
// when to restock (bufferDays before that, never in the past relative to
// fromDate). Already-empty stock means restock now.
func PredictRunout(currentQuantity, averageDailyUsage decimal.Decimal, fromDate time.Time, bufferDays int) Runout {
	if averageDailyUsage.LessThanOrEqual(decimal.Zero) {
		return Runout{}
	}

	if currentQuantity.LessThanOrEqual(decimal.Zero) {
		zero := 0
		return Runout{
			DaysUntilEmpty:         &zero,
			PredictedRunoutDate:    &fromDate,
			RecommendedRestockDate: &fromDate,
		}
	}

	days := int(currentQuantity.Div(averageDailyUsage).IntPart())
	runoutDate := fromDate.AddDate(0, 0, days)

	restockDays := days - bufferDays
	if restockDays < 0 {
		restockDays = 0
	}
	restockDate := fromDate.AddDate(0, 0, restockDays)

	return Runout{
		DaysUntilEmpty:         &days,
		PredictedRunoutDate:    &runoutDate,
		RecommendedRestockDate: &restockDate,
	}
}

package restock

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/inventory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(day int) time.Time {
	return time.Date(2026, time.January, day, 12, 0, 0, 0, time.UTC)
}

func TestAverageDailyUsage_NoEvents(t *testing.T) {
	if got := AverageDailyUsage(nil); !got.IsZero() {
		t.Errorf("expected zero, got %s", got)
	}
}

// One event carries no span; a 7-day window is assumed.
func TestAverageDailyUsage_SingleEvent(t *testing.T) {
	events := []inventory.Event{
		{QuantityDelta: dec("-350"), CreatedAt: at(10)},
	}

	got := AverageDailyUsage(events)
	if !got.Equal(dec("50")) {
		t.Errorf("expected 50, got %s", got)
	}
}

func TestAverageDailyUsage_SpansEvents(t *testing.T) {
	events := []inventory.Event{
		{QuantityDelta: dec("-200"), CreatedAt: at(1)},
		{QuantityDelta: dec("-300"), CreatedAt: at(11)},
	}

	// 500 consumed over 10 days.
	got := AverageDailyUsage(events)
	if !got.Equal(dec("50")) {
		t.Errorf("expected 50, got %s", got)
	}
}

// Positive deltas are corrections, not consumption.
func TestAverageDailyUsage_IgnoresPositiveDeltas(t *testing.T) {
	events := []inventory.Event{
		{QuantityDelta: dec("-100"), CreatedAt: at(1)},
		{QuantityDelta: dec("40"), CreatedAt: at(3)},
		{QuantityDelta: dec("-100"), CreatedAt: at(5)},
	}

	got := AverageDailyUsage(events)
	if !got.Equal(dec("50")) {
		t.Errorf("expected 50, got %s", got)
	}
}

func TestAverageDailyUsage_SameDayEvents(t *testing.T) {
	events := []inventory.Event{
		{QuantityDelta: dec("-30"), CreatedAt: at(4)},
		{QuantityDelta: dec("-70"), CreatedAt: at(4).Add(2 * time.Hour)},
	}

	// Span floors to one day.
	got := AverageDailyUsage(events)
	if !got.Equal(dec("100")) {
		t.Errorf("expected 100, got %s", got)
	}
}

func TestPredictRunout_ProjectsDates(t *testing.T) {
	from := time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)

	runout := PredictRunout(dec("500"), dec("50"), from, 3)

	if runout.DaysUntilEmpty == nil || *runout.DaysUntilEmpty != 10 {
		t.Fatalf("expected 10 days, got %v", runout.DaysUntilEmpty)
	}
	wantRunout := time.Date(2026, time.January, 30, 0, 0, 0, 0, time.UTC)
	if !runout.PredictedRunoutDate.Equal(wantRunout) {
		t.Errorf("expected runout %s, got %s", wantRunout, runout.PredictedRunoutDate)
	}
	wantRestock := time.Date(2026, time.January, 27, 0, 0, 0, 0, time.UTC)
	if !runout.RecommendedRestockDate.Equal(wantRestock) {
		t.Errorf("expected restock %s, got %s", wantRestock, runout.RecommendedRestockDate)
	}
}

func TestPredictRunout_NoUsage(t *testing.T) {
	runout := PredictRunout(dec("500"), decimal.Zero, time.Now(), 3)

	if runout.DaysUntilEmpty != nil || runout.PredictedRunoutDate != nil || runout.RecommendedRestockDate != nil {
		t.Errorf("expected empty projection, got %+v", runout)
	}
}

func TestPredictRunout_AlreadyEmpty(t *testing.T) {
	from := at(15)

	runout := PredictRunout(decimal.Zero, dec("50"), from, 3)

	if runout.DaysUntilEmpty == nil || *runout.DaysUntilEmpty != 0 {
		t.Fatalf("expected 0 days, got %v", runout.DaysUntilEmpty)
	}
	if !runout.PredictedRunoutDate.Equal(from) || !runout.RecommendedRestockDate.Equal(from) {
		t.Errorf("expected immediate restock at %s", from)
	}
}

// Runout sooner than the buffer still never recommends a past date.
func TestPredictRunout_BufferClampsToFromDate(t *testing.T) {
	from := at(15)

	runout := PredictRunout(dec("100"), dec("50"), from, 3)

	if runout.DaysUntilEmpty == nil || *runout.DaysUntilEmpty != 2 {
		t.Fatalf("expected 2 days, got %v", runout.DaysUntilEmpty)
	}
	if !runout.RecommendedRestockDate.Equal(from) {
		t.Errorf("expected restock clamped to %s, got %s", from, runout.RecommendedRestockDate)
	}
}

func TestPredictRunout_FlooredDays(t *testing.T) {
	from := at(1)

	// 125 / 50 = 2.5 days, floored to 2.
	runout := PredictRunout(dec("125"), dec("50"), from, 0)

	if runout.DaysUntilEmpty == nil || *runout.DaysUntilEmpty != 2 {
		t.Errorf("expected 2 days, got %v", runout.DaysUntilEmpty)
	}
}

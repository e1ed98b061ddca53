package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRemainingQuantity_NoEvents(t *testing.T) {
	lot := &Lot{InitialQuantity: dec("1000")}

	got := RemainingQuantity(lot, nil)
	if !got.Equal(dec("1000")) {
		t.Errorf("expected 1000, got %s", got)
	}
}

func TestRemainingQuantity_MixedEvents(t *testing.T) {
	lot := &Lot{InitialQuantity: dec("1000")}
	events := []Event{
		{EventType: EventConsume, QuantityDelta: dec("-200")},
		{EventType: EventAdd, QuantityDelta: dec("50")},
		{EventType: EventConsume, QuantityDelta: dec("-300.5")},
	}

	got := RemainingQuantity(lot, events)
	if !got.Equal(dec("549.5")) {
		t.Errorf("expected 549.5, got %s", got)
	}
}

// Replaying events in any order must produce the same remaining quantity.
func TestRemainingQuantity_OrderIndependent(t *testing.T) {
	lot := &Lot{InitialQuantity: dec("500")}
	events := []Event{
		{QuantityDelta: dec("-100")},
		{QuantityDelta: dec("25")},
		{QuantityDelta: dec("-50")},
	}
	reversed := []Event{events[2], events[1], events[0]}

	a := RemainingQuantity(lot, events)
	b := RemainingQuantity(lot, reversed)
	if !a.Equal(b) {
		t.Errorf("order changed the result: %s vs %s", a, b)
	}
	if !a.Equal(dec("375")) {
		t.Errorf("expected 375, got %s", a)
	}
}

func TestRemainingQuantity_DrivenToZero(t *testing.T) {
	lot := &Lot{InitialQuantity: dec("100")}
	events := []Event{
		{EventType: EventConsume, QuantityDelta: dec("-60")},
		{EventType: EventDiscard, QuantityDelta: dec("-40")},
	}

	got := RemainingQuantity(lot, events)
	if !got.IsZero() {
		t.Errorf("expected zero, got %s", got)
	}
}

func TestCanConsume(t *testing.T) {
	cases := []struct {
		available string
		requested string
		want      bool
	}{
		{"100", "50", true},
		{"100", "100", true}, // exact depletion is allowed
		{"100", "100.01", false},
		{"0", "1", false},
	}

	for _, tc := range cases {
		got := CanConsume(dec(tc.available), dec(tc.requested))
		if got != tc.want {
			t.Errorf("CanConsume(%s, %s) = %v, want %v", tc.available, tc.requested, got, tc.want)
		}
	}
}

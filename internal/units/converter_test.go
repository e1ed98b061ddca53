package units

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToCanonical_Volume(t *testing.T) {
	qty, unit := ToCanonical(decimal.NewFromInt(2), "L")

	if unit != "ml" {
		t.Errorf("expected ml, got %s", unit)
	}
	if !qty.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected 2000, got %s", qty)
	}
}

func TestToCanonical_Weight(t *testing.T) {
	qty, unit := ToCanonical(decimal.RequireFromString("1.5"), "kg")

	if unit != "g" {
		t.Errorf("expected g, got %s", unit)
	}
	if !qty.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected 1500, got %s", qty)
	}
}

func TestToCanonical_NorwegianCount(t *testing.T) {
	qty, unit := ToCanonical(decimal.NewFromInt(6), "stk")

	if unit != "pcs" {
		t.Errorf("expected pcs, got %s", unit)
	}
	if !qty.Equal(decimal.NewFromInt(6)) {
		t.Errorf("expected 6, got %s", qty)
	}
}

func TestToCanonical_UnknownUnitPassesThrough(t *testing.T) {
	qty, unit := ToCanonical(decimal.NewFromInt(3), "dash")

	if unit != "dash" {
		t.Errorf("expected unit to pass through, got %s", unit)
	}
	if !qty.Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected quantity unchanged, got %s", qty)
	}
}

func TestToCanonical_IdentityKeepsQuantity(t *testing.T) {
	qty, unit := ToCanonical(decimal.NewFromInt(500), "g")

	if unit != "g" || !qty.Equal(decimal.NewFromInt(500)) {
		t.Errorf("identity conversion changed value: %s %s", qty, unit)
	}
}

func TestIsCanonical(t *testing.T) {
	for _, u := range []string{"g", "ml", "pcs", "G", "ML"} {
		if !IsCanonical(u) {
			t.Errorf("expected %s to be canonical", u)
		}
	}
	for _, u := range []string{"kg", "l", "stk", ""} {
		if IsCanonical(u) {
			t.Errorf("expected %s to not be canonical", u)
		}
	}
}

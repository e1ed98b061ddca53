package recipe

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLine_SimpleQuantity(t *testing.T) {
	p := ParseLine("2 cups flour")

	if p.Quantity == nil || !p.Quantity.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected quantity 2, got %v", p.Quantity)
	}
	if p.Unit != "cups" {
		t.Errorf("expected unit cups, got %q", p.Unit)
	}
	if p.Name != "flour" {
		t.Errorf("expected name flour, got %q", p.Name)
	}
}

func TestParseLine_Fraction(t *testing.T) {
	p := ParseLine("1/2 cup sugar")

	want := decimal.NewFromFloat(0.5)
	if p.Quantity == nil || !p.Quantity.Equal(want) {
		t.Errorf("expected quantity 0.5, got %v", p.Quantity)
	}
	if p.Unit != "cup" {
		t.Errorf("expected unit cup, got %q", p.Unit)
	}
}

func TestParseLine_MixedNumber(t *testing.T) {
	p := ParseLine("2 1/2 tbsp butter")

	want := decimal.NewFromFloat(2.5)
	if p.Quantity == nil || !p.Quantity.Equal(want) {
		t.Errorf("expected quantity 2.5, got %v", p.Quantity)
	}
	if p.Unit != "tbsp" {
		t.Errorf("expected unit tbsp, got %q", p.Unit)
	}
	if p.Name != "butter" {
		t.Errorf("expected name butter, got %q", p.Name)
	}
}

func TestParseLine_CommaDecimal(t *testing.T) {
	p := ParseLine("1,5 dl fløte")

	want := decimal.NewFromFloat(1.5)
	if p.Quantity == nil || !p.Quantity.Equal(want) {
		t.Errorf("expected quantity 1.5, got %v", p.Quantity)
	}
	if p.Unit != "dl" {
		t.Errorf("expected unit dl, got %q", p.Unit)
	}
}

func TestParseLine_Note(t *testing.T) {
	p := ParseLine("2 cups flour (sifted)")

	if p.Note == nil || *p.Note != "sifted" {
		t.Errorf("expected note sifted, got %v", p.Note)
	}
	if p.Name != "flour" {
		t.Errorf("note must not leak into name, got %q", p.Name)
	}
}

func TestParseLine_NoQuantity(t *testing.T) {
	p := ParseLine("salt to taste")

	if p.Quantity != nil {
		t.Errorf("expected nil quantity, got %v", p.Quantity)
	}
	if p.Unit != "" {
		t.Errorf("unit must not be extracted without a quantity, got %q", p.Unit)
	}
	if p.Name != "salt to taste" {
		t.Errorf("expected full text as name, got %q", p.Name)
	}
}

// "ginger" starts with the unit token "g"; without a leading quantity the
// parser must not split it.
func TestParseLine_UnitPrefixedName(t *testing.T) {
	p := ParseLine("fresh ginger")

	if p.Name != "fresh ginger" {
		t.Errorf("expected name preserved, got %q", p.Name)
	}
}

func TestParseLine_LongUnitWinsOverShort(t *testing.T) {
	p := ParseLine("3 tablespoons olive oil")

	if p.Unit != "tablespoons" {
		t.Errorf("expected tablespoons, got %q", p.Unit)
	}
	if p.Name != "olive oil" {
		t.Errorf("expected name olive oil, got %q", p.Name)
	}
}

func TestParseLine_BareNumberNoUnit(t *testing.T) {
	p := ParseLine("2 eggs")

	if p.Quantity == nil || !p.Quantity.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected quantity 2, got %v", p.Quantity)
	}
	if p.Unit != "" {
		t.Errorf("expected no unit, got %q", p.Unit)
	}
	if p.Name != "eggs" {
		t.Errorf("expected name eggs, got %q", p.Name)
	}
}

// A zero denominator never divides; the leading integer is taken as-is.
func TestParseLine_ZeroDenominator(t *testing.T) {
	p := ParseLine("1/0 cup oddity")

	if p.Quantity == nil || !p.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected fallback quantity 1, got %v", p.Quantity)
	}
}

func TestParseLine_Empty(t *testing.T) {
	p := ParseLine("   ")

	if p.Quantity != nil || p.Unit != "" || p.Name != "" {
		t.Errorf("expected empty result, got %+v", p)
	}
}

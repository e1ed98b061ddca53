package ingredient

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func catalogEntry(name, canonical string, aliases ...string) Ingredient {
	return Ingredient{
		ID:            uuid.New(),
		Name:          name,
		CanonicalName: canonical,
		DefaultUnit:   "g",
		Aliases:       aliases,
	}
}

func TestNormalize_StripsBrandAndVolumeToken(t *testing.T) {
	// "1L" is removed by the quantity-token pattern, leaving "tine melk",
	// then the brand prefix goes.
	got := Normalize("TINE MELK 1L")
	if got != "melk" {
		t.Errorf("expected 'melk', got %q", got)
	}
}

func TestNormalize_RemovesQuantityTokens(t *testing.T) {
	cases := map[string]string{
		"2x Yoghurt":       "yoghurt",
		"KYLLINGFILET 500G": "kyllingfilet",
		"EGG 6STK":         "egg",
		"LETTMELK 1,5L":    "lettmelk 1,",
		"Ost 2pk":          "ost",
	}

	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalize_TransliteratesNorwegianCharacters(t *testing.T) {
	if got := Normalize("SMØR"); got != "smor" {
		t.Errorf("expected 'smor', got %q", got)
	}
	if got := Normalize("BLÅBÆR"); got != "blabaer" {
		t.Errorf("expected 'blabaer', got %q", got)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	if got := Normalize("  kokt   skinke  "); got != "kokt skinke" {
		t.Errorf("expected 'kokt skinke', got %q", got)
	}
}

func TestMatch_ExactHasFullConfidence(t *testing.T) {
	catalog := []Ingredient{catalogEntry("Melk", "melk", "milk")}

	result := Match("melk", catalog)
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Method != "exact" {
		t.Errorf("expected method exact, got %s", result.Method)
	}
	if !result.Confidence.Equal(decimal.RequireFromString("1.0")) {
		t.Errorf("expected confidence 1.0, got %s", result.Confidence)
	}
}

func TestMatch_AliasBeatsFuzzy(t *testing.T) {
	catalog := []Ingredient{
		catalogEntry("Melk", "melk", "milk", "helmelk"),
	}

	result := Match("milk", catalog)
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Method != "alias" {
		t.Errorf("expected method alias, got %s", result.Method)
	}
	if !result.Confidence.Equal(decimal.RequireFromString("0.95")) {
		t.Errorf("expected confidence 0.95, got %s", result.Confidence)
	}
}

func TestMatch_ConfidenceOrdering(t *testing.T) {
	catalog := []Ingredient{
		catalogEntry("Melk", "melk", "milk"),
	}

	exact := Match("melk", catalog)
	alias := Match("milk", catalog)
	fuzzy := Match("lettmelk", catalog) // substring containment

	if exact == nil || alias == nil || fuzzy == nil {
		t.Fatal("expected all three to match")
	}

	if !exact.Confidence.GreaterThan(alias.Confidence) {
		t.Errorf("exact (%s) should beat alias (%s)", exact.Confidence, alias.Confidence)
	}
	if !alias.Confidence.GreaterThanOrEqual(fuzzy.Confidence) {
		t.Errorf("alias (%s) should be at least fuzzy (%s)", alias.Confidence, fuzzy.Confidence)
	}
	if fuzzy.Method != "fuzzy" {
		t.Errorf("expected fuzzy method, got %s", fuzzy.Method)
	}
}

func TestMatch_FullReceiptLine(t *testing.T) {
	catalog := []Ingredient{
		catalogEntry("Kyllingfilet", "kyllingfilet", "chicken breast", "kylling"),
		catalogEntry("Melk", "melk", "milk"),
	}

	result := Match("TINE MELK 1L", catalog)
	if result == nil {
		t.Fatal("expected a match for TINE MELK 1L")
	}
	if result.IngredientName != "Melk" {
		t.Errorf("expected Melk, got %s", result.IngredientName)
	}
	if result.Method != "exact" {
		t.Errorf("expected exact after normalization, got %s", result.Method)
	}
}

func TestMatch_BestCandidateWins(t *testing.T) {
	catalog := []Ingredient{
		catalogEntry("Paprika", "paprika"),
		catalogEntry("Pasta", "pasta"),
	}

	result := Match("paprika", catalog)
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.IngredientName != "Paprika" {
		t.Errorf("expected Paprika, got %s", result.IngredientName)
	}
}

func TestMatch_NoMatchBelowThreshold(t *testing.T) {
	catalog := []Ingredient{
		catalogEntry("Melk", "melk"),
		catalogEntry("Ost", "ost"),
	}

	if result := Match("vaskemiddel", catalog); result != nil {
		t.Errorf("expected no match, got %+v", result)
	}
}

func TestMatch_EmptyCatalog(t *testing.T) {
	if result := Match("melk", nil); result != nil {
		t.Errorf("expected no match on empty catalog, got %+v", result)
	}
}

func TestSimilarityRatio(t *testing.T) {
	if got := similarityRatio("melk", "melk"); got != 1 {
		t.Errorf("identical strings should score 1, got %f", got)
	}
	if got := similarityRatio("", ""); got != 1 {
		t.Errorf("two empty strings should score 1, got %f", got)
	}
	if got := similarityRatio("abc", "xyz"); got != 0 {
		t.Errorf("disjoint strings should score 0, got %f", got)
	}

	// "lettmelk" vs "melk": matching block "melk" of size 4, 2*4/(8+4).
	got := similarityRatio("lettmelk", "melk")
	want := 2.0 * 4.0 / 12.0
	if got != want {
		t.Errorf("expected %f, got %f", want, got)
	}
}

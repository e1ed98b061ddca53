package recipe

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Units recognized at the front of an ingredient line, ordered longest
// first so "tablespoons" wins over "tbsp" and "l".
var parseUnits = []string{
	"tablespoons",
	"tablespoon",
	"teaspoons",
	"teaspoon",
	"kilograms",
	"kilogram",
	"ounces",
	"ounce",
	"pounds",
	"pound",
	"liters",
	"liter",
	"pieces",
	"piece",
	"slices",
	"slice",
	"grams",
	"gram",
	"cups",
	"cup",
	"tbsp",
	"tsp",
	"pcs",
	"stk",
	"oz",
	"lb",
	"kg",
	"ml",
	"dl",
	"g",
	"l",
}

var (
	mixedNumberPattern = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)\s*`)
	fractionPattern    = regexp.MustCompile(`^(\d+)/(\d+)\s*`)
	numberPattern      = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*`)
	notePattern        = regexp.MustCompile(`\(([^)]+)\)`)
)

// ParsedLine is the structured form of one raw ingredient line.
// Quantity is nil when the line carries no leading number ("salt to taste").
type ParsedLine struct {
	RawText  string
	Quantity *decimal.Decimal
	Unit     string
	Name     string
	Note     *string
}

// ParseLine parses a free-text ingredient line such as "2 1/2 cups flour
// (sifted)". A unit is only looked for after a quantity was found, which
// keeps ingredient names starting with a unit word ("ginger") intact.
func ParseLine(line string) ParsedLine {
	line = strings.TrimSpace(line)

	parsed := ParsedLine{RawText: line}
	if line == "" {
		return parsed
	}

	remaining := line

	quantity, rest := extractQuantity(remaining)
	parsed.Quantity = quantity
	remaining = rest

	if parsed.Quantity != nil {
		unit, rest := extractUnit(remaining)
		parsed.Unit = unit
		remaining = rest
	}

	if m := notePattern.FindStringSubmatch(line); m != nil {
		note := m[1]
		parsed.Note = &note
	}

	name := notePattern.ReplaceAllString(remaining, "")
	parsed.Name = strings.Join(strings.Fields(name), " ")

	return parsed
}

func extractQuantity(text string) (*decimal.Decimal, string) {
	text = strings.TrimSpace(text)

	if m := mixedNumberPattern.FindStringSubmatch(text); m != nil {
		whole, _ := decimal.NewFromString(m[1])
		num, _ := decimal.NewFromString(m[2])
		denom, _ := decimal.NewFromString(m[3])
		if !denom.IsZero() {
			q := whole.Add(num.Div(denom))
			return &q, strings.TrimSpace(text[len(m[0]):])
		}
	}

	if m := fractionPattern.FindStringSubmatch(text); m != nil {
		num, _ := decimal.NewFromString(m[1])
		denom, _ := decimal.NewFromString(m[2])
		if !denom.IsZero() {
			q := num.Div(denom)
			return &q, strings.TrimSpace(text[len(m[0]):])
		}
	}

	if m := numberPattern.FindStringSubmatch(text); m != nil {
		q, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
		if err == nil {
			return &q, strings.TrimSpace(text[len(m[0]):])
		}
	}

	return nil, text
}

func extractUnit(text string) (string, string) {
	lower := strings.ToLower(text)

	for _, unit := range parseUnits {
		if lower == unit || strings.HasPrefix(lower, unit+" ") {
			return unit, strings.TrimSpace(text[len(unit):])
		}
	}

	return "", text
}

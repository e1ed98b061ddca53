package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical units. Every convertible unit maps into exactly one of these.
const (
	Gram       = "g"
	Milliliter = "ml"
	Piece      = "pcs"
)

type conversion struct {
	To     string
	Factor decimal.Decimal
}

// conversions maps a lowercased unit to its canonical unit and
// multiplicative factor. Conversion is always linear, no offsets.
var conversions = map[string]conversion{
	// Volume to ml
	"l":    {Milliliter, decimal.NewFromInt(1000)},
	"dl":   {Milliliter, decimal.NewFromInt(100)},
	"cl":   {Milliliter, decimal.NewFromInt(10)},
	"cup":  {Milliliter, decimal.NewFromInt(240)},
	"tbsp": {Milliliter, decimal.NewFromInt(15)},
	"tsp":  {Milliliter, decimal.NewFromInt(5)},
	"ss":   {Milliliter, decimal.NewFromInt(15)}, // Norwegian: spiseskje
	"ts":   {Milliliter, decimal.NewFromInt(5)},  // Norwegian: teskje

	// Weight to g
	"kg": {Gram, decimal.NewFromInt(1000)},
	"hg": {Gram, decimal.NewFromInt(100)}, // Norwegian: hektogram
	"oz": {Gram, decimal.RequireFromString("28.3495")},
	"lb": {Gram, decimal.RequireFromString("453.592")},

	// Count to pcs
	"stk": {Piece, decimal.NewFromInt(1)}, // Norwegian: stykk
	"pk":  {Piece, decimal.NewFromInt(1)}, // Norwegian: pakke
	"bx":  {Piece, decimal.NewFromInt(1)},

	// Identity
	"g":   {Gram, decimal.NewFromInt(1)},
	"ml":  {Milliliter, decimal.NewFromInt(1)},
	"pcs": {Piece, decimal.NewFromInt(1)},
}

// ToCanonical converts a quantity to its canonical unit (g, ml or pcs).
// Unknown units are returned unchanged; callers treat an unconverted unit
// as a data-quality signal, not an error.
func ToCanonical(quantity decimal.Decimal, unit string) (decimal.Decimal, string) {
	key := strings.ToLower(strings.TrimSpace(unit))

	conv, ok := conversions[key]
	if !ok {
		return quantity, unit
	}

	return quantity.Mul(conv.Factor), conv.To
}

// IsCanonical reports whether a unit is already one of g, ml or pcs.
func IsCanonical(unit string) bool {
	switch strings.ToLower(unit) {
	case Gram, Milliliter, Piece:
		return true
	}
	return false
}

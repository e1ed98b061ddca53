package inventory

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrCorruptLot marks a lot whose cost basis cannot be computed: zero
// initial quantity with a nonzero cost. That is a data-integrity problem,
// not a runtime condition to retry.
var ErrCorruptLot = errors.New("lot has zero initial quantity but nonzero cost")

// LotSnapshot is the immutable view of a lot that FIFO allocation reads.
// Callers must pass lots already filtered to one ingredient and household.
type LotSnapshot struct {
	ID              uuid.UUID
	Remaining       decimal.Decimal
	InitialQuantity decimal.Decimal
	TotalCost       decimal.Decimal
	PurchaseDate    time.Time
}

// Consumed records one lot's contribution to an allocation.
type Consumed struct {
	LotID    uuid.UUID       `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// AllocationResult is the outcome of sourcing a required quantity across
// lots. Shortage is the part that could not be sourced; it is a legitimate
// output state, not an error, and TotalCost covers only the sourced part.
type AllocationResult struct {
	TotalCost decimal.Decimal `json:"total_cost"`
	Consumed  []Consumed      `json:"consumed"`
	Shortage  decimal.Decimal `json:"shortage"`
}

// Satisfied reports whether the full required quantity was sourced.
func (r *AllocationResult) Satisfied() bool {
	return r.Shortage.IsZero()
}

// Allocate sources a required quantity from lots oldest-first and computes
// the blended cost. A lot's per-unit price is its acquisition cost basis,
// total cost over initial quantity, never recomputed from what remains.
// Input order does not matter; the allocator sorts by purchase date itself.
func Allocate(lots []LotSnapshot, required decimal.Decimal) (*AllocationResult, error) {
	sorted := make([]LotSnapshot, len(lots))
	copy(sorted, lots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PurchaseDate.Before(sorted[j].PurchaseDate)
	})

	result := &AllocationResult{
		TotalCost: decimal.Zero,
		Consumed:  []Consumed{},
	}

	needed := required
	for _, lot := range sorted {
		if needed.LessThanOrEqual(decimal.Zero) {
			break
		}
		if lot.Remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}

		if lot.InitialQuantity.IsZero() {
			if !lot.TotalCost.IsZero() {
				return nil, ErrCorruptLot
			}
			continue
		}

		take := decimal.Min(lot.Remaining, needed)
		unitPrice := lot.TotalCost.Div(lot.InitialQuantity)
		cost := take.Mul(unitPrice)

		result.TotalCost = result.TotalCost.Add(cost)
		result.Consumed = append(result.Consumed, Consumed{
			LotID:    lot.ID,
			Quantity: take,
			Cost:     cost,
		})

		needed = needed.Sub(take)
	}

	if needed.GreaterThan(decimal.Zero) {
		result.Shortage = needed
	} else {
		result.Shortage = decimal.Zero
	}

	return result, nil
}

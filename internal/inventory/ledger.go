package inventory

import "github.com/shopspring/decimal"

// RemainingQuantity reconstructs a lot's remaining quantity from its event
// log: initial quantity plus the sum of all deltas. Addition is commutative,
// so event order affects only the audit narrative, never the result.
func RemainingQuantity(lot *Lot, events []Event) decimal.Decimal {
	remaining := lot.InitialQuantity
	for _, event := range events {
		remaining = remaining.Add(event.QuantityDelta)
	}
	return remaining
}

// CanConsume reports whether the requested amount can be taken. Consuming
// exactly all remaining stock is legal and drives the quantity to zero.
func CanConsume(available, requested decimal.Decimal) bool {
	return available.GreaterThanOrEqual(requested)
}

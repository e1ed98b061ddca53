package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestAllocate_OldestLotFirst(t *testing.T) {
	lotA := LotSnapshot{
		ID:              uuid.New(),
		Remaining:       dec("100"),
		InitialQuantity: dec("100"),
		TotalCost:       dec("10.00"),
		PurchaseDate:    day(1),
	}
	lotB := LotSnapshot{
		ID:              uuid.New(),
		Remaining:       dec("100"),
		InitialQuantity: dec("100"),
		TotalCost:       dec("15.00"),
		PurchaseDate:    day(5),
	}

	// Input order must not matter: the newer lot comes first here.
	result, err := Allocate([]LotSnapshot{lotB, lotA}, dec("150"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.TotalCost.Equal(dec("17.50")) {
		t.Errorf("expected total cost 17.50, got %s", result.TotalCost)
	}
	if len(result.Consumed) != 2 {
		t.Fatalf("expected 2 consumed entries, got %d", len(result.Consumed))
	}
	if result.Consumed[0].LotID != lotA.ID || !result.Consumed[0].Quantity.Equal(dec("100")) {
		t.Errorf("expected lot A drained first: %+v", result.Consumed[0])
	}
	if result.Consumed[1].LotID != lotB.ID || !result.Consumed[1].Quantity.Equal(dec("50")) {
		t.Errorf("expected 50 from lot B: %+v", result.Consumed[1])
	}
	if !result.Satisfied() {
		t.Error("expected allocation to be satisfied")
	}
}

func TestAllocate_Shortage(t *testing.T) {
	lot := LotSnapshot{
		ID:              uuid.New(),
		Remaining:       dec("30"),
		InitialQuantity: dec("100"),
		TotalCost:       dec("20.00"),
		PurchaseDate:    day(1),
	}

	result, err := Allocate([]LotSnapshot{lot}, dec("50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Shortage.Equal(dec("20")) {
		t.Errorf("expected shortage 20, got %s", result.Shortage)
	}
	if result.Satisfied() {
		t.Error("expected unsatisfied allocation")
	}
	// Cost covers only the sourced 30 units at 0.20/unit.
	if !result.TotalCost.Equal(dec("6.00")) {
		t.Errorf("expected total cost 6.00, got %s", result.TotalCost)
	}
}

func TestAllocate_CostBasisUsesInitialQuantity(t *testing.T) {
	// Half the lot is already gone; per-unit price stays total/initial.
	lot := LotSnapshot{
		ID:              uuid.New(),
		Remaining:       dec("50"),
		InitialQuantity: dec("100"),
		TotalCost:       dec("10.00"),
		PurchaseDate:    day(1),
	}

	result, err := Allocate([]LotSnapshot{lot}, dec("50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.TotalCost.Equal(dec("5.00")) {
		t.Errorf("expected total cost 5.00, got %s", result.TotalCost)
	}
}

func TestAllocate_SkipsEmptyLots(t *testing.T) {
	empty := LotSnapshot{
		ID:              uuid.New(),
		Remaining:       decimal.Zero,
		InitialQuantity: dec("100"),
		TotalCost:       dec("10.00"),
		PurchaseDate:    day(1),
	}
	stocked := LotSnapshot{
		ID:              uuid.New(),
		Remaining:       dec("100"),
		InitialQuantity: dec("100"),
		TotalCost:       dec("12.00"),
		PurchaseDate:    day(2),
	}

	result, err := Allocate([]LotSnapshot{empty, stocked}, dec("10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Consumed) != 1 || result.Consumed[0].LotID != stocked.ID {
		t.Errorf("expected only the stocked lot to contribute: %+v", result.Consumed)
	}
}

func TestAllocate_ZeroCostLot(t *testing.T) {
	// Manually added stock with no recorded cost allocates at zero.
	lot := LotSnapshot{
		ID:              uuid.New(),
		Remaining:       dec("100"),
		InitialQuantity: dec("100"),
		TotalCost:       decimal.Zero,
		PurchaseDate:    day(1),
	}

	result, err := Allocate([]LotSnapshot{lot}, dec("40"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.TotalCost.IsZero() {
		t.Errorf("expected zero cost, got %s", result.TotalCost)
	}
}

func TestAllocate_CorruptLot(t *testing.T) {
	lot := LotSnapshot{
		ID:              uuid.New(),
		Remaining:       dec("10"),
		InitialQuantity: decimal.Zero,
		TotalCost:       dec("5.00"),
		PurchaseDate:    day(1),
	}

	if _, err := Allocate([]LotSnapshot{lot}, dec("5")); err != ErrCorruptLot {
		t.Errorf("expected ErrCorruptLot, got %v", err)
	}
}

func TestAllocate_NothingRequired(t *testing.T) {
	result, err := Allocate(nil, decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Satisfied() || len(result.Consumed) != 0 {
		t.Errorf("expected empty satisfied result, got %+v", result)
	}
}

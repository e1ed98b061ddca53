package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// stubRepo records calls; only the methods the service under test reaches
// have real behavior.
type stubRepo struct {
	created  []*Lot
	lots     map[uuid.UUID]*Lot
	consumed []decimal.Decimal
}

func newStubRepo() *stubRepo {
	return &stubRepo{lots: map[uuid.UUID]*Lot{}}
}

func (r *stubRepo) CreateLot(_ context.Context, lot *Lot) error {
	r.created = append(r.created, lot)
	r.lots[lot.ID] = lot
	return nil
}

func (r *stubRepo) GetLot(_ context.Context, id uuid.UUID) (*Lot, error) {
	lot, ok := r.lots[id]
	if !ok {
		return nil, ErrLotNotFound
	}
	return lot, nil
}

func (r *stubRepo) ListLots(context.Context, uuid.UUID, LotFilter) ([]Lot, error) {
	return nil, nil
}

func (r *stubRepo) UpdateLotMeta(_ context.Context, id uuid.UUID, _ *string, _ *time.Time) (*Lot, error) {
	return r.GetLot(context.Background(), id)
}

func (r *stubRepo) ListEvents(context.Context, uuid.UUID) ([]Event, error) {
	return nil, nil
}

func (r *stubRepo) ConsumptionEvents(context.Context, uuid.UUID, uuid.UUID) ([]Event, error) {
	return nil, nil
}

func (r *stubRepo) Consume(_ context.Context, id uuid.UUID, qty decimal.Decimal, _ string, _ *uuid.UUID) (*Lot, error) {
	lot, err := r.GetLot(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if lot.Quantity.LessThan(qty) {
		return nil, ErrInsufficientQuantity
	}
	lot.Quantity = lot.Quantity.Sub(qty)
	r.consumed = append(r.consumed, qty)
	return lot, nil
}

func (r *stubRepo) Discard(_ context.Context, id uuid.UUID, _ string, _ *uuid.UUID) (*Lot, error) {
	lot, err := r.GetLot(context.Background(), id)
	if err != nil {
		return nil, err
	}
	lot.Quantity = decimal.Zero
	return lot, nil
}

func (r *stubRepo) Transfer(_ context.Context, id uuid.UUID, location string, _ *uuid.UUID) (*Lot, error) {
	lot, err := r.GetLot(context.Background(), id)
	if err != nil {
		return nil, err
	}
	lot.Location = location
	return lot, nil
}

func (r *stubRepo) Adjust(_ context.Context, id uuid.UUID, delta decimal.Decimal, _ string, _ *uuid.UUID) (*Lot, error) {
	lot, err := r.GetLot(context.Background(), id)
	if err != nil {
		return nil, err
	}
	lot.Quantity = lot.Quantity.Add(delta)
	return lot, nil
}

func (r *stubRepo) Aggregate(context.Context, uuid.UUID, *string) ([]AggregatedItem, error) {
	return nil, nil
}

func (r *stubRepo) OnHand(context.Context, uuid.UUID, uuid.UUID) (decimal.Decimal, string, error) {
	return decimal.Zero, "", nil
}

// --------------------------------------------------

func TestAddLot_ConvertsToCanonicalAndPricesUnit(t *testing.T) {
	repo := newStubRepo()
	service := NewService(repo)

	lot, err := service.AddLot(context.Background(), NewLotInput{
		HouseholdID:  uuid.New(),
		IngredientID: uuid.New(),
		Quantity:     decimal.NewFromInt(1),
		Unit:         "kg",
		Location:     LocationPantry,
		TotalCost:    decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("AddLot failed: %v", err)
	}

	if lot.Unit != "g" {
		t.Errorf("expected canonical unit g, got %q", lot.Unit)
	}
	if !lot.Quantity.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected 1000, got %s", lot.Quantity)
	}
	if !lot.InitialQuantity.Equal(lot.Quantity) {
		t.Errorf("initial quantity must match quantity on creation")
	}
	if !lot.UnitCost.Equal(decimal.NewFromFloat(0.1)) {
		t.Errorf("expected unit cost 0.1, got %s", lot.UnitCost)
	}
	if lot.SourceType != SourceManual {
		t.Errorf("expected manual source default, got %q", lot.SourceType)
	}
	if lot.Currency != "NOK" {
		t.Errorf("expected NOK default, got %q", lot.Currency)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted lot, got %d", len(repo.created))
	}
}

func TestAddLot_RejectsNonPositiveQuantity(t *testing.T) {
	repo := newStubRepo()
	service := NewService(repo)

	_, err := service.AddLot(context.Background(), NewLotInput{
		HouseholdID:  uuid.New(),
		IngredientID: uuid.New(),
		Quantity:     decimal.Zero,
		Unit:         "g",
		Location:     LocationPantry,
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("nothing should be persisted on validation failure")
	}
}

func TestAddLot_RejectsUnknownLocation(t *testing.T) {
	service := NewService(newStubRepo())

	_, err := service.AddLot(context.Background(), NewLotInput{
		HouseholdID:  uuid.New(),
		IngredientID: uuid.New(),
		Quantity:     decimal.NewFromInt(1),
		Unit:         "pcs",
		Location:     "garage",
	})
	if !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
}

func TestConsume_AllOrNothing(t *testing.T) {
	repo := newStubRepo()
	service := NewService(repo)

	lot, err := service.AddLot(context.Background(), NewLotInput{
		HouseholdID:  uuid.New(),
		IngredientID: uuid.New(),
		Quantity:     decimal.NewFromInt(500),
		Unit:         "g",
		Location:     LocationFridge,
	})
	if err != nil {
		t.Fatalf("AddLot failed: %v", err)
	}

	if _, err := service.Consume(context.Background(), lot.ID, decimal.NewFromInt(600), "test", nil); !errors.Is(err, ErrInsufficientQuantity) {
		t.Fatalf("expected ErrInsufficientQuantity, got %v", err)
	}
	if !lot.Quantity.Equal(decimal.NewFromInt(500)) {
		t.Errorf("failed consume must not change quantity, got %s", lot.Quantity)
	}

	updated, err := service.Consume(context.Background(), lot.ID, decimal.NewFromInt(200), "test", nil)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if !updated.Quantity.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected 300 remaining, got %s", updated.Quantity)
	}
}

func TestHistory_UnknownLot(t *testing.T) {
	service := NewService(newStubRepo())

	if _, err := service.History(context.Background(), uuid.New()); !errors.Is(err, ErrLotNotFound) {
		t.Fatalf("expected ErrLotNotFound, got %v", err)
	}
}

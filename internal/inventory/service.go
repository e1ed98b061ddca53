package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/units"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewLotInput carries everything needed to create a lot manually or from a
// processed receipt item. Quantities are converted to canonical units before
// storage so lots of the same ingredient always aggregate cleanly.
type NewLotInput struct {
	HouseholdID  uuid.UUID
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	Unit         string
	Location     string
	PurchaseDate time.Time
	ExpiryDate   *time.Time
	TotalCost    decimal.Decimal
	Currency     string
	Confidence   decimal.Decimal
	SourceType   string
	SourceID     *uuid.UUID
}

func (s *Service) AddLot(ctx context.Context, in NewLotInput) (*Lot, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidQuantity
	}
	if !ValidLocation(in.Location) {
		return nil, ErrInvalidLocation
	}

	qty, unit := units.ToCanonical(in.Quantity, in.Unit)

	unitCost := decimal.Zero
	if qty.GreaterThan(decimal.Zero) {
		unitCost = in.TotalCost.Div(qty)
	}

	currency := in.Currency
	if currency == "" {
		currency = "NOK"
	}
	sourceType := in.SourceType
	if sourceType == "" {
		sourceType = SourceManual
	}
	purchase := in.PurchaseDate
	if purchase.IsZero() {
		purchase = time.Now().UTC()
	}

	lot := &Lot{
		ID:              uuid.New(),
		HouseholdID:     in.HouseholdID,
		IngredientID:    in.IngredientID,
		InitialQuantity: qty,
		Quantity:        qty,
		Unit:            unit,
		Location:        in.Location,
		PurchaseDate:    purchase,
		ExpiryDate:      in.ExpiryDate,
		UnitCost:        unitCost,
		TotalCost:       in.TotalCost,
		Currency:        currency,
		Confidence:      in.Confidence,
		SourceType:      sourceType,
		SourceID:        in.SourceID,
	}

	if err := s.repo.CreateLot(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

func (s *Service) GetLot(ctx context.Context, id uuid.UUID) (*Lot, error) {
	return s.repo.GetLot(ctx, id)
}

func (s *Service) ListLots(ctx context.Context, householdID uuid.UUID, filter LotFilter) ([]Lot, error) {
	return s.repo.ListLots(ctx, householdID, filter)
}

func (s *Service) UpdateLot(ctx context.Context, id uuid.UUID, location *string, expiry *time.Time) (*Lot, error) {
	return s.repo.UpdateLotMeta(ctx, id, location, expiry)
}

func (s *Service) History(ctx context.Context, lotID uuid.UUID) ([]Event, error) {
	if _, err := s.repo.GetLot(ctx, lotID); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, lotID)
}

func (s *Service) Consume(ctx context.Context, lotID uuid.UUID, quantity decimal.Decimal, reason string, actor *uuid.UUID) (*Lot, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidQuantity
	}
	return s.repo.Consume(ctx, lotID, quantity, reason, actor)
}

func (s *Service) Discard(ctx context.Context, lotID uuid.UUID, reason string, actor *uuid.UUID) (*Lot, error) {
	return s.repo.Discard(ctx, lotID, reason, actor)
}

func (s *Service) Transfer(ctx context.Context, lotID uuid.UUID, location string, actor *uuid.UUID) (*Lot, error) {
	return s.repo.Transfer(ctx, lotID, location, actor)
}

func (s *Service) Adjust(ctx context.Context, lotID uuid.UUID, delta decimal.Decimal, reason string, actor *uuid.UUID) (*Lot, error) {
	if delta.IsZero() {
		return nil, ErrInvalidQuantity
	}
	return s.repo.Adjust(ctx, lotID, delta, reason, actor)
}

func (s *Service) Aggregate(ctx context.Context, householdID uuid.UUID, location *string) ([]AggregatedItem, error) {
	if location != nil && !ValidLocation(*location) {
		return nil, ErrInvalidLocation
	}
	return s.repo.Aggregate(ctx, householdID, location)
}

func (s *Service) OnHand(ctx context.Context, householdID, ingredientID uuid.UUID) (decimal.Decimal, string, error) {
	return s.repo.OnHand(ctx, householdID, ingredientID)
}

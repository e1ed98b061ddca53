package receipt

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/ingredient"
	"github.com/hamzafer/KjopsMinne/internal/inventory"
)

var ErrUnsupportedFile = errors.New("unsupported file type")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// Uploader stores receipt images and returns their public URLs.
type Uploader interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo        Repository
	ingredients ingredient.Repository
	inventory   *inventory.Service
	uploader    Uploader
}

func NewService(
	repo Repository,
	ingredients ingredient.Repository,
	inv *inventory.Service,
	uploader Uploader,
) *Service {
	return &Service{
		repo:        repo,
		ingredients: ingredients,
		inventory:   inv,
		uploader:    uploader,
	}
}

// Upload stores the image and creates the receipt in UPLOADED state. The
// OCR worker picks it up from there; header fields stay placeholders until
// parsing fills them in.
func (s *Service) Upload(
	ctx context.Context,
	householdID uuid.UUID,
	file *multipart.FileHeader,
) (*Receipt, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedFile
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	id := uuid.New()
	key := fmt.Sprintf("receipts/%s/%s%s", householdID, id, ext)

	url, err := s.uploader.Upload(ctx, key, f)
	if err != nil {
		return nil, fmt.Errorf("upload receipt image: %w", err)
	}

	receipt := &Receipt{
		ID:              id,
		HouseholdID:     householdID,
		Status:          StatusUploaded,
		InventoryStatus: InventoryPending,
		MerchantName:    "Unknown",
		PurchaseDate:    time.Now().UTC(),
		TotalAmount:     decimal.Zero,
		Currency:        "NOK",
		ImageURL:        &url,
	}

	if err := s.repo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	householdID uuid.UUID,
	filter Filter,
) ([]Receipt, int, error) {
	return s.repo.List(ctx, householdID, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Image cleanup is best effort; an orphaned object is harmless.
	if receipt.ImageURL != nil {
		if idx := strings.Index(*receipt.ImageURL, "receipts/"); idx >= 0 {
			_ = s.uploader.Delete(ctx, (*receipt.ImageURL)[idx:])
		}
	}

	return nil
}

func (s *Service) UpdateItem(
	ctx context.Context,
	receiptID, itemID uuid.UUID,
	update ItemUpdate,
) (*Item, error) {
	if _, err := s.repo.Get(ctx, receiptID); err != nil {
		return nil, err
	}
	return s.repo.UpdateItem(ctx, receiptID, itemID, update)
}

// Skip marks the whole receipt as not destined for inventory.
func (s *Service) Skip(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	receipt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt.InventoryStatus != InventoryPending {
		return nil, ErrAlreadyProcessed
	}

	if err := s.repo.SetInventoryStatus(ctx, id, InventorySkipped); err != nil {
		return nil, err
	}
	receipt.InventoryStatus = InventorySkipped
	return receipt, nil
}

// ProcessResult summarizes a process-to-inventory run.
type ProcessResult struct {
	LotsCreated int         `json:"lots_created"`
	Skipped     int         `json:"skipped"`
	Unmatched   []string    `json:"unmatched"`
	LotIDs      []uuid.UUID `json:"lot_ids"`
}

// ProcessToInventory turns every matched, non-pant item of a parsed receipt
// into an inventory lot. Items without a catalog match are reported back
// instead of silently dropped, so the user can fix them and re-run.
func (s *Service) ProcessToInventory(
	ctx context.Context,
	receiptID uuid.UUID,
	location string,
	actor *uuid.UUID,
) (*Receipt, *ProcessResult, error) {
	receipt, err := s.repo.Get(ctx, receiptID)
	if err != nil {
		return nil, nil, err
	}
	if receipt.Status != StatusParsed {
		return nil, nil, ErrNotParsed
	}
	if receipt.InventoryStatus != InventoryPending {
		return nil, nil, ErrAlreadyProcessed
	}

	if location == "" {
		location = inventory.LocationPantry
	}

	catalog, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := &ProcessResult{Unmatched: []string{}, LotIDs: []uuid.UUID{}}

	for i := range receipt.Items {
		item := &receipt.Items[i]
		if item.IsPant || item.DiscountAmount.GreaterThan(decimal.Zero) ||
			item.SkipInventory || item.InventoryLotID != nil {
			result.Skipped++
			continue
		}

		ingredientID, confidence := s.resolveIngredient(item, catalog)
		if ingredientID == nil {
			result.Unmatched = append(result.Unmatched, item.RawName)
			continue
		}

		quantity := decimal.NewFromInt(1)
		if item.Quantity != nil && item.Quantity.GreaterThan(decimal.Zero) {
			quantity = *item.Quantity
		}

		unit := defaultUnitFor(*ingredientID, catalog)
		if item.Unit != nil && *item.Unit != "" {
			unit = *item.Unit
		}

		lot, err := s.inventory.AddLot(ctx, inventory.NewLotInput{
			HouseholdID:  receipt.HouseholdID,
			IngredientID: *ingredientID,
			Quantity:     quantity,
			Unit:         unit,
			Location:     location,
			PurchaseDate: receipt.PurchaseDate,
			TotalCost:    item.TotalPrice,
			Currency:     receipt.Currency,
			Confidence:   confidence,
			SourceType:   inventory.SourceReceipt,
			SourceID:     &receipt.ID,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create lot for %q: %w", item.RawName, err)
		}

		if err := s.repo.SetItemLot(ctx, item.ID, lot.ID); err != nil {
			return nil, nil, err
		}
		item.InventoryLotID = &lot.ID
		item.IngredientID = ingredientID

		result.LotsCreated++
		result.LotIDs = append(result.LotIDs, lot.ID)
	}

	if err := s.repo.SetInventoryStatus(ctx, receiptID, InventoryReviewed); err != nil {
		return nil, nil, err
	}
	receipt.InventoryStatus = InventoryReviewed

	return receipt, result, nil
}

// resolveIngredient prefers an explicit user override on the item, then
// falls back to catalog matching on the canonical (or raw) name.
func (s *Service) resolveIngredient(
	item *Item,
	catalog []ingredient.Ingredient,
) (*uuid.UUID, decimal.Decimal) {
	if item.IngredientID != nil {
		confidence := decimal.NewFromInt(1)
		if item.IngredientConfidence != nil {
			confidence = *item.IngredientConfidence
		}
		return item.IngredientID, confidence
	}

	name := item.RawName
	if item.CanonicalName != nil {
		name = *item.CanonicalName
	}

	match := ingredient.Match(name, catalog)
	if match == nil {
		return nil, decimal.Zero
	}
	return &match.IngredientID, match.Confidence
}

func defaultUnitFor(id uuid.UUID, catalog []ingredient.Ingredient) string {
	for i := range catalog {
		if catalog[i].ID == id {
			return catalog[i].DefaultUnit
		}
	}
	return "pcs"
}

package ocr

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamzafer/KjopsMinne/internal/receipt"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// FetchPending retrieves and CLAIMS the next uploaded receipt awaiting OCR.
// Returns (uuid.Nil, "", nil) when no jobs are available (NOT an error).
// FOR UPDATE SKIP LOCKED lets multiple workers poll without stepping on
// each other.
func (r *Repository) FetchPending(ctx context.Context) (uuid.UUID, string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, "", err
	}
	defer tx.Rollback(ctx)

	var id uuid.UUID
	var url string

	err = tx.QueryRow(ctx, `
		SELECT id, image_url
		FROM receipts
		WHERE status = 'UPLOADED' AND image_url IS NOT NULL
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`).Scan(&id, &url)

	// No pending jobs is NOT an error
	if err != nil {
		return uuid.Nil, "", nil
	}

	// Mark as processing immediately (atomic claim)
	_, err = tx.Exec(ctx, `
		UPDATE receipts
		SET status = 'OCR_PROCESSING', updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return uuid.Nil, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, "", err
	}

	return id, url, nil
}

// UpdateStatus updates the OCR processing status
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errMsg *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE receipts
		SET status = $1,
		    ocr_error = $2,
		    updated_at = now()
		WHERE id = $3
	`, status, errMsg, id)

	return err
}

// SaveParsed persists the OCR text plus the parsed header and line items in
// one transaction, then flips the receipt to PARSED. Re-running OCR on the
// same receipt replaces its items instead of duplicating them.
func (r *Repository) SaveParsed(
	ctx context.Context,
	id uuid.UUID,
	rawText string,
	parsed receipt.ParsedReceipt,
) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE receipts
		SET status = 'PARSED',
		    raw_ocr_text = $1,
		    merchant_name = $2,
		    store_location = $3,
		    purchase_date = $4,
		    total_amount = $5,
		    currency = $6,
		    payment_method = $7,
		    ocr_error = NULL,
		    updated_at = now()
		WHERE id = $8
	`, rawText, parsed.MerchantName, parsed.StoreLocation, parsed.PurchaseDate,
		parsed.TotalAmount, parsed.Currency, parsed.PaymentMethod, id)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM receipt_items WHERE receipt_id = $1`, id)
	if err != nil {
		return err
	}

	for _, item := range parsed.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO receipt_items (
				id, receipt_id, raw_name, canonical_name, quantity, unit,
				unit_price, total_price, is_pant, discount_amount
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.New(), id, item.RawName, item.CanonicalName, item.Quantity,
			item.Unit, item.UnitPrice, item.TotalPrice, item.IsPant,
			item.DiscountAmount)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

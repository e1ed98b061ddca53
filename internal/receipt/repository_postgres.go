package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Receipts
// --------------------------------------------------

const receiptColumns = `
	id, household_id, status, inventory_status, merchant_name, store_location,
	purchase_date, total_amount, currency, payment_method, image_url,
	raw_ocr_text, ocr_error, created_at, updated_at`

func scanReceipt(row pgx.Row, r *Receipt) error {
	return row.Scan(
		&r.ID, &r.HouseholdID, &r.Status, &r.InventoryStatus, &r.MerchantName,
		&r.StoreLocation, &r.PurchaseDate, &r.TotalAmount, &r.Currency,
		&r.PaymentMethod, &r.ImageURL, &r.RawOCR, &r.OCRError,
		&r.CreatedAt, &r.UpdatedAt,
	)
}

func (repo *PostgresRepository) Create(ctx context.Context, r *Receipt) error {
	query := `
		INSERT INTO receipts (
			id, household_id, status, inventory_status, merchant_name,
			store_location, purchase_date, total_amount, currency,
			payment_method, image_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	return repo.db.QueryRow(ctx, query,
		r.ID, r.HouseholdID, r.Status, r.InventoryStatus, r.MerchantName,
		r.StoreLocation, r.PurchaseDate, r.TotalAmount, r.Currency,
		r.PaymentMethod, r.ImageURL,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
}

func (repo *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`

	var r Receipt
	if err := scanReceipt(repo.db.QueryRow(ctx, query, id), &r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}

	items, err := repo.loadItems(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	r.Items = items

	return &r, nil
}

func (repo *PostgresRepository) List(
	ctx context.Context,
	householdID uuid.UUID,
	filter Filter,
) ([]Receipt, int, error) {
	where := ` WHERE household_id = $1`
	args := []any{householdID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.InventoryStatus != "" {
		args = append(args, filter.InventoryStatus)
		where += fmt.Sprintf(" AND inventory_status = $%d", len(args))
	}

	var total int
	if err := repo.db.QueryRow(ctx, `SELECT COUNT(*) FROM receipts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + receiptColumns + ` FROM receipts` + where +
		` ORDER BY purchase_date DESC, created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var receipts []Receipt
	for rows.Next() {
		var r Receipt
		if err := scanReceipt(rows, &r); err != nil {
			return nil, 0, err
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range receipts {
		items, err := repo.loadItems(ctx, receipts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		receipts[i].Items = items
	}

	return receipts, total, nil
}

func (repo *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := repo.db.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReceiptNotFound
	}
	return nil
}

// --------------------------------------------------
// Items
// --------------------------------------------------

const itemColumns = `
	id, receipt_id, raw_name, canonical_name, quantity, unit, unit_price,
	total_price, is_pant, discount_amount, ingredient_id,
	ingredient_confidence, inventory_lot_id, skip_inventory`

func scanItem(row pgx.Row, it *Item) error {
	return row.Scan(
		&it.ID, &it.ReceiptID, &it.RawName, &it.CanonicalName, &it.Quantity,
		&it.Unit, &it.UnitPrice, &it.TotalPrice, &it.IsPant,
		&it.DiscountAmount, &it.IngredientID, &it.IngredientConfidence,
		&it.InventoryLotID, &it.SkipInventory,
	)
}

func (repo *PostgresRepository) loadItems(ctx context.Context, receiptID uuid.UUID) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM receipt_items WHERE receipt_id = $1 ORDER BY created_at ASC`

	rows, err := repo.db.Query(ctx, query, receiptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (repo *PostgresRepository) UpdateItem(
	ctx context.Context,
	receiptID, itemID uuid.UUID,
	update ItemUpdate,
) (*Item, error) {
	query := `
		UPDATE receipt_items
		SET ingredient_id  = COALESCE($3, ingredient_id),
		    skip_inventory = COALESCE($4, skip_inventory),
		    quantity       = COALESCE($5, quantity),
		    unit           = COALESCE($6, unit)
		WHERE id = $1 AND receipt_id = $2
		RETURNING ` + itemColumns

	var it Item
	err := scanItem(repo.db.QueryRow(ctx, query,
		itemID, receiptID,
		update.IngredientID, update.SkipInventory, update.Quantity, update.Unit,
	), &it)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &it, nil
}

func (repo *PostgresRepository) SetItemLot(ctx context.Context, itemID, lotID uuid.UUID) error {
	tag, err := repo.db.Exec(ctx,
		`UPDATE receipt_items SET inventory_lot_id = $2 WHERE id = $1`,
		itemID, lotID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (repo *PostgresRepository) SetInventoryStatus(
	ctx context.Context,
	receiptID uuid.UUID,
	status string,
) error {
	tag, err := repo.db.Exec(ctx,
		`UPDATE receipts SET inventory_status = $2, updated_at = NOW() WHERE id = $1`,
		receiptID, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReceiptNotFound
	}
	return nil
}

package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const lotColumns = `
	l.id, l.household_id, l.ingredient_id, l.initial_quantity, l.quantity,
	l.unit, l.location, l.purchase_date, l.expiry_date, l.unit_cost,
	l.total_cost, l.currency, l.confidence, l.source_type, l.source_id,
	l.created_at, l.updated_at`

func scanLot(row pgx.Row) (*Lot, error) {
	var lot Lot
	err := row.Scan(
		&lot.ID, &lot.HouseholdID, &lot.IngredientID, &lot.InitialQuantity,
		&lot.Quantity, &lot.Unit, &lot.Location, &lot.PurchaseDate,
		&lot.ExpiryDate, &lot.UnitCost, &lot.TotalCost, &lot.Currency,
		&lot.Confidence, &lot.SourceType, &lot.SourceID,
		&lot.CreatedAt, &lot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	return &lot, nil
}

func (r *PostgresRepository) CreateLot(ctx context.Context, lot *Lot) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO inventory_lots (
			id, household_id, ingredient_id, initial_quantity, quantity,
			unit, location, purchase_date, expiry_date, unit_cost,
			total_cost, currency, confidence, source_type, source_id,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		RETURNING created_at, updated_at
	`,
		lot.ID, lot.HouseholdID, lot.IngredientID, lot.InitialQuantity,
		lot.Unit, lot.Location, lot.PurchaseDate, lot.ExpiryDate,
		lot.UnitCost, lot.TotalCost, lot.Currency, lot.Confidence,
		lot.SourceType, lot.SourceID,
	).Scan(&lot.CreatedAt, &lot.UpdatedAt)
}

func (r *PostgresRepository) GetLot(ctx context.Context, id uuid.UUID) (*Lot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+lotColumns+`
		FROM inventory_lots l
		WHERE l.id = $1
	`, id)

	return scanLot(row)
}

func (r *PostgresRepository) ListLots(
	ctx context.Context,
	householdID uuid.UUID,
	filter LotFilter,
) ([]Lot, error) {

	query := `
		SELECT ` + lotColumns + `, i.name
		FROM inventory_lots l
		JOIN ingredients i ON i.id = l.ingredient_id
		WHERE l.household_id = $1
		  AND l.quantity > 0`
	args := []interface{}{householdID}

	if filter.IngredientID != nil {
		args = append(args, *filter.IngredientID)
		query += fmt.Sprintf(" AND l.ingredient_id = $%d", len(args))
	}
	if filter.Location != nil {
		args = append(args, *filter.Location)
		query += fmt.Sprintf(" AND l.location = $%d", len(args))
	}

	query += ` ORDER BY l.purchase_date ASC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []Lot
	for rows.Next() {
		var lot Lot
		var name string
		if err := rows.Scan(
			&lot.ID, &lot.HouseholdID, &lot.IngredientID, &lot.InitialQuantity,
			&lot.Quantity, &lot.Unit, &lot.Location, &lot.PurchaseDate,
			&lot.ExpiryDate, &lot.UnitCost, &lot.TotalCost, &lot.Currency,
			&lot.Confidence, &lot.SourceType, &lot.SourceID,
			&lot.CreatedAt, &lot.UpdatedAt, &name,
		); err != nil {
			return nil, err
		}
		lot.IngredientName = &name
		lots = append(lots, lot)
	}

	return lots, rows.Err()
}

func (r *PostgresRepository) UpdateLotMeta(
	ctx context.Context,
	id uuid.UUID,
	location *string,
	expiry *time.Time,
) (*Lot, error) {

	if location != nil && !ValidLocation(*location) {
		return nil, ErrInvalidLocation
	}

	row := r.db.QueryRow(ctx, `
		UPDATE inventory_lots l
		SET location = COALESCE($2, location),
		    expiry_date = COALESCE($3, expiry_date),
		    updated_at = now()
		WHERE l.id = $1
		RETURNING `+lotColumns+`
	`, id, location, expiry)

	return scanLot(row)
}

func (r *PostgresRepository) ListEvents(ctx context.Context, lotID uuid.UUID) ([]Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, lot_id, event_type, quantity_delta, unit, reason, created_by, created_at
		FROM inventory_events
		WHERE lot_id = $1
		ORDER BY created_at ASC
	`, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *PostgresRepository) ConsumptionEvents(
	ctx context.Context,
	householdID, ingredientID uuid.UUID,
) ([]Event, error) {

	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.lot_id, e.event_type, e.quantity_delta, e.unit, e.reason, e.created_by, e.created_at
		FROM inventory_events e
		JOIN inventory_lots l ON l.id = e.lot_id
		WHERE l.household_id = $1
		  AND l.ingredient_id = $2
		  AND e.quantity_delta < 0
		ORDER BY e.created_at ASC
	`, householdID, ingredientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID, &e.LotID, &e.EventType, &e.QuantityDelta,
			&e.Unit, &e.Reason, &e.CreatedBy, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// --------------------------------------------------
// Quantity mutations (atomic: lock lot, validate, append event, update cache)
// --------------------------------------------------

func (r *PostgresRepository) Consume(
	ctx context.Context,
	lotID uuid.UUID,
	quantity decimal.Decimal,
	reason string,
	actor *uuid.UUID,
) (*Lot, error) {

	return r.applyDelta(ctx, lotID, EventConsume, quantity.Neg(), reason, actor, func(lot *Lot) error {
		if !CanConsume(lot.Quantity, quantity) {
			return ErrInsufficientQuantity
		}
		return nil
	})
}

func (r *PostgresRepository) Discard(
	ctx context.Context,
	lotID uuid.UUID,
	reason string,
	actor *uuid.UUID,
) (*Lot, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lot, err := lockLot(ctx, tx, lotID)
	if err != nil {
		return nil, err
	}

	// Discard zeroes the lot; the event delta is the negative of whatever
	// remained so the ledger sum lands exactly on zero.
	delta := lot.Quantity.Neg()
	if err := appendEvent(ctx, tx, lot, EventDiscard, delta, reason, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	lot.Quantity = decimal.Zero
	return lot, nil
}

func (r *PostgresRepository) Transfer(
	ctx context.Context,
	lotID uuid.UUID,
	location string,
	actor *uuid.UUID,
) (*Lot, error) {

	if !ValidLocation(location) {
		return nil, ErrInvalidLocation
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lot, err := lockLot(ctx, tx, lotID)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("moved from %s to %s", lot.Location, location)
	if err := appendEvent(ctx, tx, lot, EventTransfer, decimal.Zero, reason, actor); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE inventory_lots SET location = $2, updated_at = now() WHERE id = $1
	`, lotID, location); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	lot.Location = location
	return lot, nil
}

func (r *PostgresRepository) Adjust(
	ctx context.Context,
	lotID uuid.UUID,
	delta decimal.Decimal,
	reason string,
	actor *uuid.UUID,
) (*Lot, error) {

	eventType := EventAdjust
	if delta.GreaterThan(decimal.Zero) {
		eventType = EventAdd
	}

	return r.applyDelta(ctx, lotID, eventType, delta, reason, actor, func(lot *Lot) error {
		if lot.Quantity.Add(delta).LessThan(decimal.Zero) {
			return ErrInsufficientQuantity
		}
		return nil
	})
}

// applyDelta runs the standard mutation transaction: lock the lot row,
// validate, append one event, move the cached quantity by the same delta.
func (r *PostgresRepository) applyDelta(
	ctx context.Context,
	lotID uuid.UUID,
	eventType string,
	delta decimal.Decimal,
	reason string,
	actor *uuid.UUID,
	validate func(*Lot) error,
) (*Lot, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lot, err := lockLot(ctx, tx, lotID)
	if err != nil {
		return nil, err
	}

	if err := validate(lot); err != nil {
		return nil, err
	}

	if err := appendEvent(ctx, tx, lot, eventType, delta, reason, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	lot.Quantity = lot.Quantity.Add(delta)
	return lot, nil
}

func lockLot(ctx context.Context, tx pgx.Tx, lotID uuid.UUID) (*Lot, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+lotColumns+`
		FROM inventory_lots l
		WHERE l.id = $1
		FOR UPDATE
	`, lotID)

	return scanLot(row)
}

func appendEvent(
	ctx context.Context,
	tx pgx.Tx,
	lot *Lot,
	eventType string,
	delta decimal.Decimal,
	reason string,
	actor *uuid.UUID,
) error {

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO inventory_events (id, lot_id, event_type, quantity_delta, unit, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	`, uuid.New(), lot.ID, eventType, delta, lot.Unit, reasonPtr, actor); err != nil {
		return err
	}

	_, err := tx.Exec(ctx, `
		UPDATE inventory_lots SET quantity = quantity + $2, updated_at = now() WHERE id = $1
	`, lot.ID, delta)
	return err
}

// --------------------------------------------------
// Aggregated views
// --------------------------------------------------

func (r *PostgresRepository) Aggregate(
	ctx context.Context,
	householdID uuid.UUID,
	location *string,
) ([]AggregatedItem, error) {

	query := `
		SELECT l.ingredient_id, i.name, i.canonical_name,
		       SUM(l.quantity), l.unit, COUNT(l.id),
		       ARRAY_AGG(DISTINCT l.location), MIN(l.expiry_date)
		FROM inventory_lots l
		JOIN ingredients i ON i.id = l.ingredient_id
		WHERE l.household_id = $1
		  AND l.quantity > 0`
	args := []interface{}{householdID}

	if location != nil {
		args = append(args, *location)
		query += fmt.Sprintf(" AND l.location = $%d", len(args))
	}

	query += `
		GROUP BY l.ingredient_id, i.name, i.canonical_name, l.unit
		ORDER BY i.name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AggregatedItem
	for rows.Next() {
		var item AggregatedItem
		if err := rows.Scan(
			&item.IngredientID, &item.IngredientName, &item.CanonicalName,
			&item.TotalQuantity, &item.Unit, &item.LotCount,
			&item.Locations, &item.EarliestExpiry,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) OnHand(
	ctx context.Context,
	householdID, ingredientID uuid.UUID,
) (decimal.Decimal, string, error) {

	var total decimal.Decimal
	var unit *string

	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0), MIN(unit)
		FROM inventory_lots
		WHERE household_id = $1
		  AND ingredient_id = $2
		  AND quantity > 0
	`, householdID, ingredientID).Scan(&total, &unit)
	if err != nil {
		return decimal.Zero, "", err
	}

	if unit == nil {
		return total, "", nil
	}
	return total, *unit, nil
}

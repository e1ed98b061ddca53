package shopping

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

func (r *PostgresRepository) CreateWithItems(ctx context.Context, list *List) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `
		INSERT INTO shopping_lists (id, household_id, name, date_range_start,
			date_range_end, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`,
		list.ID, list.HouseholdID, list.Name, list.DateRangeStart,
		list.DateRangeEnd, list.Status,
	).Scan(&list.CreatedAt, &list.UpdatedAt); err != nil {
		return err
	}

	for i := range list.Items {
		item := &list.Items[i]
		item.ShoppingListID = list.ID
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO shopping_list_items (id, shopping_list_id, ingredient_id,
				required_quantity, required_unit, on_hand_quantity, to_buy_quantity,
				is_checked, actual_quantity, notes, source_meal_plans)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			item.ID, item.ShoppingListID, item.IngredientID,
			item.RequiredQuantity, item.RequiredUnit, item.OnHandQuantity,
			item.ToBuyQuantity, item.IsChecked, item.ActualQuantity,
			item.Notes, item.SourceMealPlans,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const listColumns = `
	id, household_id, name, date_range_start, date_range_end, status,
	created_at, updated_at`

func scanList(row pgx.Row) (*List, error) {
	var list List
	err := row.Scan(
		&list.ID, &list.HouseholdID, &list.Name, &list.DateRangeStart,
		&list.DateRangeEnd, &list.Status, &list.CreatedAt, &list.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*List, error) {
	list, err := scanList(r.db.QueryRow(ctx, `
		SELECT `+listColumns+` FROM shopping_lists WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Items = items

	return list, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, listID uuid.UUID) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.shopping_list_id, s.ingredient_id, i.name,
		       s.required_quantity, s.required_unit, s.on_hand_quantity,
		       s.to_buy_quantity, s.is_checked, s.actual_quantity, s.notes,
		       s.source_meal_plans
		FROM shopping_list_items s
		JOIN ingredients i ON i.id = s.ingredient_id
		WHERE s.shopping_list_id = $1
		ORDER BY i.name ASC
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		var name string
		if err := rows.Scan(
			&item.ID, &item.ShoppingListID, &item.IngredientID, &name,
			&item.RequiredQuantity, &item.RequiredUnit, &item.OnHandQuantity,
			&item.ToBuyQuantity, &item.IsChecked, &item.ActualQuantity,
			&item.Notes, &item.SourceMealPlans,
		); err != nil {
			return nil, err
		}
		item.IngredientName = &name
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) ListAll(
	ctx context.Context,
	householdID uuid.UUID,
	status *string,
) ([]List, error) {

	query := `SELECT ` + listColumns + ` FROM shopping_lists WHERE household_id = $1`
	args := []interface{}{householdID}

	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []List
	for rows.Next() {
		var list List
		if err := rows.Scan(
			&list.ID, &list.HouseholdID, &list.Name, &list.DateRangeStart,
			&list.DateRangeEnd, &list.Status, &list.CreatedAt, &list.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		items, err := r.loadItems(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
	}

	return lists, nil
}

func (r *PostgresRepository) UpdateMeta(
	ctx context.Context,
	id uuid.UUID,
	name *string,
	status *string,
) (*List, error) {

	_, err := scanList(r.db.QueryRow(ctx, `
		UPDATE shopping_lists
		SET name = COALESCE($2, name),
		    status = COALESCE($3, status),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+listColumns+`
	`, id, name, status))
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shopping_lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrListNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateItem(
	ctx context.Context,
	listID, itemID uuid.UUID,
	update ItemUpdate,
) (*Item, error) {

	var item Item
	err := r.db.QueryRow(ctx, `
		UPDATE shopping_list_items
		SET is_checked = COALESCE($3, is_checked),
		    actual_quantity = COALESCE($4, actual_quantity),
		    notes = COALESCE($5, notes)
		WHERE id = $2 AND shopping_list_id = $1
		RETURNING id, shopping_list_id, ingredient_id, required_quantity,
		          required_unit, on_hand_quantity, to_buy_quantity, is_checked,
		          actual_quantity, notes, source_meal_plans
	`, listID, itemID, update.IsChecked, update.ActualQuantity, update.Notes).Scan(
		&item.ID, &item.ShoppingListID, &item.IngredientID,
		&item.RequiredQuantity, &item.RequiredUnit, &item.OnHandQuantity,
		&item.ToBuyQuantity, &item.IsChecked, &item.ActualQuantity,
		&item.Notes, &item.SourceMealPlans,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

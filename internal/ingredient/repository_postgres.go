package ingredient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("ingredient not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the full catalog ordered by canonical name so that matcher
// iteration (and its first-found tie-break) is stable.
func (r *PostgresRepository) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, canonical_name, default_unit, aliases, category_id, created_at
		FROM ingredients
		ORDER BY canonical_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(
			&ing.ID,
			&ing.Name,
			&ing.CanonicalName,
			&ing.DefaultUnit,
			&ing.Aliases,
			&ing.CategoryID,
			&ing.CreatedAt,
		); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Ingredient, error) {
	var ing Ingredient
	err := r.db.QueryRow(ctx, `
		SELECT id, name, canonical_name, default_unit, aliases, category_id, created_at
		FROM ingredients
		WHERE id = $1
	`, id).Scan(
		&ing.ID,
		&ing.Name,
		&ing.CanonicalName,
		&ing.DefaultUnit,
		&ing.Aliases,
		&ing.CategoryID,
		&ing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &ing, nil
}

func (r *PostgresRepository) Create(ctx context.Context, ing *Ingredient) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO ingredients (id, name, canonical_name, default_unit, aliases, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING created_at
	`,
		ing.ID,
		ing.Name,
		ing.CanonicalName,
		ing.DefaultUnit,
		ing.Aliases,
		ing.CategoryID,
	).Scan(&ing.CreatedAt)
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, icon, color
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

func (r *PostgresRepository) EnsureCategory(
	ctx context.Context,
	name string,
	icon, color *string,
) (uuid.UUID, error) {

	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT id FROM categories WHERE name = $1
	`, name).Scan(&id)

	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	id = uuid.New()
	_, err = r.db.Exec(ctx, `
		INSERT INTO categories (id, name, icon, color)
		VALUES ($1, $2, $3, $4)
	`, id, name, icon, color)

	return id, err
}

func (r *PostgresRepository) EnsureIngredient(
	ctx context.Context,
	name, canonicalName, defaultUnit string,
	aliases []string,
	categoryID *uuid.UUID,
) (bool, error) {

	var existing uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT id FROM ingredients WHERE canonical_name = $1
	`, canonicalName).Scan(&existing)

	if err == nil {
		return false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO ingredients (id, name, canonical_name, default_unit, aliases, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
	`, uuid.New(), name, canonicalName, defaultUnit, aliases, categoryID)

	return err == nil, err
}

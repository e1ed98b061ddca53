package recipe

import (
	"context"
	"errors"

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

func (r *PostgresRepository) Create(ctx context.Context, recipe *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `
		INSERT INTO recipes (id, household_id, name, description, servings,
			prep_minutes, cook_minutes, instructions, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING created_at, updated_at
	`,
		recipe.ID, recipe.HouseholdID, recipe.Name, recipe.Description,
		recipe.Servings, recipe.PrepMinutes, recipe.CookMinutes,
		recipe.Instructions, recipe.Tags,
	).Scan(&recipe.CreatedAt, &recipe.UpdatedAt); err != nil {
		return err
	}

	if err := insertIngredients(ctx, tx, recipe); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertIngredients(ctx context.Context, tx pgx.Tx, recipe *Recipe) error {
	for i := range recipe.Ingredients {
		line := &recipe.Ingredients[i]
		line.RecipeID = recipe.ID
		line.Position = i
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (id, recipe_id, ingredient_id,
				raw_text, name, quantity, unit, note, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			line.ID, line.RecipeID, line.IngredientID, line.RawText,
			line.Name, line.Quantity, line.Unit, line.Note, line.Position,
		); err != nil {
			return err
		}
	}
	return nil
}

const recipeColumns = `
	id, household_id, name, description, servings,
	prep_minutes, cook_minutes, instructions, tags, created_at, updated_at`

func scanRecipe(row pgx.Row) (*Recipe, error) {
	var rec Recipe
	err := row.Scan(
		&rec.ID, &rec.HouseholdID, &rec.Name, &rec.Description, &rec.Servings,
		&rec.PrepMinutes, &rec.CookMinutes, &rec.Instructions, &rec.Tags,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	rec, err := scanRecipe(r.db.QueryRow(ctx, `
		SELECT `+recipeColumns+` FROM recipes WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, recipe_id, ingredient_id, raw_text, name, quantity, unit, note, position
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line RecipeIngredient
		if err := rows.Scan(
			&line.ID, &line.RecipeID, &line.IngredientID, &line.RawText,
			&line.Name, &line.Quantity, &line.Unit, &line.Note, &line.Position,
		); err != nil {
			return nil, err
		}
		rec.Ingredients = append(rec.Ingredients, line)
	}

	return rec, rows.Err()
}

func (r *PostgresRepository) List(ctx context.Context, householdID uuid.UUID) ([]Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE household_id = $1
		ORDER BY name ASC
	`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(
			&rec.ID, &rec.HouseholdID, &rec.Name, &rec.Description, &rec.Servings,
			&rec.PrepMinutes, &rec.CookMinutes, &rec.Instructions, &rec.Tags,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}

	return recipes, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, recipe *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE recipes
		SET name = $2, description = $3, servings = $4, prep_minutes = $5,
		    cook_minutes = $6, instructions = $7, tags = $8, updated_at = now()
		WHERE id = $1
	`,
		recipe.ID, recipe.Name, recipe.Description, recipe.Servings,
		recipe.PrepMinutes, recipe.CookMinutes, recipe.Instructions, recipe.Tags,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	// Ingredient lines are replaced wholesale; they have no identity of
	// their own outside the recipe.
	if _, err := tx.Exec(ctx, `
		DELETE FROM recipe_ingredients WHERE recipe_id = $1
	`, recipe.ID); err != nil {
		return err
	}

	if err := insertIngredients(ctx, tx, recipe); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

package mealplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/inventory"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const planColumns = `
	id, household_id, recipe_id, planned_date, meal_type, servings, status,
	cooked_at, actual_cost, cost_per_serving, is_leftover_source,
	leftover_from_id, created_at, updated_at`

func scanPlan(row pgx.Row) (*MealPlan, error) {
	var plan MealPlan
	err := row.Scan(
		&plan.ID, &plan.HouseholdID, &plan.RecipeID, &plan.PlannedDate,
		&plan.MealType, &plan.Servings, &plan.Status, &plan.CookedAt,
		&plan.ActualCost, &plan.CostPerServing, &plan.IsLeftoverSource,
		&plan.LeftoverFromID, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PostgresRepository) Create(ctx context.Context, plan *MealPlan) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO meal_plans (id, household_id, recipe_id, planned_date,
			meal_type, servings, status, is_leftover_source, leftover_from_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING created_at, updated_at
	`,
		plan.ID, plan.HouseholdID, plan.RecipeID, plan.PlannedDate,
		plan.MealType, plan.Servings, plan.Status, plan.IsLeftoverSource,
		plan.LeftoverFromID,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*MealPlan, error) {
	return scanPlan(r.db.QueryRow(ctx, `
		SELECT `+planColumns+` FROM meal_plans WHERE id = $1
	`, id))
}

func (r *PostgresRepository) List(
	ctx context.Context,
	householdID uuid.UUID,
	filter PlanFilter,
) ([]MealPlan, int, error) {

	where := ` WHERE household_id = $1`
	args := []interface{}{householdID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND planned_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND planned_date <= $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM meal_plans`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + planColumns + ` FROM meal_plans` + where + ` ORDER BY planned_date ASC`
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
		return nil, 0, err
	}
	defer rows.Close()

	var plans []MealPlan
	for rows.Next() {
		var plan MealPlan
		if err := rows.Scan(
			&plan.ID, &plan.HouseholdID, &plan.RecipeID, &plan.PlannedDate,
			&plan.MealType, &plan.Servings, &plan.Status, &plan.CookedAt,
			&plan.ActualCost, &plan.CostPerServing, &plan.IsLeftoverSource,
			&plan.LeftoverFromID, &plan.CreatedAt, &plan.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		plans = append(plans, plan)
	}

	return plans, total, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, plan *MealPlan) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE meal_plans
		SET planned_date = $2, meal_type = $3, servings = $4, status = $5,
		    is_leftover_source = $6, updated_at = now()
		WHERE id = $1
	`,
		plan.ID, plan.PlannedDate, plan.MealType, plan.Servings,
		plan.Status, plan.IsLeftoverSource,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meal_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// Cook marks the plan cooked and consumes inventory FIFO, all in one
// transaction. Lots are locked oldest-first per ingredient so concurrent
// cooks against the same stock serialize instead of double-spending.
func (r *PostgresRepository) Cook(
	ctx context.Context,
	planID uuid.UUID,
	servings int,
	requirements []Requirement,
	actor *uuid.UUID,
) (*MealPlan, *CookOutcome, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	plan, err := scanPlan(tx.QueryRow(ctx, `
		SELECT `+planColumns+` FROM meal_plans WHERE id = $1 FOR UPDATE
	`, planID))
	if err != nil {
		return nil, nil, err
	}
	if plan.Status == StatusCooked {
		return nil, nil, ErrAlreadyCooked
	}

	outcome := &CookOutcome{
		ActualCost: decimal.Zero,
		Consumed:   []inventory.Consumed{},
	}
	reason := fmt.Sprintf("cooked:meal_plan:%s", planID)

	for _, req := range requirements {
		lots, units, err := lockIngredientLots(ctx, tx, plan.HouseholdID, req.IngredientID)
		if err != nil {
			return nil, nil, err
		}

		allocation, err := inventory.Allocate(lots, req.Quantity)
		if err != nil {
			return nil, nil, err
		}

		for _, consumed := range allocation.Consumed {
			if _, err := tx.Exec(ctx, `
				INSERT INTO inventory_events (id, lot_id, event_type, quantity_delta, unit, reason, created_by, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, now())
			`, uuid.New(), consumed.LotID, inventory.EventConsume,
				consumed.Quantity.Neg(), units[consumed.LotID], reason, actor,
			); err != nil {
				return nil, nil, err
			}

			if _, err := tx.Exec(ctx, `
				UPDATE inventory_lots SET quantity = quantity - $2, updated_at = now() WHERE id = $1
			`, consumed.LotID, consumed.Quantity); err != nil {
				return nil, nil, err
			}
		}

		outcome.ActualCost = outcome.ActualCost.Add(allocation.TotalCost)
		outcome.Consumed = append(outcome.Consumed, allocation.Consumed...)

		if !allocation.Satisfied() {
			outcome.Shortages = append(outcome.Shortages, IngredientShortage{
				IngredientID: req.IngredientID,
				Name:         req.Name,
				Quantity:     allocation.Shortage,
				Unit:         req.Unit,
			})
		}
	}

	costPerServing := decimal.Zero
	if servings > 0 {
		costPerServing = outcome.ActualCost.Div(decimal.NewFromInt(int64(servings)))
	}
	outcome.CostPerServing = costPerServing

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `
		UPDATE meal_plans
		SET status = $2, cooked_at = $3, actual_cost = $4,
		    cost_per_serving = $5, servings = $6, updated_at = now()
		WHERE id = $1
	`, planID, StatusCooked, now, outcome.ActualCost, costPerServing, servings); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	plan.Status = StatusCooked
	plan.CookedAt = &now
	plan.ActualCost = &outcome.ActualCost
	plan.CostPerServing = &costPerServing
	plan.Servings = servings

	return plan, outcome, nil
}

// lockIngredientLots selects a household's stocked lots for one ingredient
// oldest-first with row locks, and returns FIFO snapshots plus each lot's
// unit for the consume events.
func lockIngredientLots(
	ctx context.Context,
	tx pgx.Tx,
	householdID, ingredientID uuid.UUID,
) ([]inventory.LotSnapshot, map[uuid.UUID]string, error) {

	rows, err := tx.Query(ctx, `
		SELECT id, quantity, initial_quantity, total_cost, purchase_date, unit
		FROM inventory_lots
		WHERE household_id = $1
		  AND ingredient_id = $2
		  AND quantity > 0
		ORDER BY purchase_date ASC
		FOR UPDATE
	`, householdID, ingredientID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var lots []inventory.LotSnapshot
	units := make(map[uuid.UUID]string)

	for rows.Next() {
		var lot inventory.LotSnapshot
		var unit string
		if err := rows.Scan(
			&lot.ID, &lot.Remaining, &lot.InitialQuantity,
			&lot.TotalCost, &lot.PurchaseDate, &unit,
		); err != nil {
			return nil, nil, err
		}
		lots = append(lots, lot)
		units[lot.ID] = unit
	}

	return lots, units, rows.Err()
}

// --------------------------------------------------
// Leftovers
// --------------------------------------------------

func (r *PostgresRepository) CreateLeftover(ctx context.Context, leftover *Leftover) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `
		INSERT INTO leftovers (id, household_id, meal_plan_id, recipe_id,
			remaining_servings, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING created_at
	`,
		leftover.ID, leftover.HouseholdID, leftover.MealPlanID,
		leftover.RecipeID, leftover.RemainingServings, leftover.Status,
		leftover.ExpiresAt,
	).Scan(&leftover.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE meal_plans SET is_leftover_source = true, updated_at = now() WHERE id = $1
	`, leftover.MealPlanID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListLeftovers(
	ctx context.Context,
	householdID uuid.UUID,
	status *string,
) ([]Leftover, error) {

	query := `
		SELECT id, household_id, meal_plan_id, recipe_id, remaining_servings,
		       status, expires_at, created_at
		FROM leftovers
		WHERE household_id = $1`
	args := []interface{}{householdID}

	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += ` ORDER BY expires_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leftovers []Leftover
	for rows.Next() {
		var lo Leftover
		if err := rows.Scan(
			&lo.ID, &lo.HouseholdID, &lo.MealPlanID, &lo.RecipeID,
			&lo.RemainingServings, &lo.Status, &lo.ExpiresAt, &lo.CreatedAt,
		); err != nil {
			return nil, err
		}
		leftovers = append(leftovers, lo)
	}

	return leftovers, rows.Err()
}

func (r *PostgresRepository) UpdateLeftover(
	ctx context.Context,
	id uuid.UUID,
	status *string,
	remainingServings *int,
) (*Leftover, error) {

	var lo Leftover
	err := r.db.QueryRow(ctx, `
		UPDATE leftovers
		SET status = COALESCE($2, status),
		    remaining_servings = COALESCE($3, remaining_servings)
		WHERE id = $1
		RETURNING id, household_id, meal_plan_id, recipe_id, remaining_servings,
		          status, expires_at, created_at
	`, id, status, remainingServings).Scan(
		&lo.ID, &lo.HouseholdID, &lo.MealPlanID, &lo.RecipeID,
		&lo.RemainingServings, &lo.Status, &lo.ExpiresAt, &lo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeftoverNotFound
		}
		return nil, err
	}

	return &lo, nil
}

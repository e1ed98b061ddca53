package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		// -------------------------------
		// HOUSEHOLDS AND USERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS households (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		// -------------------------------
		// INGREDIENT CATALOG
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			icon VARCHAR(50),
			color VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS ingredients (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			canonical_name VARCHAR(255) UNIQUE NOT NULL,
			default_unit VARCHAR(20) NOT NULL DEFAULT 'pcs',
			aliases TEXT[] NOT NULL DEFAULT '{}',
			category_id UUID REFERENCES categories(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		// -------------------------------
		// RECEIPTS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS receipts (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			status VARCHAR(50) NOT NULL DEFAULT 'UPLOADED',
			inventory_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			merchant_name VARCHAR(255) NOT NULL DEFAULT 'Unknown',
			store_location VARCHAR(255),
			purchase_date TIMESTAMPTZ NOT NULL,
			total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			currency VARCHAR(10) NOT NULL DEFAULT 'NOK',
			payment_method VARCHAR(100),
			image_url VARCHAR(500),
			raw_ocr_text TEXT,
			ocr_error TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS receipt_items (
			id UUID PRIMARY KEY,
			receipt_id UUID NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
			raw_name VARCHAR(255) NOT NULL,
			canonical_name VARCHAR(255),
			quantity NUMERIC(12,3),
			unit VARCHAR(20),
			unit_price NUMERIC(14,4),
			total_price NUMERIC(12,2) NOT NULL,
			is_pant BOOLEAN NOT NULL DEFAULT false,
			discount_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			ingredient_id UUID REFERENCES ingredients(id),
			ingredient_confidence NUMERIC(4,3),
			inventory_lot_id UUID,
			skip_inventory BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		// -------------------------------
		// INVENTORY
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS inventory_lots (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			ingredient_id UUID NOT NULL REFERENCES ingredients(id),
			initial_quantity NUMERIC(14,3) NOT NULL,
			quantity NUMERIC(14,3) NOT NULL,
			unit VARCHAR(20) NOT NULL,
			location VARCHAR(20) NOT NULL,
			purchase_date TIMESTAMPTZ NOT NULL,
			expiry_date TIMESTAMPTZ,
			unit_cost NUMERIC(14,6) NOT NULL DEFAULT 0,
			total_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
			currency VARCHAR(10) NOT NULL DEFAULT 'NOK',
			confidence NUMERIC(4,3),
			source_type VARCHAR(20) NOT NULL,
			source_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS inventory_events (
			id UUID PRIMARY KEY,
			lot_id UUID NOT NULL REFERENCES inventory_lots(id) ON DELETE CASCADE,
			event_type VARCHAR(20) NOT NULL,
			quantity_delta NUMERIC(14,3) NOT NULL,
			unit VARCHAR(20) NOT NULL,
			reason TEXT,
			created_by UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		// -------------------------------
		// RECIPES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS recipes (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			servings INT NOT NULL,
			prep_minutes INT,
			cook_minutes INT,
			instructions TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id UUID PRIMARY KEY,
			recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id UUID REFERENCES ingredients(id),
			raw_text TEXT NOT NULL,
			name VARCHAR(255) NOT NULL,
			quantity NUMERIC(12,3),
			unit VARCHAR(20),
			note TEXT,
			position INT NOT NULL
		)`,

		// -------------------------------
		// MEAL PLANNING
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS meal_plans (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			recipe_id UUID NOT NULL REFERENCES recipes(id),
			planned_date TIMESTAMPTZ NOT NULL,
			meal_type VARCHAR(20) NOT NULL,
			servings INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'planned',
			cooked_at TIMESTAMPTZ,
			actual_cost NUMERIC(12,2),
			cost_per_serving NUMERIC(12,2),
			is_leftover_source BOOLEAN NOT NULL DEFAULT false,
			leftover_from_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS leftovers (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			meal_plan_id UUID NOT NULL REFERENCES meal_plans(id),
			recipe_id UUID NOT NULL REFERENCES recipes(id),
			remaining_servings INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'available',
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		// -------------------------------
		// SHOPPING
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS shopping_lists (
			id UUID PRIMARY KEY,
			household_id UUID NOT NULL REFERENCES households(id),
			name VARCHAR(255) NOT NULL,
			date_range_start TIMESTAMPTZ NOT NULL,
			date_range_end TIMESTAMPTZ NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS shopping_list_items (
			id UUID PRIMARY KEY,
			shopping_list_id UUID NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
			ingredient_id UUID NOT NULL REFERENCES ingredients(id),
			required_quantity NUMERIC(14,3) NOT NULL,
			required_unit VARCHAR(20) NOT NULL,
			on_hand_quantity NUMERIC(14,3) NOT NULL DEFAULT 0,
			to_buy_quantity NUMERIC(14,3) NOT NULL,
			is_checked BOOLEAN NOT NULL DEFAULT false,
			actual_quantity NUMERIC(14,3),
			notes TEXT,
			source_meal_plans UUID[] NOT NULL DEFAULT '{}'
		)`,

		// -------------------------------
		// INDEXES
		// -------------------------------
		`CREATE INDEX IF NOT EXISTS idx_receipts_household ON receipts(household_id, purchase_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_status ON receipts(status)`,
		`CREATE INDEX IF NOT EXISTS idx_receipt_items_receipt ON receipt_items(receipt_id)`,
		`CREATE INDEX IF NOT EXISTS idx_lots_household_ingredient ON inventory_lots(household_id, ingredient_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_lot ON inventory_events(lot_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_household ON recipes(household_id)`,
		`CREATE INDEX IF NOT EXISTS idx_meal_plans_household_date ON meal_plans(household_id, planned_date)`,
		`CREATE INDEX IF NOT EXISTS idx_leftovers_household ON leftovers(household_id, expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_shopping_lists_household ON shopping_lists(household_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

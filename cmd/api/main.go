package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hamzafer/KjopsMinne/internal/analytics"
	"github.com/hamzafer/KjopsMinne/internal/auth"
	"github.com/hamzafer/KjopsMinne/internal/config"
	"github.com/hamzafer/KjopsMinne/internal/db"
	"github.com/hamzafer/KjopsMinne/internal/ingredient"
	"github.com/hamzafer/KjopsMinne/internal/inventory"
	"github.com/hamzafer/KjopsMinne/internal/logger"
	"github.com/hamzafer/KjopsMinne/internal/mealplan"
	"github.com/hamzafer/KjopsMinne/internal/receipt"
	"github.com/hamzafer/KjopsMinne/internal/recipe"
	"github.com/hamzafer/KjopsMinne/internal/restock"
	"github.com/hamzafer/KjopsMinne/internal/router"
	"github.com/hamzafer/KjopsMinne/internal/shopping"
	"github.com/hamzafer/KjopsMinne/internal/storage"

	"go.uber.org/zap"
)

func main() {
	log := logger.Init()
	defer logger.Sync()

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}

	required := []string{
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatal("missing env var", zap.String("name", k))
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pool := db.ConnectPostgres()
	defer pool.Close()

	log.Info("connected to PostgreSQL")

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("R2 init failed", zap.Error(err))
	}

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pool)
	ingredientRepo := ingredient.NewPostgresRepository(pool)
	receiptRepo := receipt.NewPostgresRepository(pool)
	inventoryRepo := inventory.NewPostgresRepository(pool)
	recipeRepo := recipe.NewPostgresRepository(pool)
	planRepo := mealplan.NewPostgresRepository(pool)
	shoppingRepo := shopping.NewPostgresRepository(pool)
	analyticsRepo := analytics.NewPostgresRepository(pool)

	// ───────────────────────── SEED ─────────────────────────
	if seeded, err := ingredient.SeedCatalog(context.Background(), ingredientRepo); err != nil {
		log.Warn("catalog seeding failed", zap.Error(err))
	} else if seeded > 0 {
		log.Info("seeded ingredient catalog", zap.Int("ingredients", seeded))
	}

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	authService := auth.NewService(userRepo)
	ingredientService := ingredient.NewService(ingredientRepo)
	inventoryService := inventory.NewService(inventoryRepo)
	receiptService := receipt.NewService(receiptRepo, ingredientRepo, inventoryService, r2Client)
	recipeService := recipe.NewService(recipeRepo, ingredientRepo)
	planService := mealplan.NewService(planRepo, recipeRepo)
	shoppingService := shopping.NewService(shoppingRepo, planService, inventoryRepo)
	restockService := restock.NewService(inventoryRepo)
	analyticsService := analytics.NewService(analyticsRepo)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(router.Handlers{
		Auth:        auth.NewHandler(authService),
		Ingredients: ingredient.NewHandler(ingredientService),
		Receipts:    receipt.NewHandler(receiptService),
		Inventory:   inventory.NewHandler(inventoryService),
		Recipes:     recipe.NewHandler(recipeService),
		MealPlans:   mealplan.NewHandler(planService),
		Shopping:    shopping.NewHandler(shoppingService),
		Restock:     restock.NewHandler(restockService),
		Analytics:   analytics.NewHandler(analyticsService),
	}, cfg.Server.AllowedOrigins)

	// ───────────────────────── START ─────────────────────────
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("API listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

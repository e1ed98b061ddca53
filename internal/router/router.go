package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hamzafer/KjopsMinne/internal/analytics"
	"github.com/hamzafer/KjopsMinne/internal/auth"
	"github.com/hamzafer/KjopsMinne/internal/ingredient"
	"github.com/hamzafer/KjopsMinne/internal/inventory"
	"github.com/hamzafer/KjopsMinne/internal/mealplan"
	"github.com/hamzafer/KjopsMinne/internal/middleware"
	"github.com/hamzafer/KjopsMinne/internal/receipt"
	"github.com/hamzafer/KjopsMinne/internal/recipe"
	"github.com/hamzafer/KjopsMinne/internal/restock"
	"github.com/hamzafer/KjopsMinne/internal/shopping"
)

// Handlers bundles every route handler the API mounts.
type Handlers struct {
	Auth        *auth.Handler
	Ingredients *ingredient.Handler
	Receipts    *receipt.Handler
	Inventory   *inventory.Handler
	Recipes     *recipe.Handler
	MealPlans   *mealplan.Handler
	Shopping    *shopping.Handler
	Restock     *restock.Handler
	Analytics   *analytics.Handler
}

func New(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", h.Auth.Me)
		}
	}

	// Everything below requires a household session.
	api := r.Group("")
	api.Use(middleware.AuthMiddleware())

	// ───────────────────────── INGREDIENTS ─────────────────────────
	ingredients := api.Group("/ingredients")
	{
		ingredients.GET("", h.Ingredients.List)
		ingredients.POST("", h.Ingredients.Create)
		ingredients.GET("/categories", h.Ingredients.ListCategories)
		ingredients.POST("/match", h.Ingredients.Match)
		ingredients.GET("/:id", h.Ingredients.Get)
	}

	// ───────────────────────── RECEIPTS ─────────────────────────
	receipts := api.Group("/receipts")
	{
		receipts.POST("/upload", h.Receipts.Upload)
		receipts.GET("", h.Receipts.List)
		receipts.GET("/:id", h.Receipts.Get)
		receipts.DELETE("/:id", h.Receipts.Delete)
		receipts.PATCH("/:id/items/:itemId", h.Receipts.UpdateItem)
		receipts.POST("/:id/process", h.Receipts.Process)
		receipts.POST("/:id/skip", h.Receipts.Skip)
	}

	// ───────────────────────── INVENTORY ─────────────────────────
	inv := api.Group("/inventory")
	{
		inv.GET("", h.Inventory.Aggregate)
		inv.POST("/lots", h.Inventory.CreateLot)
		inv.GET("/lots", h.Inventory.ListLots)
		inv.GET("/lots/:id", h.Inventory.GetLot)
		inv.PATCH("/lots/:id", h.Inventory.UpdateLot)
		inv.GET("/lots/:id/history", h.Inventory.History)
		inv.POST("/lots/:id/consume", h.Inventory.Consume)
		inv.POST("/lots/:id/discard", h.Inventory.Discard)
		inv.POST("/lots/:id/transfer", h.Inventory.Transfer)
		inv.POST("/lots/:id/adjust", h.Inventory.Adjust)
	}

	// ───────────────────────── RECIPES ─────────────────────────
	recipes := api.Group("/recipes")
	{
		recipes.POST("", h.Recipes.Create)
		recipes.POST("/import", h.Recipes.Import)
		recipes.GET("", h.Recipes.List)
		recipes.GET("/:id", h.Recipes.Get)
		recipes.PUT("/:id", h.Recipes.Update)
		recipes.DELETE("/:id", h.Recipes.Delete)
	}

	// ───────────────────────── MEAL PLANS ─────────────────────────
	plans := api.Group("/meal-plans")
	{
		plans.POST("", h.MealPlans.Create)
		plans.GET("", h.MealPlans.List)
		plans.GET("/:id", h.MealPlans.Get)
		plans.PATCH("/:id", h.MealPlans.Update)
		plans.DELETE("/:id", h.MealPlans.Delete)
		plans.POST("/:id/cook", h.MealPlans.Cook)
	}

	leftovers := api.Group("/leftovers")
	{
		leftovers.GET("", h.MealPlans.ListLeftovers)
		leftovers.PATCH("/:id", h.MealPlans.UpdateLeftover)
	}

	// ───────────────────────── SHOPPING ─────────────────────────
	lists := api.Group("/shopping-lists")
	{
		lists.POST("/generate", h.Shopping.Generate)
		lists.GET("", h.Shopping.List)
		lists.GET("/:id", h.Shopping.Get)
		lists.PATCH("/:id", h.Shopping.Update)
		lists.DELETE("/:id", h.Shopping.Delete)
		lists.PATCH("/:id/items/:itemId", h.Shopping.UpdateItem)
	}

	// ───────────────────────── ANALYTICS ─────────────────────────
	analyticsGroup := api.Group("/analytics")
	{
		analyticsGroup.GET("/summary", h.Analytics.Summary)
		analyticsGroup.GET("/by-category", h.Analytics.ByCategory)
		analyticsGroup.GET("/restock", h.Restock.Predictions)
	}

	return r
}

package mealplan

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hamzafer/KjopsMinne/internal/middleware"
	"github.com/hamzafer/KjopsMinne/internal/recipe"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createPlanRequest struct {
	RecipeID       uuid.UUID  `json:"recipe_id" binding:"required"`
	PlannedDate    time.Time  `json:"planned_date" binding:"required"`
	MealType       string     `json:"meal_type" binding:"required"`
	Servings       int        `json:"servings"`
	LeftoverFromID *uuid.UUID `json:"leftover_from_id"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.service.Create(c.Request.Context(), NewPlanInput{
		HouseholdID:    middleware.HouseholdID(c),
		RecipeID:       req.RecipeID,
		PlannedDate:    req.PlannedDate,
		MealType:       req.MealType,
		Servings:       req.Servings,
		LeftoverFromID: req.LeftoverFromID,
	})
	if err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *Handler) List(c *gin.Context) {
	var filter PlanFilter

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		filter.EndDate = &t
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Limit = n
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Offset = n
		}
	}

	plans, total, err := h.service.List(c.Request.Context(), middleware.HouseholdID(c), filter)
	if err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plans": plans, "total": total})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return
	}

	plan, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

type updatePlanRequest struct {
	PlannedDate *time.Time `json:"planned_date"`
	MealType    *string    `json:"meal_type"`
	Servings    *int       `json:"servings"`
	Status      *string    `json:"status"`
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return
	}

	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.service.Update(c.Request.Context(), id, UpdatePlanInput{
		PlannedDate: req.PlannedDate,
		MealType:    req.MealType,
		Servings:    req.Servings,
		Status:      req.Status,
	})
	if err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal plan deleted"})
}

type cookRequest struct {
	ActualServings   *int `json:"actual_servings"`
	CreateLeftover   bool `json:"create_leftover"`
	LeftoverServings *int `json:"leftover_servings"`
}

func (h *Handler) Cook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return
	}

	var req cookRequest
	_ = c.ShouldBindJSON(&req)

	plan, outcome, leftover, err := h.service.Cook(c.Request.Context(), id, CookInput{
		ActualServings:   req.ActualServings,
		CreateLeftover:   req.CreateLeftover,
		LeftoverServings: req.LeftoverServings,
	}, middleware.UserID(c))
	if err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_plan":          plan,
		"actual_cost":        outcome.ActualCost,
		"cost_per_serving":   outcome.CostPerServing,
		"inventory_consumed": outcome.Consumed,
		"shortages":          outcome.Shortages,
		"leftover":           leftover,
	})
}

// --------------------------------------------------
// Leftovers
// --------------------------------------------------

func (h *Handler) ListLeftovers(c *gin.Context) {
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	leftovers, err := h.service.ListLeftovers(c.Request.Context(), middleware.HouseholdID(c), status)
	if err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leftovers": leftovers, "count": len(leftovers)})
}

type updateLeftoverRequest struct {
	Status            *string `json:"status"`
	RemainingServings *int    `json:"remaining_servings"`
}

func (h *Handler) UpdateLeftover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leftover id"})
		return
	}

	var req updateLeftoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leftover, err := h.service.UpdateLeftover(c.Request.Context(), id, req.Status, req.RemainingServings)
	if err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, leftover)
}

func writePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrLeftoverNotFound),
		errors.Is(err, recipe.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyCooked),
		errors.Is(err, ErrInvalidMealType),
		errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

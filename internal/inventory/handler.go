package inventory

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Lots
// --------------------------------------------------

type createLotRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
	Location     string          `json:"location" binding:"required"`
	PurchaseDate *time.Time      `json:"purchase_date"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Currency     string          `json:"currency"`
}

func (h *Handler) CreateLot(c *gin.Context) {
	var req createLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := NewLotInput{
		HouseholdID:  middleware.HouseholdID(c),
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		Location:     req.Location,
		ExpiryDate:   req.ExpiryDate,
		TotalCost:    req.TotalCost,
		Currency:     req.Currency,
		Confidence:   decimal.NewFromInt(1),
		SourceType:   SourceManual,
	}
	if req.PurchaseDate != nil {
		in.PurchaseDate = *req.PurchaseDate
	}

	lot, err := h.service.AddLot(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lot)
}

func (h *Handler) ListLots(c *gin.Context) {
	var filter LotFilter

	if raw := c.Query("ingredient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient_id"})
			return
		}
		filter.IngredientID = &id
	}
	if loc := c.Query("location"); loc != "" {
		if !ValidLocation(loc) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location"})
			return
		}
		filter.Location = &loc
	}

	lots, err := h.service.ListLots(c.Request.Context(), middleware.HouseholdID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lots": lots, "count": len(lots)})
}

func (h *Handler) GetLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lot id"})
		return
	}

	lot, err := h.service.GetLot(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lot)
}

type updateLotRequest struct {
	Location   *string    `json:"location"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

func (h *Handler) UpdateLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lot id"})
		return
	}

	var req updateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lot, err := h.service.UpdateLot(c.Request.Context(), id, req.Location, req.ExpiryDate)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lot)
}

func (h *Handler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lot id"})
		return
	}

	events, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// --------------------------------------------------
// Quantity mutations
// --------------------------------------------------

type consumeRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Reason   string          `json:"reason"`
}

func (h *Handler) Consume(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lot id"})
		return
	}

	var req consumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lot, err := h.service.Consume(c.Request.Context(), id, req.Quantity, req.Reason, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lot)
}

type discardRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Discard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lot id"})
		return
	}

	// body is optional; a bare POST discards with no reason
	var req discardRequest
	_ = c.ShouldBindJSON(&req)

	lot, err := h.service.Discard(c.Request.Context(), id, req.Reason, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lot)
}

type transferRequest struct {
	Location string `json:"location" binding:"required"`
}

func (h *Handler) Transfer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lot id"})
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lot, err := h.service.Transfer(c.Request.Context(), id, req.Location, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lot)
}

type adjustRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required"`
	Reason string          `json:"reason"`
}

func (h *Handler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lot id"})
		return
	}

	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lot, err := h.service.Adjust(c.Request.Context(), id, req.Delta, req.Reason, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lot)
}

// --------------------------------------------------
// Aggregated views
// --------------------------------------------------

func (h *Handler) Aggregate(c *gin.Context) {
	var location *string
	if loc := c.Query("location"); loc != "" {
		location = &loc
	}

	items, err := h.service.Aggregate(c.Request.Context(), middleware.HouseholdID(c), location)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInsufficientQuantity),
		errors.Is(err, ErrInvalidLocation),
		errors.Is(err, ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

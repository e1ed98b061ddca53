package receipt

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/ingredient"
	"github.com/hamzafer/KjopsMinne/internal/inventory"
	"github.com/hamzafer/KjopsMinne/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	receipt, err := h.service.Upload(c.Request.Context(), middleware.HouseholdID(c), file)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFile) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload receipt"})
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) List(c *gin.Context) {
	filter := Filter{
		Status:          c.Query("status"),
		InventoryStatus: c.Query("inventory_status"),
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = v
	}

	receipts, total, err := h.service.List(c.Request.Context(), middleware.HouseholdID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list receipts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receipts": receipts,
		"total":    total,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
		return
	}

	receipt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeReceiptError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeReceiptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "receipt deleted"})
}

type itemUpdateRequest struct {
	IngredientID  *uuid.UUID       `json:"ingredient_id"`
	SkipInventory *bool            `json:"skip_inventory"`
	Quantity      *decimal.Decimal `json:"quantity"`
	Unit          *string          `json:"unit"`
}

func (h *Handler) UpdateItem(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req itemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), receiptID, itemID, ItemUpdate{
		IngredientID:  req.IngredientID,
		SkipInventory: req.SkipInventory,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
	})
	if err != nil {
		writeReceiptError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

type processRequest struct {
	Location string `json:"location"`
}

func (h *Handler) Process(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
		return
	}

	var req processRequest
	// body is optional; a bare POST stocks the pantry
	_ = c.ShouldBindJSON(&req)

	receipt, result, err := h.service.ProcessToInventory(
		c.Request.Context(), id, req.Location, middleware.UserID(c),
	)
	if err != nil {
		writeReceiptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receipt": receipt,
		"result":  result,
	})
}

func (h *Handler) Skip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
		return
	}

	receipt, err := h.service.Skip(c.Request.Context(), id)
	if err != nil {
		writeReceiptError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func writeReceiptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrReceiptNotFound), errors.Is(err, ErrItemNotFound),
		errors.Is(err, ingredient.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyProcessed), errors.Is(err, ErrNotParsed),
		errors.Is(err, inventory.ErrInvalidLocation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

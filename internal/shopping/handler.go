package shopping

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

type generateRequest struct {
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Name      string    `json:"name"`
}

func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EndDate.Before(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date is before start_date"})
		return
	}

	result, err := h.service.Generate(
		c.Request.Context(),
		middleware.HouseholdID(c),
		req.StartDate, req.EndDate, req.Name,
	)
	if err != nil {
		writeListError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *Handler) List(c *gin.Context) {
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	lists, err := h.service.List(c.Request.Context(), middleware.HouseholdID(c), status)
	if err != nil {
		writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists, "count": len(lists)})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}

	list, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

type updateListRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}

	var req updateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.Update(c.Request.Context(), id, req.Name, req.Status)
	if err != nil {
		writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "shopping list deleted"})
}

type updateItemRequest struct {
	IsChecked      *bool            `json:"is_checked"`
	ActualQuantity *decimal.Decimal `json:"actual_quantity"`
	Notes          *string          `json:"notes"`
}

func (h *Handler) UpdateItem(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shopping list id"})
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), listID, itemID, ItemUpdate{
		IsChecked:      req.IsChecked,
		ActualQuantity: req.ActualQuantity,
		Notes:          req.Notes,
	})
	if err != nil {
		writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func writeListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrListNotFound), errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidListStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

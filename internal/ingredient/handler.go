package ingredient

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	ingredients, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ing)
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name          string     `json:"name"`
		CanonicalName string     `json:"canonical_name"`
		DefaultUnit   string     `json:"default_unit"`
		Aliases       []string   `json:"aliases"`
		CategoryID    *uuid.UUID `json:"category_id"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ing, err := h.service.Create(
		c.Request.Context(),
		req.Name,
		req.CanonicalName,
		req.DefaultUnit,
		req.Aliases,
		req.CategoryID,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ing)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Match exposes the matcher for manual review tooling: given a raw name,
// report the best catalog match, if any.
func (h *Handler) Match(c *gin.Context) {
	var req struct {
		RawName string `json:"raw_name"`
	}

	if err := c.BindJSON(&req); err != nil || req.RawName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "raw_name is required"})
		return
	}

	result, err := h.service.MatchName(c.Request.Context(), req.RawName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result == nil {
		c.JSON(http.StatusOK, gin.H{
			"matched":    false,
			"normalized": Normalize(req.RawName),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matched":    true,
		"normalized": Normalize(req.RawName),
		"match":      result,
	})
}

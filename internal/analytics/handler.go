package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hamzafer/KjopsMinne/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Summary(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	summary, err := h.service.Summary(c.Request.Context(), middleware.HouseholdID(c), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ByCategory(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	breakdown, err := h.service.ByCategory(c.Request.Context(), middleware.HouseholdID(c), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute breakdown"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": breakdown})
}

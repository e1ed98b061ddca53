package restock

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hamzafer/KjopsMinne/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Predictions(c *gin.Context) {
	householdID := middleware.HouseholdID(c)

	predictions, err := h.service.Predictions(c.Request.Context(), householdID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions":  predictions,
		"household_id": householdID,
		"generated_at": time.Now().UTC(),
	})
}

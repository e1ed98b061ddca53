package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hamzafer/KjopsMinne/internal/auth"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("householdID", claims.HouseholdID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}

// HouseholdID returns the authenticated household scope. It is only valid
// behind AuthMiddleware; elsewhere it returns the zero UUID.
func HouseholdID(c *gin.Context) uuid.UUID {
	raw, exists := c.Get("householdID")
	if !exists {
		return uuid.Nil
	}
	id, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// UserID returns the authenticated user, or nil outside AuthMiddleware.
// Callers use it as the actor on audit events, where absence is legal.
func UserID(c *gin.Context) *uuid.UUID {
	raw, exists := c.Get("userID")
	if !exists {
		return nil
	}
	id, ok := raw.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

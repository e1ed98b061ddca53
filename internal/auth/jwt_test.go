package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	user := &User{
		ID:          uuid.New(),
		HouseholdID: uuid.New(),
		Email:       "kari@example.com",
	}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("expected userID %s, got %s", user.ID, claims.UserID)
	}
	if claims.HouseholdID != user.HouseholdID {
		t.Errorf("expected householdID %s, got %s", user.HouseholdID, claims.HouseholdID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, claims.Email)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")

	user := &User{ID: uuid.New(), HouseholdID: uuid.New(), Email: "ola@example.com"}
	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")

	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

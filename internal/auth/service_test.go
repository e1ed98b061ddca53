package auth

import (
	"context"
	"testing"
)

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	password := "Password@123"

	_, err := service.Register(context.Background(), "Test User", "test@example.com", password, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterCreatesHousehold(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	user, err := service.Register(context.Background(), "Kari", "kari@example.com", "Password@123", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	household, ok := repo.households[user.HouseholdID]
	if !ok {
		t.Fatalf("household was not created")
	}
	if household.Name != "Kari's household" {
		t.Errorf("unexpected default household name: %q", household.Name)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	ctx := context.Background()
	if _, err := service.Register(ctx, "A", "dup@example.com", "Password@123", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Register(ctx, "B", "dup@example.com", "Password@123", ""); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	ctx := context.Background()
	if _, err := service.Register(ctx, "A", "a@example.com", "Password@123", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Login(ctx, "a@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
)

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// Register creates a new user together with a fresh household. The first
// member founds the household; naming it is optional.
func (s *Service) Register(ctx context.Context, name, email, password, householdName string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("missing required fields")
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	if householdName == "" {
		householdName = fmt.Sprintf("%s's household", name)
	}

	household := &Household{
		ID:   uuid.New(),
		Name: householdName,
	}
	user := &User{
		ID:          uuid.New(),
		HouseholdID: household.ID,
		Name:        name,
		Email:       email,
		Password:    string(hashedPassword),
	}

	if err := s.repo.CreateWithHousehold(ctx, household, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*User, *Household, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	household, err := s.repo.GetHousehold(ctx, user.HouseholdID)
	if err != nil {
		return nil, nil, err
	}
	return user, household, nil
}

package ingredient

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Ingredient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Ingredient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// Create adds a catalog ingredient. The canonical name defaults to the
// normalized display name when not given, and is immutable afterwards.
func (s *Service) Create(
	ctx context.Context,
	name, canonicalName, defaultUnit string,
	aliases []string,
	categoryID *uuid.UUID,
) (*Ingredient, error) {

	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}

	if canonicalName == "" {
		canonicalName = Normalize(name)
	}
	if defaultUnit == "" {
		defaultUnit = "g"
	}
	if aliases == nil {
		aliases = []string{}
	}

	ing := &Ingredient{
		ID:            uuid.New(),
		Name:          name,
		CanonicalName: canonicalName,
		DefaultUnit:   defaultUnit,
		Aliases:       aliases,
		CategoryID:    categoryID,
	}

	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}

	return ing, nil
}

// MatchName resolves a raw item name against the current catalog.
// A nil result means no candidate reached the confidence threshold.
func (s *Service) MatchName(ctx context.Context, rawName string) (*MatchResult, error) {
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return Match(rawName, catalog), nil
}

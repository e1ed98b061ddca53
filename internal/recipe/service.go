package recipe

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzafer/KjopsMinne/internal/ingredient"
)

type Service struct {
	repo        Repository
	ingredients ingredient.Repository
}

func NewService(repo Repository, ingredients ingredient.Repository) *Service {
	return &Service{repo: repo, ingredients: ingredients}
}

// IngredientLineInput is one submitted ingredient, either as free text
// (Raw) or as an already-structured line. Raw wins when both are present.
type IngredientLineInput struct {
	Raw      string           `json:"raw"`
	Name     string           `json:"name"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     string           `json:"unit"`
	Note     *string          `json:"note"`
}

type NewRecipeInput struct {
	HouseholdID  uuid.UUID
	Name         string
	Description  *string
	Servings     int
	PrepMinutes  *int
	CookMinutes  *int
	Instructions *string
	Tags         []string
	Ingredients  []IngredientLineInput
}

func (s *Service) Create(ctx context.Context, in NewRecipeInput) (*Recipe, error) {
	if in.Name == "" {
		return nil, errors.New("recipe name is required")
	}
	if in.Servings <= 0 {
		in.Servings = 2
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}

	lines, err := s.buildLines(ctx, in.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &Recipe{
		ID:           uuid.New(),
		HouseholdID:  in.HouseholdID,
		Name:         in.Name,
		Description:  in.Description,
		Servings:     in.Servings,
		PrepMinutes:  in.PrepMinutes,
		CookMinutes:  in.CookMinutes,
		Instructions: in.Instructions,
		Tags:         in.Tags,
		Ingredients:  lines,
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// buildLines turns submitted ingredients into stored lines, parsing free
// text and resolving each name against the catalog.
func (s *Service) buildLines(ctx context.Context, inputs []IngredientLineInput) ([]RecipeIngredient, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	catalog, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]RecipeIngredient, 0, len(inputs))
	for _, input := range inputs {
		var line RecipeIngredient

		if input.Raw != "" {
			parsed := ParseLine(input.Raw)
			line.RawText = parsed.RawText
			line.Name = parsed.Name
			line.Unit = parsed.Unit
			line.Note = parsed.Note
			if parsed.Quantity != nil {
				line.Quantity = *parsed.Quantity
			}
		} else {
			line.RawText = input.Name
			line.Name = input.Name
			line.Unit = input.Unit
			line.Note = input.Note
			if input.Quantity != nil {
				line.Quantity = *input.Quantity
			}
		}

		if line.Name != "" {
			if match := ingredient.Match(line.Name, catalog); match != nil {
				id := match.IngredientID
				line.IngredientID = &id
			}
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// ImportInput is an exported-recipe payload: everything is optional except
// the name, ingredients arrive as free-text lines, and instructions come as
// separate steps.
type ImportInput struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Servings        int      `json:"servings"`
	PrepMinutes     *int     `json:"prep_minutes"`
	CookMinutes     *int     `json:"cook_minutes"`
	Instructions    []string `json:"instructions"`
	IngredientLines []string `json:"ingredient_lines"`
	Tags            []string `json:"tags"`
	SourceURL       *string  `json:"source_url"`
}

// Import creates a recipe from an exported payload, running every
// ingredient line through the free-text parser.
func (s *Service) Import(ctx context.Context, householdID uuid.UUID, in ImportInput) (*Recipe, error) {
	inputs := make([]IngredientLineInput, 0, len(in.IngredientLines))
	for _, raw := range in.IngredientLines {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		inputs = append(inputs, IngredientLineInput{Raw: raw})
	}

	var instructions *string
	if len(in.Instructions) > 0 {
		joined := strings.Join(in.Instructions, "\n")
		instructions = &joined
	}

	description := in.Description
	if in.SourceURL != nil && *in.SourceURL != "" {
		source := "Imported from " + *in.SourceURL
		if description != nil && *description != "" {
			source = *description + "\n\n" + source
		}
		description = &source
	}

	return s.Create(ctx, NewRecipeInput{
		HouseholdID:  householdID,
		Name:         in.Name,
		Description:  description,
		Servings:     in.Servings,
		PrepMinutes:  in.PrepMinutes,
		CookMinutes:  in.CookMinutes,
		Instructions: instructions,
		Tags:         in.Tags,
		Ingredients:  inputs,
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, householdID uuid.UUID) ([]Recipe, error) {
	return s.repo.List(ctx, householdID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in NewRecipeInput) (*Recipe, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		existing.Name = in.Name
	}
	if in.Description != nil {
		existing.Description = in.Description
	}
	if in.Servings > 0 {
		existing.Servings = in.Servings
	}
	if in.PrepMinutes != nil {
		existing.PrepMinutes = in.PrepMinutes
	}
	if in.CookMinutes != nil {
		existing.CookMinutes = in.CookMinutes
	}
	if in.Instructions != nil {
		existing.Instructions = in.Instructions
	}
	if in.Tags != nil {
		existing.Tags = in.Tags
	}
	if in.Ingredients != nil {
		lines, err := s.buildLines(ctx, in.Ingredients)
		if err != nil {
			return nil, err
		}
		existing.Ingredients = lines
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

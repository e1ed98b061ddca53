package ingredient

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/google/uuid"
)

// The catalog ships as a JSON fixture so it can be versioned and edited
// without touching code.
//
//go:embed seed_catalog.json
var seedCatalogJSON []byte

type seedCategory struct {
	Name  string  `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

type seedIngredient struct {
	Name          string   `json:"name"`
	CanonicalName string   `json:"canonical_name"`
	DefaultUnit   string   `json:"default_unit"`
	Aliases       []string `json:"aliases"`
	Category      string   `json:"category"`
}

type seedCatalog struct {
	Categories  []seedCategory   `json:"categories"`
	Ingredients []seedIngredient `json:"ingredients"`
}

// SeedCatalog inserts the bundled categories and ingredients, skipping
// entries whose canonical name already exists. Safe to run on every start.
func SeedCatalog(ctx context.Context, repo Repository) (int, error) {
	var catalog seedCatalog
	if err := json.Unmarshal(seedCatalogJSON, &catalog); err != nil {
		return 0, err
	}

	categoryIDs := make(map[string]uuid.UUID, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		id, err := repo.EnsureCategory(ctx, cat.Name, cat.Icon, cat.Color)
		if err != nil {
			return 0, err
		}
		categoryIDs[cat.Name] = id
	}

	added := 0
	for _, ing := range catalog.Ingredients {
		var categoryID *uuid.UUID
		if id, ok := categoryIDs[ing.Category]; ok {
			categoryID = &id
		}

		created, err := repo.EnsureIngredient(
			ctx,
			ing.Name,
			ing.CanonicalName,
			ing.DefaultUnit,
			ing.Aliases,
			categoryID,
		)
		if err != nil {
			return added, err
		}
		if created {
			added++
		}
	}

	return added, nil
}

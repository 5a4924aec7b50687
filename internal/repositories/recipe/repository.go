// Package recipe provides the repository for crafting recipes, looked
// up by name.
package recipe

import (
	"context"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=recipemock github.com/wastelandrpg/wasteland-api/internal/repositories/recipe Repository

// Repository stores crafting recipes keyed by lowercased name within a
// guild. Search supports partial name matches for chat lookups.
type Repository interface {
	// Upsert stores a recipe, replacing any existing one with the same
	// name.
	Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error)

	// Get returns the recipe whose name matches exactly, case
	// insensitive. Returns a NotFound error when absent.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Search returns the names of all recipes whose name contains the
	// term, case insensitive.
	Search(ctx context.Context, input SearchInput) (*SearchOutput, error)

	// Delete removes a recipe. Returns a NotFound error when absent.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// UpsertInput contains the recipe to store.
type UpsertInput struct {
	GuildID string
	Recipe  *entities.Recipe
}

// UpsertOutput is empty; present for interface symmetry.
type UpsertOutput struct{}

// GetInput identifies a recipe by name.
type GetInput struct {
	GuildID string
	Name    string
}

// GetOutput contains the retrieved recipe.
type GetOutput struct {
	Recipe *entities.Recipe
}

// SearchInput contains the partial name to match.
type SearchInput struct {
	GuildID string
	Term    string
}

// SearchOutput contains the display names of matching recipes.
type SearchOutput struct {
	Names []string
}

// DeleteInput identifies a recipe by name.
type DeleteInput struct {
	GuildID string
	Name    string
}

// DeleteOutput is empty; present for interface symmetry.
type DeleteOutput struct{}

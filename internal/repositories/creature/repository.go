// Package creature provides the repository for NPC and creature stat
// blocks, looked up by name.
package creature

import (
	"context"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=creaturemock github.com/wastelandrpg/wasteland-api/internal/repositories/creature Repository

// Repository stores stat blocks keyed by lowercased name within a
// guild. Search supports partial name matches for chat lookups.
type Repository interface {
	// Upsert stores a stat block, replacing any existing one with the
	// same name.
	Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error)

	// Get returns the stat block whose name matches exactly, case
	// insensitive. Returns a NotFound error when absent.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Search returns the names of all stat blocks whose name contains
	// the term, case insensitive.
	Search(ctx context.Context, input SearchInput) (*SearchOutput, error)

	// Delete removes a stat block. Returns a NotFound error when absent.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// UpsertInput contains the stat block to store.
type UpsertInput struct {
	GuildID   string
	StatBlock *entities.StatBlock
}

// UpsertOutput is empty; present for interface symmetry.
type UpsertOutput struct{}

// GetInput identifies a stat block by name.
type GetInput struct {
	GuildID string
	Name    string
}

// GetOutput contains the retrieved stat block.
type GetOutput struct {
	StatBlock *entities.StatBlock
}

// SearchInput contains the partial name to match.
type SearchInput struct {
	GuildID string
	Term    string
}

// SearchOutput contains the display names of matching stat blocks.
type SearchOutput struct {
	Names []string
}

// DeleteInput identifies a stat block by name.
type DeleteInput struct {
	GuildID string
	Name    string
}

// DeleteOutput is empty; present for interface symmetry.
type DeleteOutput struct{}

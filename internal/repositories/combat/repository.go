// Package combat provides the repository for per-guild combatant lists
// and the combat turn cursor.
package combat

import (
	"context"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=combatmock github.com/wastelandrpg/wasteland-api/internal/repositories/combat Repository

// Repository stores combatants keyed by (guild, name) plus one turn
// state record per guild. It enforces name uniqueness; ordering is the
// tracker's job.
type Repository interface {
	// AddCombatant inserts a combatant. Added is false when the name
	// is already taken; nothing is mutated in that case.
	AddCombatant(ctx context.Context, input AddCombatantInput) (*AddCombatantOutput, error)

	// RemoveCombatant deletes by name. Removed is false when absent.
	RemoveCombatant(ctx context.Context, input RemoveCombatantInput) (*RemoveCombatantOutput, error)

	// ListCombatants returns every combatant in the guild, unordered.
	ListCombatants(ctx context.Context, input ListCombatantsInput) (*ListCombatantsOutput, error)

	// GetState returns the turn cursor, defaulting to index 0 round 1.
	GetState(ctx context.Context, input GetStateInput) (*GetStateOutput, error)

	// SetState overwrites the turn cursor.
	SetState(ctx context.Context, input SetStateInput) (*SetStateOutput, error)

	// Clear removes all combatants and resets the turn cursor.
	Clear(ctx context.Context, input ClearInput) (*ClearOutput, error)
}

// AddCombatantInput contains the combatant to insert.
type AddCombatantInput struct {
	GuildID   string
	Combatant *entities.Combatant
}

// AddCombatantOutput reports whether the insert happened.
type AddCombatantOutput struct {
	Added bool
}

// RemoveCombatantInput identifies the combatant to delete.
type RemoveCombatantInput struct {
	GuildID string
	Name    string
}

// RemoveCombatantOutput reports whether a combatant was deleted.
type RemoveCombatantOutput struct {
	Removed bool
}

// ListCombatantsInput identifies a guild.
type ListCombatantsInput struct {
	GuildID string
}

// ListCombatantsOutput contains the guild's combatants.
type ListCombatantsOutput struct {
	Combatants []*entities.Combatant
}

// GetStateInput identifies a guild.
type GetStateInput struct {
	GuildID string
}

// GetStateOutput contains the turn cursor.
type GetStateOutput struct {
	State entities.CombatState
}

// SetStateInput contains the turn cursor to store.
type SetStateInput struct {
	GuildID string
	State   entities.CombatState
}

// SetStateOutput is empty; present for interface symmetry.
type SetStateOutput struct{}

// ClearInput identifies a guild.
type ClearInput struct {
	GuildID string
}

// ClearOutput is empty; present for interface symmetry.
type ClearOutput struct{}

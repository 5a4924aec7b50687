// Package character provides the repository interface and types for
// player characters and their skill ranks.
package character

import (
	"context"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/wastelandrpg/wasteland-api/internal/repositories/character Repository

// Repository persists characters keyed by (guild, user), with one
// skill record per (guild, user, skill).
type Repository interface {
	// Upsert creates or replaces a character sheet. Skill records are
	// untouched.
	Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error)

	// Get returns a character or a NotFound error.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces mutable sheet fields (luck, level, XP) after a
	// read-modify-write cycle.
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// SetSkill writes one skill rank + tag flag.
	SetSkill(ctx context.Context, input SetSkillInput) (*SetSkillOutput, error)

	// GetSkill reads one skill. Missing skills come back rank 0,
	// untagged, not an error.
	GetSkill(ctx context.Context, input GetSkillInput) (*GetSkillOutput, error)

	// ListSkills returns every stored skill for a character.
	ListSkills(ctx context.Context, input ListSkillsInput) (*ListSkillsOutput, error)

	// ListByGuild returns all characters registered in a guild.
	ListByGuild(ctx context.Context, input ListByGuildInput) (*ListByGuildOutput, error)
}

// UpsertInput contains the character to write.
type UpsertInput struct {
	Character *entities.Character
}

// UpsertOutput echoes the stored character.
type UpsertOutput struct {
	Character *entities.Character
}

// GetInput identifies a character.
type GetInput struct {
	GuildID string
	UserID  string
}

// GetOutput contains the fetched character.
type GetOutput struct {
	Character *entities.Character
}

// UpdateInput contains the character state to store.
type UpdateInput struct {
	Character *entities.Character
}

// UpdateOutput echoes the stored character.
type UpdateOutput struct {
	Character *entities.Character
}

// SetSkillInput writes one skill record.
type SetSkillInput struct {
	GuildID string
	UserID  string
	Skill   string
	Rank    int
	IsTag   bool
}

// SetSkillOutput is empty; present for interface symmetry.
type SetSkillOutput struct{}

// GetSkillInput identifies one skill record.
type GetSkillInput struct {
	GuildID string
	UserID  string
	Skill   string
}

// GetSkillOutput contains the skill rank and tag flag.
type GetSkillOutput struct {
	Rank  int
	IsTag bool
}

// ListSkillsInput identifies a character.
type ListSkillsInput struct {
	GuildID string
	UserID  string
}

// ListSkillsOutput maps skill name to its stored record.
type ListSkillsOutput struct {
	Skills map[string]entities.SkillRank
}

// ListByGuildInput identifies a guild.
type ListByGuildInput struct {
	GuildID string
}

// ListByGuildOutput contains all characters in the guild.
type ListByGuildOutput struct {
	Characters []*entities.Character
}

package entities

import (
	"time"

	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

// WizardKind selects which step wizard a session belongs to.
type WizardKind string

// Wizard kinds.
const (
	WizardPlayerCreation WizardKind = "player_creation"
	WizardGMCreation     WizardKind = "gm_creation"
)

// Player creation steps, strictly linear.
const (
	StepOrigin           = "origin"
	StepSpecial          = "special"
	StepTagSkills        = "tag_skills"
	StepDistributeSkills = "distribute_skills"
	StepName             = "name"
)

// GM content creation steps.
const (
	GMStepType         = "type"
	GMStepName         = "name"
	GMStepLevelAndType = "level_and_type"
	GMStepAttributes   = "attributes"
	GMStepKeywords     = "keywords"
	GMStepFinalize     = "finalize"
)

// WizardSession is one in-flight creation flow. A user has at most one,
// across both kinds.
type WizardSession struct {
	UserID    string     `json:"user_id"`
	GuildID   string     `json:"guild_id"`
	GuildName string     `json:"guild_name"`
	Kind      WizardKind `json:"kind"`
	Step      string     `json:"step"`

	Player *PlayerCreationData `json:"player,omitempty"`
	GM     *GMCreationData     `json:"gm,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerCreationData accumulates player-creation answers.
type PlayerCreationData struct {
	Origin     string              `json:"origin,omitempty"`
	Attributes rulebook.Attributes `json:"attributes"`
	TagSkills  []string            `json:"tag_skills,omitempty"`
	Skills     map[string]int      `json:"skills,omitempty"`
	Name       string              `json:"name,omitempty"`
}

// GMCreationData accumulates GM content creation answers.
type GMCreationData struct {
	Kind       rulebook.StatBlockKind `json:"kind,omitempty"`
	Name       string                 `json:"name,omitempty"`
	Level      int                    `json:"level,omitempty"`
	Category   rulebook.Category      `json:"category,omitempty"`
	Attributes rulebook.Attributes    `json:"attributes"`
	// HasAttributes distinguishes a filled NPC sheet from the
	// creature path, which skips the attribute step.
	HasAttributes bool     `json:"has_attributes,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

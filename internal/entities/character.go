// Package entities holds the data shapes shared between repositories,
// orchestrators, and handlers.
package entities

import (
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

// Character is a player character, keyed by (guild, user).
type Character struct {
	GuildID    string              `json:"guild_id"`
	UserID     string              `json:"user_id"`
	Name       string              `json:"name"`
	Origin     string              `json:"origin,omitempty"`
	Attributes rulebook.Attributes `json:"attributes"`
	// CurrentLuck is the spendable luck point balance; the maximum is
	// the Luck attribute.
	CurrentLuck int `json:"current_luck"`
	Level       int `json:"level"`
	XP          int `json:"xp"`
}

// MaxLuck returns the luck point ceiling for this character.
func (c *Character) MaxLuck() int {
	return c.Attributes[rulebook.Luck]
}

// SkillRank is one learned skill on a character sheet.
type SkillRank struct {
	Rank  int  `json:"rank"`
	IsTag bool `json:"is_tag"`
}

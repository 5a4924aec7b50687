package entities

import (
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

// StatBlock is a GM-authored NPC or creature sheet, keyed by name.
// Derived fields are computed once at finalize and only change on an
// explicit GM re-save.
type StatBlock struct {
	Name       string                 `json:"name"`
	Kind       rulebook.StatBlockKind `json:"kind"`
	Category   rulebook.Category      `json:"category"`
	Level      int                    `json:"level"`
	Keywords   []string               `json:"keywords"`
	Attributes rulebook.Attributes    `json:"attributes"`

	// Derived at finalize.
	HitPoints  int    `json:"hit_points"`
	Initiative int    `json:"initiative"`
	Defense    int    `json:"defense"`
	MeleeBonus string `json:"melee_bonus"`

	Attacks   string `json:"attacks"`
	Inventory string `json:"inventory"`
}

// Recipe is a crafting recipe (or weapon mod) a character can attempt.
type Recipe struct {
	Name       string `json:"name"`
	Skill      string `json:"skill"`
	Complexity int    `json:"complexity"`
	// Materials overrides the complexity-based default when set.
	Materials string `json:"materials,omitempty"`
	Rarity    string `json:"rarity,omitempty"`
	IsMod     bool   `json:"is_mod"`
}

package combat

import "github.com/wastelandrpg/wasteland-api/internal/entities"

// StartInput opens a fresh encounter for a guild.
type StartInput struct {
	GuildID string
}

// StartOutput is empty; present for interface symmetry.
type StartOutput struct{}

// EndInput closes the guild's encounter.
type EndInput struct {
	GuildID string
}

// EndOutput is empty; present for interface symmetry.
type EndOutput struct{}

// AddCombatantInput inserts a named combatant.
type AddCombatantInput struct {
	GuildID     string
	Name        string
	Initiative  int
	OwnerUserID string
}

// AddCombatantOutput reports the final name, which differs from the
// requested one when a collision forced a suffix.
type AddCombatantOutput struct {
	Name    string
	Renamed bool
}

// JoinAsCharacterInput inserts the caller's registered character.
type JoinAsCharacterInput struct {
	GuildID string
	UserID  string
}

// JoinAsCharacterOutput reports the stored name and derived initiative.
type JoinAsCharacterOutput struct {
	Name       string
	Initiative int
}

// RemoveCombatantInput deletes a combatant by name.
type RemoveCombatantInput struct {
	GuildID string
	Name    string
}

// RemoveCombatantOutput is empty; present for interface symmetry.
type RemoveCombatantOutput struct{}

// NextTurnInput advances the guild's turn cursor.
type NextTurnInput struct {
	GuildID string
}

// NextTurnOutput reports whose turn it now is.
type NextTurnOutput struct {
	Active   *entities.Combatant
	Round    int
	NewRound bool
}

// OrderInput reads the guild's turn order.
type OrderInput struct {
	GuildID string
}

// OrderOutput contains the sorted order and the current cursor.
type OrderOutput struct {
	Combatants []*entities.Combatant
	TurnIndex  int
	Round      int
}

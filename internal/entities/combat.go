package entities

// Combatant is one entry in a guild's initiative order. Names are
// unique within a guild.
type Combatant struct {
	Name       string `json:"name"`
	Initiative int    `json:"initiative"`
	// OwnerUserID is set for player combatants, empty for NPCs.
	OwnerUserID string `json:"owner_user_id,omitempty"`
}

// CombatState is the turn cursor for a guild's combat.
type CombatState struct {
	TurnIndex int `json:"turn_index"`
	Round     int `json:"round"`
}

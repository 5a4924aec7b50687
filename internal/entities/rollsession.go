package entities

import "time"

// RollSession caches the most recent resolved skill test for a user so
// a follow-up reroll can reuse its parameters. It is short lived and
// consumed by the reroll.
type RollSession struct {
	// TestID names the originating skill test in logs.
	TestID     string    `json:"test_id"`
	UserID     string    `json:"user_id"`
	GuildID    string    `json:"guild_id"`
	Skill      string    `json:"skill"`
	Target     int       `json:"target"`
	TagRank    int       `json:"tag_rank"`
	Difficulty int       `json:"difficulty"`
	Rolls      []int     `json:"rolls"`
	CreatedAt  time.Time `json:"created_at"`
}

package game

import "github.com/wastelandrpg/wasteland-api/internal/entities"

// SkillTestInput describes a d20 skill check.
type SkillTestInput struct {
	GuildID    string
	UserID     string
	Skill      string
	Difficulty int
	// ExtraDice buys 1 to 3 additional d20s from the group AP pool.
	ExtraDice int
	// UseLuck spends a luck point to test against the luck attribute
	// instead of the skill's own.
	UseLuck bool
}

// SkillTestOutput reports the resolved test.
type SkillTestOutput struct {
	TestID        string
	Skill         string
	Rolls         []int
	Target        int
	TagRank       int
	Difficulty    int
	Successes     int
	Complications int
	Success       bool
	APSpent       int
	APEarned      int
	LuckSpent     bool
}

// RerollInput replaces one die of the caller's cached test.
type RerollInput struct {
	GuildID string
	UserID  string
	// DiscardValue picks which shown die value to throw away.
	DiscardValue int
}

// RerollOutput reports the re-tallied test.
type RerollOutput struct {
	Skill         string
	Rolls         []int
	Discarded     int
	Replacement   int
	Target        int
	Difficulty    int
	Successes     int
	Complications int
	Success       bool
}

// DamageRollInput describes a combat d6 pool.
type DamageRollInput struct {
	Dice      int
	ExtraDice int
}

// DamageRollOutput reports the damage tally.
type DamageRollOutput struct {
	Rolls   []int
	Faces   []string
	Damage  int
	Effects int
}

// CraftingCheckInput describes a crafting attempt.
type CraftingCheckInput struct {
	GuildID    string
	UserID     string
	RecipeName string
}

// CraftingCheckOutput reports the resolved attempt. When the name is
// ambiguous only Suggestions is set.
type CraftingCheckOutput struct {
	Recipe            *entities.Recipe
	Rolls             []int
	Target            int
	Difficulty        int
	Successes         int
	Complications     int
	Success           bool
	Materials         []string
	MaterialsConsumed bool
	Suggestions       []string
}

// AddXPInput credits experience to a character.
type AddXPInput struct {
	GuildID string
	UserID  string
	Amount  int
}

// AddXPOutput reports the character's progression after the credit.
type AddXPOutput struct {
	Gained       int
	Level        int
	LevelsGained int
	XP           int
	NextLevelXP  int
}

// AwardDefeatXPInput credits the XP value of a defeated stat block.
type AwardDefeatXPInput struct {
	GuildID string
	UserID  string
	Name    string
}

// AwardDefeatXPOutput reports the resolved stat block and the applied
// credit. When the name is ambiguous only Suggestions is set.
type AwardDefeatXPOutput struct {
	StatBlock   *entities.StatBlock
	Applied     *AddXPOutput
	Suggestions []string
}

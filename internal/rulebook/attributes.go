// Package rulebook holds the closed rule tables the rest of the system
// validates against: the seven attributes, the skill list, origins,
// creation budgets, XP progression, and derived-stat math.
package rulebook

// Attribute indexes the seven attribute scores, in sheet order.
type Attribute int

// Sheet order: FOR PER RES CAR INT AGI SOR.
const (
	Strength Attribute = iota
	Perception
	Resistance
	Charisma
	Intelligence
	Agility
	Luck

	NumAttributes = 7
)

var attributeAbbrevs = [NumAttributes]string{"FOR", "PER", "RES", "CAR", "INT", "AGI", "SOR"}

// Abbrev returns the three-letter sheet abbreviation (FOR, PER, ...).
func (a Attribute) Abbrev() string {
	if a < 0 || a >= NumAttributes {
		return "???"
	}
	return attributeAbbrevs[a]
}

// Attributes is a full set of seven scores indexed by Attribute.
type Attributes [NumAttributes]int

// Sum returns the total of all seven scores.
func (s Attributes) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Character creation constraints.
const (
	CreationAttributeSum = 40
	CreationAttributeMin = 4
	CreationAttributeMax = 10

	TagSkillCount    = 3
	TagSkillBaseRank = 2
	CreationRankMax  = 3
	BaseSkillPoints  = 9 // plus Intelligence
	StartingLevel    = 1
)

// SkillPointBudget is the creation-time skill point budget for a
// character with the given Intelligence score.
func SkillPointBudget(intelligence int) int {
	return BaseSkillPoints + intelligence
}

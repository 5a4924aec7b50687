package rulebook

import "fmt"

// Derived stats for player characters.

// HitPoints is the creation-time PV total.
func HitPoints(attrs Attributes) int {
	return attrs[Resistance] + attrs[Luck]
}

// Defense is 2 for very agile characters, otherwise 1.
func Defense(attrs Attributes) int {
	if attrs[Agility] >= 9 {
		return 2
	}
	return 1
}

// Initiative orders combat turns, higher first.
func Initiative(attrs Attributes) int {
	return attrs[Perception] + attrs[Agility]
}

// StatBlockKind separates GM-authored NPCs from creatures.
type StatBlockKind string

// Stat block kinds.
const (
	KindNPC      StatBlockKind = "npc"
	KindCreature StatBlockKind = "creature"
)

// Category grades a stat block within its kind.
type Category string

// NPC categories (Normal/Notável/Principal) and creature categories
// (Normal/Poderosa/Lendária). Normal is shared.
const (
	CategoryNormal    Category = "normal"
	CategoryNotable   Category = "notável"
	CategoryMajor     Category = "principal"
	CategoryPowerful  Category = "poderosa"
	CategoryLegendary Category = "lendária"
)

// Categories returns the valid categories for a kind, in rank order.
func Categories(kind StatBlockKind) []Category {
	if kind == KindCreature {
		return []Category{CategoryNormal, CategoryPowerful, CategoryLegendary}
	}
	return []Category{CategoryNormal, CategoryNotable, CategoryMajor}
}

// ValidCategory reports whether category is legal for kind.
func ValidCategory(kind StatBlockKind, category Category) bool {
	for _, c := range Categories(kind) {
		if c == category {
			return true
		}
	}
	return false
}

// Stat block level bounds.
const (
	StatBlockLevelMin = 1
	StatBlockLevelMax = 21
)

// RequiredAttributeSum is the attribute total an NPC of the given
// category and level must have. Creatures have no forced sum.
func RequiredAttributeSum(category Category, level int) int {
	base := 35
	switch category {
	case CategoryNotable:
		base = 42
	case CategoryMajor:
		base = 49
	}
	return base + level/2
}

// StatBlockHitPoints computes base PV for a stat block.
func StatBlockHitPoints(attrs Attributes, level int, category Category) int {
	hp := attrs[Resistance] + level
	switch category {
	case CategoryNotable:
		hp += attrs[Luck]
	case CategoryMajor:
		hp += attrs[Luck] * 2
	}
	return hp
}

// StatBlockInitiative computes base initiative for a stat block.
func StatBlockInitiative(attrs Attributes, category Category) int {
	ini := attrs[Perception] + attrs[Agility]
	switch category {
	case CategoryNotable:
		ini += 2
	case CategoryMajor:
		ini += 4
	}
	return ini
}

// MeleeDamageBonus describes the melee damage bonus granted by raw
// Strength, as printed on the stat block.
func MeleeDamageBonus(attrs Attributes) string {
	str := attrs[Strength]
	switch {
	case str >= 11:
		return "+3 DC"
	case str >= 9:
		return "+2 DC"
	case str >= 7:
		return "+1 DC"
	default:
		return "Nenhum"
	}
}

// CategoryMultiplier is the XP/PV multiplier a category advertises:
// notable/powerful double, major/legendary triple.
func CategoryMultiplier(category Category) int {
	switch category {
	case CategoryNotable, CategoryPowerful:
		return 2
	case CategoryMajor, CategoryLegendary:
		return 3
	default:
		return 1
	}
}

// FormatAttributes renders scores in sheet order for replies, e.g.
// "FOR 6 PER 7 RES 5 CAR 6 INT 8 AGI 5 SOR 3".
func FormatAttributes(attrs Attributes) string {
	out := ""
	for i, v := range attrs {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s %d", Attribute(i).Abbrev(), v)
	}
	return out
}

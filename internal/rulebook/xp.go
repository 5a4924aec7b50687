package rulebook

// xpToNextLevel maps a level to the XP needed to leave it. Levels past
// the table use a flat (level+1)*100 rule.
var xpToNextLevel = map[int]int{
	1: 100, 2: 200, 3: 300, 4: 400, 5: 500,
	6: 600, 7: 700, 8: 800, 9: 900, 10: 1000,
	11: 1100, 12: 1200, 13: 1300, 14: 1400, 15: 1500,
	16: 1600, 17: 1700, 18: 1800, 19: 1900,
}

// RequiredXPForNextLevel returns the XP a character at level must
// accumulate to advance one level.
func RequiredXPForNextLevel(level int) int {
	if level >= 20 {
		return (level + 1) * 100
	}
	if xp, ok := xpToNextLevel[level]; ok {
		return xp
	}
	return 0
}

// ApplyXP adds gained XP to a character's running total and resolves
// any level-ups, carrying remainder XP across multiple levels.
func ApplyXP(level, currentXP, gained int) (newLevel, newXP int) {
	newLevel = level
	newXP = currentXP + gained
	for {
		required := RequiredXPForNextLevel(newLevel)
		if required <= 0 || newXP < required {
			return newLevel, newXP
		}
		newXP -= required
		newLevel++
	}
}

// XPRewardForStatBlock is the XP awarded for defeating a stat block:
// 10 per level, scaled by the category multiplier.
func XPRewardForStatBlock(level int, category Category) int {
	return 10 * level * CategoryMultiplier(category)
}

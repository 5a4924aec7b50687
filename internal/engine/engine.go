// Package engine implements the dice resolution rules as pure
// functions. Nothing here rolls dice or touches storage; callers pass
// in roll results and read back tallies.
package engine

// TestResult is the evaluation of a d20 pool against a target number.
type TestResult struct {
	Successes     int
	Complications int
	Difficulty    int
}

// Success reports whether the test met its difficulty.
func (r TestResult) Success() bool {
	return r.Successes >= r.Difficulty
}

// ActionPointsEarned is the AP overflow a successful test feeds back
// into the group pool. Zero on failure.
func (r TestResult) ActionPointsEarned() int {
	if !r.Success() {
		return 0
	}
	return r.Successes - r.Difficulty
}

// EvaluateRoll tallies a d20 pool. Each roll at or under target counts
// one success, with a second success on a natural 1 or, for tag skills,
// on a roll at or under the tag rank. Every natural 20 adds a
// complication whether or not the roll succeeded.
func EvaluateRoll(rolls []int, target, tagRank, difficulty int) TestResult {
	result := TestResult{Difficulty: difficulty}
	for _, roll := range rolls {
		if roll <= target {
			result.Successes++
			if roll == 1 || (tagRank > 0 && roll <= tagRank) {
				result.Successes++
			}
		}
		if roll == 20 {
			result.Complications++
		}
	}
	return result
}

// DamageResult is the evaluation of a combat-die pool.
type DamageResult struct {
	Damage  int
	Effects int
}

// EvaluateDamage maps combat dice (d6) to damage and effect counts:
// 1 → 1 damage, 2 → 2 damage, 3-4 → nothing, 5-6 → 1 damage + 1 effect.
func EvaluateDamage(rolls []int) DamageResult {
	var result DamageResult
	for _, roll := range rolls {
		switch roll {
		case 1:
			result.Damage++
		case 2:
			result.Damage += 2
		case 5, 6:
			result.Damage++
			result.Effects++
		}
	}
	return result
}

// DamageDieFace describes one combat die face for display.
func DamageDieFace(roll int) string {
	switch roll {
	case 1:
		return "1"
	case 2:
		return "2"
	case 5, 6:
		return "1+Efeito"
	default:
		return "-"
	}
}

// CraftingDifficulty is the success count a crafting attempt needs:
// recipe complexity reduced by the crafter's skill rank, never below
// zero.
func CraftingDifficulty(complexity, skillRank int) int {
	d := complexity - skillRank
	if d < 0 {
		return 0
	}
	return d
}

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wastelandrpg/wasteland-api/internal/engine"
)

func TestEvaluateRoll(t *testing.T) {
	testCases := []struct {
		name              string
		rolls             []int
		target            int
		tagRank           int
		difficulty        int
		wantSuccesses     int
		wantComplications int
		wantSuccess       bool
	}{
		{
			name:  "plain hit and a complication",
			rolls: []int{5, 20}, target: 12, tagRank: 0, difficulty: 1,
			wantSuccesses: 1, wantComplications: 1, wantSuccess: true,
		},
		{
			name:  "natural one is a critical",
			rolls: []int{1, 15}, target: 10, tagRank: 0, difficulty: 1,
			wantSuccesses: 2, wantComplications: 0, wantSuccess: true,
		},
		{
			name:  "tag rank doubles low rolls",
			rolls: []int{3, 2}, target: 10, tagRank: 3, difficulty: 2,
			wantSuccesses: 4, wantComplications: 0, wantSuccess: true,
		},
		{
			name:  "tag rank zero never doubles",
			rolls: []int{3, 2}, target: 10, tagRank: 0, difficulty: 2,
			wantSuccesses: 2, wantComplications: 0, wantSuccess: true,
		},
		{
			name:  "twenty complicates even on a miss",
			rolls: []int{20}, target: 5, tagRank: 0, difficulty: 1,
			wantSuccesses: 0, wantComplications: 1, wantSuccess: false,
		},
		{
			name:  "twenty can still succeed against a high target",
			rolls: []int{20, 4}, target: 20, tagRank: 0, difficulty: 2,
			wantSuccesses: 2, wantComplications: 1, wantSuccess: true,
		},
		{
			name:  "difficulty zero succeeds on no successes",
			rolls: []int{18, 19}, target: 10, tagRank: 0, difficulty: 0,
			wantSuccesses: 0, wantComplications: 0, wantSuccess: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := engine.EvaluateRoll(tc.rolls, tc.target, tc.tagRank, tc.difficulty)
			assert.Equal(t, tc.wantSuccesses, result.Successes)
			assert.Equal(t, tc.wantComplications, result.Complications)
			assert.Equal(t, tc.wantSuccess, result.Success())
		})
	}
}

func TestEvaluateRollIsPure(t *testing.T) {
	rolls := []int{5, 20, 1}
	first := engine.EvaluateRoll(rolls, 12, 2, 1)
	second := engine.EvaluateRoll(rolls, 12, 2, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{5, 20, 1}, rolls, "input must not be mutated")
}

func TestActionPointsEarned(t *testing.T) {
	// Exactly meeting the difficulty earns nothing.
	result := engine.EvaluateRoll([]int{5, 20}, 12, 0, 1)
	assert.True(t, result.Success())
	assert.Equal(t, 0, result.ActionPointsEarned())

	// Overflow successes convert to AP.
	result = engine.EvaluateRoll([]int{1, 2}, 10, 2, 1)
	assert.Equal(t, 4, result.Successes)
	assert.Equal(t, 3, result.ActionPointsEarned())

	// Failures earn nothing regardless of successes.
	result = engine.EvaluateRoll([]int{15}, 10, 0, 2)
	assert.False(t, result.Success())
	assert.Equal(t, 0, result.ActionPointsEarned())
}

func TestEvaluateDamage(t *testing.T) {
	result := engine.EvaluateDamage([]int{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 5, result.Damage)
	assert.Equal(t, 2, result.Effects)

	assert.Equal(t, engine.DamageResult{}, engine.EvaluateDamage(nil))
	assert.Equal(t, engine.DamageResult{}, engine.EvaluateDamage([]int{3, 4, 3}))
}

func TestDamageDieFace(t *testing.T) {
	assert.Equal(t, "1", engine.DamageDieFace(1))
	assert.Equal(t, "2", engine.DamageDieFace(2))
	assert.Equal(t, "-", engine.DamageDieFace(3))
	assert.Equal(t, "-", engine.DamageDieFace(4))
	assert.Equal(t, "1+Efeito", engine.DamageDieFace(5))
	assert.Equal(t, "1+Efeito", engine.DamageDieFace(6))
}

func TestCraftingDifficulty(t *testing.T) {
	assert.Equal(t, 2, engine.CraftingDifficulty(3, 1))
	assert.Equal(t, 0, engine.CraftingDifficulty(2, 2))
	assert.Equal(t, 0, engine.CraftingDifficulty(1, 3), "clamped at zero")
}

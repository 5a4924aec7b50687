package rulebook

// Action point economy.
const (
	// DefaultMaxActionPoints caps the shared group pool.
	DefaultMaxActionPoints = 6

	// MaxExtraDice is how many d20s a tester may buy on top of the
	// base two.
	MaxExtraDice = 3

	// BaseTestDice is rolled on every skill test.
	BaseTestDice = 2

	// MaxDamageDice bounds a single damage roll.
	MaxDamageDice = 50
)

// extraDiceCost is the escalating AP price for buying extra test dice.
var extraDiceCost = map[int]int{1: 1, 2: 3, 3: 6}

// ExtraDiceCost returns the AP cost of buying n extra dice and whether
// n is a legal purchase (1 to 3).
func ExtraDiceCost(n int) (int, bool) {
	cost, ok := extraDiceCost[n]
	return cost, ok
}

// volatileSkills lists the crafting skills whose failed attempts burn
// ingredients when a complication is rolled. Everything else keeps its
// materials on failure.
var volatileSkills = map[string]bool{
	"ciencias":      true,
	"sobrevivencia": true,
	"explosivos":    true,
}

// CraftingConsumesMaterials reports whether a failed crafting attempt
// consumes its materials. Only the volatile skills do, and only when
// the failure came with a complication.
func CraftingConsumesMaterials(skill string, complications int) bool {
	return complications > 0 && volatileSkills[skill]
}

// materialsByComplexity is the fallback materials line for recipes that
// do not carry their own.
var materialsByComplexity = map[int]string{
	1: "Materiais Comuns ×2",
	2: "Materiais Comuns ×3",
	3: "Materiais Comuns ×4, Materiais Incomuns ×2",
	4: "Materiais Comuns ×5, Materiais Incomuns ×3",
	5: "Materiais Comuns ×6, Materiais Incomuns ×4, Materiais Raros ×2",
	6: "Materiais Comuns ×7, Materiais Incomuns ×5, Materiais Raros ×3",
	7: "Materiais Comuns ×8, Materiais Incomuns ×6, Materiais Raros ×4",
}

// MaterialsForComplexity returns the default materials line for a
// recipe complexity.
func MaterialsForComplexity(complexity int) string {
	if m, ok := materialsByComplexity[complexity]; ok {
		return m
	}
	return "Materiais não especificados"
}

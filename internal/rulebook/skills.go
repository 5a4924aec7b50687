package rulebook

import "sort"

// skillToAttribute is the closed skill table. Skill identifiers are
// lowercase, no spaces, exactly as players type them.
var skillToAttribute = map[string]Attribute{
	"armascorpoacorpo": Strength,
	"armaspesadas":     Resistance,
	"desarmado":        Strength,
	"armasdeenergia":   Perception,
	"explosivos":       Perception,
	"arrombamento":     Perception,
	"pilotagem":        Perception,
	"armaspequenas":    Agility,
	"arremesso":        Agility,
	"furtividade":      Agility,
	"atletismo":        Strength,
	"barganha":         Charisma,
	"retorica":         Charisma,
	"ciencias":         Intelligence,
	"medicina":         Intelligence,
	"reparo":           Intelligence,
	"sobrevivencia":    Resistance,
}

// SkillExists reports whether name is in the skill table.
func SkillExists(name string) bool {
	_, ok := skillToAttribute[name]
	return ok
}

// SkillAttribute returns the attribute a skill tests against.
func SkillAttribute(name string) (Attribute, bool) {
	attr, ok := skillToAttribute[name]
	return attr, ok
}

// SkillNames returns every known skill identifier, sorted.
func SkillNames() []string {
	names := make([]string, 0, len(skillToAttribute))
	for name := range skillToAttribute {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumSkills is the size of the skill table.
func NumSkills() int {
	return len(skillToAttribute)
}

// Origins selectable during player creation, in menu order.
var Origins = []string{
	"Habitante do Refúgio",
	"Necrótico",
	"Supermutante",
	"Iniciado da Irmandade",
	"Sobrevivente",
	"Mr. Handy",
}

// SkillRankCost is the creation-time cost of setting a skill to rank.
// Tag skills start at rank 2, so only ranks above that cost points.
func SkillRankCost(rank int, isTag bool) int {
	if isTag {
		if rank <= TagSkillBaseRank {
			return 0
		}
		return rank - TagSkillBaseRank
	}
	return rank
}

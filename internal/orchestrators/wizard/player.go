package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

func promptOrigin() string {
	var b strings.Builder
	b.WriteString("Vamos criar seu personagem! Escolha uma origem (envie o número):\n")
	for i, origin := range rulebook.Origins {
		fmt.Fprintf(&b, "%d. %s\n", i+1, origin)
	}
	return b.String()
}

func promptSpecial(origin string) string {
	return fmt.Sprintf(
		"Origem registrada: %s.\nAgora envie seus 7 atributos na ordem FOR PER RES CAR INT AGI SOR (ex: `6 7 5 6 8 5 3`). A soma deve ser exatamente %d e cada valor deve estar entre %d e %d.",
		origin,
		rulebook.CreationAttributeSum,
		rulebook.CreationAttributeMin,
		rulebook.CreationAttributeMax,
	)
}

func promptTagSkills() string {
	return fmt.Sprintf(
		"Atributos registrados! Agora escolha %d perícias marcadas, separadas por vírgula.\nPerícias: %s",
		rulebook.TagSkillCount,
		strings.Join(rulebook.SkillNames(), ", "),
	)
}

func promptDistributeSkills(budget int) string {
	return fmt.Sprintf(
		"Perícias marcadas registradas (grau %d cada). Você tem %d pontos para distribuir.\nEnvie pares `perícia grau` separados por vírgula (ex: `medicina 1, furtividade 3`). Grau máximo %d; perícias marcadas custam grau-2 e não podem ficar abaixo de 2.",
		rulebook.TagSkillBaseRank,
		budget,
		rulebook.CreationRankMax,
	)
}

func (o *orchestrator) advancePlayer(ctx context.Context, session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	switch session.Step {
	case entities.StepOrigin:
		return o.playerOrigin(session, text)
	case entities.StepSpecial:
		return o.playerSpecial(session, text)
	case entities.StepTagSkills:
		return o.playerTagSkills(session, text)
	case entities.StepDistributeSkills:
		return o.playerDistributeSkills(session, text)
	case entities.StepName:
		return o.playerName(ctx, session, text)
	default:
		return nil, errors.Internalf("unknown player creation step: %s", session.Step)
	}
}

func (o *orchestrator) playerOrigin(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	choice, err := strconv.Atoi(text)
	if err != nil || choice < 1 || choice > len(rulebook.Origins) {
		return reprompt(session.Step, fmt.Sprintf("Escolha inválida: envie um número de 1 a %d.", len(rulebook.Origins))), nil
	}

	session.Player.Origin = rulebook.Origins[choice-1]
	session.Step = entities.StepSpecial

	return &AdvanceOutput{
		Status:  StatusAdvanced,
		Step:    session.Step,
		Message: promptSpecial(session.Player.Origin),
	}, nil
}

func (o *orchestrator) playerSpecial(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	values, ok := parseInts(text)
	if !ok || len(values) != rulebook.NumAttributes {
		return reprompt(session.Step, fmt.Sprintf("Esperava exatamente %d números, recebi %d.", rulebook.NumAttributes, len(values))), nil
	}

	var attrs rulebook.Attributes
	sum := 0
	for i, v := range values {
		if v < rulebook.CreationAttributeMin || v > rulebook.CreationAttributeMax {
			return reprompt(session.Step, fmt.Sprintf("Cada atributo deve estar entre %d e %d; %d está fora do intervalo.", rulebook.CreationAttributeMin, rulebook.CreationAttributeMax, v)), nil
		}
		attrs[i] = v
		sum += v
	}
	if sum != rulebook.CreationAttributeSum {
		return reprompt(session.Step, fmt.Sprintf("A soma dos atributos deve ser exatamente %d, recebi %d.", rulebook.CreationAttributeSum, sum)), nil
	}

	session.Player.Attributes = attrs
	session.Step = entities.StepTagSkills

	return &AdvanceOutput{
		Status:  StatusAdvanced,
		Step:    session.Step,
		Message: promptTagSkills(),
	}, nil
}

func (o *orchestrator) playerTagSkills(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	fields := strings.Fields(strings.ReplaceAll(strings.ToLower(text), ",", " "))
	if len(fields) != rulebook.TagSkillCount {
		return reprompt(session.Step, fmt.Sprintf("Esperava exatamente %d perícias, recebi %d.", rulebook.TagSkillCount, len(fields))), nil
	}

	seen := make(map[string]bool, len(fields))
	for _, skill := range fields {
		if !rulebook.SkillExists(skill) {
			return reprompt(session.Step, fmt.Sprintf("Perícia desconhecida: %s.", skill)), nil
		}
		if seen[skill] {
			return reprompt(session.Step, fmt.Sprintf("Perícia repetida: %s. Escolha três perícias diferentes.", skill)), nil
		}
		seen[skill] = true
	}

	session.Player.TagSkills = fields
	session.Player.Skills = make(map[string]int, rulebook.NumSkills())
	for _, skill := range rulebook.SkillNames() {
		session.Player.Skills[skill] = 0
	}
	for _, skill := range fields {
		session.Player.Skills[skill] = rulebook.TagSkillBaseRank
	}
	session.Step = entities.StepDistributeSkills

	budget := rulebook.SkillPointBudget(session.Player.Attributes[rulebook.Intelligence])

	return &AdvanceOutput{
		Status:  StatusAdvanced,
		Step:    session.Step,
		Message: promptDistributeSkills(budget),
	}, nil
}

func (o *orchestrator) playerDistributeSkills(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	items := strings.Split(strings.ToLower(text), ",")
	type pair struct {
		skill string
		rank  int
	}
	pairs := make([]pair, 0, len(items))
	for _, item := range items {
		fields := strings.Fields(item)
		if len(fields) != 2 {
			return reprompt(session.Step, fmt.Sprintf("Formato inválido em %q: cada item deve ser `perícia grau`.", strings.TrimSpace(item))), nil
		}
		skill := fields[0]
		if !rulebook.SkillExists(skill) {
			return reprompt(session.Step, fmt.Sprintf("Perícia desconhecida: %s.", skill)), nil
		}
		rank, err := strconv.Atoi(fields[1])
		if err != nil || rank < 0 || rank > rulebook.CreationRankMax {
			return reprompt(session.Step, fmt.Sprintf("Grau inválido para %s: deve ser um número entre 0 e %d.", skill, rulebook.CreationRankMax)), nil
		}
		pairs = append(pairs, pair{skill: skill, rank: rank})
	}
	if len(pairs) == 0 {
		return reprompt(session.Step, "Envie ao menos um par `perícia grau`."), nil
	}

	isTag := make(map[string]bool, len(session.Player.TagSkills))
	for _, skill := range session.Player.TagSkills {
		isTag[skill] = true
	}

	budget := rulebook.SkillPointBudget(session.Player.Attributes[rulebook.Intelligence])
	total := 0
	for _, p := range pairs {
		if isTag[p.skill] && p.rank < rulebook.TagSkillBaseRank {
			return reprompt(session.Step, fmt.Sprintf("%s é uma perícia marcada e não pode ficar abaixo de %d.", p.skill, rulebook.TagSkillBaseRank)), nil
		}
		total += rulebook.SkillRankCost(p.rank, isTag[p.skill])
	}
	if total > budget {
		return reprompt(session.Step, fmt.Sprintf("Custo total %d excede o orçamento de %d pontos. Nada foi aplicado.", total, budget)), nil
	}

	// The whole batch lands at once.
	for _, p := range pairs {
		session.Player.Skills[p.skill] = p.rank
	}
	session.Step = entities.StepName

	return &AdvanceOutput{
		Status:  StatusAdvanced,
		Step:    session.Step,
		Message: fmt.Sprintf("Pontos distribuídos (%d de %d usados). Para terminar, envie o nome do personagem.", total, budget),
	}, nil
}

func (o *orchestrator) playerName(ctx context.Context, session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return reprompt(session.Step, "O nome não pode ser vazio."), nil
	}

	char := &entities.Character{
		GuildID:     session.GuildID,
		UserID:      session.UserID,
		Name:        name,
		Origin:      session.Player.Origin,
		Attributes:  session.Player.Attributes,
		CurrentLuck: session.Player.Attributes[rulebook.Luck],
		Level:       rulebook.StartingLevel,
	}

	if _, err := o.characterRepo.Upsert(ctx, character.UpsertInput{Character: char}); err != nil {
		return nil, err
	}

	isTag := make(map[string]bool, len(session.Player.TagSkills))
	for _, skill := range session.Player.TagSkills {
		isTag[skill] = true
	}
	for skill, rank := range session.Player.Skills {
		if rank == 0 && !isTag[skill] {
			continue
		}
		if _, err := o.characterRepo.SetSkill(ctx, character.SetSkillInput{
			GuildID: session.GuildID,
			UserID:  session.UserID,
			Skill:   skill,
			Rank:    rank,
			IsTag:   isTag[skill],
		}); err != nil {
			return nil, err
		}
	}

	summary := fmt.Sprintf(
		"%s criado! Origem: %s | %s\nPV: %d | Defesa: %d | Iniciativa: %d | Sorte: %d",
		char.Name,
		char.Origin,
		rulebook.FormatAttributes(char.Attributes),
		rulebook.HitPoints(char.Attributes),
		rulebook.Defense(char.Attributes),
		rulebook.Initiative(char.Attributes),
		char.CurrentLuck,
	)

	return &AdvanceOutput{
		Status:    StatusCompleted,
		Step:      session.Step,
		Message:   summary,
		Character: char,
	}, nil
}

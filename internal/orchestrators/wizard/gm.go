package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/creature"
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

// Finalize defaults when the GM leaves a side of the `|` empty.
const (
	defaultAttacks   = "Ataque Desarmado: 2DC"
	defaultInventory = "Nenhum"

	// creatureDefaultAttribute fills the attribute sheet on the
	// creature path, which never asks for attributes but still derives
	// stats from them.
	creatureDefaultAttribute = 5

	maxKeywords = 3
)

func promptGMType() string {
	return "Criação de conteúdo de mestre. O que vamos criar?\n1. NPC\n2. Criatura"
}

func categoryList(kind rulebook.StatBlockKind) string {
	categories := rulebook.Categories(kind)
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func (o *orchestrator) advanceGM(ctx context.Context, session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	switch session.Step {
	case entities.GMStepType:
		return o.gmType(session, text)
	case entities.GMStepName:
		return o.gmName(session, text)
	case entities.GMStepLevelAndType:
		return o.gmLevelAndType(session, text)
	case entities.GMStepAttributes:
		return o.gmAttributes(session, text)
	case entities.GMStepKeywords:
		return o.gmKeywords(session, text)
	case entities.GMStepFinalize:
		return o.gmFinalize(ctx, session, text)
	default:
		return nil, errors.Internalf("unknown GM creation step: %s", session.Step)
	}
}

func (o *orchestrator) gmType(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	switch strings.ToLower(text) {
	case "1", "npc":
		session.GM.Kind = rulebook.KindNPC
	case "2", "criatura":
		session.GM.Kind = rulebook.KindCreature
	default:
		return reprompt(session.Step, "Escolha inválida: envie 1 (NPC) ou 2 (Criatura)."), nil
	}

	session.Step = entities.GMStepName

	return &AdvanceOutput{
		Status:  StatusAdvanced,
		Step:    session.Step,
		Message: "Qual o nome?",
	}, nil
}

func (o *orchestrator) gmName(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return reprompt(session.Step, "O nome não pode ser vazio."), nil
	}

	session.GM.Name = name
	session.Step = entities.GMStepLevelAndType

	return &AdvanceOutput{
		Status: StatusAdvanced,
		Step:   session.Step,
		Message: fmt.Sprintf(
			"Agora envie `nível categoria` (nível %d a %d; categorias: %s).",
			rulebook.StatBlockLevelMin,
			rulebook.StatBlockLevelMax,
			categoryList(session.GM.Kind),
		),
	}, nil
}

func (o *orchestrator) gmLevelAndType(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) != 2 {
		return reprompt(session.Step, "Formato inválido: envie `nível categoria` (ex: `5 normal`)."), nil
	}

	level, err := strconv.Atoi(fields[0])
	if err != nil || level < rulebook.StatBlockLevelMin || level > rulebook.StatBlockLevelMax {
		return reprompt(session.Step, fmt.Sprintf("Nível inválido: deve ser um número entre %d e %d.", rulebook.StatBlockLevelMin, rulebook.StatBlockLevelMax)), nil
	}

	category := rulebook.Category(fields[1])
	if !rulebook.ValidCategory(session.GM.Kind, category) {
		return reprompt(session.Step, fmt.Sprintf("Categoria desconhecida: %s. Opções: %s.", fields[1], categoryList(session.GM.Kind))), nil
	}

	session.GM.Level = level
	session.GM.Category = category

	// Creatures have no attribute budget; NPCs must hit an exact sum.
	if session.GM.Kind == rulebook.KindCreature {
		session.Step = entities.GMStepKeywords
		return &AdvanceOutput{
			Status:  StatusAdvanced,
			Step:    session.Step,
			Message: fmt.Sprintf("Envie de 1 a %d palavras-chave separadas por vírgula.", maxKeywords),
		}, nil
	}

	session.Step = entities.GMStepAttributes
	required := rulebook.RequiredAttributeSum(category, level)

	return &AdvanceOutput{
		Status: StatusAdvanced,
		Step:   session.Step,
		Message: fmt.Sprintf(
			"Envie os 7 atributos (FOR PER RES CAR INT AGI SOR). A soma deve ser exatamente %d.",
			required,
		),
	}, nil
}

func (o *orchestrator) gmAttributes(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	values, ok := parseInts(text)
	if !ok || len(values) != rulebook.NumAttributes {
		return reprompt(session.Step, fmt.Sprintf("Esperava exatamente %d números, recebi %d.", rulebook.NumAttributes, len(values))), nil
	}

	var attrs rulebook.Attributes
	sum := 0
	for i, v := range values {
		attrs[i] = v
		sum += v
	}

	required := rulebook.RequiredAttributeSum(session.GM.Category, session.GM.Level)
	if sum != required {
		return reprompt(session.Step, fmt.Sprintf("A soma dos atributos deve ser exatamente %d, recebi %d.", required, sum)), nil
	}

	session.GM.Attributes = attrs
	session.GM.HasAttributes = true
	session.Step = entities.GMStepKeywords

	return &AdvanceOutput{
		Status:  StatusAdvanced,
		Step:    session.Step,
		Message: fmt.Sprintf("Envie de 1 a %d palavras-chave separadas por vírgula.", maxKeywords),
	}, nil
}

func (o *orchestrator) gmKeywords(session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	parts := strings.Split(text, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	if len(keywords) < 1 || len(keywords) > maxKeywords {
		return reprompt(session.Step, fmt.Sprintf("Esperava de 1 a %d palavras-chave, recebi %d.", maxKeywords, len(keywords))), nil
	}

	session.GM.Keywords = keywords
	session.Step = entities.GMStepFinalize

	return &AdvanceOutput{
		Status:  StatusAdvanced,
		Step:    session.Step,
		Message: "Para terminar, envie `ataques | inventário` (qualquer lado vazio usa o padrão).",
	}, nil
}

func (o *orchestrator) gmFinalize(ctx context.Context, session *entities.WizardSession, text string) (*AdvanceOutput, error) {
	attacks, inventory := defaultAttacks, defaultInventory
	parts := strings.SplitN(text, "|", 2)
	if v := strings.TrimSpace(parts[0]); v != "" {
		attacks = v
	}
	if len(parts) == 2 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			inventory = v
		}
	}

	attrs := session.GM.Attributes
	if !session.GM.HasAttributes {
		for i := range attrs {
			attrs[i] = creatureDefaultAttribute
		}
	}

	block := &entities.StatBlock{
		Name:       session.GM.Name,
		Kind:       session.GM.Kind,
		Category:   session.GM.Category,
		Level:      session.GM.Level,
		Keywords:   session.GM.Keywords,
		Attributes: attrs,
		HitPoints:  rulebook.StatBlockHitPoints(attrs, session.GM.Level, session.GM.Category),
		Initiative: rulebook.StatBlockInitiative(attrs, session.GM.Category),
		Defense:    rulebook.Defense(attrs),
		MeleeBonus: rulebook.MeleeDamageBonus(attrs),
		Attacks:    attacks,
		Inventory:  inventory,
	}

	if _, err := o.creatureRepo.Upsert(ctx, creature.UpsertInput{
		GuildID:   session.GuildID,
		StatBlock: block,
	}); err != nil {
		return nil, err
	}

	summary := fmt.Sprintf(
		"%s (%s %s, nível %d) salvo!\nPV: %d | Defesa: %d | Iniciativa: %d | Corpo a corpo: %s",
		block.Name,
		block.Kind,
		block.Category,
		block.Level,
		block.HitPoints,
		block.Defense,
		block.Initiative,
		block.MeleeBonus,
	)

	return &AdvanceOutput{
		Status:    StatusCompleted,
		Step:      session.Step,
		Message:   summary,
		StatBlock: block,
	}, nil
}

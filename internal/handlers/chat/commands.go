package chat

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	combatorc "github.com/wastelandrpg/wasteland-api/internal/orchestrators/combat"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/game"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/pool"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/wizard"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/creature"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/recipe"
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

func (r *Router) cmdStartWizard(ctx context.Context, userID, guildID, flavor string) (*Reply, error) {
	kind := entities.WizardPlayerCreation
	if flavor == "gm" {
		kind = entities.WizardGMCreation
	}

	out, err := r.wizardService.Start(ctx, &wizard.StartInput{
		GuildID: guildID,
		UserID:  userID,
		Kind:    kind,
	})
	if err != nil {
		return nil, err
	}

	return &Reply{Text: out.Prompt}, nil
}

func (r *Router) cmdCancelWizard(ctx context.Context, userID, guildID string) (*Reply, error) {
	out, err := r.wizardService.Cancel(ctx, &wizard.CancelInput{GuildID: guildID, UserID: userID})
	if err != nil {
		return nil, err
	}

	msg := "Criação de personagem cancelada."
	if out.Kind == entities.WizardGMCreation {
		msg = "Criação de conteúdo de mestre cancelada."
	}
	return &Reply{Text: msg}, nil
}

// cmdRegister creates a character in one shot from a name and seven
// attribute scores. Only the sum is checked on this path.
func (r *Router) cmdRegister(ctx context.Context, userID, guildID string, args []string) (*Reply, error) {
	if len(args) < rulebook.NumAttributes+1 {
		return nil, errors.InvalidArgument("uso: !registrar <nome> <FOR PER RES CAR INT AGI SOR>")
	}

	var attrs rulebook.Attributes
	sum := 0
	numStart := len(args) - rulebook.NumAttributes
	for i, token := range args[numStart:] {
		v, err := strconv.Atoi(token)
		if err != nil {
			return nil, errors.InvalidArgumentf("atributo inválido: %s", token)
		}
		attrs[i] = v
		sum += v
	}
	if sum != rulebook.CreationAttributeSum {
		return nil, errors.InvalidArgumentf("a soma dos atributos deve ser exatamente %d, recebi %d", rulebook.CreationAttributeSum, sum)
	}

	char := &entities.Character{
		GuildID:     guildID,
		UserID:      userID,
		Name:        strings.Join(args[:numStart], " "),
		Attributes:  attrs,
		CurrentLuck: attrs[rulebook.Luck],
		Level:       rulebook.StartingLevel,
	}
	if _, err := r.characterRepo.Upsert(ctx, character.UpsertInput{Character: char}); err != nil {
		return nil, err
	}

	return &Reply{
		Text: fmt.Sprintf("%s registrado! %s", char.Name, rulebook.FormatAttributes(attrs)),
		Fields: []Field{
			{Name: "Derivados", Value: fmt.Sprintf("PV %d · Defesa %d · Iniciativa %d · Sorte %d", rulebook.HitPoints(attrs), rulebook.Defense(attrs), rulebook.Initiative(attrs), attrs[rulebook.Luck])},
		},
	}, nil
}

func (r *Router) cmdSetSkill(ctx context.Context, userID, guildID string, args []string) (*Reply, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, errors.InvalidArgument("uso: !pericia <perícia> <grau> [marcada]")
	}

	skill := strings.ToLower(args[0])
	if !rulebook.SkillExists(skill) {
		return nil, errors.InvalidArgumentf("perícia desconhecida: %s", skill)
	}
	rank, err := strconv.Atoi(args[1])
	if err != nil || rank < 0 {
		return nil, errors.InvalidArgumentf("grau inválido: %s", args[1])
	}
	isTag := len(args) == 3 && strings.ToLower(args[2]) == "marcada"
	if isTag && rank < rulebook.TagSkillBaseRank {
		return nil, errors.InvalidArgumentf("uma perícia marcada não pode ficar abaixo de %d", rulebook.TagSkillBaseRank)
	}

	// The character must exist before any skill record is written.
	if _, err := r.characterRepo.Get(ctx, character.GetInput{GuildID: guildID, UserID: userID}); err != nil {
		return nil, err
	}

	if _, err := r.characterRepo.SetSkill(ctx, character.SetSkillInput{
		GuildID: guildID,
		UserID:  userID,
		Skill:   skill,
		Rank:    rank,
		IsTag:   isTag,
	}); err != nil {
		return nil, err
	}

	marker := ""
	if isTag {
		marker = " (marcada)"
	}
	return &Reply{Text: fmt.Sprintf("%s ajustada para grau %d%s.", skill, rank, marker)}, nil
}

func (r *Router) cmdSheet(ctx context.Context, userID, guildID string) (*Reply, error) {
	got, err := r.characterRepo.Get(ctx, character.GetInput{GuildID: guildID, UserID: userID})
	if err != nil {
		return nil, err
	}
	char := got.Character

	skills, err := r.characterRepo.ListSkills(ctx, character.ListSkillsInput{GuildID: guildID, UserID: userID})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(skills.Skills))
	for name, record := range skills.Skills {
		if record.Rank == 0 && !record.IsTag {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		record := skills.Skills[name]
		line := fmt.Sprintf("%s %d", name, record.Rank)
		if record.IsTag {
			line += " ◆"
		}
		lines = append(lines, line)
	}
	skillList := "Nenhuma"
	if len(lines) > 0 {
		skillList = strings.Join(lines, "\n")
	}

	attrs := char.Attributes
	return &Reply{
		Text: fmt.Sprintf("Ficha de %s", char.Name),
		Fields: []Field{
			{Name: "Origem", Value: originOrDash(char.Origin)},
			{Name: "Atributos", Value: rulebook.FormatAttributes(attrs)},
			{Name: "Derivados", Value: fmt.Sprintf("PV %d · Defesa %d · Iniciativa %d", rulebook.HitPoints(attrs), rulebook.Defense(attrs), rulebook.Initiative(attrs))},
			{Name: "Sorte", Value: fmt.Sprintf("%d/%d", char.CurrentLuck, char.MaxLuck())},
			{Name: "Progresso", Value: fmt.Sprintf("Nível %d · XP %d/%d", char.Level, char.XP, rulebook.RequiredXPForNextLevel(char.Level))},
			{Name: "Perícias", Value: skillList},
		},
	}, nil
}

func (r *Router) cmdRoster(ctx context.Context, guildID string) (*Reply, error) {
	got, err := r.characterRepo.ListByGuild(ctx, character.ListByGuildInput{GuildID: guildID})
	if err != nil {
		return nil, err
	}
	if len(got.Characters) == 0 {
		return &Reply{Text: "Nenhum personagem registrado neste servidor.", Private: true}, nil
	}

	chars := got.Characters
	sort.Slice(chars, func(i, j int) bool { return chars[i].Name < chars[j].Name })
	lines := make([]string, 0, len(chars))
	for _, char := range chars {
		lines = append(lines, fmt.Sprintf("%s · Nível %d · PV %d · Iniciativa %d",
			char.Name, char.Level, rulebook.HitPoints(char.Attributes), rulebook.Initiative(char.Attributes)))
	}

	return &Reply{
		Text:   fmt.Sprintf("Personagens registrados (%d):", len(chars)),
		Fields: []Field{{Name: "Grupo", Value: strings.Join(lines, "\n")}},
	}, nil
}

func originOrDash(origin string) string {
	if origin == "" {
		return "-"
	}
	return origin
}

func (r *Router) cmdSkillTest(ctx context.Context, userID, guildID string, args []string) (*Reply, error) {
	if len(args) < 2 {
		return nil, errors.InvalidArgument("uso: !teste <perícia> <dificuldade> [dados <n>] [sorte]")
	}

	difficulty, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, errors.InvalidArgumentf("dificuldade inválida: %s", args[1])
	}

	input := &game.SkillTestInput{
		GuildID:    guildID,
		UserID:     userID,
		Skill:      strings.ToLower(args[0]),
		Difficulty: difficulty,
	}
	for i := 2; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "sorte":
			input.UseLuck = true
		case "dados":
			if i+1 >= len(args) {
				return nil, errors.InvalidArgument("uso: dados <n>")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return nil, errors.InvalidArgumentf("quantidade de dados inválida: %s", args[i+1])
			}
			input.ExtraDice = n
			i++
		default:
			return nil, errors.InvalidArgumentf("opção desconhecida: %s", args[i])
		}
	}

	out, err := r.gameService.SkillTest(ctx, input)
	if err != nil {
		return nil, err
	}

	verdict := "Falha"
	if out.Success {
		verdict = "Sucesso"
	}
	result := fmt.Sprintf("%s: %d sucesso(s) contra dificuldade %d", verdict, out.Successes, out.Difficulty)
	if out.Complications > 0 {
		result += fmt.Sprintf(" · %d complicação(ões)", out.Complications)
	}

	fields := []Field{
		{Name: "Dados", Value: joinInts(out.Rolls)},
		{Name: "Alvo", Value: strconv.Itoa(out.Target)},
		{Name: "Resultado", Value: result},
	}
	if out.APSpent > 0 || out.APEarned > 0 {
		fields = append(fields, Field{Name: "PA", Value: fmt.Sprintf("gastos %d · ganhos %d", out.APSpent, out.APEarned)})
	}
	if out.LuckSpent {
		fields = append(fields, Field{Name: "Sorte", Value: "1 ponto gasto (teste pelo atributo Sorte)"})
	}

	return &Reply{
		Text:   fmt.Sprintf("Teste de %s", out.Skill),
		Fields: fields,
	}, nil
}

func (r *Router) cmdReroll(ctx context.Context, userID, guildID string, args []string) (*Reply, error) {
	if len(args) != 1 {
		return nil, errors.InvalidArgument("uso: !rerrolar <valor do dado a descartar>")
	}
	discard, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, errors.InvalidArgumentf("valor inválido: %s", args[0])
	}

	out, err := r.gameService.Reroll(ctx, &game.RerollInput{
		GuildID:      guildID,
		UserID:       userID,
		DiscardValue: discard,
	})
	if err != nil {
		return nil, err
	}

	verdict := "Falha"
	if out.Success {
		verdict = "Sucesso"
	}
	return &Reply{
		Text: fmt.Sprintf("Rerrolagem de %s: %d virou %d", out.Skill, out.Discarded, out.Replacement),
		Fields: []Field{
			{Name: "Dados", Value: joinInts(out.Rolls)},
			{Name: "Resultado", Value: fmt.Sprintf("%s: %d sucesso(s) contra dificuldade %d · %d complicação(ões)", verdict, out.Successes, out.Difficulty, out.Complications)},
		},
	}, nil
}

func (r *Router) cmdDamage(ctx context.Context, args []string) (*Reply, error) {
	if len(args) < 1 {
		return nil, errors.InvalidArgument("uso: !dano <dados> [extra <n>]")
	}
	dice, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, errors.InvalidArgumentf("quantidade de dados inválida: %s", args[0])
	}

	input := &game.DamageRollInput{Dice: dice}
	if len(args) >= 3 && strings.ToLower(args[1]) == "extra" {
		extra, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, errors.InvalidArgumentf("quantidade extra inválida: %s", args[2])
		}
		input.ExtraDice = extra
	}

	out, err := r.gameService.DamageRoll(ctx, input)
	if err != nil {
		return nil, err
	}

	return &Reply{
		Text: fmt.Sprintf("Dano: %d · Efeitos: %d", out.Damage, out.Effects),
		Fields: []Field{
			{Name: "Dados", Value: joinInts(out.Rolls)},
			{Name: "Faces", Value: strings.Join(out.Faces, " ")},
		},
	}, nil
}

func (r *Router) cmdCraft(ctx context.Context, userID, guildID string, args []string) (*Reply, error) {
	if len(args) == 0 {
		return nil, errors.InvalidArgument("uso: !fabricar <nome da receita>")
	}

	out, err := r.gameService.CraftingCheck(ctx, &game.CraftingCheckInput{
		GuildID:    guildID,
		UserID:     userID,
		RecipeName: strings.Join(args, " "),
	})
	if err != nil {
		return nil, err
	}

	if out.Recipe == nil {
		return &Reply{
			Text:    "Encontrei mais de uma receita com esse nome. Qual delas?",
			Fields:  []Field{{Name: "Opções", Value: strings.Join(out.Suggestions, "\n")}},
			Private: true,
		}, nil
	}

	verdict := "Falha"
	if out.Success {
		verdict = "Sucesso"
	}
	materials := "Materiais preservados."
	if out.MaterialsConsumed {
		materials = "Materiais consumidos: " + strings.Join(out.Materials, ", ")
	}
	result := fmt.Sprintf("%s: %d sucesso(s) contra dificuldade %d", verdict, out.Successes, out.Difficulty)
	if out.Complications > 0 {
		result += fmt.Sprintf(" · %d complicação(ões)", out.Complications)
	}

	return &Reply{
		Text: fmt.Sprintf("Fabricação de %s", out.Recipe.Name),
		Fields: []Field{
			{Name: "Dados", Value: joinInts(out.Rolls)},
			{Name: "Alvo", Value: strconv.Itoa(out.Target)},
			{Name: "Resultado", Value: result},
			{Name: "Materiais", Value: materials},
		},
	}, nil
}

// cmdRecipe upserts a crafting recipe from a pipe-separated definition.
func (r *Router) cmdRecipe(ctx context.Context, guildID string, args []string) (*Reply, error) {
	parts := strings.Split(strings.Join(args, " "), "|")
	if len(parts) < 3 || len(parts) > 5 {
		return nil, errors.InvalidArgument("uso: !receita <nome> | <perícia> | <complexidade> [| materiais [| raridade]]")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	name := parts[0]
	if name == "" {
		return nil, errors.InvalidArgument("o nome da receita não pode ser vazio")
	}
	skill := strings.ToLower(parts[1])
	if !rulebook.SkillExists(skill) {
		return nil, errors.InvalidArgumentf("perícia desconhecida: %s", parts[1])
	}
	complexity, err := strconv.Atoi(parts[2])
	if err != nil || complexity < 1 {
		return nil, errors.InvalidArgumentf("complexidade inválida: %s", parts[2])
	}

	rec := &entities.Recipe{
		Name:       name,
		Skill:      skill,
		Complexity: complexity,
	}
	if len(parts) >= 4 {
		rec.Materials = parts[3]
	}
	if len(parts) == 5 {
		rec.Rarity = parts[4]
	}

	if _, err := r.recipeRepo.Upsert(ctx, recipe.UpsertInput{GuildID: guildID, Recipe: rec}); err != nil {
		return nil, err
	}

	return &Reply{Text: fmt.Sprintf("Receita %s salva (%s, complexidade %d).", rec.Name, rec.Skill, rec.Complexity)}, nil
}

func (r *Router) cmdStatBlock(ctx context.Context, guildID string, args []string) (*Reply, error) {
	if len(args) == 0 {
		return nil, errors.InvalidArgument("uso: !npc <nome>")
	}
	name := strings.Join(args, " ")

	got, err := r.creatureRepo.Get(ctx, creature.GetInput{GuildID: guildID, Name: name})
	if errors.IsNotFound(err) {
		found, searchErr := r.creatureRepo.Search(ctx, creature.SearchInput{GuildID: guildID, Term: strings.ToLower(name)})
		if searchErr != nil {
			return nil, searchErr
		}
		switch len(found.Names) {
		case 0:
			return nil, err
		case 1:
			got, err = r.creatureRepo.Get(ctx, creature.GetInput{GuildID: guildID, Name: found.Names[0]})
			if err != nil {
				return nil, err
			}
		default:
			return &Reply{
				Text:    "Encontrei mais de um bloco com esse nome. Qual deles?",
				Fields:  []Field{{Name: "Opções", Value: strings.Join(found.Names, "\n")}},
				Private: true,
			}, nil
		}
	} else if err != nil {
		return nil, err
	}

	block := got.StatBlock
	return &Reply{
		Text: fmt.Sprintf("%s (%s %s, nível %d)", block.Name, block.Kind, block.Category, block.Level),
		Fields: []Field{
			{Name: "Atributos", Value: rulebook.FormatAttributes(block.Attributes)},
			{Name: "Derivados", Value: fmt.Sprintf("PV %d · Defesa %d · Iniciativa %d · Corpo a corpo %s", block.HitPoints, block.Defense, block.Initiative, block.MeleeBonus)},
			{Name: "Palavras-chave", Value: strings.Join(block.Keywords, ", ")},
			{Name: "Ataques", Value: block.Attacks},
			{Name: "Inventário", Value: block.Inventory},
		},
	}, nil
}

func (r *Router) cmdActionPoints(ctx context.Context, guildID string, args []string) (*Reply, error) {
	if len(args) == 0 {
		out, err := r.poolService.GetActionPoints(ctx, &pool.GetActionPointsInput{GuildID: guildID})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("Pontos de Ação do grupo: %d/%d", out.Points, out.Max)}, nil
	}

	sub := strings.ToLower(args[0])
	if sub == "zerar" {
		out, err := r.poolService.SetActionPoints(ctx, &pool.SetActionPointsInput{GuildID: guildID, Points: 0})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("Pontos de Ação zerados: %d/%d", out.Points, out.Max)}, nil
	}

	if len(args) != 2 {
		return nil, errors.InvalidArgument("uso: !pa [adicionar <n>|gastar <n>|definir <n>|zerar]")
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, errors.InvalidArgumentf("quantidade inválida: %s", args[1])
	}

	switch sub {
	case "adicionar", "add":
		out, err := r.poolService.AddActionPoints(ctx, &pool.AddActionPointsInput{GuildID: guildID, Amount: amount})
		if err != nil {
			return nil, err
		}
		text := fmt.Sprintf("Pontos de Ação: %d/%d", out.Points, out.Max)
		if out.Wasted > 0 {
			text += fmt.Sprintf(" (%d perdidos no limite)", out.Wasted)
		}
		return &Reply{Text: text}, nil
	case "gastar":
		out, err := r.poolService.SpendActionPoints(ctx, &pool.SpendActionPointsInput{GuildID: guildID, Amount: amount})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("Pontos de Ação: %d/%d", out.Points, out.Max)}, nil
	case "definir":
		out, err := r.poolService.SetActionPoints(ctx, &pool.SetActionPointsInput{GuildID: guildID, Points: amount})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("Pontos de Ação: %d/%d", out.Points, out.Max)}, nil
	default:
		return nil, errors.InvalidArgument("uso: !pa [adicionar <n>|gastar <n>|definir <n>|zerar]")
	}
}

func (r *Router) cmdLuck(ctx context.Context, userID, guildID string, args []string) (*Reply, error) {
	if len(args) == 0 {
		out, err := r.poolService.GetLuck(ctx, &pool.GetLuckInput{GuildID: guildID, UserID: userID})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("Pontos de Sorte: %d/%d", out.Points, out.Max)}, nil
	}

	switch strings.ToLower(args[0]) {
	case "max", "restaurar":
		out, err := r.poolService.RestoreLuck(ctx, &pool.RestoreLuckInput{GuildID: guildID, UserID: userID})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("Pontos de Sorte restaurados: %d/%d", out.Points, out.Max)}, nil
	case "gastar":
		amount := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return nil, errors.InvalidArgumentf("quantidade inválida: %s", args[1])
			}
			amount = n
		}
		out, err := r.poolService.SpendLuck(ctx, &pool.SpendLuckInput{GuildID: guildID, UserID: userID, Amount: amount})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("Pontos de Sorte: %d/%d", out.Points, out.Max)}, nil
	case "definir":
		if len(args) != 2 {
			return nil, errors.InvalidArgument("uso: !ps definir <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, errors.InvalidArgumentf("quantidade inválida: %s", args[1])
		}
		out, err := r.poolService.SetLuck(ctx, &pool.SetLuckInput{GuildID: guildID, UserID: userID, Points: n})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("Pontos de Sorte: %d/%d", out.Points, out.Max)}, nil
	default:
		return nil, errors.InvalidArgument("uso: !ps [gastar [n]|definir <n>|max]")
	}
}

func (r *Router) cmdXP(ctx context.Context, userID, guildID string, args []string) (*Reply, error) {
	if len(args) == 0 {
		return nil, errors.InvalidArgument("uso: !xp <quantidade> ou !xp derrota <nome>")
	}

	if strings.ToLower(args[0]) == "derrota" {
		if len(args) < 2 {
			return nil, errors.InvalidArgument("uso: !xp derrota <nome>")
		}
		out, err := r.gameService.AwardDefeatXP(ctx, &game.AwardDefeatXPInput{
			GuildID: guildID,
			UserID:  userID,
			Name:    strings.Join(args[1:], " "),
		})
		if err != nil {
			return nil, err
		}
		if out.StatBlock == nil {
			return &Reply{
				Text:    "Encontrei mais de um bloco com esse nome. Qual deles?",
				Fields:  []Field{{Name: "Opções", Value: strings.Join(out.Suggestions, "\n")}},
				Private: true,
			}, nil
		}
		return &Reply{Text: formatXPGain(fmt.Sprintf("%s derrotado!", out.StatBlock.Name), out.Applied)}, nil
	}

	amount, err := strconv.Atoi(args[0])
	if err != nil || amount <= 0 {
		return nil, errors.InvalidArgumentf("quantidade de XP inválida: %s", args[0])
	}
	out, err := r.gameService.AddXP(ctx, &game.AddXPInput{GuildID: guildID, UserID: userID, Amount: amount})
	if err != nil {
		return nil, err
	}
	return &Reply{Text: formatXPGain("XP registrado.", out)}, nil
}

func formatXPGain(prefix string, out *game.AddXPOutput) string {
	text := fmt.Sprintf("%s +%d XP · Nível %d · XP %d/%d", prefix, out.Gained, out.Level, out.XP, out.NextLevelXP)
	if out.LevelsGained > 0 {
		text += fmt.Sprintf(" · Subiu %d nível(is)!", out.LevelsGained)
	}
	return text
}

func (r *Router) cmdCombat(ctx context.Context, userID, guildID string, args []string) (*Reply, error) {
	if len(args) == 0 {
		return nil, errors.InvalidArgument("uso: !combate iniciar|encerrar|entrar|add <nome> <inic>|remover <nome>|proximo|ordem")
	}

	switch strings.ToLower(args[0]) {
	case "iniciar":
		if _, err := r.combatService.Start(ctx, &combatorc.StartInput{GuildID: guildID}); err != nil {
			return nil, err
		}
		return &Reply{Text: "Combate iniciado! Usem `!combate entrar` ou `!combate add`."}, nil
	case "encerrar":
		if _, err := r.combatService.End(ctx, &combatorc.EndInput{GuildID: guildID}); err != nil {
			return nil, err
		}
		return &Reply{Text: "Combate encerrado."}, nil
	case "entrar":
		out, err := r.combatService.JoinAsCharacter(ctx, &combatorc.JoinAsCharacterInput{GuildID: guildID, UserID: userID})
		if err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("%s entrou no combate com iniciativa %d.", out.Name, out.Initiative)}, nil
	case "add":
		if len(args) < 3 {
			return nil, errors.InvalidArgument("uso: !combate add <nome> <iniciativa>")
		}
		initiative, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return nil, errors.InvalidArgumentf("iniciativa inválida: %s", args[len(args)-1])
		}
		out, err := r.combatService.AddCombatant(ctx, &combatorc.AddCombatantInput{
			GuildID:    guildID,
			Name:       strings.Join(args[1:len(args)-1], " "),
			Initiative: initiative,
		})
		if err != nil {
			return nil, err
		}
		text := fmt.Sprintf("%s entrou no combate com iniciativa %d.", out.Name, initiative)
		if out.Renamed {
			text += " (nome ajustado por já existir)"
		}
		return &Reply{Text: text}, nil
	case "remover":
		if len(args) < 2 {
			return nil, errors.InvalidArgument("uso: !combate remover <nome>")
		}
		name := strings.Join(args[1:], " ")
		if _, err := r.combatService.RemoveCombatant(ctx, &combatorc.RemoveCombatantInput{GuildID: guildID, Name: name}); err != nil {
			return nil, err
		}
		return &Reply{Text: fmt.Sprintf("%s removido do combate. O turno volta ao topo da ordem.", name)}, nil
	case "proximo":
		out, err := r.combatService.NextTurn(ctx, &combatorc.NextTurnInput{GuildID: guildID})
		if err != nil {
			return nil, err
		}
		text := fmt.Sprintf("Turno de %s (iniciativa %d).", out.Active.Name, out.Active.Initiative)
		if out.NewRound {
			text = fmt.Sprintf("Rodada %d! ", out.Round) + text
		}
		return &Reply{Text: text}, nil
	case "ordem":
		out, err := r.combatService.Order(ctx, &combatorc.OrderInput{GuildID: guildID})
		if err != nil {
			return nil, err
		}
		if len(out.Combatants) == 0 {
			return &Reply{Text: "Nenhum combatente na ordem."}, nil
		}
		lines := make([]string, 0, len(out.Combatants))
		for i, c := range out.Combatants {
			marker := "  "
			if i == out.TurnIndex {
				marker = "▶ "
			}
			lines = append(lines, fmt.Sprintf("%s%d. %s (%d)", marker, i+1, c.Name, c.Initiative))
		}
		return &Reply{
			Text:   fmt.Sprintf("Ordem de combate · Rodada %d", out.Round),
			Fields: []Field{{Name: "Iniciativa", Value: strings.Join(lines, "\n")}},
		}, nil
	default:
		return nil, errors.InvalidArgument("uso: !combate iniciar|encerrar|entrar|add <nome> <inic>|remover <nome>|proximo|ordem")
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// Package game implements the orchestrator for skill tests, rerolls,
// damage rolls, crafting checks, and experience awards. It is the
// stateful front of the pure resolution engine: it charges resource
// costs, rolls dice, and applies rewards.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/wastelandrpg/wasteland-api/internal/orchestrators/game Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wastelandrpg/wasteland-api/internal/engine"
	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/pool"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/dice"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/idgen"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/creature"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/recipe"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/rollsession"
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

// Service defines the interface for game resolution operations
type Service interface {
	// SkillTest resolves a d20 skill check, charging extra dice to the
	// group AP pool and crediting overflow successes back to it.
	SkillTest(ctx context.Context, input *SkillTestInput) (*SkillTestOutput, error)

	// Reroll replaces one die of the caller's most recent test for a
	// luck point and re-tallies. No AP reward is re-applied.
	Reroll(ctx context.Context, input *RerollInput) (*RerollOutput, error)

	// DamageRoll resolves a pool of combat d6s.
	DamageRoll(ctx context.Context, input *DamageRollInput) (*DamageRollOutput, error)

	// CraftingCheck resolves a crafting attempt against a stored
	// recipe.
	CraftingCheck(ctx context.Context, input *CraftingCheckInput) (*CraftingCheckOutput, error)

	// AddXP credits experience to the caller's character, applying
	// level-ups.
	AddXP(ctx context.Context, input *AddXPInput) (*AddXPOutput, error)

	// AwardDefeatXP credits the experience value of a defeated stat
	// block, found by fuzzy name.
	AwardDefeatXP(ctx context.Context, input *AwardDefeatXPInput) (*AwardDefeatXPOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	CharacterRepo   character.Repository
	RollSessionRepo rollsession.Repository
	RecipeRepo      recipe.Repository
	CreatureRepo    creature.Repository
	PoolService     pool.Service
	Roller          dice.Roller
	IDGenerator     idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.RollSessionRepo == nil {
		vb.RequiredField("RollSessionRepo")
	}
	if c.RecipeRepo == nil {
		vb.RequiredField("RecipeRepo")
	}
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.PoolService == nil {
		vb.RequiredField("PoolService")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo   character.Repository
	rollSessionRepo rollsession.Repository
	recipeRepo      recipe.Repository
	creatureRepo    creature.Repository
	poolService     pool.Service
	roller          dice.Roller
	idGen           idgen.Generator
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		characterRepo:   cfg.CharacterRepo,
		rollSessionRepo: cfg.RollSessionRepo,
		recipeRepo:      cfg.RecipeRepo,
		creatureRepo:    cfg.CreatureRepo,
		poolService:     cfg.PoolService,
		roller:          cfg.Roller,
		idGen:           cfg.IDGenerator,
	}, nil
}

func (o *orchestrator) SkillTest(ctx context.Context, input *SkillTestInput) (*SkillTestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return nil, errors.InvalidArgument("guild ID and user ID are required")
	}
	if !rulebook.SkillExists(input.Skill) {
		return nil, errors.InvalidArgumentf("unknown skill: %s", input.Skill)
	}
	if input.Difficulty < 0 {
		return nil, errors.InvalidArgument("difficulty cannot be negative")
	}
	if input.ExtraDice < 0 || input.ExtraDice > rulebook.MaxExtraDice {
		return nil, errors.InvalidArgumentf("extra dice must be between 0 and %d", rulebook.MaxExtraDice)
	}

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	skill, err := o.characterRepo.GetSkill(ctx, character.GetSkillInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Skill:   input.Skill,
	})
	if err != nil {
		return nil, err
	}

	attr, _ := rulebook.SkillAttribute(input.Skill)
	if input.UseLuck {
		attr = rulebook.Luck
	}
	target := char.Character.Attributes[attr] + skill.Rank

	tagRank := 0
	if skill.IsTag {
		tagRank = skill.Rank
	}

	// All costs are charged before any die is rolled. Luck goes first;
	// a failed AP charge refunds it.
	if input.UseLuck {
		if _, err := o.poolService.SpendLuck(ctx, &pool.SpendLuckInput{
			GuildID: input.GuildID,
			UserID:  input.UserID,
		}); err != nil {
			return nil, err
		}
	}

	apSpent := 0
	if input.ExtraDice > 0 {
		cost, _ := rulebook.ExtraDiceCost(input.ExtraDice)
		if _, err := o.poolService.SpendActionPoints(ctx, &pool.SpendActionPointsInput{
			GuildID: input.GuildID,
			Amount:  cost,
		}); err != nil {
			if input.UseLuck {
				if _, refundErr := o.poolService.AddLuck(ctx, &pool.AddLuckInput{
					GuildID: input.GuildID,
					UserID:  input.UserID,
					Amount:  1,
				}); refundErr != nil {
					slog.Error("luck refund failed after AP charge failure",
						"guild_id", input.GuildID,
						"user_id", input.UserID,
						"error", refundErr,
					)
				}
			}
			return nil, err
		}
		apSpent = cost
	}

	rolls, err := o.roller.RollN(rulebook.BaseTestDice+input.ExtraDice, 20)
	if err != nil {
		return nil, errors.Wrap(err, "dice roll failed")
	}

	result := engine.EvaluateRoll(rolls, target, tagRank, input.Difficulty)

	apEarned := result.ActionPointsEarned()
	if apEarned > 0 {
		add, err := o.poolService.AddActionPoints(ctx, &pool.AddActionPointsInput{
			GuildID: input.GuildID,
			Amount:  apEarned,
		})
		if err != nil {
			return nil, err
		}
		apEarned -= add.Wasted
	}

	testID := o.idGen.Generate()
	if _, err := o.rollSessionRepo.Set(ctx, rollsession.SetInput{Session: &entities.RollSession{
		TestID:     testID,
		UserID:     input.UserID,
		GuildID:    input.GuildID,
		Skill:      input.Skill,
		Target:     target,
		TagRank:    tagRank,
		Difficulty: input.Difficulty,
		Rolls:      rolls,
	}}); err != nil {
		return nil, err
	}

	slog.Info("skill test resolved",
		"test_id", testID,
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"skill", input.Skill,
		"target", target,
		"difficulty", input.Difficulty,
		"successes", result.Successes,
		"complications", result.Complications,
		"ap_spent", apSpent,
		"ap_earned", apEarned,
	)

	return &SkillTestOutput{
		TestID:        testID,
		Skill:         input.Skill,
		Rolls:         rolls,
		Target:        target,
		TagRank:       tagRank,
		Difficulty:    input.Difficulty,
		Successes:     result.Successes,
		Complications: result.Complications,
		Success:       result.Success(),
		APSpent:       apSpent,
		APEarned:      apEarned,
		LuckSpent:     input.UseLuck,
	}, nil
}

func (o *orchestrator) Reroll(ctx context.Context, input *RerollInput) (*RerollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return nil, errors.InvalidArgument("guild ID and user ID are required")
	}

	cached, err := o.rollSessionRepo.Get(ctx, rollsession.GetInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
	})
	if err != nil {
		return nil, err
	}

	session := cached.Session
	discardIndex := -1
	for i, roll := range session.Rolls {
		if roll == input.DiscardValue {
			discardIndex = i
			break
		}
	}
	if discardIndex == -1 {
		return nil, errors.InvalidArgumentf("no die showing %d in the last roll", input.DiscardValue)
	}

	if _, err := o.poolService.SpendLuck(ctx, &pool.SpendLuckInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
	}); err != nil {
		return nil, err
	}

	// One reroll per test: the cache goes away before the new die is
	// evaluated.
	if _, err := o.rollSessionRepo.Delete(ctx, rollsession.DeleteInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
	}); err != nil {
		return nil, err
	}

	replacement, err := o.roller.Roll(20)
	if err != nil {
		return nil, errors.Wrap(err, "dice roll failed")
	}

	rolls := make([]int, len(session.Rolls))
	copy(rolls, session.Rolls)
	rolls[discardIndex] = replacement

	result := engine.EvaluateRoll(rolls, session.Target, session.TagRank, session.Difficulty)

	slog.Info("reroll resolved",
		"test_id", session.TestID,
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"skill", session.Skill,
		"discarded", input.DiscardValue,
		"replacement", replacement,
		"successes", result.Successes,
	)

	return &RerollOutput{
		Skill:         session.Skill,
		Rolls:         rolls,
		Discarded:     input.DiscardValue,
		Replacement:   replacement,
		Target:        session.Target,
		Difficulty:    session.Difficulty,
		Successes:     result.Successes,
		Complications: result.Complications,
		Success:       result.Success(),
	}, nil
}

func (o *orchestrator) DamageRoll(ctx context.Context, input *DamageRollInput) (*DamageRollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	total := input.Dice + input.ExtraDice
	if input.Dice < 1 || input.ExtraDice < 0 || total > rulebook.MaxDamageDice {
		return nil, errors.InvalidArgumentf("damage dice must total between 1 and %d", rulebook.MaxDamageDice)
	}

	rolls, err := o.roller.RollN(total, 6)
	if err != nil {
		return nil, errors.Wrap(err, "dice roll failed")
	}

	result := engine.EvaluateDamage(rolls)

	faces := make([]string, len(rolls))
	for i, roll := range rolls {
		faces[i] = engine.DamageDieFace(roll)
	}

	return &DamageRollOutput{
		Rolls:   rolls,
		Faces:   faces,
		Damage:  result.Damage,
		Effects: result.Effects,
	}, nil
}

func (o *orchestrator) CraftingCheck(ctx context.Context, input *CraftingCheckInput) (*CraftingCheckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return nil, errors.InvalidArgument("guild ID and user ID are required")
	}
	if input.RecipeName == "" {
		return nil, errors.InvalidArgument("recipe name is required")
	}

	rec, suggestions, err := o.findRecipe(ctx, input.GuildID, input.RecipeName)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &CraftingCheckOutput{Suggestions: suggestions}, nil
	}

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	skill, err := o.characterRepo.GetSkill(ctx, character.GetSkillInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Skill:   rec.Skill,
	})
	if err != nil {
		return nil, err
	}

	target := char.Character.Attributes[rulebook.Intelligence] + skill.Rank
	difficulty := engine.CraftingDifficulty(rec.Complexity, skill.Rank)

	rolls, err := o.roller.RollN(rulebook.BaseTestDice, 20)
	if err != nil {
		return nil, errors.Wrap(err, "dice roll failed")
	}

	tagRank := 0
	if skill.IsTag {
		tagRank = skill.Rank
	}
	result := engine.EvaluateRoll(rolls, target, tagRank, difficulty)

	materials := splitMaterials(rec.Materials)
	if len(materials) == 0 {
		materials = []string{rulebook.MaterialsForComplexity(rec.Complexity)}
	}

	// Success always spends the materials; a failed attempt only does
	// for volatile skills with a complication.
	consumed := result.Success() || rulebook.CraftingConsumesMaterials(rec.Skill, result.Complications)

	slog.Info("crafting check resolved",
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"recipe", rec.Name,
		"skill", rec.Skill,
		"difficulty", difficulty,
		"successes", result.Successes,
		"materials_consumed", consumed,
	)

	return &CraftingCheckOutput{
		Recipe:            rec,
		Rolls:             rolls,
		Target:            target,
		Difficulty:        difficulty,
		Successes:         result.Successes,
		Complications:     result.Complications,
		Success:           result.Success(),
		Materials:         materials,
		MaterialsConsumed: consumed,
	}, nil
}

// splitMaterials breaks a recipe's comma-separated materials line into
// individual entries. An empty line yields nil.
func splitMaterials(line string) []string {
	var materials []string
	for _, part := range strings.Split(line, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			materials = append(materials, trimmed)
		}
	}
	return materials
}

// findRecipe resolves a recipe by exact name, then by fuzzy search. A
// single fuzzy match resolves; several come back as suggestions.
func (o *orchestrator) findRecipe(ctx context.Context, guildID, name string) (*entities.Recipe, []string, error) {
	got, err := o.recipeRepo.Get(ctx, recipe.GetInput{GuildID: guildID, Name: name})
	if err == nil {
		return got.Recipe, nil, nil
	}
	if !errors.IsNotFound(err) {
		return nil, nil, err
	}

	found, err := o.recipeRepo.Search(ctx, recipe.SearchInput{GuildID: guildID, Term: name})
	if err != nil {
		return nil, nil, err
	}

	switch len(found.Names) {
	case 0:
		return nil, nil, errors.NotFoundf("recipe not found: %s", name)
	case 1:
		got, err := o.recipeRepo.Get(ctx, recipe.GetInput{GuildID: guildID, Name: found.Names[0]})
		if err != nil {
			return nil, nil, err
		}
		return got.Recipe, nil, nil
	default:
		return nil, found.Names, nil
	}
}

func (o *orchestrator) AddXP(ctx context.Context, input *AddXPInput) (*AddXPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return nil, errors.InvalidArgument("guild ID and user ID are required")
	}
	if input.Amount <= 0 {
		return nil, errors.InvalidArgument("amount must be positive")
	}

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	oldLevel := char.Character.Level
	newLevel, newXP := rulebook.ApplyXP(char.Character.Level, char.Character.XP, input.Amount)

	char.Character.Level = newLevel
	char.Character.XP = newXP
	if _, err := o.characterRepo.Update(ctx, character.UpdateInput{Character: char.Character}); err != nil {
		return nil, err
	}

	if newLevel > oldLevel {
		slog.Info("character leveled up",
			"guild_id", input.GuildID,
			"user_id", input.UserID,
			"level", newLevel,
		)
	}

	return &AddXPOutput{
		Gained:       input.Amount,
		Level:        newLevel,
		LevelsGained: newLevel - oldLevel,
		XP:           newXP,
		NextLevelXP:  rulebook.RequiredXPForNextLevel(newLevel),
	}, nil
}

func (o *orchestrator) AwardDefeatXP(ctx context.Context, input *AwardDefeatXPInput) (*AwardDefeatXPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("stat block name is required")
	}

	block, suggestions, err := o.findStatBlock(ctx, input.GuildID, input.Name)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return &AwardDefeatXPOutput{Suggestions: suggestions}, nil
	}

	reward := rulebook.XPRewardForStatBlock(block.Level, block.Category)

	applied, err := o.AddXP(ctx, &AddXPInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Amount:  reward,
	})
	if err != nil {
		return nil, err
	}

	return &AwardDefeatXPOutput{
		StatBlock: block,
		Applied:   applied,
	}, nil
}

// findStatBlock mirrors findRecipe for NPC and creature stat blocks.
func (o *orchestrator) findStatBlock(ctx context.Context, guildID, name string) (*entities.StatBlock, []string, error) {
	got, err := o.creatureRepo.Get(ctx, creature.GetInput{GuildID: guildID, Name: name})
	if err == nil {
		return got.StatBlock, nil, nil
	}
	if !errors.IsNotFound(err) {
		return nil, nil, err
	}

	found, err := o.creatureRepo.Search(ctx, creature.SearchInput{GuildID: guildID, Term: name})
	if err != nil {
		return nil, nil, err
	}

	switch len(found.Names) {
	case 0:
		return nil, nil, errors.NotFoundf("stat block not found: %s", name)
	case 1:
		got, err := o.creatureRepo.Get(ctx, creature.GetInput{GuildID: guildID, Name: found.Names[0]})
		if err != nil {
			return nil, nil, err
		}
		return got.StatBlock, nil, nil
	default:
		return nil, found.Names, nil
	}
}

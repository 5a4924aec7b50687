package wizard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/wizard"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/clock"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/keymutex"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/creature"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/wizardsession"
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
	"github.com/wastelandrpg/wasteland-api/internal/testutils"
)

const (
	testGuildID   = "guild-123"
	testGuildName = "Mesa do Deserto"
	testUserID    = "user-456"
)

type WizardOrchestratorTestSuite struct {
	suite.Suite
	cleanup   func()
	charRepo  character.Repository
	creatRepo creature.Repository
	service   wizard.Service
	ctx       context.Context
}

func (s *WizardOrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	sessionRepo, err := wizardsession.NewRedis(&wizardsession.RedisConfig{Client: client, Clock: clock.New()})
	s.Require().NoError(err)

	charRepo, err := character.NewRedis(&character.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.charRepo = charRepo

	creatRepo, err := creature.NewRedis(&creature.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.creatRepo = creatRepo

	svc, err := wizard.NewOrchestrator(&wizard.Config{
		SessionRepo:   sessionRepo,
		CharacterRepo: charRepo,
		CreatureRepo:  creatRepo,
		Locks:         keymutex.New(),
	})
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func (s *WizardOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *WizardOrchestratorTestSuite) startPlayer() *wizard.StartOutput {
	out, err := s.service.Start(s.ctx, &wizard.StartInput{
		GuildID:   testGuildID,
		GuildName: testGuildName,
		UserID:    testUserID,
		Kind:      entities.WizardPlayerCreation,
	})
	s.Require().NoError(err)
	return out
}

func (s *WizardOrchestratorTestSuite) startGM() *wizard.StartOutput {
	out, err := s.service.Start(s.ctx, &wizard.StartInput{
		GuildID:   testGuildID,
		GuildName: testGuildName,
		UserID:    testUserID,
		Kind:      entities.WizardGMCreation,
	})
	s.Require().NoError(err)
	return out
}

func (s *WizardOrchestratorTestSuite) advance(text string) *wizard.AdvanceOutput {
	out, err := s.service.Advance(s.ctx, &wizard.AdvanceInput{
		GuildID: testGuildID,
		UserID:  testUserID,
		Text:    text,
	})
	s.Require().NoError(err)
	return out
}

func (s *WizardOrchestratorTestSuite) TestStartUnknownKindFails() {
	_, err := s.service.Start(s.ctx, &wizard.StartInput{
		GuildID: testGuildID,
		UserID:  testUserID,
		Kind:    entities.WizardKind("bogus"),
	})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *WizardOrchestratorTestSuite) TestStartTwiceFails() {
	s.startPlayer()

	_, err := s.service.Start(s.ctx, &wizard.StartInput{
		GuildID: testGuildID,
		UserID:  testUserID,
		Kind:    entities.WizardGMCreation,
	})
	s.Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *WizardOrchestratorTestSuite) TestStartInAnotherGuildWhileActiveFails() {
	s.startPlayer()

	// The session slot is per user, not per (guild, user).
	_, err := s.service.Start(s.ctx, &wizard.StartInput{
		GuildID: "guild-999",
		UserID:  testUserID,
		Kind:    entities.WizardGMCreation,
	})
	s.Error(err)
	s.True(errors.IsAlreadyExists(err))

	got, err := s.service.HasSession(s.ctx, &wizard.HasSessionInput{GuildID: "guild-999", UserID: testUserID})
	s.Require().NoError(err)
	s.True(got.Active)
}

func (s *WizardOrchestratorTestSuite) TestAdvanceWithoutSessionFails() {
	_, err := s.service.Advance(s.ctx, &wizard.AdvanceInput{
		GuildID: testGuildID,
		UserID:  testUserID,
		Text:    "1",
	})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *WizardOrchestratorTestSuite) TestPlayerFlowComplete() {
	start := s.startPlayer()
	s.Equal(entities.StepOrigin, start.Step)
	s.Contains(start.Prompt, "1. Habitante do Refúgio")

	// Origin must be a menu number.
	out := s.advance("99")
	s.Equal(wizard.StatusReprompt, out.Status)
	s.Equal(entities.StepOrigin, out.Step)

	out = s.advance("5")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.StepSpecial, out.Step)
	s.Contains(out.Message, "Sobrevivente")

	// Sum off by one keeps the step.
	out = s.advance("6 7 5 6 8 5 4")
	s.Equal(wizard.StatusReprompt, out.Status)
	s.Equal(entities.StepSpecial, out.Step)
	s.Contains(out.Message, "41")

	out = s.advance("6 7 5 6 8 5 3")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.StepTagSkills, out.Step)

	// Duplicates rejected.
	out = s.advance("medicina, medicina, furtividade")
	s.Equal(wizard.StatusReprompt, out.Status)
	s.Contains(out.Message, "repetida")

	out = s.advance("medicina, furtividade, armaspequenas")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.StepDistributeSkills, out.Step)
	// Budget is 9 + Intelligence.
	s.Contains(out.Message, "17 pontos")

	// A tag skill cannot drop below its base rank.
	out = s.advance("medicina 1, furtividade 3")
	s.Equal(wizard.StatusReprompt, out.Status)
	s.Contains(out.Message, "medicina")

	out = s.advance("furtividade 3, pilotagem 2, ciencias 1")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.StepName, out.Step)
	s.Contains(out.Message, "4 de 17")

	out = s.advance("Joana do Deserto")
	s.Equal(wizard.StatusCompleted, out.Status)
	s.Require().NotNil(out.Character)
	s.Equal("Joana do Deserto", out.Character.Name)
	s.Equal("Sobrevivente", out.Character.Origin)
	s.Equal(3, out.Character.CurrentLuck)
	s.Equal(rulebook.StartingLevel, out.Character.Level)
	s.Contains(out.Message, "PV: 8")

	// The sheet and skills are persisted.
	got, err := s.charRepo.Get(s.ctx, character.GetInput{GuildID: testGuildID, UserID: testUserID})
	s.Require().NoError(err)
	s.Equal("Joana do Deserto", got.Character.Name)
	s.Equal(rulebook.Attributes{6, 7, 5, 6, 8, 5, 3}, got.Character.Attributes)

	skill, err := s.charRepo.GetSkill(s.ctx, character.GetSkillInput{GuildID: testGuildID, UserID: testUserID, Skill: "furtividade"})
	s.Require().NoError(err)
	s.Equal(3, skill.Rank)
	s.True(skill.IsTag)

	skill, err = s.charRepo.GetSkill(s.ctx, character.GetSkillInput{GuildID: testGuildID, UserID: testUserID, Skill: "medicina"})
	s.Require().NoError(err)
	s.Equal(2, skill.Rank)
	s.True(skill.IsTag)

	skill, err = s.charRepo.GetSkill(s.ctx, character.GetSkillInput{GuildID: testGuildID, UserID: testUserID, Skill: "pilotagem"})
	s.Require().NoError(err)
	s.Equal(2, skill.Rank)
	s.False(skill.IsTag)

	// The session is gone.
	active, err := s.service.HasSession(s.ctx, &wizard.HasSessionInput{GuildID: testGuildID, UserID: testUserID})
	s.Require().NoError(err)
	s.False(active.Active)
}

func (s *WizardOrchestratorTestSuite) TestPlayerAttributeOutOfRange() {
	s.startPlayer()
	s.advance("1")

	out := s.advance("11 7 5 6 8 2 1")
	s.Equal(wizard.StatusReprompt, out.Status)
	s.Equal(entities.StepSpecial, out.Step)
	s.Contains(out.Message, "11")
}

func (s *WizardOrchestratorTestSuite) TestPlayerBudgetOverspendAppliesNothing() {
	s.startPlayer()
	s.advance("1")
	s.advance("6 7 5 6 8 5 3")
	s.advance("medicina, furtividade, armaspequenas")

	out := s.advance("pilotagem 3, ciencias 3, reparo 3, arremesso 3, atletismo 3, barganha 3")
	s.Equal(wizard.StatusReprompt, out.Status)
	s.Equal(entities.StepDistributeSkills, out.Step)
	s.Contains(out.Message, "Custo total 18 excede o orçamento de 17")

	// Still at the same step, a valid batch goes through.
	out = s.advance("pilotagem 3")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.StepName, out.Step)
}

func (s *WizardOrchestratorTestSuite) TestGMFlowNPC() {
	start := s.startGM()
	s.Equal(entities.GMStepType, start.Step)

	out := s.advance("banana")
	s.Equal(wizard.StatusReprompt, out.Status)

	out = s.advance("1")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.GMStepName, out.Step)

	out = s.advance("Guarda da Caravana")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.GMStepLevelAndType, out.Step)
	s.Contains(out.Message, "notável")

	// Creature categories are not valid for NPCs.
	out = s.advance("5 lendária")
	s.Equal(wizard.StatusReprompt, out.Status)

	out = s.advance("5 notável")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.GMStepAttributes, out.Step)
	s.Contains(out.Message, "exatamente 44")

	out = s.advance("7 7 6 6 6 6 5")
	s.Equal(wizard.StatusReprompt, out.Status)
	s.Contains(out.Message, "recebi 43")

	out = s.advance("7 7 6 6 6 6 6")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.GMStepKeywords, out.Step)

	out = s.advance("humano, guarda, caravana, mercado")
	s.Equal(wizard.StatusReprompt, out.Status)

	out = s.advance("humano, guarda")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.GMStepFinalize, out.Step)

	out = s.advance("Pistola: 3DC | Colete de couro")
	s.Equal(wizard.StatusCompleted, out.Status)
	s.Require().NotNil(out.StatBlock)
	s.Equal("Guarda da Caravana", out.StatBlock.Name)
	s.Equal(rulebook.KindNPC, out.StatBlock.Kind)
	s.Equal(rulebook.CategoryNotable, out.StatBlock.Category)
	// PV = RES + level + SOR for a notable.
	s.Equal(17, out.StatBlock.HitPoints)
	// Initiative = PER + AGI + 2 for a notable.
	s.Equal(15, out.StatBlock.Initiative)
	s.Equal(1, out.StatBlock.Defense)
	s.Equal("+1 DC", out.StatBlock.MeleeBonus)
	s.Equal("Pistola: 3DC", out.StatBlock.Attacks)
	s.Equal("Colete de couro", out.StatBlock.Inventory)

	got, err := s.creatRepo.Get(s.ctx, creature.GetInput{GuildID: testGuildID, Name: "guarda da caravana"})
	s.Require().NoError(err)
	s.Equal("Guarda da Caravana", got.StatBlock.Name)
}

func (s *WizardOrchestratorTestSuite) TestGMFlowCreatureSkipsAttributes() {
	s.startGM()
	s.advance("2")
	s.advance("Rad-rato")

	out := s.advance("3 poderosa")
	s.Equal(wizard.StatusAdvanced, out.Status)
	s.Equal(entities.GMStepKeywords, out.Step)

	s.advance("bicho")

	// Empty finalize falls back to the defaults.
	out = s.advance("")
	s.Equal(wizard.StatusCompleted, out.Status)
	s.Require().NotNil(out.StatBlock)
	s.Equal(rulebook.KindCreature, out.StatBlock.Kind)
	s.Equal(rulebook.Attributes{5, 5, 5, 5, 5, 5, 5}, out.StatBlock.Attributes)
	s.Equal(8, out.StatBlock.HitPoints)
	s.Equal(10, out.StatBlock.Initiative)
	s.Equal("Ataque Desarmado: 2DC", out.StatBlock.Attacks)
	s.Equal("Nenhum", out.StatBlock.Inventory)
}

func (s *WizardOrchestratorTestSuite) TestCancel() {
	s.startGM()

	out, err := s.service.Cancel(s.ctx, &wizard.CancelInput{GuildID: testGuildID, UserID: testUserID})
	s.Require().NoError(err)
	s.Equal(entities.WizardGMCreation, out.Kind)

	active, err := s.service.HasSession(s.ctx, &wizard.HasSessionInput{GuildID: testGuildID, UserID: testUserID})
	s.Require().NoError(err)
	s.False(active.Active)

	_, err = s.service.Cancel(s.ctx, &wizard.CancelInput{GuildID: testGuildID, UserID: testUserID})
	s.Error(err)
	s.True(errors.IsNotFound(err))

	// A fresh flow can start after cancelling.
	s.startPlayer()
}

func (s *WizardOrchestratorTestSuite) TestHasSessionMidFlow() {
	active, err := s.service.HasSession(s.ctx, &wizard.HasSessionInput{GuildID: testGuildID, UserID: testUserID})
	s.Require().NoError(err)
	s.False(active.Active)

	s.startPlayer()

	active, err = s.service.HasSession(s.ctx, &wizard.HasSessionInput{GuildID: testGuildID, UserID: testUserID})
	s.Require().NoError(err)
	s.True(active.Active)
}

func TestWizardOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(WizardOrchestratorTestSuite))
}

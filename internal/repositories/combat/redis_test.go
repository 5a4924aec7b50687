package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/combat"
	"github.com/wastelandrpg/wasteland-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    combat.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := combat.NewRedis(&combat.RedisConfig{
		Client: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestAddCombatant() {
	out, err := s.repo.AddCombatant(s.ctx, combat.AddCombatantInput{
		GuildID:   "guild_1",
		Combatant: &entities.Combatant{Name: "Raider", Initiative: 12},
	})
	s.Require().NoError(err)
	s.True(out.Added)

	// Same name does not overwrite.
	out, err = s.repo.AddCombatant(s.ctx, combat.AddCombatantInput{
		GuildID:   "guild_1",
		Combatant: &entities.Combatant{Name: "Raider", Initiative: 5},
	})
	s.Require().NoError(err)
	s.False(out.Added)

	list, err := s.repo.ListCombatants(s.ctx, combat.ListCombatantsInput{GuildID: "guild_1"})
	s.Require().NoError(err)
	s.Require().Len(list.Combatants, 1)
	s.Equal(12, list.Combatants[0].Initiative)
}

func (s *RedisRepositoryTestSuite) TestRemoveCombatant() {
	_, err := s.repo.AddCombatant(s.ctx, combat.AddCombatantInput{
		GuildID:   "guild_1",
		Combatant: &entities.Combatant{Name: "Raider", Initiative: 12},
	})
	s.Require().NoError(err)

	out, err := s.repo.RemoveCombatant(s.ctx, combat.RemoveCombatantInput{
		GuildID: "guild_1",
		Name:    "Raider",
	})
	s.Require().NoError(err)
	s.True(out.Removed)

	out, err = s.repo.RemoveCombatant(s.ctx, combat.RemoveCombatantInput{
		GuildID: "guild_1",
		Name:    "Raider",
	})
	s.Require().NoError(err)
	s.False(out.Removed)
}

func (s *RedisRepositoryTestSuite) TestStateDefaults() {
	got, err := s.repo.GetState(s.ctx, combat.GetStateInput{GuildID: "guild_1"})
	s.Require().NoError(err)
	s.Equal(entities.CombatState{TurnIndex: 0, Round: 1}, got.State)
}

func (s *RedisRepositoryTestSuite) TestStateRoundTrip() {
	_, err := s.repo.SetState(s.ctx, combat.SetStateInput{
		GuildID: "guild_1",
		State:   entities.CombatState{TurnIndex: 2, Round: 3},
	})
	s.Require().NoError(err)

	got, err := s.repo.GetState(s.ctx, combat.GetStateInput{GuildID: "guild_1"})
	s.Require().NoError(err)
	s.Equal(entities.CombatState{TurnIndex: 2, Round: 3}, got.State)
}

func (s *RedisRepositoryTestSuite) TestClear() {
	_, err := s.repo.AddCombatant(s.ctx, combat.AddCombatantInput{
		GuildID:   "guild_1",
		Combatant: &entities.Combatant{Name: "Raider", Initiative: 12},
	})
	s.Require().NoError(err)
	_, err = s.repo.SetState(s.ctx, combat.SetStateInput{
		GuildID: "guild_1",
		State:   entities.CombatState{TurnIndex: 1, Round: 4},
	})
	s.Require().NoError(err)

	_, err = s.repo.Clear(s.ctx, combat.ClearInput{GuildID: "guild_1"})
	s.Require().NoError(err)

	list, err := s.repo.ListCombatants(s.ctx, combat.ListCombatantsInput{GuildID: "guild_1"})
	s.Require().NoError(err)
	s.Empty(list.Combatants)

	state, err := s.repo.GetState(s.ctx, combat.GetStateInput{GuildID: "guild_1"})
	s.Require().NoError(err)
	s.Equal(entities.CombatState{TurnIndex: 0, Round: 1}, state.State)
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.AddCombatant(s.ctx, combat.AddCombatantInput{GuildID: "guild_1"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.RemoveCombatant(s.ctx, combat.RemoveCombatantInput{GuildID: "guild_1"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.ListCombatants(s.ctx, combat.ListCombatantsInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

package creature_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/creature"
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
	"github.com/wastelandrpg/wasteland-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    creature.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := creature.NewRedis(&creature.RedisConfig{
		Client: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testBlock(name string) *entities.StatBlock {
	return &entities.StatBlock{
		Name:     name,
		Kind:     rulebook.KindCreature,
		Category: rulebook.CategoryNormal,
		Level:    3,
		Keywords: []string{"mutante"},
	}
}

func (s *RedisRepositoryTestSuite) TestUpsertAndGet() {
	_, err := s.repo.Upsert(s.ctx, creature.UpsertInput{
		GuildID:   "guild_1",
		StatBlock: s.testBlock("Yao Guai"),
	})
	s.Require().NoError(err)

	// Lookup is case insensitive.
	got, err := s.repo.Get(s.ctx, creature.GetInput{GuildID: "guild_1", Name: "yao guai"})
	s.Require().NoError(err)
	s.Equal("Yao Guai", got.StatBlock.Name)
	s.Equal(3, got.StatBlock.Level)
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, creature.GetInput{GuildID: "guild_1", Name: "Deathclaw"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpsertReplaces() {
	block := s.testBlock("Yao Guai")
	_, err := s.repo.Upsert(s.ctx, creature.UpsertInput{GuildID: "guild_1", StatBlock: block})
	s.Require().NoError(err)

	block.Level = 7
	_, err = s.repo.Upsert(s.ctx, creature.UpsertInput{GuildID: "guild_1", StatBlock: block})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, creature.GetInput{GuildID: "guild_1", Name: "Yao Guai"})
	s.Require().NoError(err)
	s.Equal(7, got.StatBlock.Level)
}

func (s *RedisRepositoryTestSuite) TestSearch() {
	for _, name := range []string{"Rad Scorpion", "Rad Roach", "Deathclaw"} {
		_, err := s.repo.Upsert(s.ctx, creature.UpsertInput{
			GuildID:   "guild_1",
			StatBlock: s.testBlock(name),
		})
		s.Require().NoError(err)
	}

	got, err := s.repo.Search(s.ctx, creature.SearchInput{GuildID: "guild_1", Term: "rad"})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Rad Scorpion", "Rad Roach"}, got.Names)

	none, err := s.repo.Search(s.ctx, creature.SearchInput{GuildID: "guild_1", Term: "ghoul"})
	s.Require().NoError(err)
	s.Empty(none.Names)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Upsert(s.ctx, creature.UpsertInput{
		GuildID:   "guild_1",
		StatBlock: s.testBlock("Yao Guai"),
	})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, creature.DeleteInput{GuildID: "guild_1", Name: "YAO GUAI"})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, creature.DeleteInput{GuildID: "guild_1", Name: "Yao Guai"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.Upsert(s.ctx, creature.UpsertInput{GuildID: "guild_1"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Search(s.ctx, creature.SearchInput{GuildID: "guild_1"})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

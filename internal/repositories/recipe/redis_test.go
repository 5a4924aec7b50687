package recipe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/recipe"
	"github.com/wastelandrpg/wasteland-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    recipe.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := recipe.NewRedis(&recipe.RedisConfig{
		Client: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testRecipe(name string) *entities.Recipe {
	return &entities.Recipe{
		Name:       name,
		Skill:      "reparo",
		Complexity: 2,
		Materials:  "2x comum",
		Rarity:     "comum",
	}
}

func (s *RedisRepositoryTestSuite) TestUpsertAndGet() {
	_, err := s.repo.Upsert(s.ctx, recipe.UpsertInput{
		GuildID: "guild_1",
		Recipe:  s.testRecipe("Estimulante"),
	})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, recipe.GetInput{GuildID: "guild_1", Name: "estimulante"})
	s.Require().NoError(err)
	s.Equal("Estimulante", got.Recipe.Name)
	s.Equal(2, got.Recipe.Complexity)
	s.Equal("2x comum", got.Recipe.Materials)
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, recipe.GetInput{GuildID: "guild_1", Name: "Jet"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSearch() {
	for _, name := range []string{"Mira Telescópica", "Mira Curta", "Cano Longo"} {
		_, err := s.repo.Upsert(s.ctx, recipe.UpsertInput{
			GuildID: "guild_1",
			Recipe:  s.testRecipe(name),
		})
		s.Require().NoError(err)
	}

	got, err := s.repo.Search(s.ctx, recipe.SearchInput{GuildID: "guild_1", Term: "mira"})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Mira Telescópica", "Mira Curta"}, got.Names)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Upsert(s.ctx, recipe.UpsertInput{
		GuildID: "guild_1",
		Recipe:  s.testRecipe("Estimulante"),
	})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, recipe.DeleteInput{GuildID: "guild_1", Name: "Estimulante"})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, recipe.DeleteInput{GuildID: "guild_1", Name: "Estimulante"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

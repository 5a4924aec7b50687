package rollsession_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/clock"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/rollsession"
	"github.com/wastelandrpg/wasteland-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    rollsession.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := rollsession.NewRedis(&rollsession.RedisConfig{
		Client: s.client,
		Clock:  clock.New(),
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testSession() *entities.RollSession {
	return &entities.RollSession{
		UserID:     "user_1",
		GuildID:    "guild_1",
		Skill:      "armaspequenas",
		Target:     12,
		TagRank:    2,
		Difficulty: 1,
		Rolls:      []int{5, 18},
	}
}

func (s *RedisRepositoryTestSuite) TestSetAndGet() {
	_, err := s.repo.Set(s.ctx, rollsession.SetInput{Session: s.testSession()})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, rollsession.GetInput{GuildID: "guild_1", UserID: "user_1"})
	s.Require().NoError(err)
	s.Equal("armaspequenas", got.Session.Skill)
	s.Equal([]int{5, 18}, got.Session.Rolls)
	s.False(got.Session.CreatedAt.IsZero())
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, rollsession.GetInput{GuildID: "guild_1", UserID: "user_1"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSetReplaces() {
	_, err := s.repo.Set(s.ctx, rollsession.SetInput{Session: s.testSession()})
	s.Require().NoError(err)

	second := s.testSession()
	second.Rolls = []int{1, 1}
	_, err = s.repo.Set(s.ctx, rollsession.SetInput{Session: second})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, rollsession.GetInput{GuildID: "guild_1", UserID: "user_1"})
	s.Require().NoError(err)
	s.Equal([]int{1, 1}, got.Session.Rolls)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Set(s.ctx, rollsession.SetInput{Session: s.testSession()})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, rollsession.DeleteInput{GuildID: "guild_1", UserID: "user_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, rollsession.GetInput{GuildID: "guild_1", UserID: "user_1"})
	s.True(errors.IsNotFound(err))

	// Deleting again is fine.
	_, err = s.repo.Delete(s.ctx, rollsession.DeleteInput{GuildID: "guild_1", UserID: "user_1"})
	s.Require().NoError(err)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

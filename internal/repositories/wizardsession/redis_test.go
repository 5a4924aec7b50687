package wizardsession_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/clock"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/wizardsession"
	"github.com/wastelandrpg/wasteland-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    wizardsession.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := wizardsession.NewRedis(&wizardsession.RedisConfig{
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

func (s *RedisRepositoryTestSuite) testSession() *entities.WizardSession {
	return &entities.WizardSession{
		UserID:  "user_1",
		GuildID: "guild_1",
		Kind:    entities.WizardPlayerCreation,
		Step:    entities.StepOrigin,
		Player:  &entities.PlayerCreationData{},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	_, err := s.repo.Create(s.ctx, wizardsession.CreateInput{Session: s.testSession()})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, wizardsession.GetInput{UserID: "user_1"})
	s.Require().NoError(err)
	s.Equal(entities.WizardPlayerCreation, got.Session.Kind)
	s.Equal(entities.StepOrigin, got.Session.Step)
	s.False(got.Session.UpdatedAt.IsZero())
}

func (s *RedisRepositoryTestSuite) TestCreateTwiceFails() {
	_, err := s.repo.Create(s.ctx, wizardsession.CreateInput{Session: s.testSession()})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, wizardsession.CreateInput{Session: s.testSession()})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreateInAnotherGuildFails() {
	_, err := s.repo.Create(s.ctx, wizardsession.CreateInput{Session: s.testSession()})
	s.Require().NoError(err)

	// The session slot belongs to the user, not the (guild, user) pair.
	other := s.testSession()
	other.GuildID = "guild_2"
	other.Kind = entities.WizardGMCreation
	_, err = s.repo.Create(s.ctx, wizardsession.CreateInput{Session: other})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))

	got, err := s.repo.Get(s.ctx, wizardsession.GetInput{UserID: "user_1"})
	s.Require().NoError(err)
	s.Equal("guild_1", got.Session.GuildID)
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	_, err := s.repo.Create(s.ctx, wizardsession.CreateInput{Session: s.testSession()})
	s.Require().NoError(err)

	session := s.testSession()
	session.Step = entities.StepSpecial
	session.Player.Origin = "Sobrevivente"
	_, err = s.repo.Update(s.ctx, wizardsession.UpdateInput{Session: session})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, wizardsession.GetInput{UserID: "user_1"})
	s.Require().NoError(err)
	s.Equal(entities.StepSpecial, got.Session.Step)
	s.Equal("Sobrevivente", got.Session.Player.Origin)
}

func (s *RedisRepositoryTestSuite) TestUpdateMissing() {
	_, err := s.repo.Update(s.ctx, wizardsession.UpdateInput{Session: s.testSession()})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, wizardsession.CreateInput{Session: s.testSession()})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, wizardsession.DeleteInput{UserID: "user_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, wizardsession.GetInput{UserID: "user_1"})
	s.True(errors.IsNotFound(err))

	// A fresh flow can start after cancellation.
	_, err = s.repo.Create(s.ctx, wizardsession.CreateInput{Session: s.testSession()})
	s.Require().NoError(err)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

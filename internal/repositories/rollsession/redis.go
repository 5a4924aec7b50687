package rollsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/clock"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
)

const (
	// Key pattern: roll_session:{guild}:{user}
	sessionKeyPrefix = "roll_session:"
	defaultTTL       = 15 * time.Minute

	errSessionNil      = "session cannot be nil"
	errGuildIDEmpty    = "guild ID cannot be empty"
	errUserIDEmpty     = "user ID cannot be empty"
	errSessionNotFound = "no recent roll to act on"
)

// RedisConfig contains configuration for the Redis roll session
// repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL overrides how long sessions live. Zero means the default.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.Clock == nil {
		return errors.InvalidArgument("clock cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed roll session repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func sessionKey(guildID, userID string) string {
	return sessionKeyPrefix + guildID + ":" + userID
}

func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.Session.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	session := *input.Session
	session.CreatedAt = r.clock.Now()

	data, err := json.Marshal(&session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roll session")
	}

	key := sessionKey(session.GuildID, session.UserID)
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store roll session")
	}

	return &SetOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	data, err := r.client.Get(ctx, sessionKey(input.GuildID, input.UserID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errSessionNotFound)
		}
		return nil, errors.Wrapf(err, "failed to get roll session")
	}

	var session entities.RollSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, errors.Wrapf(err, "corrupt roll session for user %s", input.UserID)
	}

	return &GetOutput{Session: &session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	if err := r.client.Del(ctx, sessionKey(input.GuildID, input.UserID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete roll session")
	}

	return &DeleteOutput{}, nil
}

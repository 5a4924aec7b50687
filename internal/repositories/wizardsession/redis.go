package wizardsession

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
	// Key pattern: wizard_session:{user}. A user holds at most one
	// session, no matter which guild it was started in.
	sessionKeyPrefix = "wizard_session:"
	defaultTTL       = 24 * time.Hour

	errSessionNil      = "session cannot be nil"
	errGuildIDEmpty    = "guild ID cannot be empty"
	errUserIDEmpty     = "user ID cannot be empty"
	errSessionExists   = "a creation flow is already in progress"
	errSessionNotFound = "no creation flow in progress"
)

// RedisConfig contains configuration for the Redis wizard session
// repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL overrides how long idle sessions live. Zero means the
	// default.
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

// NewRedis creates a new Redis-backed wizard session repository
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

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

func (r *redisRepository) marshal(session *entities.WizardSession) (string, []byte, error) {
	if session == nil {
		return "", nil, errors.InvalidArgument(errSessionNil)
	}
	if session.GuildID == "" {
		return "", nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if session.UserID == "" {
		return "", nil, errors.InvalidArgument(errUserIDEmpty)
	}

	stamped := *session
	stamped.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(&stamped)
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to marshal wizard session")
	}

	return sessionKey(session.UserID), data, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	key, data, err := r.marshal(input.Session)
	if err != nil {
		return nil, err
	}

	created, err := r.client.SetNX(ctx, key, data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create wizard session")
	}
	if !created {
		return nil, errors.AlreadyExists(errSessionExists)
	}

	return &CreateOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	data, err := r.client.Get(ctx, sessionKey(input.UserID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errSessionNotFound)
		}
		return nil, errors.Wrapf(err, "failed to get wizard session")
	}

	var session entities.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, errors.Wrapf(err, "corrupt wizard session for user %s", input.UserID)
	}

	return &GetOutput{Session: &session}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	key, data, err := r.marshal(input.Session)
	if err != nil {
		return nil, err
	}

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check wizard session")
	}
	if exists == 0 {
		return nil, errors.NotFound(errSessionNotFound)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update wizard session")
	}

	return &UpdateOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	if err := r.client.Del(ctx, sessionKey(input.UserID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete wizard session")
	}

	return &DeleteOutput{}, nil
}

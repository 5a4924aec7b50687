package party

import (
	"context"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/wastelandrpg/wasteland-api/internal/errors"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
)

const (
	// Key pattern: party:ap:{guild}
	apKeyPrefix = "party:ap:"

	errGuildIDEmpty = "guild ID cannot be empty"
)

// RedisConfig contains configuration for the Redis party repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a new Redis-backed party repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) GetActionPoints(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	data, err := r.client.Get(ctx, apKeyPrefix+input.GuildID).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetOutput{Points: 0}, nil
		}
		return nil, errors.Wrapf(err, "failed to get action points")
	}

	points, err := strconv.Atoi(data)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt action point record for guild %s", input.GuildID)
	}

	return &GetOutput{Points: points}, nil
}

func (r *redisRepository) SetActionPoints(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	if err := r.client.Set(ctx, apKeyPrefix+input.GuildID, strconv.Itoa(input.Points), 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to set action points")
	}

	return &SetOutput{}, nil
}

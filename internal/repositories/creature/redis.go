package creature

import (
	"context"
	"encoding/json"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
)

const (
	// Key pattern: statblock:{guild} (hash, field = lowercased name,
	// value = JSON stat block).
	statBlockKeyPrefix = "statblock:"

	errGuildIDEmpty      = "guild ID cannot be empty"
	errStatBlockNil      = "stat block cannot be nil"
	errNameEmpty         = "stat block name cannot be empty"
	errTermEmpty         = "search term cannot be empty"
	errStatBlockNotFound = "stat block not found: %s"
)

// RedisConfig contains configuration for the Redis creature repository.
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

// NewRedis creates a new Redis-backed creature repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func statBlockKey(guildID string) string {
	return statBlockKeyPrefix + guildID
}

func nameField(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *redisRepository) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.StatBlock == nil {
		return nil, errors.InvalidArgument(errStatBlockNil)
	}
	if input.StatBlock.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	data, err := json.Marshal(input.StatBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal stat block %s", input.StatBlock.Name)
	}

	if err := r.client.HSet(ctx, statBlockKey(input.GuildID), nameField(input.StatBlock.Name), data).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store stat block %s", input.StatBlock.Name)
	}

	return &UpsertOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	data, err := r.client.HGet(ctx, statBlockKey(input.GuildID), nameField(input.Name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf(errStatBlockNotFound, input.Name)
		}
		return nil, errors.Wrapf(err, "failed to get stat block %s", input.Name)
	}

	var block entities.StatBlock
	if err := json.Unmarshal([]byte(data), &block); err != nil {
		return nil, errors.Wrapf(err, "corrupt stat block record %s", input.Name)
	}

	return &GetOutput{StatBlock: &block}, nil
}

func (r *redisRepository) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.Term == "" {
		return nil, errors.InvalidArgument(errTermEmpty)
	}

	raw, err := r.client.HGetAll(ctx, statBlockKey(input.GuildID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search stat blocks")
	}

	term := nameField(input.Term)
	names := make([]string, 0)
	for field, data := range raw {
		if !strings.Contains(field, term) {
			continue
		}
		var block entities.StatBlock
		if err := json.Unmarshal([]byte(data), &block); err != nil {
			return nil, errors.Wrapf(err, "corrupt stat block record %s", field)
		}
		names = append(names, block.Name)
	}

	return &SearchOutput{Names: names}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	removed, err := r.client.HDel(ctx, statBlockKey(input.GuildID), nameField(input.Name)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete stat block %s", input.Name)
	}
	if removed == 0 {
		return nil, errors.NotFoundf(errStatBlockNotFound, input.Name)
	}

	return &DeleteOutput{}, nil
}

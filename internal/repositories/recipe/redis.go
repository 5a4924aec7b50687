package recipe

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
	// Key pattern: recipe:{guild} (hash, field = lowercased name,
	// value = JSON recipe).
	recipeKeyPrefix = "recipe:"

	errGuildIDEmpty   = "guild ID cannot be empty"
	errRecipeNil      = "recipe cannot be nil"
	errNameEmpty      = "recipe name cannot be empty"
	errTermEmpty      = "search term cannot be empty"
	errRecipeNotFound = "recipe not found: %s"
)

// RedisConfig contains configuration for the Redis recipe repository.
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

// NewRedis creates a new Redis-backed recipe repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func recipeKey(guildID string) string {
	return recipeKeyPrefix + guildID
}

func nameField(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *redisRepository) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.Recipe == nil {
		return nil, errors.InvalidArgument(errRecipeNil)
	}
	if input.Recipe.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	data, err := json.Marshal(input.Recipe)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal recipe %s", input.Recipe.Name)
	}

	if err := r.client.HSet(ctx, recipeKey(input.GuildID), nameField(input.Recipe.Name), data).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store recipe %s", input.Recipe.Name)
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

	data, err := r.client.HGet(ctx, recipeKey(input.GuildID), nameField(input.Name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf(errRecipeNotFound, input.Name)
		}
		return nil, errors.Wrapf(err, "failed to get recipe %s", input.Name)
	}

	var rec entities.Recipe
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, errors.Wrapf(err, "corrupt recipe record %s", input.Name)
	}

	return &GetOutput{Recipe: &rec}, nil
}

func (r *redisRepository) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.Term == "" {
		return nil, errors.InvalidArgument(errTermEmpty)
	}

	raw, err := r.client.HGetAll(ctx, recipeKey(input.GuildID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search recipes")
	}

	term := nameField(input.Term)
	names := make([]string, 0)
	for field, data := range raw {
		if !strings.Contains(field, term) {
			continue
		}
		var rec entities.Recipe
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, errors.Wrapf(err, "corrupt recipe record %s", field)
		}
		names = append(names, rec.Name)
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

	removed, err := r.client.HDel(ctx, recipeKey(input.GuildID), nameField(input.Name)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete recipe %s", input.Name)
	}
	if removed == 0 {
		return nil, errors.NotFoundf(errRecipeNotFound, input.Name)
	}

	return &DeleteOutput{}, nil
}

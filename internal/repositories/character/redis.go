package character

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
)

const (
	// Key patterns: char:{guild}:{user}, char:{guild}:{user}:skills,
	// char:guild:{guild} (member index).
	charKeyPrefix  = "char:"
	guildIndexWord = "guild"
	skillsSuffix   = ":skills"

	errCharacterNil = "character cannot be nil"
	errGuildIDEmpty = "guild ID cannot be empty"
	errUserIDEmpty  = "user ID cannot be empty"
	errSkillEmpty   = "skill name cannot be empty"
)

// RedisConfig contains configuration for the Redis character repository.
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

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func charKey(guildID, userID string) string {
	return charKeyPrefix + guildID + ":" + userID
}

func skillsKey(guildID, userID string) string {
	return charKey(guildID, userID) + skillsSuffix
}

func guildIndexKey(guildID string) string {
	return charKeyPrefix + guildIndexWord + ":" + guildID
}

func validateKeyParts(guildID, userID string) error {
	if guildID == "" {
		return errors.InvalidArgument(errGuildIDEmpty)
	}
	if userID == "" {
		return errors.InvalidArgument(errUserIDEmpty)
	}
	return nil
}

func (r *redisRepository) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if err := validateKeyParts(input.Character.GuildID, input.Character.UserID); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, charKey(input.Character.GuildID, input.Character.UserID), data, 0)
	pipe.SAdd(ctx, guildIndexKey(input.Character.GuildID), input.Character.UserID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store character")
	}

	return &UpsertOutput{Character: input.Character}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKeyParts(input.GuildID, input.UserID); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, charKey(input.GuildID, input.UserID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no character registered for user %s", input.UserID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var char entities.Character
	if err := json.Unmarshal([]byte(data), &char); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}

	return &GetOutput{Character: &char}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if err := validateKeyParts(input.Character.GuildID, input.Character.UserID); err != nil {
		return nil, err
	}

	key := charKey(input.Character.GuildID, input.Character.UserID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check character existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("no character registered for user %s", input.Character.UserID)
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}

	return &UpdateOutput{Character: input.Character}, nil
}

func (r *redisRepository) SetSkill(ctx context.Context, input SetSkillInput) (*SetSkillOutput, error) {
	if err := validateKeyParts(input.GuildID, input.UserID); err != nil {
		return nil, err
	}
	if input.Skill == "" {
		return nil, errors.InvalidArgument(errSkillEmpty)
	}

	record, err := json.Marshal(entities.SkillRank{Rank: input.Rank, IsTag: input.IsTag})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal skill record")
	}

	if err := r.client.HSet(ctx, skillsKey(input.GuildID, input.UserID), input.Skill, record).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store skill")
	}

	return &SetSkillOutput{}, nil
}

func (r *redisRepository) GetSkill(ctx context.Context, input GetSkillInput) (*GetSkillOutput, error) {
	if err := validateKeyParts(input.GuildID, input.UserID); err != nil {
		return nil, err
	}
	if input.Skill == "" {
		return nil, errors.InvalidArgument(errSkillEmpty)
	}

	data, err := r.client.HGet(ctx, skillsKey(input.GuildID, input.UserID), input.Skill).Result()
	if err != nil {
		if err == redis.Nil {
			// Unstored skills are rank 0, untagged.
			return &GetSkillOutput{}, nil
		}
		return nil, errors.Wrapf(err, "failed to get skill")
	}

	var record entities.SkillRank
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal skill record")
	}

	return &GetSkillOutput{Rank: record.Rank, IsTag: record.IsTag}, nil
}

func (r *redisRepository) ListSkills(ctx context.Context, input ListSkillsInput) (*ListSkillsOutput, error) {
	if err := validateKeyParts(input.GuildID, input.UserID); err != nil {
		return nil, err
	}

	raw, err := r.client.HGetAll(ctx, skillsKey(input.GuildID, input.UserID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list skills")
	}

	skills := make(map[string]entities.SkillRank, len(raw))
	for name, data := range raw {
		var record entities.SkillRank
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal skill %s", name)
		}
		skills[name] = record
	}

	return &ListSkillsOutput{Skills: skills}, nil
}

func (r *redisRepository) ListByGuild(ctx context.Context, input ListByGuildInput) (*ListByGuildOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	userIDs, err := r.client.SMembers(ctx, guildIndexKey(input.GuildID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read guild index")
	}

	characters := make([]*entities.Character, 0, len(userIDs))
	for _, userID := range userIDs {
		out, err := r.Get(ctx, GetInput{GuildID: input.GuildID, UserID: userID})
		if err != nil {
			if errors.IsNotFound(err) {
				// Stale index entry; skip it.
				continue
			}
			return nil, err
		}
		characters = append(characters, out.Character)
	}

	return &ListByGuildOutput{Characters: characters}, nil
}

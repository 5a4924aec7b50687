package combat

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
)

const (
	// Key patterns: combat:{guild}:combatants (hash by name),
	// combat:{guild}:state (JSON turn cursor).
	combatKeyPrefix  = "combat:"
	combatantsSuffix = ":combatants"
	stateSuffix      = ":state"

	errGuildIDEmpty    = "guild ID cannot be empty"
	errCombatantNil    = "combatant cannot be nil"
	errCombatNameEmpty = "combatant name cannot be empty"
)

// RedisConfig contains configuration for the Redis combat repository.
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

// NewRedis creates a new Redis-backed combat repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func combatantsKey(guildID string) string {
	return combatKeyPrefix + guildID + combatantsSuffix
}

func stateKey(guildID string) string {
	return combatKeyPrefix + guildID + stateSuffix
}

func (r *redisRepository) AddCombatant(ctx context.Context, input AddCombatantInput) (*AddCombatantOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.Combatant == nil {
		return nil, errors.InvalidArgument(errCombatantNil)
	}
	if input.Combatant.Name == "" {
		return nil, errors.InvalidArgument(errCombatNameEmpty)
	}

	data, err := json.Marshal(input.Combatant)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal combatant %s", input.Combatant.Name)
	}

	added, err := r.client.HSetNX(ctx, combatantsKey(input.GuildID), input.Combatant.Name, data).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add combatant %s", input.Combatant.Name)
	}

	return &AddCombatantOutput{Added: added}, nil
}

func (r *redisRepository) RemoveCombatant(ctx context.Context, input RemoveCombatantInput) (*RemoveCombatantOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errCombatNameEmpty)
	}

	removed, err := r.client.HDel(ctx, combatantsKey(input.GuildID), input.Name).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to remove combatant %s", input.Name)
	}

	return &RemoveCombatantOutput{Removed: removed > 0}, nil
}

func (r *redisRepository) ListCombatants(ctx context.Context, input ListCombatantsInput) (*ListCombatantsOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	raw, err := r.client.HGetAll(ctx, combatantsKey(input.GuildID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list combatants")
	}

	combatants := make([]*entities.Combatant, 0, len(raw))
	for name, data := range raw {
		var combatant entities.Combatant
		if err := json.Unmarshal([]byte(data), &combatant); err != nil {
			return nil, errors.Wrapf(err, "corrupt combatant record %s", name)
		}
		combatants = append(combatants, &combatant)
	}

	return &ListCombatantsOutput{Combatants: combatants}, nil
}

func (r *redisRepository) GetState(ctx context.Context, input GetStateInput) (*GetStateOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	data, err := r.client.Get(ctx, stateKey(input.GuildID)).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetStateOutput{State: entities.CombatState{TurnIndex: 0, Round: 1}}, nil
		}
		return nil, errors.Wrapf(err, "failed to get combat state")
	}

	var state entities.CombatState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, errors.Wrapf(err, "corrupt combat state for guild %s", input.GuildID)
	}

	return &GetStateOutput{State: state}, nil
}

func (r *redisRepository) SetState(ctx context.Context, input SetStateInput) (*SetStateOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal combat state")
	}

	if err := r.client.Set(ctx, stateKey(input.GuildID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to set combat state")
	}

	return &SetStateOutput{}, nil
}

func (r *redisRepository) Clear(ctx context.Context, input ClearInput) (*ClearOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	if err := r.client.Del(ctx, combatantsKey(input.GuildID), stateKey(input.GuildID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to clear combat")
	}

	return &ClearOutput{}, nil
}

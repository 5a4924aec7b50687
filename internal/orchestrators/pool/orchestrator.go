// Package pool implements the orchestrator for the shared action point
// pool and per-character luck points.
package pool

//go:generate mockgen -destination=mock/mock_service.go -package=poolmock github.com/wastelandrpg/wasteland-api/internal/orchestrators/pool Service

import (
	"context"
	"log/slog"

	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/keymutex"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/party"
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

// Service defines the interface for action point and luck operations
type Service interface {
	// Group action point pool, shared by the whole party.
	GetActionPoints(ctx context.Context, input *GetActionPointsInput) (*GetActionPointsOutput, error)
	AddActionPoints(ctx context.Context, input *AddActionPointsInput) (*AddActionPointsOutput, error)
	SpendActionPoints(ctx context.Context, input *SpendActionPointsInput) (*SpendActionPointsOutput, error)
	SetActionPoints(ctx context.Context, input *SetActionPointsInput) (*SetActionPointsOutput, error)

	// Per-character luck points, capped by the luck attribute.
	GetLuck(ctx context.Context, input *GetLuckInput) (*GetLuckOutput, error)
	SpendLuck(ctx context.Context, input *SpendLuckInput) (*SpendLuckOutput, error)
	AddLuck(ctx context.Context, input *AddLuckInput) (*AddLuckOutput, error)
	SetLuck(ctx context.Context, input *SetLuckInput) (*SetLuckOutput, error)
	RestoreLuck(ctx context.Context, input *RestoreLuckInput) (*RestoreLuckOutput, error)
}

// Config holds the dependencies for the pool orchestrator
type Config struct {
	PartyRepo     party.Repository
	CharacterRepo character.Repository
	Locks         *keymutex.KeyMutex
	// MaxActionPoints caps the pool. Zero means the default of 6.
	MaxActionPoints int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PartyRepo == nil {
		vb.RequiredField("PartyRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Locks == nil {
		vb.RequiredField("Locks")
	}

	return vb.Build()
}

type orchestrator struct {
	partyRepo     party.Repository
	characterRepo character.Repository
	locks         *keymutex.KeyMutex
	maxAP         int
}

// NewOrchestrator creates a new pool orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxAP := cfg.MaxActionPoints
	if maxAP == 0 {
		maxAP = rulebook.DefaultMaxActionPoints
	}

	return &orchestrator{
		partyRepo:     cfg.PartyRepo,
		characterRepo: cfg.CharacterRepo,
		locks:         cfg.Locks,
		maxAP:         maxAP,
	}, nil
}

func apLockKey(guildID string) string {
	return "ap:" + guildID
}

func luckLockKey(guildID, userID string) string {
	return "luck:" + guildID + ":" + userID
}

func (o *orchestrator) GetActionPoints(ctx context.Context, input *GetActionPointsInput) (*GetActionPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	out, err := o.partyRepo.GetActionPoints(ctx, party.GetInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	return &GetActionPointsOutput{Points: out.Points, Max: o.maxAP}, nil
}

func (o *orchestrator) AddActionPoints(ctx context.Context, input *AddActionPointsInput) (*AddActionPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument("amount cannot be negative")
	}

	o.locks.Lock(apLockKey(input.GuildID))
	defer o.locks.Unlock(apLockKey(input.GuildID))

	current, err := o.partyRepo.GetActionPoints(ctx, party.GetInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	points := current.Points + input.Amount
	wasted := 0
	if points > o.maxAP {
		wasted = points - o.maxAP
		points = o.maxAP
	}

	if points != current.Points {
		if _, err := o.partyRepo.SetActionPoints(ctx, party.SetInput{GuildID: input.GuildID, Points: points}); err != nil {
			return nil, err
		}
	}

	slog.Info("action points added",
		"guild_id", input.GuildID,
		"amount", input.Amount,
		"wasted", wasted,
		"points", points,
	)

	return &AddActionPointsOutput{Points: points, Max: o.maxAP, Wasted: wasted}, nil
}

func (o *orchestrator) SpendActionPoints(ctx context.Context, input *SpendActionPointsInput) (*SpendActionPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Amount <= 0 {
		return nil, errors.InvalidArgument("amount must be positive")
	}

	o.locks.Lock(apLockKey(input.GuildID))
	defer o.locks.Unlock(apLockKey(input.GuildID))

	points, err := o.spendActionPointsLocked(ctx, input.GuildID, input.Amount)
	if err != nil {
		return nil, err
	}

	return &SpendActionPointsOutput{Points: points, Max: o.maxAP}, nil
}

// spendActionPointsLocked requires the caller to hold the guild AP lock.
func (o *orchestrator) spendActionPointsLocked(ctx context.Context, guildID string, amount int) (int, error) {
	current, err := o.partyRepo.GetActionPoints(ctx, party.GetInput{GuildID: guildID})
	if err != nil {
		return 0, err
	}

	if current.Points < amount {
		return 0, errors.ResourceExhaustedf("not enough action points: have %d, need %d", current.Points, amount)
	}

	points := current.Points - amount
	if _, err := o.partyRepo.SetActionPoints(ctx, party.SetInput{GuildID: guildID, Points: points}); err != nil {
		return 0, err
	}

	slog.Info("action points spent",
		"guild_id", guildID,
		"amount", amount,
		"points", points,
	)

	return points, nil
}

func (o *orchestrator) SetActionPoints(ctx context.Context, input *SetActionPointsInput) (*SetActionPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	o.locks.Lock(apLockKey(input.GuildID))
	defer o.locks.Unlock(apLockKey(input.GuildID))

	// Out-of-range values clamp to the pool bounds instead of erroring.
	points := clamp(input.Points, o.maxAP)
	if _, err := o.partyRepo.SetActionPoints(ctx, party.SetInput{GuildID: input.GuildID, Points: points}); err != nil {
		return nil, err
	}

	return &SetActionPointsOutput{Points: points, Max: o.maxAP}, nil
}

func (o *orchestrator) GetLuck(ctx context.Context, input *GetLuckInput) (*GetLuckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	return &GetLuckOutput{Points: char.Character.CurrentLuck, Max: char.Character.MaxLuck()}, nil
}

func (o *orchestrator) SpendLuck(ctx context.Context, input *SpendLuckInput) (*SpendLuckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	amount := input.Amount
	if amount == 0 {
		amount = 1
	}
	if amount < 0 {
		return nil, errors.InvalidArgument("amount must be positive")
	}

	key := luckLockKey(input.GuildID, input.UserID)
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	if char.Character.CurrentLuck < amount {
		return nil, errors.ResourceExhaustedf("not enough luck points: have %d, need %d", char.Character.CurrentLuck, amount)
	}

	char.Character.CurrentLuck -= amount
	if _, err := o.characterRepo.Update(ctx, character.UpdateInput{Character: char.Character}); err != nil {
		return nil, err
	}

	slog.Info("luck spent",
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"amount", amount,
		"points", char.Character.CurrentLuck,
	)

	return &SpendLuckOutput{Points: char.Character.CurrentLuck, Max: char.Character.MaxLuck()}, nil
}

func (o *orchestrator) AddLuck(ctx context.Context, input *AddLuckInput) (*AddLuckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument("amount cannot be negative")
	}

	key := luckLockKey(input.GuildID, input.UserID)
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	max := char.Character.MaxLuck()
	points := char.Character.CurrentLuck + input.Amount
	if points > max {
		points = max
	}

	if points != char.Character.CurrentLuck {
		char.Character.CurrentLuck = points
		if _, err := o.characterRepo.Update(ctx, character.UpdateInput{Character: char.Character}); err != nil {
			return nil, err
		}
	}

	return &AddLuckOutput{Points: points, Max: max}, nil
}

func (o *orchestrator) SetLuck(ctx context.Context, input *SetLuckInput) (*SetLuckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	key := luckLockKey(input.GuildID, input.UserID)
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	max := char.Character.MaxLuck()
	points := clamp(input.Points, max)

	if char.Character.CurrentLuck != points {
		char.Character.CurrentLuck = points
		if _, err := o.characterRepo.Update(ctx, character.UpdateInput{Character: char.Character}); err != nil {
			return nil, err
		}
	}

	slog.Info("luck set",
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"points", points,
	)

	return &SetLuckOutput{Points: points, Max: max}, nil
}

// clamp bounds a value to [0, max].
func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func (o *orchestrator) RestoreLuck(ctx context.Context, input *RestoreLuckInput) (*RestoreLuckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	key := luckLockKey(input.GuildID, input.UserID)
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	max := char.Character.MaxLuck()
	if char.Character.CurrentLuck != max {
		char.Character.CurrentLuck = max
		if _, err := o.characterRepo.Update(ctx, character.UpdateInput{Character: char.Character}); err != nil {
			return nil, err
		}
	}

	slog.Info("luck restored",
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"points", max,
	)

	return &RestoreLuckOutput{Points: max, Max: max}, nil
}

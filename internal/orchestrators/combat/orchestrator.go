// Package combat implements the turn-order tracker for combat
// encounters.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/wastelandrpg/wasteland-api/internal/orchestrators/combat Service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/keymutex"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	combatrepo "github.com/wastelandrpg/wasteland-api/internal/repositories/combat"
	"github.com/wastelandrpg/wasteland-api/internal/rulebook"
)

// Attempts at renaming a colliding combatant before giving up.
const maxNameAttempts = 10

// Service defines the interface for combat tracker operations
type Service interface {
	// Start clears any previous encounter and opens a fresh one.
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// End clears the encounter.
	End(ctx context.Context, input *EndInput) (*EndOutput, error)

	// AddCombatant inserts a named combatant with a fixed initiative.
	// Colliding names get a numeric suffix.
	AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error)

	// JoinAsCharacter inserts the caller's registered character using
	// its derived initiative.
	JoinAsCharacter(ctx context.Context, input *JoinAsCharacterInput) (*JoinAsCharacterOutput, error)

	// RemoveCombatant deletes by name and resets the turn cursor.
	RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error)

	// NextTurn advances the cursor, wrapping into a new round.
	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)

	// Order returns the sorted turn order and current cursor.
	Order(ctx context.Context, input *OrderInput) (*OrderOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	CombatRepo    combatrepo.Repository
	CharacterRepo character.Repository
	Locks         *keymutex.KeyMutex
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CombatRepo == nil {
		vb.RequiredField("CombatRepo")
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
	combatRepo    combatrepo.Repository
	characterRepo character.Repository
	locks         *keymutex.KeyMutex
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		combatRepo:    cfg.CombatRepo,
		characterRepo: cfg.CharacterRepo,
		locks:         cfg.Locks,
	}, nil
}

func combatLockKey(guildID string) string {
	return "combat:" + guildID
}

// sortCombatants orders by initiative descending, name ascending on
// ties, so the order is stable across reads.
func sortCombatants(combatants []*entities.Combatant) {
	sort.Slice(combatants, func(i, j int) bool {
		if combatants[i].Initiative != combatants[j].Initiative {
			return combatants[i].Initiative > combatants[j].Initiative
		}
		return combatants[i].Name < combatants[j].Name
	})
}

func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	o.locks.Lock(combatLockKey(input.GuildID))
	defer o.locks.Unlock(combatLockKey(input.GuildID))

	if _, err := o.combatRepo.Clear(ctx, combatrepo.ClearInput{GuildID: input.GuildID}); err != nil {
		return nil, err
	}

	slog.Info("combat started", "guild_id", input.GuildID)

	return &StartOutput{}, nil
}

func (o *orchestrator) End(ctx context.Context, input *EndInput) (*EndOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	o.locks.Lock(combatLockKey(input.GuildID))
	defer o.locks.Unlock(combatLockKey(input.GuildID))

	if _, err := o.combatRepo.Clear(ctx, combatrepo.ClearInput{GuildID: input.GuildID}); err != nil {
		return nil, err
	}

	slog.Info("combat ended", "guild_id", input.GuildID)

	return &EndOutput{}, nil
}

func (o *orchestrator) AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("combatant name is required")
	}

	o.locks.Lock(combatLockKey(input.GuildID))
	defer o.locks.Unlock(combatLockKey(input.GuildID))

	name, err := o.addWithUniqueName(ctx, input.GuildID, &entities.Combatant{
		Name:        input.Name,
		Initiative:  input.Initiative,
		OwnerUserID: input.OwnerUserID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("combatant added",
		"guild_id", input.GuildID,
		"name", name,
		"initiative", input.Initiative,
	)

	return &AddCombatantOutput{Name: name, Renamed: name != input.Name}, nil
}

// addWithUniqueName requires the caller to hold the guild combat lock.
func (o *orchestrator) addWithUniqueName(ctx context.Context, guildID string, combatant *entities.Combatant) (string, error) {
	base := combatant.Name
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		if attempt > 1 {
			combatant.Name = fmt.Sprintf("%s %d", base, attempt)
		}
		out, err := o.combatRepo.AddCombatant(ctx, combatrepo.AddCombatantInput{
			GuildID:   guildID,
			Combatant: combatant,
		})
		if err != nil {
			return "", err
		}
		if out.Added {
			return combatant.Name, nil
		}
	}
	return "", errors.AlreadyExistsf("too many combatants named %s", base)
}

func (o *orchestrator) JoinAsCharacter(ctx context.Context, input *JoinAsCharacterInput) (*JoinAsCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.UserID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	char, err := o.characterRepo.Get(ctx, character.GetInput{GuildID: input.GuildID, UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	initiative := rulebook.Initiative(char.Character.Attributes)

	o.locks.Lock(combatLockKey(input.GuildID))
	defer o.locks.Unlock(combatLockKey(input.GuildID))

	name, err := o.addWithUniqueName(ctx, input.GuildID, &entities.Combatant{
		Name:        char.Character.Name,
		Initiative:  initiative,
		OwnerUserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("character joined combat",
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"name", name,
		"initiative", initiative,
	)

	return &JoinAsCharacterOutput{Name: name, Initiative: initiative}, nil
}

func (o *orchestrator) RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("combatant name is required")
	}

	o.locks.Lock(combatLockKey(input.GuildID))
	defer o.locks.Unlock(combatLockKey(input.GuildID))

	out, err := o.combatRepo.RemoveCombatant(ctx, combatrepo.RemoveCombatantInput{
		GuildID: input.GuildID,
		Name:    input.Name,
	})
	if err != nil {
		return nil, err
	}
	if !out.Removed {
		return nil, errors.NotFoundf("no combatant named %s", input.Name)
	}

	// Indexes shift after a removal, so the cursor restarts. The round
	// counter is kept.
	state, err := o.combatRepo.GetState(ctx, combatrepo.GetStateInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}
	state.State.TurnIndex = 0
	if _, err := o.combatRepo.SetState(ctx, combatrepo.SetStateInput{GuildID: input.GuildID, State: state.State}); err != nil {
		return nil, err
	}

	return &RemoveCombatantOutput{}, nil
}

func (o *orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	o.locks.Lock(combatLockKey(input.GuildID))
	defer o.locks.Unlock(combatLockKey(input.GuildID))

	list, err := o.combatRepo.ListCombatants(ctx, combatrepo.ListCombatantsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}
	if len(list.Combatants) == 0 {
		return nil, errors.FailedPrecondition("no combatants in the encounter")
	}
	sortCombatants(list.Combatants)

	state, err := o.combatRepo.GetState(ctx, combatrepo.GetStateInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	next := state.State.TurnIndex + 1
	newRound := false
	if next >= len(list.Combatants) {
		next = 0
		state.State.Round++
		newRound = true
	}
	state.State.TurnIndex = next

	if _, err := o.combatRepo.SetState(ctx, combatrepo.SetStateInput{GuildID: input.GuildID, State: state.State}); err != nil {
		return nil, err
	}

	return &NextTurnOutput{
		Active:   list.Combatants[next],
		Round:    state.State.Round,
		NewRound: newRound,
	}, nil
}

func (o *orchestrator) Order(ctx context.Context, input *OrderInput) (*OrderOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	list, err := o.combatRepo.ListCombatants(ctx, combatrepo.ListCombatantsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}
	sortCombatants(list.Combatants)

	state, err := o.combatRepo.GetState(ctx, combatrepo.GetStateInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	turnIndex := state.State.TurnIndex
	if turnIndex >= len(list.Combatants) {
		turnIndex = 0
	}

	return &OrderOutput{
		Combatants: list.Combatants,
		TurnIndex:  turnIndex,
		Round:      state.State.Round,
	}, nil
}

// Package wizard implements the step-by-step creation flows: player
// character creation and GM content creation. Each flow is a strict
// linear state machine persisted between chat turns; invalid input
// re-prompts the same step, unexpected failures drop the session.
package wizard

//go:generate mockgen -destination=mock/mock_service.go -package=wizardmock github.com/wastelandrpg/wasteland-api/internal/orchestrators/wizard Service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
	"github.com/wastelandrpg/wasteland-api/internal/errors"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/keymutex"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/creature"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/wizardsession"
)

// Service defines the interface for creation wizard operations
type Service interface {
	// Start opens a new session and returns the first prompt. A user
	// with an active session of either kind, in any guild, is rejected.
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Advance feeds one message into the active session. Validation
	// problems come back as a reprompt, not an error.
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)

	// Cancel discards the active session.
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// HasSession reports whether the user has an active session.
	HasSession(ctx context.Context, input *HasSessionInput) (*HasSessionOutput, error)
}

// Config holds the dependencies for the wizard orchestrator
type Config struct {
	SessionRepo   wizardsession.Repository
	CharacterRepo character.Repository
	CreatureRepo  creature.Repository
	Locks         *keymutex.KeyMutex
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.Locks == nil {
		vb.RequiredField("Locks")
	}

	return vb.Build()
}

type orchestrator struct {
	sessionRepo   wizardsession.Repository
	characterRepo character.Repository
	creatureRepo  creature.Repository
	locks         *keymutex.KeyMutex
}

// NewOrchestrator creates a new wizard orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		sessionRepo:   cfg.SessionRepo,
		characterRepo: cfg.CharacterRepo,
		creatureRepo:  cfg.CreatureRepo,
		locks:         cfg.Locks,
	}, nil
}

// Sessions are keyed and locked per user: a user runs at most one
// creation flow at a time, no matter which guild it was started in.
func sessionLockKey(userID string) string {
	return "wizard:" + userID
}

func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return nil, errors.InvalidArgument("guild ID and user ID are required")
	}
	if input.Kind != entities.WizardPlayerCreation && input.Kind != entities.WizardGMCreation {
		return nil, errors.InvalidArgumentf("unknown wizard kind: %s", input.Kind)
	}

	key := sessionLockKey(input.UserID)
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	session := &entities.WizardSession{
		UserID:    input.UserID,
		GuildID:   input.GuildID,
		GuildName: input.GuildName,
		Kind:      input.Kind,
	}

	var prompt string
	if input.Kind == entities.WizardPlayerCreation {
		session.Step = entities.StepOrigin
		session.Player = &entities.PlayerCreationData{}
		prompt = promptOrigin()
	} else {
		session.Step = entities.GMStepType
		session.GM = &entities.GMCreationData{}
		prompt = promptGMType()
	}

	// The insert is atomic: two rapid starts cannot both win.
	if _, err := o.sessionRepo.Create(ctx, wizardsession.CreateInput{Session: session}); err != nil {
		return nil, err
	}

	slog.Info("wizard session started",
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"kind", input.Kind,
	)

	return &StartOutput{Kind: input.Kind, Step: session.Step, Prompt: prompt}, nil
}

func (o *orchestrator) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return nil, errors.InvalidArgument("guild ID and user ID are required")
	}

	key := sessionLockKey(input.UserID)
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	got, err := o.sessionRepo.Get(ctx, wizardsession.GetInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	session := got.Session
	text := strings.TrimSpace(input.Text)

	var out *AdvanceOutput
	if session.Kind == entities.WizardPlayerCreation {
		out, err = o.advancePlayer(ctx, session, text)
	} else {
		out, err = o.advanceGM(ctx, session, text)
	}
	if err != nil {
		// Unexpected failures are fatal to the session: drop it and
		// tell the user to restart.
		if _, delErr := o.sessionRepo.Delete(ctx, wizardsession.DeleteInput{UserID: input.UserID}); delErr != nil {
			slog.Error("failed to drop wizard session after fatal error",
				"guild_id", input.GuildID,
				"user_id", input.UserID,
				"error", delErr,
			)
		}
		slog.Error("wizard session aborted",
			"guild_id", input.GuildID,
			"user_id", input.UserID,
			"step", session.Step,
			"error", err,
		)
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "creation flow aborted")
	}

	switch out.Status {
	case StatusCompleted:
		if _, err := o.sessionRepo.Delete(ctx, wizardsession.DeleteInput{UserID: input.UserID}); err != nil {
			return nil, err
		}
		slog.Info("wizard session completed",
			"guild_id", input.GuildID,
			"user_id", input.UserID,
			"kind", session.Kind,
		)
	case StatusAdvanced:
		if _, err := o.sessionRepo.Update(ctx, wizardsession.UpdateInput{Session: session}); err != nil {
			return nil, err
		}
	case StatusReprompt:
		// Rejected input leaves the session untouched.
	}

	return out, nil
}

func (o *orchestrator) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" || input.UserID == "" {
		return nil, errors.InvalidArgument("guild ID and user ID are required")
	}

	key := sessionLockKey(input.UserID)
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	got, err := o.sessionRepo.Get(ctx, wizardsession.GetInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	if _, err := o.sessionRepo.Delete(ctx, wizardsession.DeleteInput{UserID: input.UserID}); err != nil {
		return nil, err
	}

	slog.Info("wizard session cancelled",
		"guild_id", input.GuildID,
		"user_id", input.UserID,
		"kind", got.Session.Kind,
	)

	return &CancelOutput{Kind: got.Session.Kind}, nil
}

func (o *orchestrator) HasSession(ctx context.Context, input *HasSessionInput) (*HasSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	_, err := o.sessionRepo.Get(ctx, wizardsession.GetInput{UserID: input.UserID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &HasSessionOutput{Active: false}, nil
		}
		return nil, err
	}

	return &HasSessionOutput{Active: true}, nil
}

// parseInts extracts every integer token from free text, treating
// commas as separators.
func parseInts(text string) ([]int, bool) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

func reprompt(step, message string) *AdvanceOutput {
	return &AdvanceOutput{Status: StatusReprompt, Step: step, Message: message}
}

// Package rollsession provides the repository for short-lived skill
// test sessions used by rerolls.
package rollsession

import (
	"context"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollsessionmock github.com/wastelandrpg/wasteland-api/internal/repositories/rollsession Repository

// Repository stores one roll session per (guild, user). Sessions
// expire on their own; Delete exists so a reroll consumes them early.
type Repository interface {
	// Set stores the session, replacing any previous one.
	Set(ctx context.Context, input SetInput) (*SetOutput, error)

	// Get returns the stored session. Returns a NotFound error when
	// absent or expired.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// SetInput contains the session to store.
type SetInput struct {
	Session *entities.RollSession
}

// SetOutput is empty; present for interface symmetry.
type SetOutput struct{}

// GetInput identifies a session by guild and user.
type GetInput struct {
	GuildID string
	UserID  string
}

// GetOutput contains the retrieved session.
type GetOutput struct {
	Session *entities.RollSession
}

// DeleteInput identifies a session by guild and user.
type DeleteInput struct {
	GuildID string
	UserID  string
}

// DeleteOutput is empty; present for interface symmetry.
type DeleteOutput struct{}

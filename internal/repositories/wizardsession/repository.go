// Package wizardsession provides the repository for in-flight creation
// wizard sessions.
package wizardsession

import (
	"context"

	"github.com/wastelandrpg/wasteland-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=wizardsessionmock github.com/wastelandrpg/wasteland-api/internal/repositories/wizardsession Repository

// Repository stores at most one wizard session per user, regardless of
// guild. Create is atomic so two concurrent starts cannot both win.
type Repository interface {
	// Create stores a new session. Returns an AlreadyExists error when
	// the user already has one, in any guild.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get returns the stored session. Returns a NotFound error when
	// absent or expired.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing session and refreshes its expiry.
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes the session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput contains the session to store.
type CreateInput struct {
	Session *entities.WizardSession
}

// CreateOutput is empty; present for interface symmetry.
type CreateOutput struct{}

// GetInput identifies a session by user.
type GetInput struct {
	UserID string
}

// GetOutput contains the retrieved session.
type GetOutput struct {
	Session *entities.WizardSession
}

// UpdateInput contains the session to replace.
type UpdateInput struct {
	Session *entities.WizardSession
}

// UpdateOutput is empty; present for interface symmetry.
type UpdateOutput struct{}

// DeleteInput identifies a session by user.
type DeleteInput struct {
	UserID string
}

// DeleteOutput is empty; present for interface symmetry.
type DeleteOutput struct{}

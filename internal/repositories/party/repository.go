// Package party provides the repository for the guild-wide shared
// action point pool. One record per guild.
package party

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=partymock github.com/wastelandrpg/wasteland-api/internal/repositories/party Repository

// Repository stores the raw AP balance. Bounds and atomicity across
// read-modify-write are the pool orchestrator's responsibility.
type Repository interface {
	// GetActionPoints returns the stored balance, zero when absent.
	GetActionPoints(ctx context.Context, input GetInput) (*GetOutput, error)

	// SetActionPoints overwrites the balance.
	SetActionPoints(ctx context.Context, input SetInput) (*SetOutput, error)
}

// GetInput identifies a guild pool.
type GetInput struct {
	GuildID string
}

// GetOutput contains the stored balance.
type GetOutput struct {
	Points int
}

// SetInput contains the balance to store.
type SetInput struct {
	GuildID string
	Points  int
}

// SetOutput is empty; present for interface symmetry.
type SetOutput struct{}

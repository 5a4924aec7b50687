// Package dice exposes the rolling seam for the resolution engine. All
// randomness in the project flows through a Roller so tests can pin
// exact die faces.
package dice

import (
	toolkit "github.com/KirkDiggler/rpg-toolkit/dice"
)

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/wastelandrpg/wasteland-api/internal/pkg/dice Roller

// Roller produces die results. It matches the rpg-toolkit roller
// contract so the toolkit's crypto-backed roller can be used directly.
type Roller interface {
	// Roll returns a single result in [1, size].
	Roll(size int) (int, error)
	// RollN returns count results, each in [1, size].
	RollN(count, size int) ([]int, error)
}

// Default returns the production roller (rpg-toolkit's crypto/rand
// backed implementation).
func Default() Roller {
	return toolkit.DefaultRoller
}

package service

import (
	"fmt"

	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
)

// ReplayGuard checks that the Key header is the encrypted form of the Time
// header.
type ReplayGuard struct {
	decrypter ports.Decrypter
}

// NewReplayGuard creates a guard around the shared-secret decrypter
func NewReplayGuard(decrypter ports.Decrypter) *ReplayGuard {
	return &ReplayGuard{decrypter: decrypter}
}

// Validate returns nil when decrypt(key) equals time exactly. Every failure
// wraps core.ErrReplayValidationFailed; a decrypt error is reported as a
// mismatch, never as a separate failure.
func (g *ReplayGuard) Validate(time, key string) error {
	if time == "" || key == "" {
		return fmt.Errorf("%w: time and key headers are required", core.ErrReplayValidationFailed)
	}

	plain, err := g.decrypter.Decrypt(key)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrReplayValidationFailed, err)
	}

	if plain != time {
		return fmt.Errorf("%w: key does not match time", core.ErrReplayValidationFailed)
	}

	return nil
}

// IsValid reports whether the pair passes Validate
func (g *ReplayGuard) IsValid(time, key string) bool {
	return g.Validate(time, key) == nil
}

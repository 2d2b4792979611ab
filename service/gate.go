package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
)

// Gate decides whether a request's credentials establish an identity.
// It keeps no state between calls.
type Gate struct {
	tokenizer ports.Tokenizer
	guard     *ReplayGuard
	realm     ports.IdentityRealm
	now       func() time.Time
}

// GateOption customises a Gate
type GateOption func(*Gate)

// WithClock replaces the wall clock used for the expiry check
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

// NewGate creates an authentication gate
func NewGate(tokenizer ports.Tokenizer, guard *ReplayGuard, realm ports.IdentityRealm, opts ...GateOption) *Gate {
	g := &Gate{
		tokenizer: tokenizer,
		guard:     guard,
		realm:     realm,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authenticate runs the checks in a fixed order: presence of the token,
// token decoding, replay pair, expiry, then the realm. The first failure is
// returned wrapped in its core sentinel.
func (g *Gate) Authenticate(ctx context.Context, creds core.Credentials) (*core.Identity, error) {
	if err := g.checkAttempt(creds); err != nil {
		return nil, err
	}

	identity, err := g.realm.Login(ctx, creds.Authorization)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRealmRejected, err)
	}
	if identity == nil {
		return nil, core.ErrRealmRejected
	}

	return identity, nil
}

func (g *Gate) checkAttempt(creds core.Credentials) error {
	if creds.Authorization == "" {
		return core.ErrMissingCredentials
	}

	// The realm verifies the signature again in Login. Keep both checks: the
	// realm is pluggable and must not trust what the gate parsed.
	expiresAt, err := g.tokenizer.ExpiresAt(creds.Authorization)
	if err != nil {
		if errors.Is(err, core.ErrMalformedToken) {
			return err
		}
		return fmt.Errorf("%w: %w", core.ErrMalformedToken, err)
	}

	if err := g.guard.Validate(creds.Time, creds.Key); err != nil {
		return err
	}

	// A token is still accepted in its exact expiry millisecond.
	if expiresAt-g.now().UnixMilli() < 0 {
		return core.ErrTokenExpired
	}

	return nil
}

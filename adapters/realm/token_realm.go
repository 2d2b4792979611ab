// Package realm establishes identities from bearer tokens.
package realm

import (
	"context"
	"fmt"

	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
)

// TokenRealm accepts tokens that carry a valid signature and a subject and
// have not been revoked.
type TokenRealm struct {
	tokenizer ports.Tokenizer
	store     ports.Store
}

// NewTokenRealm creates a realm backed by tokenizer and the revocation store
func NewTokenRealm(tokenizer ports.Tokenizer, store ports.Store) *TokenRealm {
	return &TokenRealm{tokenizer: tokenizer, store: store}
}

var _ ports.IdentityRealm = (*TokenRealm)(nil)

// Login verifies token and returns its owner
func (r *TokenRealm) Login(ctx context.Context, token string) (*core.Identity, error) {
	// Decoded independently of the gate's expiry read.
	claims, err := r.tokenizer.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, core.ErrInvalidClaims
	}

	invalidated, err := r.store.IsTokenInvalidated(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token invalidation: %w", err)
	}
	if invalidated {
		return nil, core.ErrTokenInvalidated
	}

	username := claims.Username
	if username == "" {
		username = claims.Subject
	}

	return &core.Identity{
		Subject:   claims.Subject,
		Username:  username,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

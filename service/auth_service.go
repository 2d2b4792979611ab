package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
)

// AuthService handles token lifecycle operations that sit behind the gate
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.Store
	eventPub  ports.EventPublisher

	accessTTL time.Duration
	now       func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.Store,
	eventPub ports.EventPublisher,
	accessTTL time.Duration,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 2 * time.Hour
	}
	return &AuthService{
		tokenizer: tokenizer,
		store:     store,
		eventPub:  eventPub,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// IssueToken mints an access token for subject. Credential checks happen
// before this is called.
func (s *AuthService) IssueToken(subject string) (string, time.Time, error) {
	expiresAt := s.now().Add(s.accessTTL)
	token, err := s.tokenizer.Issue(subject, expiresAt)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return token, expiresAt, nil
}

// Logout invalidates the caller's token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, identity *core.Identity) error {
	if identity == nil || identity.TokenID == "" {
		return core.ErrInvalidToken
	}

	remaining := identity.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		// Use a short TTL so clock skew between instances cannot revive it
		remaining = time.Minute
	}

	if err := s.store.InvalidateToken(ctx, identity.TokenID, remaining); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}

	// The token is already invalidated in the store, which is the critical part
	if s.eventPub != nil {
		if err := s.eventPub.PublishLogout(ctx, identity.Subject, identity.TokenID); err != nil {
			slog.Warn("failed to publish logout event",
				"subject", identity.Subject,
				"token_id", identity.TokenID,
				"error", err,
			)
		}
	}

	return nil
}

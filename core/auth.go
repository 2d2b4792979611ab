package core

import (
	"context"
	"time"
)

// Outcome is the result of running a request through the authentication gate
type Outcome int

const (
	// OutcomeRejected means the request was answered with NO_PERMISSION
	OutcomeRejected Outcome = iota

	// OutcomeAuthenticated means the realm established an identity
	OutcomeAuthenticated

	// OutcomePreflight means a CORS preflight was answered without auth
	OutcomePreflight

	// OutcomeAnonymous means guest mode let a request without credentials through
	OutcomeAnonymous
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomePreflight:
		return "preflight"
	case OutcomeAnonymous:
		return "anonymous"
	default:
		return "rejected"
	}
}

// Credentials are the per-request values the gate inspects
type Credentials struct {
	Authorization string // Raw bearer token
	Time          string // Plaintext replay value
	Key           string // Encrypted replay value
}

// TokenClaims is the decoded content of a bearer token
type TokenClaims struct {
	ID        string    // Unique token identifier (jti)
	Subject   string    // User the token was issued to
	Username  string    // Login name carried alongside the subject
	IssuedAt  time.Time // When the token was created
	ExpiresAt time.Time // When the token stops being accepted
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	Subject   string
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by the gate, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return id
	}
	return nil
}

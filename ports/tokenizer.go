package ports

import (
	"time"

	"github.com/layer-3/aio/core"
)

// Tokenizer converts between identities and signed bearer tokens
type Tokenizer interface {
	// Issue signs a new token for subject that expires at expiresAt
	Issue(subject string, expiresAt time.Time) (string, error)

	// Decode verifies the signature and returns the claims. Expiry is not
	// enforced here; callers decide how to treat it.
	Decode(token string) (*core.TokenClaims, error)

	// ExpiresAt returns the token expiry in epoch milliseconds
	ExpiresAt(token string) (int64, error)
}

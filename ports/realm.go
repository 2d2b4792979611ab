package ports

import (
	"context"

	"github.com/layer-3/aio/core"
)

// IdentityRealm establishes who owns a bearer token
type IdentityRealm interface {
	Login(ctx context.Context, token string) (*core.Identity, error)
}

// Decrypter reverses the shared-secret encryption of the replay Key header
type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}

package core

import "errors"

// Gate rejection reasons. They all surface to the caller as the same
// NO_PERMISSION response; the distinction exists for logs, metrics and tests.
var (
	ErrMissingCredentials     = errors.New("authorization header is missing")
	ErrMalformedToken         = errors.New("malformed token")
	ErrReplayValidationFailed = errors.New("replay validation failed")
	ErrTokenExpired           = errors.New("token has expired")
	ErrRealmRejected          = errors.New("realm rejected token")
)

var (
	ErrTokenInvalidated     = errors.New("token has been invalidated")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidClaims        = errors.New("invalid claims")
	ErrStoreOperationFailed = errors.New("store operation failed")
	ErrDecryptFailed        = errors.New("decrypt failed")
)

var (
	ErrAreaNotFound = errors.New("area not found")
	ErrAreaInvalid  = errors.New("invalid area")
	ErrAreaConflict = errors.New("area code already exists")
)

// Reason returns a short label for a gate error, used as a metric label.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrReplayValidationFailed):
		return "replay_validation_failed"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrRealmRejected):
		return "realm_rejected"
	default:
		return "unknown"
	}
}

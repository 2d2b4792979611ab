package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
)

const Audience = "aio:access"

var errUnexpectedAudience = errors.New("unexpected audience")

// JWTTokenizer implements the Tokenizer interface using HS256 JWTs
type JWTTokenizer struct {
	secret []byte
	now    func() time.Time
}

// NewJWTTokenizer creates a new JWT tokenizer
func NewJWTTokenizer(secret []byte) ports.Tokenizer {
	return &JWTTokenizer{secret: secret, now: time.Now}
}

// Issue signs an access token for subject
func (j *JWTTokenizer) Issue(subject string, expiresAt time.Time) (string, error) {
	if subject == "" {
		return "", core.ErrInvalidClaims
	}

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(j.now()),
			Audience:  jwt.ClaimStrings{Audience},
		},
		Username: subject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signedToken, nil
}

// Decode verifies the token signature and returns its claims.
// Time based claims are left to the caller.
func (j *JWTTokenizer) Decode(tokenStr string) (*core.TokenClaims, error) {
	claims, err := j.parse(tokenStr)
	if err != nil {
		return nil, err
	}

	decoded := &core.TokenClaims{
		ID:       claims.ID,
		Subject:  claims.Subject,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}

	return decoded, nil
}

// ExpiresAt returns the exp claim in epoch milliseconds
func (j *JWTTokenizer) ExpiresAt(tokenStr string) (int64, error) {
	claims, err := j.parse(tokenStr)
	if err != nil {
		return 0, err
	}
	if claims.ExpiresAt == nil {
		return 0, fmt.Errorf("%w: missing exp claim", core.ErrMalformedToken)
	}

	return claims.ExpiresAt.UnixMilli(), nil
}

func (j *JWTTokenizer) parse(tokenStr string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedToken, err)
	}

	if !token.Valid {
		return nil, core.ErrMalformedToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedToken, core.ErrInvalidClaims)
	}

	if aud, _ := claims.GetAudience(); len(aud) == 0 || aud[0] != Audience {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedToken, errUnexpectedAudience)
	}

	return claims, nil
}

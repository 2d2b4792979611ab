package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccessClaims combines standard claims with the login name
type AccessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AccessClaims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"is_admin"`
}

// JWTUtil encodes and decodes the stateless access tokens. Validity is a
// pure function of signature and expiry, no store is consulted.
type JWTUtil interface {
	GenerateAccessToken(userID uint, isAdmin bool) (token string, exp time.Time, err error)
	ValidateAccessToken(token string) (claims AccessClaims, err error)
}

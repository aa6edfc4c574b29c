package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/config"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

type jwtUtilImpl struct {
	secret    []byte
	method    *jwt.SigningMethodHMAC
	accessTTL time.Duration
}

func NewJWTUtil(cfg *config.Config) (*jwtUtilImpl, error) {
	var method *jwt.SigningMethodHMAC
	switch cfg.JWTAlg {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, domainErrors.NewInvalidArgument("unsupported signing algorithm " + cfg.JWTAlg)
	}
	if cfg.JWTSecret == "" {
		return nil, domainErrors.NewInvalidArgument("empty JWT secret")
	}

	return &jwtUtilImpl{
		secret:    []byte(cfg.JWTSecret),
		method:    method,
		accessTTL: cfg.AccessTokenTTL,
	}, nil
}

func (j *jwtUtilImpl) GenerateAccessToken(userID uint, isAdmin bool) (string, time.Time, error) {
	now := time.Now()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			ID:        uuid.NewString(),
		},
		IsAdmin: isAdmin,
	}

	signed, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, domainErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *jwtUtilImpl) ValidateAccessToken(raw string) (AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != j.method.Alg() {
			return nil, domainErrors.ErrInvalidToken
		}
		return j.secret, nil
	})

	if err != nil {
		// A well-formed but stale token is reported distinctly so the client
		// knows to exchange its refresh token instead of re-authenticating.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AccessClaims{}, domainErrors.ErrAccessTokenExpired
		}
		return AccessClaims{}, domainErrors.ErrInvalidToken
	}

	if !token.Valid {
		return AccessClaims{}, domainErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return AccessClaims{}, domainErrors.ErrInvalidToken
	}

	return *claims, nil
}

// SubjectID parses the numeric user id out of the sub claim.
func (c AccessClaims) SubjectID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, domainErrors.ErrInvalidToken
	}
	return uint(id), nil
}

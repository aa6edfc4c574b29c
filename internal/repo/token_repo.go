package repo

import (
	"context"

	"github.com/shelfmark/shelfmark/internal/auth/model"
)

type RefreshTokenRepo interface {
	Create(ctx context.Context, t model.RefreshToken) error

	GetByValue(ctx context.Context, value string) (model.RefreshToken, error)

	// Expire revokes the token by setting its expiry to now. The row is kept.
	Expire(ctx context.Context, value string) error
}

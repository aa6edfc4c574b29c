package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/auth/model"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

type PostgresTokenRepo struct {
	db *gorm.DB
}

func NewPostgresTokenRepo(db *gorm.DB) *PostgresTokenRepo {
	return &PostgresTokenRepo{db: db}
}

func (p *PostgresTokenRepo) Create(ctx context.Context, t model.RefreshToken) error {
	if err := p.db.WithContext(ctx).Create(&t).Error; err != nil {
		return domainErrors.WrapInternal(err, "Create refresh token")
	}
	return nil
}

func (p *PostgresTokenRepo) GetByValue(ctx context.Context, value string) (model.RefreshToken, error) {
	var t model.RefreshToken
	res := p.db.WithContext(ctx).Where("token = ?", value).First(&t)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.RefreshToken{}, domainErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.RefreshToken{}, domainErrors.WrapInternal(err, "GetByValue")
	}

	return t, nil
}

func (p *PostgresTokenRepo) Expire(ctx context.Context, value string) error {
	res := p.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("token = ?", value).
		Update("expires_at", time.Now())
	if err := res.Error; err != nil {
		return domainErrors.WrapInternal(err, "Expire")
	}
	// Zero rows affected means the token was never ours or already gone;
	// revocation stays idempotent either way.
	return nil
}

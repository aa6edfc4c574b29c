package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/auth/model"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (uint, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "email"):
				return 0, domainErrors.ErrEmailTaken
			case strings.Contains(pgErr.ConstraintName, "username"):
				return 0, domainErrors.ErrUsernameTaken
			default:
				return 0, domainErrors.ErrAlreadyExists
			}
		}
		return 0, domainErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uint) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, domainErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, domainErrors.WrapInternal(err, "GetUserByID")
	}

	return u, nil
}

func (p *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("username = ?", username).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, domainErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, domainErrors.WrapInternal(err, "GetUserByUsername")
	}

	return u, nil
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, domainErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, domainErrors.WrapInternal(err, "GetUserByEmail")
	}

	return u, nil
}

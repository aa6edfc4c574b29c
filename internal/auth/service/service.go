package service

import (
	"context"
	"time"

	validate "github.com/go-playground/validator/v10"

	"github.com/shelfmark/shelfmark/internal/auth/dto"
	"github.com/shelfmark/shelfmark/internal/auth/jwt"
	"github.com/shelfmark/shelfmark/internal/auth/model"
	"github.com/shelfmark/shelfmark/internal/auth/password"
	"github.com/shelfmark/shelfmark/internal/config"
	"github.com/shelfmark/shelfmark/internal/repo"
)

// AuthService is the session manager: it issues the long-lived opaque refresh
// credential at login, exchanges it for short-lived signed access tokens and
// revokes it at logout. Access-token verification is stateless; refresh-token
// operations go through the server-side store.
type AuthService interface {
	Register(ctx context.Context, d dto.RegisterDTO) (dto.UserResponse, error)
	Login(ctx context.Context, d dto.LoginDTO) (refreshToken string, err error)
	Exchange(ctx context.Context, refreshValue string) (accessToken string, exp time.Time, err error)
	UserFromAccessToken(ctx context.Context, raw string) (model.User, error)
	UserFromRefreshToken(ctx context.Context, value string) (model.User, error)
	Authorize(u model.User, required model.Role) error
	Logout(ctx context.Context, value string) error
}

func NewAuthService(
	userRepo repo.UserRepo,
	tokenRepo repo.RefreshTokenRepo,
	jwtUtil jwt.JWTUtil,
	hasher *password.Hasher,
	cfg *config.Config,
	v *validate.Validate,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtUtil:   jwtUtil,
		hasher:    hasher,
		cfg:       cfg,
		v:         v,
	}
}

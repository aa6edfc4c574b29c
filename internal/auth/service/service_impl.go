package service

import (
	"context"
	"time"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/auth/dto"
	"github.com/shelfmark/shelfmark/internal/auth/jwt"
	"github.com/shelfmark/shelfmark/internal/auth/model"
	"github.com/shelfmark/shelfmark/internal/auth/password"
	"github.com/shelfmark/shelfmark/internal/config"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
	"github.com/shelfmark/shelfmark/internal/repo"
)

type authService struct {
	userRepo  repo.UserRepo
	tokenRepo repo.RefreshTokenRepo
	jwtUtil   jwt.JWTUtil
	hasher    *password.Hasher
	cfg       *config.Config
	v         *validate.Validate
}

func (a *authService) Register(ctx context.Context, d dto.RegisterDTO) (dto.UserResponse, error) {
	if err := a.v.Struct(d); err != nil {
		return dto.UserResponse{}, domainErrors.NewInvalidArgument(err.Error())
	}

	if _, err := a.userRepo.GetUserByEmail(ctx, d.Email); err == nil {
		return dto.UserResponse{}, domainErrors.ErrEmailTaken
	} else if !domainErrors.IsNotFound(err) {
		return dto.UserResponse{}, err
	}
	if _, err := a.userRepo.GetUserByUsername(ctx, d.Username); err == nil {
		return dto.UserResponse{}, domainErrors.ErrUsernameTaken
	} else if !domainErrors.IsNotFound(err) {
		return dto.UserResponse{}, err
	}

	passwordHash, err := a.hasher.Hash(d.Password)
	if err != nil {
		return dto.UserResponse{}, domainErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
	}
	id, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		return dto.UserResponse{}, err
	}

	return dto.UserResponse{
		ID:       id,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}, nil
}

func (a *authService) Login(ctx context.Context, d dto.LoginDTO) (string, error) {
	if err := a.v.Struct(d); err != nil {
		return "", domainErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByUsername(ctx, d.Username)
	if domainErrors.IsNotFound(err) {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", domainErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(d.Password, user.PasswordHash) {
		return "", domainErrors.ErrInvalidCredentials
	}

	// One fresh row per successful login; concurrent sessions each get their
	// own opaque value and there is no dedup against earlier ones.
	token := model.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(a.cfg.RefreshTokenTTL),
	}
	if err := a.tokenRepo.Create(ctx, token); err != nil {
		return "", err
	}

	return token.Token, nil
}

func (a *authService) Exchange(ctx context.Context, refreshValue string) (string, time.Time, error) {
	user, err := a.resolveRefreshToken(ctx, refreshValue)
	if err != nil {
		return "", time.Time{}, err
	}

	// No rotation: the refresh token stays valid and may be exchanged again.
	accessToken, exp, err := a.jwtUtil.GenerateAccessToken(user.ID, user.Role.IsAdmin())
	if err != nil {
		return "", time.Time{}, err
	}

	return accessToken, exp, nil
}

func (a *authService) UserFromAccessToken(ctx context.Context, raw string) (model.User, error) {
	if raw == "" {
		return model.User{}, domainErrors.ErrAccessTokenRequired
	}

	claims, err := a.jwtUtil.ValidateAccessToken(raw)
	if err != nil {
		return model.User{}, err
	}

	id, err := claims.SubjectID()
	if err != nil {
		return model.User{}, err
	}

	user, err := a.userRepo.GetUserByID(ctx, id)
	if domainErrors.IsNotFound(err) {
		return model.User{}, domainErrors.ErrAuthRequired
	}
	if err != nil {
		return model.User{}, domainErrors.WrapInternal(err, "UserFromAccessToken")
	}

	return user, nil
}

func (a *authService) UserFromRefreshToken(ctx context.Context, value string) (model.User, error) {
	return a.resolveRefreshToken(ctx, value)
}

// Authorize is the single role predicate shared by access-token and
// refresh-token guarded endpoints.
func (a *authService) Authorize(u model.User, required model.Role) error {
	if required == model.RoleAdmin && !u.Role.IsAdmin() {
		return domainErrors.ErrAuthorizationFailed
	}
	return nil
}

func (a *authService) Logout(ctx context.Context, value string) error {
	_, err := a.tokenRepo.GetByValue(ctx, value)
	if domainErrors.IsNotFound(err) {
		// unknown token, logout stays idempotent
		return nil
	}
	if err != nil {
		return domainErrors.WrapInternal(err, "Logout")
	}

	return a.tokenRepo.Expire(ctx, value)
}

func (a *authService) resolveRefreshToken(ctx context.Context, value string) (model.User, error) {
	if value == "" {
		return model.User{}, domainErrors.ErrRefreshTokenNotValid
	}

	token, err := a.tokenRepo.GetByValue(ctx, value)
	if domainErrors.IsNotFound(err) {
		return model.User{}, domainErrors.ErrRefreshTokenNotValid
	}
	if err != nil {
		return model.User{}, domainErrors.WrapInternal(err, "resolveRefreshToken")
	}

	if token.Expired(time.Now()) {
		return model.User{}, domainErrors.ErrRefreshTokenNotValid
	}

	user, err := a.userRepo.GetUserByID(ctx, token.UserID)
	if domainErrors.IsNotFound(err) {
		// orphaned token, the owning user is gone
		return model.User{}, domainErrors.ErrRefreshTokenNotValid
	}
	if err != nil {
		return model.User{}, domainErrors.WrapInternal(err, "resolveRefreshToken")
	}

	return user, nil
}

package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal error")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")

	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRefreshTokenNotValid = errors.New("refresh token not valid")
	ErrAccessTokenRequired  = errors.New("access token required")
	ErrAccessTokenExpired   = errors.New("access token expired")
	ErrInvalidToken         = errors.New("invalid token")
	ErrAuthRequired         = errors.New("authentication required")
	ErrAuthorizationFailed  = errors.New("authorization failed")

	ErrEmailTaken    = errors.New("email is already taken")
	ErrUsernameTaken = errors.New("username is already taken")

	ErrBookNotFound     = errors.New("book(s) not found")
	ErrCategoryNotFound = errors.New("category(s) not found")
	ErrSearchQueryEmpty = errors.New("search query cannot be empty")
	ErrInvalidISBN      = errors.New("isbn is not valid")
)

func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsRefreshTokenNotValid(err error) bool {
	return errors.Is(err, ErrRefreshTokenNotValid)
}

func IsAccessTokenRequired(err error) bool {
	return errors.Is(err, ErrAccessTokenRequired)
}

func IsAccessTokenExpired(err error) bool {
	return errors.Is(err, ErrAccessTokenExpired)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

func IsAuthorizationFailed(err error) bool {
	return errors.Is(err, ErrAuthorizationFailed)
}

func IsEmailTaken(err error) bool {
	return errors.Is(err, ErrEmailTaken)
}

func IsUsernameTaken(err error) bool {
	return errors.Is(err, ErrUsernameTaken)
}

func IsBookNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound)
}

func IsCategoryNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

func IsSearchQueryEmpty(err error) bool {
	return errors.Is(err, ErrSearchQueryEmpty)
}

func IsInvalidISBN(err error) bool {
	return errors.Is(err, ErrInvalidISBN)
}

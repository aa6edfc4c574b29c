package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string
	HTTPAddress string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	JWTSecret       string
	JWTAlg          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PasswordPepper  string

	GoogleBooksURL   string
	BookCacheTTL     time.Duration
	BookListCacheTTL time.Duration

	AllowedOrigins []string
	SecureCookies  bool
	LogLevel       string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	for _, key := range []string{
		"DATABASE_URL", "HTTP_ADDRESS",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_ALG", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "PASSWORD_PEPPER",
		"GOOGLE_BOOKS_URL", "BOOK_CACHE_TTL", "BOOK_LIST_CACHE_TTL",
		"ALLOWED_ORIGINS", "SECURE_COOKIES", "LOG_LEVEL",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("JWT_ALG", "HS256")
	v.SetDefault("ACCESS_TOKEN_TTL", "10m")
	v.SetDefault("REFRESH_TOKEN_TTL", "504h") // 21 days
	v.SetDefault("GOOGLE_BOOKS_URL", "https://www.googleapis.com")
	v.SetDefault("BOOK_CACHE_TTL", "1h")
	v.SetDefault("BOOK_LIST_CACHE_TTL", "20m")
	v.SetDefault("SECURE_COOKIES", true)

	for _, key := range []string{"DATABASE_URL", "REDIS_ADDRESS", "JWT_SECRET"} {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("%s is not set", key)
		}
	}

	// A malformed duration comes back from viper as 0, which would issue
	// already-expired tokens, so it fails loading instead.
	for _, key := range []string{
		"ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "BOOK_CACHE_TTL", "BOOK_LIST_CACHE_TTL",
	} {
		if v.GetDuration(key) <= 0 {
			return nil, fmt.Errorf("%s must be a positive duration, got %q", key, v.GetString(key))
		}
	}

	switch alg := v.GetString("JWT_ALG"); alg {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("unsupported JWT_ALG %q", alg)
	}

	var origins []string
	if raw := v.GetString("ALLOWED_ORIGINS"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &origins); err != nil {
			return nil, fmt.Errorf("parse ALLOWED_ORIGINS: %w", err)
		}
	}

	return &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		RedisAddress:     v.GetString("REDIS_ADDRESS"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTAlg:           v.GetString("JWT_ALG"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		PasswordPepper:   v.GetString("PASSWORD_PEPPER"),
		GoogleBooksURL:   v.GetString("GOOGLE_BOOKS_URL"),
		BookCacheTTL:     v.GetDuration("BOOK_CACHE_TTL"),
		BookListCacheTTL: v.GetDuration("BOOK_LIST_CACHE_TTL"),
		AllowedOrigins:   origins,
		SecureCookies:    v.GetBool("SECURE_COOKIES"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}, nil
}

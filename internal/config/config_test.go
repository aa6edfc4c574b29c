package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/shelfmark")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 10*time.Minute {
		t.Fatalf("AccessTokenTTL want 10m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 504*time.Hour {
		t.Fatalf("RefreshTokenTTL want 504h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.JWTAlg != "HS256" {
		t.Fatalf("JWTAlg want HS256, got %v", cfg.JWTAlg)
	}
	if cfg.BookCacheTTL != time.Hour || cfg.BookListCacheTTL != 20*time.Minute {
		t.Fatalf("cache TTLs: %v %v", cfg.BookCacheTTL, cfg.BookListCacheTTL)
	}
	if !cfg.SecureCookies {
		t.Fatal("SecureCookies should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")
	t.Setenv("ALLOWED_ORIGINS", `["https://app.example.com"]`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("RefreshTokenTTL want 3h, got %v", cfg.RefreshTokenTTL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("AllowedOrigins: %v", cfg.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("REDIS_ADDRESS", "r")
	// JWT_SECRET deliberately unset
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_BadAlg(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ALG", "RS256")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported alg")
	}
}

func TestLoad_MalformedDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("REFRESH_TOKEN_TTL", "3days")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed REFRESH_TOKEN_TTL")
	}
}

func TestLoad_NegativeDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "-10m")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative ACCESS_TOKEN_TTL")
	}
}

// Package config loads the process-wide configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the unified application configuration. It is loaded once at
// startup and immutable thereafter.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	OIDC        OIDC
}

// OIDC holds the optional SSO provider settings. SSO is enabled when an
// issuer URL is present.
type OIDC struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether SSO login should be wired up.
func (o OIDC) Enabled() bool {
	return o.IssuerURL != ""
}

// Load reads configuration from a .env file (when present) and the
// environment. JWT_SECRET and DATABASE_URL are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        env("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		OIDC: OIDC{
			IssuerURL:    os.Getenv("OIDC_ISSUER_URL"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	ttl, err := time.ParseDuration(env("JWT_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, errors.New("JWT_TTL must be positive")
	}
	cfg.JWTTTL = ttl

	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

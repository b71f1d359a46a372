package config_test

import (
	"testing"
	"time"

	"noteful/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/noteful_test?sslmode=disable")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("ADDR", "")
	t.Setenv("JWT_TTL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.JWTTTL != 168*time.Hour {
		t.Fatalf("expected default TTL of one week, got %v", cfg.JWTTTL)
	}
	if cfg.OIDC.Enabled() {
		t.Fatal("SSO must be off without an issuer URL")
	}
}

func TestLoad_RequiredSettings(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DATABASE_URL", "postgres://localhost/noteful_test")
		if _, err := config.Load(); err == nil {
			t.Fatal("expected an error without JWT_SECRET")
		}
	})

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DATABASE_URL", "")
		if _, err := config.Load(); err == nil {
			t.Fatal("expected an error without DATABASE_URL")
		}
	})
}

func TestLoad_TTL(t *testing.T) {
	setRequired(t)

	t.Run("custom value", func(t *testing.T) {
		t.Setenv("JWT_TTL", "30m")
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.JWTTTL != 30*time.Minute {
			t.Fatalf("expected 30m, got %v", cfg.JWTTTL)
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		t.Setenv("JWT_TTL", "soon")
		if _, err := config.Load(); err == nil {
			t.Fatal("expected an error for an unparseable TTL")
		}
	})

	t.Run("negative", func(t *testing.T) {
		t.Setenv("JWT_TTL", "-1h")
		if _, err := config.Load(); err == nil {
			t.Fatal("expected an error for a negative TTL")
		}
	})
}

func TestLoad_OIDC(t *testing.T) {
	setRequired(t)
	t.Setenv("OIDC_ISSUER_URL", "https://issuer.example.com")
	t.Setenv("OIDC_CLIENT_ID", "client-id")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.OIDC.Enabled() {
		t.Fatal("expected SSO to be enabled with an issuer URL")
	}
	if cfg.OIDC.ClientID != "client-id" {
		t.Fatalf("unexpected client id %q", cfg.OIDC.ClientID)
	}
}

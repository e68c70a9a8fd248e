package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Clear env to test defaults
	os.Unsetenv("OPENTRE_PORT")
	os.Unsetenv("OPENTRE_LOG_LEVEL")
	os.Unsetenv("OPENTRE_DATABASE_URL")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("OPENTRE_NATS_URL")
	os.Unsetenv("OPENTRE_JWT_SECRET")
	os.Unsetenv("OPENTRE_TRE_ID")
	os.Unsetenv("OPENTRE_LOCATION")
	os.Unsetenv("OPENTRE_SECRETS_ARN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("expected default NATS URL, got %s", cfg.NATSURL)
	}
	if cfg.TreID != "tre-dev" {
		t.Errorf("expected tre id tre-dev, got %s", cfg.TreID)
	}
	if cfg.Location != "westeurope" {
		t.Errorf("expected location westeurope, got %s", cfg.Location)
	}
	if cfg.JWTSecret != "" {
		t.Errorf("expected empty JWT secret by default, got %s", cfg.JWTSecret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("OPENTRE_PORT", "9999")
	os.Setenv("OPENTRE_DATABASE_URL", "postgres://tre:tre@db:5432/tre")
	os.Setenv("OPENTRE_NATS_URL", "nats://broker:4222")
	os.Setenv("OPENTRE_JWT_SECRET", "test-secret")
	os.Setenv("OPENTRE_TRE_ID", "tre-prod")
	defer func() {
		os.Unsetenv("OPENTRE_PORT")
		os.Unsetenv("OPENTRE_DATABASE_URL")
		os.Unsetenv("OPENTRE_NATS_URL")
		os.Unsetenv("OPENTRE_JWT_SECRET")
		os.Unsetenv("OPENTRE_TRE_ID")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://tre:tre@db:5432/tre" {
		t.Errorf("unexpected database URL: %s", cfg.DatabaseURL)
	}
	if cfg.NATSURL != "nats://broker:4222" {
		t.Errorf("unexpected NATS URL: %s", cfg.NATSURL)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("unexpected JWT secret: %s", cfg.JWTSecret)
	}
	if cfg.TreID != "tre-prod" {
		t.Errorf("unexpected tre id: %s", cfg.TreID)
	}
}

func TestLoadDatabaseURLFallback(t *testing.T) {
	os.Unsetenv("OPENTRE_DATABASE_URL")
	os.Setenv("DATABASE_URL", "postgres://fallback:5432/tre")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://fallback:5432/tre" {
		t.Errorf("expected DATABASE_URL fallback, got %s", cfg.DatabaseURL)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	os.Setenv("OPENTRE_PORT", "not-a-number")
	defer os.Unsetenv("OPENTRE_PORT")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid port")
	}
}

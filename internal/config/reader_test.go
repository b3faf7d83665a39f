package config

import (
	"testing"
	"time"
)

func TestEnvReaderRead(t *testing.T) {
	t.Setenv("ENV", "local")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_USERNAME", "taskhive")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DATABASE", "taskhive")
	t.Setenv("JWT_SIGNING_KEY", "test-signing-key")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if cfg.Env != EnvLocal {
		t.Errorf("got env %q, want %q", cfg.Env, EnvLocal)
	}
	if cfg.HTTP.Port != "8080" {
		t.Errorf("got http port %q, want default 8080", cfg.HTTP.Port)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("got postgres port %d, want default 5432", cfg.Postgres.Port)
	}
	if cfg.Postgres.SSLMode != "disable" {
		t.Errorf("got ssl mode %q, want default disable", cfg.Postgres.SSLMode)
	}
	if cfg.JWT.TokenTTL != 168*time.Hour {
		t.Errorf("got token ttl %v, want default 168h", cfg.JWT.TokenTTL)
	}
}

func TestEnvReaderMissingRequired(t *testing.T) {
	t.Setenv("ENV", "local")
	t.Setenv("POSTGRES_HOST", "localhost")
	// POSTGRES_USERNAME intentionally unset.

	_, err := NewEnvReader().Read()
	if err == nil {
		t.Fatal("expected error for missing required env")
	}
}

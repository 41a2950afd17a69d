package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	setEnv(t, "DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/pulsevault")
	setEnv(t, "ENV", "development")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("unexpected pool defaults: max=%d min=%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.DPEpsilon != 1.0 {
		t.Errorf("expected default epsilon 1.0, got %f", cfg.DPEpsilon)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode")
	}
}

func TestValidate_ProductionRequiresSalt(t *testing.T) {
	cfg := &Config{Env: "production", AuthSigningKey: "k", DPEpsilon: 1.0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing ANONYMIZATION_SALT in production")
	}
	cfg.AnonymizationSalt = "salty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NonDevRequiresAuth(t *testing.T) {
	cfg := &Config{Env: "staging", DPEpsilon: 1.0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when no auth configuration is present")
	}
	cfg.AuthSigningKey = "dev-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EpsilonMustBePositive(t *testing.T) {
	cfg := &Config{Env: "development", DPEpsilon: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive epsilon")
	}
}

func TestValidate_DevAllowsMissingSalt(t *testing.T) {
	cfg := &Config{Env: "development", DPEpsilon: 1.0}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("development must tolerate a missing salt (engine falls back), got %v", err)
	}
}

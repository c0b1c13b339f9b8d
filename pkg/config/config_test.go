package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if cfg.Redis.UsersKey != "usermap:users" {
		t.Fatalf("unexpected users key %q", cfg.Redis.UsersKey)
	}

	if got := cfg.Gateway.Timeout; got != 10*time.Second {
		t.Fatalf("expected gateway timeout 10s, got %v", got)
	}

	if cfg.Stream.ClientBuffer != 100 {
		t.Fatalf("unexpected stream buffer %d", cfg.Stream.ClientBuffer)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestAppEnvHelpers(t *testing.T) {
	app := AppConfig{Env: "Development"}
	if !app.IsDev() || app.IsProd() {
		t.Fatalf("expected dev environment, got %+v", app)
	}
	app.Env = "production"
	if !app.IsProd() || app.IsDev() {
		t.Fatalf("expected prod environment, got %+v", app)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvGatewayBaseURL, "http://localhost:4000")
	t.Setenv(EnvMapsBrowserKey, "browser-key")
}

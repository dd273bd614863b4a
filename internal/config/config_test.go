package config

import (
	"strings"
	"testing"

	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("USE_MEMORY_REPOS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("AppEnv = %s, want %s", cfg.AppEnv, EnvDev)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %s, want :8080", cfg.HTTPAddr)
	}
	if cfg.ServiceName != "fantasy-draft" {
		t.Fatalf("ServiceName = %s, want fantasy-draft", cfg.ServiceName)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if !cfg.UseMemoryRepos {
		t.Fatal("UseMemoryRepos not applied")
	}
	if cfg.ScoringWorkerCount != 4 {
		t.Fatalf("ScoringWorkerCount = %d, want 4", cfg.ScoringWorkerCount)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("USE_MEMORY_REPOS", "false")
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("USE_MEMORY_REPOS", "true")

	t.Setenv("APP_ENV", "production")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
	t.Setenv("APP_ENV", "prod")

	t.Setenv("HTTP_READ_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid HTTP_READ_TIMEOUT")
	}
	t.Setenv("HTTP_READ_TIMEOUT", "15s")

	t.Setenv("SCORING_WORKER_COUNT", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero SCORING_WORKER_COUNT")
	}
	t.Setenv("SCORING_WORKER_COUNT", "8")

	t.Setenv("UPTRACE_ENABLED", "true")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for UPTRACE_ENABLED without DSN")
	}
	t.Setenv("UPTRACE_DSN", "https://token@uptrace.example/1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.AppEnv != EnvProd {
		t.Fatalf("AppEnv = %s, want %s", cfg.AppEnv, EnvProd)
	}
	if cfg.ScoringWorkerCount != 8 {
		t.Fatalf("ScoringWorkerCount = %d, want 8", cfg.ScoringWorkerCount)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"warn":    logging.LevelWarn,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"info":    logging.LevelInfo,
		"verbose": logging.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLogLevel(raw); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

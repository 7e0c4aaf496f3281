package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Server.Addr)
	}
	if cfg.RateLimit.Capacity != 5 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
	if cfg.Redis.Addr != "" || cfg.Database.SQLitePath != "" {
		t.Errorf("expected in-memory backends by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  read_timeout: 5s
redis:
  addr: "localhost:6379"
  ttl: 10m
limits:
  max_period_count: 600
  max_amount: "5000000"
schedule:
  refresh_cron: "0 30 2 * * *"
`)
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("MAX_PERIOD_COUNT", "480")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("unexpected server %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != 15*time.Second {
		t.Errorf("expected default write timeout, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Redis.Addr != "redis:6380" || cfg.Redis.TTL != 10*time.Minute {
		t.Errorf("unexpected redis %+v", cfg.Redis)
	}
	if cfg.Schedule.RefreshCron != "0 30 2 * * *" {
		t.Errorf("unexpected cron %q", cfg.Schedule.RefreshCron)
	}

	limits, err := cfg.ServiceLimits()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limits.MaxPeriodCount != 480 {
		t.Errorf("env should override the file, got %d", limits.MaxPeriodCount)
	}
	if !limits.MaxAmount.Equal(decimal.NewFromInt(5_000_000)) {
		t.Errorf("unexpected max amount %s", limits.MaxAmount)
	}
	if !limits.MaxAnnualRatePercent.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("unexpected max rate %s", limits.MaxAnnualRatePercent)
	}
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":7070\"\n")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("expected :7070, got %q", cfg.Server.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [unclosed")); err == nil {
		t.Errorf("expected parse error")
	}

	t.Setenv("MAX_PERIOD_COUNT", "many")
	if _, err := Load(writeConfig(t, "")); err == nil {
		t.Errorf("expected error for non-numeric MAX_PERIOD_COUNT")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, `limits:
  max_amount: "abc"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected invalid max_amount to fail validation")
	}

	cfg, err = Load(writeConfig(t, "rate_limit:\n  capacity: -1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected negative capacity to fail validation")
	}
}

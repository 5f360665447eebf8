package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/wavesflow")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("MONTHLY_SALES_GOAL", "")
	t.Setenv("HTTP_READ_TIMEOUT", "")
	t.Setenv("BUSINESS_TIMEZONE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MonthlySalesGoal != 3000000 {
		t.Fatalf("expected default goal 3000000, got %d", cfg.MonthlySalesGoal)
	}
	if cfg.ProfitMilestone != 10000000 || cfg.MilestonePace != 50000 {
		t.Fatalf("unexpected milestone defaults: %d / %d", cfg.ProfitMilestone, cfg.MilestonePace)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("expected 15s read timeout, got %s", cfg.ReadTimeout)
	}
	if cfg.Location().String() != "Asia/Kolkata" {
		t.Fatalf("expected Asia/Kolkata, got %s", cfg.Location())
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when DATABASE_URL is empty")
	}
}

func TestGetDuration_AcceptsBareSeconds(t *testing.T) {
	t.Setenv("WF_TEST_TIMEOUT", "30")
	if got := getDuration("WF_TEST_TIMEOUT", time.Second); got != 30*time.Second {
		t.Fatalf("expected 30s, got %s", got)
	}
	t.Setenv("WF_TEST_TIMEOUT", "bogus")
	if got := getDuration("WF_TEST_TIMEOUT", time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestGetInt64_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("WF_TEST_GOAL", "12x")
	if got := getInt64("WF_TEST_GOAL", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

func TestLoadDatabase_SkipsAuthSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/wavesflow")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("BUSINESS_TIMEZONE", "")
	if _, err := LoadDatabase(); err != nil {
		t.Fatalf("LoadDatabase() error: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected Load to require JWT_SECRET")
	}
}

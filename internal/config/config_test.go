package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("AGROMARKET_BASE_URL", "")
	t.Setenv("AGROMARKET_DATA_DIR", t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error without AGROMARKET_BASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AGROMARKET_BASE_URL", "https://api.agromarket.example/api")
	t.Setenv("AGROMARKET_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("request timeout default: %v", cfg.RequestTimeout)
	}
	if cfg.RefreshLead != 5*time.Minute {
		t.Fatalf("refresh lead default: %v", cfg.RefreshLead)
	}
	if cfg.OTELEnabled {
		t.Fatal("telemetry must default to disabled")
	}
	if cfg.RedisPrefix != "agromarket_client" {
		t.Fatalf("redis prefix default: %q", cfg.RedisPrefix)
	}
}

func TestLoadDerivesUploadsURL(t *testing.T) {
	t.Setenv("AGROMARKET_BASE_URL", "https://api.agromarket.example/api")
	t.Setenv("AGROMARKET_UPLOADS_URL", "")
	t.Setenv("AGROMARKET_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UploadsURL != "https://api.agromarket.example" {
		t.Fatalf("derived uploads url: %q", cfg.UploadsURL)
	}
	if strings.HasSuffix(cfg.UploadsURL, "/api") {
		t.Fatal("uploads url kept the /api suffix")
	}
}

func TestLoadExplicitUploadsURLWins(t *testing.T) {
	t.Setenv("AGROMARKET_BASE_URL", "https://api.agromarket.example/api")
	t.Setenv("AGROMARKET_UPLOADS_URL", "https://cdn.agromarket.example")
	t.Setenv("AGROMARKET_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UploadsURL != "https://cdn.agromarket.example" {
		t.Fatalf("explicit uploads url overridden: %q", cfg.UploadsURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AGROMARKET_BASE_URL", "https://api.agromarket.example/api")
	t.Setenv("AGROMARKET_DATA_DIR", t.TempDir())
	t.Setenv("AGROMARKET_REQUEST_TIMEOUT", "3s")
	t.Setenv("AGROMARKET_REFRESH_LEAD", "90s")
	t.Setenv("AGROMARKET_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("request timeout: %v", cfg.RequestTimeout)
	}
	if cfg.RefreshLead != 90*time.Second {
		t.Fatalf("refresh lead: %v", cfg.RefreshLead)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redis addr: %q", cfg.RedisAddr)
	}
}

func TestTrimAPISuffix(t *testing.T) {
	cases := map[string]string{
		"https://x.example/api": "https://x.example",
		"https://x.example":     "https://x.example",
		"/api":                  "/api",
	}
	for in, want := range cases {
		if got := trimAPISuffix(in); got != want {
			t.Fatalf("trimAPISuffix(%q): got %q, want %q", in, got, want)
		}
	}
}

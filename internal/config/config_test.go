package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MODE", "AUTH_DELAY", "CORS_ORIGINS", "ADMIN_USERNAME"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Live() {
		t.Error("default mode should be mock")
	}
	if cfg.AuthDelay != time.Second {
		t.Errorf("AuthDelay = %v, want 1s", cfg.AuthDelay)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q, want admin", cfg.AdminUsername)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MODE", "live")
	t.Setenv("AUTH_DELAY", "250ms")
	t.Setenv("CORS_ORIGINS", " https://coins.example , ,https://admin.example")
	t.Setenv("LOG_JSON", "true")

	cfg := Load()
	if !cfg.Live() {
		t.Error("expected live mode")
	}
	if cfg.AuthDelay != 250*time.Millisecond {
		t.Errorf("AuthDelay = %v, want 250ms", cfg.AuthDelay)
	}
	want := []string{"https://coins.example", "https://admin.example"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.CORSOrigins[i], want[i])
		}
	}
	if !cfg.LogJSON {
		t.Error("expected LogJSON")
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("AUTH_DELAY", "soon")
	if d := Load().AuthDelay; d != time.Second {
		t.Errorf("AuthDelay = %v, want fallback 1s", d)
	}
}

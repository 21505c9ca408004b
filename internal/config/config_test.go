package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all BTAG_ env vars to test pure defaults
	envVars := []string{
		"BTAG_PORT", "BTAG_METRICS_PORT", "BTAG_ADMIN_TOKEN",
		"BTAG_DATABASE_URL", "BTAG_BUS_URL",
		"BTAG_ALGORITHM", "BTAG_CHANNEL", "BTAG_HEAVY_SHIFT", "BTAG_LIGHT_SHIFT",
		"BTAG_STATS_INTERVAL_MS", "BTAG_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Bus.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Bus.URL)
	}
	if cfg.Weighing.Algorithm != "csvm" {
		t.Errorf("expected default algorithm csvm, got %s", cfg.Weighing.Algorithm)
	}
	if cfg.Weighing.Channel != "muon" {
		t.Errorf("expected default channel muon, got %s", cfg.Weighing.Channel)
	}
	if cfg.Weighing.HeavyShift != "nominal" || cfg.Weighing.LightShift != "nominal" {
		t.Errorf("expected nominal shifts, got %s/%s", cfg.Weighing.HeavyShift, cfg.Weighing.LightShift)
	}
	if cfg.Summary.HistBins != 40 {
		t.Errorf("expected 40 histogram bins, got %d", cfg.Summary.HistBins)
	}
	if cfg.Summary.HistMin != 0.5 || cfg.Summary.HistMax != 1.5 {
		t.Errorf("expected histogram range [0.5, 1.5], got [%v, %v]", cfg.Summary.HistMin, cfg.Summary.HistMax)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
	if cfg.StatsInterval() != time.Minute {
		t.Errorf("expected StatsInterval 1m, got %v", cfg.StatsInterval())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BTAG_PORT", "9100")
	t.Setenv("BTAG_METRICS_PORT", "9101")
	t.Setenv("BTAG_ADMIN_TOKEN", "secret-token")
	t.Setenv("BTAG_DATABASE_URL", "postgres://localhost/btag_test")
	t.Setenv("BTAG_BUS_URL", "nats://nats:4222")
	t.Setenv("BTAG_ALGORITHM", "csvt")
	t.Setenv("BTAG_CHANNEL", "electron")
	t.Setenv("BTAG_HEAVY_SHIFT", "up")
	t.Setenv("BTAG_LIGHT_SHIFT", "down")
	t.Setenv("BTAG_STATS_INTERVAL_MS", "15000")
	t.Setenv("BTAG_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9101 {
		t.Errorf("expected metrics port 9101, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/btag_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Bus.URL != "nats://nats:4222" {
		t.Errorf("expected bus URL, got '%s'", cfg.Bus.URL)
	}
	if cfg.Weighing.Algorithm != "csvt" {
		t.Errorf("expected algorithm csvt, got '%s'", cfg.Weighing.Algorithm)
	}
	if cfg.Weighing.Channel != "electron" {
		t.Errorf("expected channel electron, got '%s'", cfg.Weighing.Channel)
	}
	if cfg.Weighing.HeavyShift != "up" || cfg.Weighing.LightShift != "down" {
		t.Errorf("expected up/down shifts, got %s/%s", cfg.Weighing.HeavyShift, cfg.Weighing.LightShift)
	}
	if cfg.Stats.PublishIntervalMs != 15000 {
		t.Errorf("expected stats interval 15000, got %d", cfg.Stats.PublishIntervalMs)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	for _, k := range []string{"BTAG_PORT", "BTAG_ALGORITHM"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 8800
weighing:
  algorithm: csvl
  channel: electron
summary:
  hist_bins: 20
  hist_min: 0.0
  hist_max: 2.0
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800 from file, got %d", cfg.Server.Port)
	}
	if cfg.Weighing.Algorithm != "csvl" || cfg.Weighing.Channel != "electron" {
		t.Errorf("weighing overrides not applied: %+v", cfg.Weighing)
	}
	// Untouched sections keep their defaults.
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Summary.HistBins != 20 || cfg.Summary.HistMax != 2.0 {
		t.Errorf("summary overrides not applied: %+v", cfg.Summary)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

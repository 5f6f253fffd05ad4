package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KOPILKA_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path == "" {
		t.Error("database path default missing")
	}
	if cfg.UI.CurrencySymbol != "$" {
		t.Errorf("currency symbol = %q, want $", cfg.UI.CurrencySymbol)
	}
	if cfg.UI.DateFormat != "2006-01-02" {
		t.Errorf("date format = %q, want 2006-01-02", cfg.UI.DateFormat)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[database]\npath = \"/tmp/other.db\"\n\n[ui]\ncurrency_symbol = \"€\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KOPILKA_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("database path = %q, want /tmp/other.db", cfg.Database.Path)
	}
	if cfg.UI.CurrencySymbol != "€" {
		t.Errorf("currency symbol = %q, want €", cfg.UI.CurrencySymbol)
	}
	// untouched keys keep their defaults
	if cfg.UI.DateFormat != "2006-01-02" {
		t.Errorf("date format = %q, want default", cfg.UI.DateFormat)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("KOPILKA_CONFIG", "")
	t.Setenv("KOPILKA_DATABASE_PATH", "/tmp/env.db")
	t.Setenv("KOPILKA_UI_CURRENCY_SYMBOL", "£")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("database path = %q, want /tmp/env.db", cfg.Database.Path)
	}
	// multi-word key must survive the env → mapstructure round trip
	if cfg.UI.CurrencySymbol != "£" {
		t.Errorf("currency symbol = %q, want £", cfg.UI.CurrencySymbol)
	}
}

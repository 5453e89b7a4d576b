package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Calendar.Timezone != "Local" {
		t.Errorf("Expected Local timezone, got %q", cfg.Calendar.Timezone)
	}
	if cfg.WeekStart() != time.Sunday {
		t.Errorf("Expected Sunday week start, got %v", cfg.WeekStart())
	}
	if !strings.HasSuffix(cfg.Storage.DSN, filepath.Join(".config", "habitburn", "habitburn.db")) {
		t.Errorf("Expected expanded default dsn, got %q", cfg.Storage.DSN)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
[storage]
dsn = "/tmp/hb.json"

[calendar]
timezone = "UTC"
week_start = "monday"

[logging]
debug = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.DSN != "/tmp/hb.json" {
		t.Errorf("dsn = %q", cfg.Storage.DSN)
	}
	if cfg.WeekStart() != time.Monday {
		t.Errorf("week start = %v", cfg.WeekStart())
	}
	if cfg.Location() != time.UTC {
		t.Errorf("location = %v", cfg.Location())
	}
	if !cfg.Logging.Debug {
		t.Error("Expected debug from file")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[storage]
dsn = "/tmp/file.db"

[calendar]
week_start = "sunday"
`)
	t.Setenv("HABITBURN_DSN", "/tmp/env.db")
	t.Setenv("HABITBURN_WEEK_START", "mon")
	t.Setenv("HABITBURN_DEBUG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.DSN != "/tmp/env.db" {
		t.Errorf("Expected env dsn, got %q", cfg.Storage.DSN)
	}
	if cfg.WeekStart() != time.Monday {
		t.Errorf("Expected env week start, got %v", cfg.WeekStart())
	}
	if !cfg.Logging.Debug {
		t.Error("Expected env debug")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"bad toml", "[storage\n", nil},
		{"bad timezone", "[calendar]\ntimezone = \"Mars/Olympus\"\n", nil},
		{"bad week start", "[calendar]\nweek_start = \"someday\"\n", nil},
		{"bad env bool", "", map[string]string{"HABITBURN_DEBUG": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Storage.DSN = "/tmp/roundtrip.db"
	cfg.Calendar.WeekStart = "monday"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Storage.DSN != cfg.Storage.DSN || got.Calendar.WeekStart != "monday" {
		t.Errorf("Round trip mismatch: %+v", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("Expected absolute path unchanged, got %q", got)
	}
	if got := ExpandHome("postgres://host/db"); got != "postgres://host/db" {
		t.Errorf("Expected URL unchanged, got %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	return home
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	setHome(t)

	cfg, path, err := LoadOrCreate()
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.UI.Backend != "auto" {
		t.Fatalf("default backend = %q, want auto", cfg.UI.Backend)
	}
	if !cfg.UI.ShowPreview {
		t.Fatalf("preview should default to on")
	}
	if cfg.Scripts.MaxAgeSeconds != 300 {
		t.Fatalf("default script max age = %d, want 300", cfg.Scripts.MaxAgeSeconds)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file was not created: %v", err)
	}
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	home := setHome(t)

	dir := filepath.Join(home, ".config", "ql")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	payload := []byte("version = 1\n\n[ui]\nbackend = \"HUH\"\nshow_preview = false\n\n[scripts]\nmax_age_seconds = 60\n")
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), payload, 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, _, err := LoadOrCreate()
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.UI.Backend != "huh" {
		t.Fatalf("backend = %q, want normalized huh", cfg.UI.Backend)
	}
	if cfg.UI.ShowPreview {
		t.Fatalf("show_preview should be false")
	}
	if cfg.Scripts.MaxAgeSeconds != 60 {
		t.Fatalf("max_age_seconds = %d, want 60", cfg.Scripts.MaxAgeSeconds)
	}
}

func TestNormalizeRepairsInvalidValues(t *testing.T) {
	cfg := Config{Scripts: ScriptsConfig{MaxAgeSeconds: -5}}
	cfg.normalize()
	if cfg.Scripts.MaxAgeSeconds != 300 {
		t.Fatalf("negative max age should reset to 300, got %d", cfg.Scripts.MaxAgeSeconds)
	}
	if cfg.UI.Backend != "auto" {
		t.Fatalf("empty backend should normalize to auto, got %q", cfg.UI.Backend)
	}
	if cfg.Version != 1 {
		t.Fatalf("version should default to 1")
	}
}

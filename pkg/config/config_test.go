package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/depkit/depkit/pkg/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Registry != DefaultRegistry {
		t.Errorf("Registry = %q, want default", cfg.Registry)
	}
	if cfg.Manager != DefaultManager {
		t.Errorf("Manager = %q, want default", cfg.Manager)
	}
	if cfg.TTL() != DefaultCacheTTL {
		t.Errorf("TTL() = %v, want %v", cfg.TTL(), DefaultCacheTTL)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
registry = "https://registry.example.com"
manager = "pnpm"
cache_ttl = "30m"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Registry != "https://registry.example.com" {
		t.Errorf("Registry = %q", cfg.Registry)
	}
	if cfg.Manager != "pnpm" {
		t.Errorf("Manager = %q, want pnpm", cfg.Manager)
	}
	if cfg.TTL() != 30*time.Minute {
		t.Errorf("TTL() = %v, want 30m", cfg.TTL())
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`manager = "yarn"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Manager != "yarn" {
		t.Errorf("Manager = %q, want yarn", cfg.Manager)
	}
	if cfg.Registry != DefaultRegistry {
		t.Errorf("unset Registry = %q, want default", cfg.Registry)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`registry = `), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() succeeded on malformed TOML")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestPath_XDG(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(configHome, "depkit", "config.toml")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

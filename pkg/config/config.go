// Package config loads depkit's optional TOML configuration file.
//
// The file lives at ~/.config/depkit/config.toml (XDG_CONFIG_HOME is
// honored). A missing file yields defaults; a malformed file is an error.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/depkit/depkit/pkg/errors"
)

// Defaults applied for unset fields.
const (
	DefaultRegistry = "https://registry.npmjs.org"
	DefaultManager  = "npm"
	DefaultCacheTTL = 24 * time.Hour
)

// Config holds user-tunable settings.
type Config struct {
	// Registry is the npm-compatible registry base URL.
	Registry string `toml:"registry"`

	// Manager is the package manager binary invoked for installs.
	Manager string `toml:"manager"`

	// CacheTTL controls how long registry responses stay fresh,
	// as a Go duration string (e.g. "24h", "30m").
	CacheTTL duration `toml:"cache_ttl"`
}

// duration wraps time.Duration for TOML decoding from strings.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Registry: DefaultRegistry,
		Manager:  DefaultManager,
		CacheTTL: duration{DefaultCacheTTL},
	}
}

// TTL returns the configured cache TTL.
func (c *Config) TTL() time.Duration {
	return c.CacheTTL.Duration
}

// Path returns the configuration file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "depkit", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "depkit", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	// Re-apply defaults for fields the file left empty.
	if cfg.Registry == "" {
		cfg.Registry = DefaultRegistry
	}
	if cfg.Manager == "" {
		cfg.Manager = DefaultManager
	}
	if cfg.CacheTTL.Duration <= 0 {
		cfg.CacheTTL = duration{DefaultCacheTTL}
	}
	return cfg, nil
}

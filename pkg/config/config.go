// Package config handles loading and saving alertguide configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/alertguide/config.yaml
//
// Environment variables (optionally from a .env file) override the file:
//   - ALERTGUIDE_THEME, ALERTGUIDE_DIRECTION, ALERTGUIDE_SCROLL_THRESHOLD
//   - ALERTGUIDE_ASSETS_DIR, ALERTGUIDE_CONTENT, ALERTGUIDE_LIVE_RELOAD
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "alertguide"

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme            string `yaml:"theme,omitempty"`             // classic, dark
	DefaultDirection string `yaml:"default_direction,omitempty"` // buy, sell; empty = buy, print asks
	ScrollThreshold  int    `yaml:"scroll_threshold,omitempty"`  // Lines scrolled before the header compacts
}

// AssetsConfig controls where screenshot references are resolved.
type AssetsConfig struct {
	Dir         string `yaml:"dir,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty"` // Parallel loads for `check`
}

// ContentConfig points at an alternative guide document.
type ContentConfig struct {
	Path       string `yaml:"path,omitempty"`        // Empty = built-in guide
	LiveReload *bool  `yaml:"live_reload,omitempty"` // Watch Path for changes
}

// Config is the top-level configuration for alertguide.
type Config struct {
	UI      UIConfig      `yaml:"ui,omitempty"`
	Assets  AssetsConfig  `yaml:"assets,omitempty"`
	Content ContentConfig `yaml:"content,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme:           "classic",
			ScrollThreshold: 20,
		},
		Assets: AssetsConfig{
			Dir:         ".",
			Concurrency: 4,
		},
	}
}

// LiveReloadEnabled reports whether the content file should be watched.
// Defaults to on whenever a content path is set.
func (c Config) LiveReloadEnabled() bool {
	if c.Content.Path == "" {
		return false
	}
	if c.Content.LiveReload == nil {
		return true
	}
	return *c.Content.LiveReload
}

// ConfigDir returns the XDG config directory for alertguide.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Assets.Dir = expandHome(cfg.Assets.Dir)
	cfg.Content.Path = expandHome(cfg.Content.Path)

	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from ALERTGUIDE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ALERTGUIDE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("ALERTGUIDE_DIRECTION"); v != "" {
		c.UI.DefaultDirection = v
	}
	if v := os.Getenv("ALERTGUIDE_SCROLL_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALERTGUIDE_SCROLL_THRESHOLD: %w", err)
		}
		c.UI.ScrollThreshold = n
	}
	if v := os.Getenv("ALERTGUIDE_ASSETS_DIR"); v != "" {
		c.Assets.Dir = expandHome(v)
	}
	if v := os.Getenv("ALERTGUIDE_CONTENT"); v != "" {
		c.Content.Path = expandHome(v)
	}
	if v, ok := os.LookupEnv("ALERTGUIDE_LIVE_RELOAD"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("ALERTGUIDE_LIVE_RELOAD: %w", err)
		}
		c.Content.LiveReload = &b
	}
	return c.Validate()
}

// Validate rejects values the UI cannot use.
func (c Config) Validate() error {
	if c.UI.ScrollThreshold < 0 {
		return fmt.Errorf("ui.scroll_threshold must be >= 0, got %d", c.UI.ScrollThreshold)
	}
	if c.Assets.Concurrency < 0 {
		return fmt.Errorf("assets.concurrency must be >= 0, got %d", c.Assets.Concurrency)
	}
	return nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

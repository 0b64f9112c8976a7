// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for devtoolbox.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// AppName names the per-user config and cache directories.
const AppName = "devtoolbox"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete devtoolbox configuration.
type Config struct {
	// UnicodeDataPath is the UnicodeData-style seed file for the inspector.
	UnicodeDataPath string `toml:"unicode_data_path"`
	// BlocksPath is the Blocks.txt-style seed file.
	BlocksPath string `toml:"blocks_path"`
	// CacheDBPath is the SQLite cache database.
	CacheDBPath string `toml:"cache_db_path"`
	// GitHubAPIBaseURL is the REST endpoint used by the GitHub tools.
	GitHubAPIBaseURL string `toml:"github_api_base_url"`

	Network NetworkConfig `toml:"network"`
	Log     LogConfig     `toml:"log"`
	Export  ExportConfig  `toml:"export"`
	Keys    KeysConfig    `toml:"keys"`
	UI      UIConfig      `toml:"ui"`
}

// NetworkConfig controls the outbound HTTP client.
type NetworkConfig struct {
	// TimeoutSecs bounds a single request, 0 means the default.
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerSecond throttles GitHub calls client-side.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	UserAgent         string  `toml:"user_agent"`
}

// LogConfig controls the file logger. The terminal belongs to the UI, so
// logs never go to stdout.
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"` // debug, info, warn, error
}

// ExportConfig controls Ctrl+E exports.
type ExportConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"` // json, markdown
}

// KeysConfig names the global key bindings in bubbletea key notation.
type KeysConfig struct {
	Quit       string `toml:"quit"`
	CopyStatus string `toml:"copy_status"`
	NextTool   string `toml:"next_tool"`
	PrevTool   string `toml:"prev_tool"`
	Help       string `toml:"help"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	cacheDir := defaultCacheDir()
	return &Config{
		UnicodeDataPath:  "UnicodeData.txt",
		BlocksPath:       "Blocks.txt",
		CacheDBPath:      filepath.Join(cacheDir, "cache.db"),
		GitHubAPIBaseURL: "https://api.github.com",
		Network: NetworkConfig{
			TimeoutSecs:       30,
			RequestsPerSecond: 5,
			Burst:             5,
			UserAgent:         "Dev-Toolbox/1.0",
		},
		Log: LogConfig{
			Path:  filepath.Join(cacheDir, AppName+".log"),
			Level: "info",
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "json",
		},
		Keys: KeysConfig{
			Quit:       "ctrl+q",
			CopyStatus: "ctrl+c",
			NextTool:   "tab",
			PrevTool:   "shift+tab",
			Help:       "f1",
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, AppName)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the devtoolbox configuration directory.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the configuration from the default location. On first run the
// defaults are written there so users have a file to edit.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from path, creating it with defaults
// when it does not exist yet. Environment overrides apply last.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
		}
		fillDefaults(cfg)
	} else if errors.Is(err, os.ErrNotExist) {
		if err := SaveTOML(cfg, path); err != nil {
			// A read-only home should not keep the app from starting.
			fmt.Fprintf(os.Stderr, "Warning: could not write default config to %s: %v\n", path, err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	d := Default()

	if cfg.UnicodeDataPath == "" {
		cfg.UnicodeDataPath = d.UnicodeDataPath
	}
	if cfg.BlocksPath == "" {
		cfg.BlocksPath = d.BlocksPath
	}
	if cfg.CacheDBPath == "" {
		cfg.CacheDBPath = d.CacheDBPath
	}
	if cfg.GitHubAPIBaseURL == "" {
		cfg.GitHubAPIBaseURL = d.GitHubAPIBaseURL
	}

	if cfg.Network.TimeoutSecs == 0 {
		cfg.Network.TimeoutSecs = d.Network.TimeoutSecs
	}
	if cfg.Network.RequestsPerSecond == 0 {
		cfg.Network.RequestsPerSecond = d.Network.RequestsPerSecond
	}
	if cfg.Network.Burst == 0 {
		cfg.Network.Burst = d.Network.Burst
	}
	if cfg.Network.UserAgent == "" {
		cfg.Network.UserAgent = d.Network.UserAgent
	}

	if cfg.Log.Path == "" {
		cfg.Log.Path = d.Log.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}

	if cfg.Export.Dir == "" {
		cfg.Export.Dir = d.Export.Dir
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = d.Export.Format
	}

	if cfg.Keys.Quit == "" {
		cfg.Keys.Quit = d.Keys.Quit
	}
	if cfg.Keys.CopyStatus == "" {
		cfg.Keys.CopyStatus = d.Keys.CopyStatus
	}
	if cfg.Keys.NextTool == "" {
		cfg.Keys.NextTool = d.Keys.NextTool
	}
	if cfg.Keys.PrevTool == "" {
		cfg.Keys.PrevTool = d.Keys.PrevTool
	}
	if cfg.Keys.Help == "" {
		cfg.Keys.Help = d.Keys.Help
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = d.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# devtoolbox configuration file")
	fmt.Fprintln(file, "# Generated by devtoolbox - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.CacheDBPath == "" {
		errs = append(errs, ValidationError{Field: "cache_db_path", Message: "must not be empty"})
	}

	if u, err := url.Parse(c.GitHubAPIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "github_api_base_url",
			Message: fmt.Sprintf("invalid URL '%s'", c.GitHubAPIBaseURL),
		})
	} else if u.Scheme != "https" && u.Hostname() != "localhost" && u.Hostname() != "127.0.0.1" {
		errs = append(errs, ValidationError{
			Field:   "github_api_base_url",
			Message: "must use https (plain http is only accepted for localhost)",
		})
	}

	if c.Network.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "network.timeout_secs", Message: "cannot be negative"})
	}
	if c.Network.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{Field: "network.requests_per_second", Message: "cannot be negative"})
	}
	if c.Network.Burst < 0 {
		errs = append(errs, ValidationError{Field: "network.burst", Message: "cannot be negative"})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "markdown": true}
	if !validFormats[strings.ToLower(c.Export.Format)] {
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: json, markdown", c.Export.Format),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	seen := make(map[string]string)
	for field, key := range map[string]string{
		"keys.quit":        c.Keys.Quit,
		"keys.copy_status": c.Keys.CopyStatus,
		"keys.next_tool":   c.Keys.NextTool,
		"keys.prev_tool":   c.Keys.PrevTool,
		"keys.help":        c.Keys.Help,
	} {
		if key == "" {
			errs = append(errs, ValidationError{Field: field, Message: "must not be empty"})
			continue
		}
		if other, dup := seen[key]; dup {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("key '%s' already bound by %s", key, other),
			})
		}
		seen[key] = field
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies DEVTOOLBOX_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DEVTOOLBOX_CACHE_DB"); v != "" {
		c.CacheDBPath = v
	}
	if v := os.Getenv("DEVTOOLBOX_GITHUB_API"); v != "" {
		c.GitHubAPIBaseURL = v
	}
	if v := os.Getenv("DEVTOOLBOX_UNICODE_DATA"); v != "" {
		c.UnicodeDataPath = v
	}
	if v := os.Getenv("DEVTOOLBOX_BLOCKS"); v != "" {
		c.BlocksPath = v
	}
	if v := os.Getenv("DEVTOOLBOX_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("DEVTOOLBOX_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("DEVTOOLBOX_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Network.TimeoutSecs = n
		}
	}
}

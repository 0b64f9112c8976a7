// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIBaseURL)
	assert.Equal(t, 30, cfg.Network.TimeoutSecs)
	assert.Equal(t, "ctrl+q", cfg.Keys.Quit)
	assert.Equal(t, "tab", cfg.Keys.NextTool)
	assert.Equal(t, "shift+tab", cfg.Keys.PrevTool)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath_WritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Keys, cfg.Keys)

	info, err := os.Stat(path)
	require.NoError(t, err, "defaults should be written on first run")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	again, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.GitHubAPIBaseURL, again.GitHubAPIBaseURL)
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
cache_db_path = "/tmp/custom.db"

[network]
timeout_secs = 5

[keys]
help = "f2"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.CacheDBPath)
	assert.Equal(t, 5, cfg.Network.TimeoutSecs)
	assert.Equal(t, "Dev-Toolbox/1.0", cfg.Network.UserAgent)
	assert.Equal(t, "f2", cfg.Keys.Help)
	assert.Equal(t, "ctrl+q", cfg.Keys.Quit)
}

func TestLoadFromPath_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DEVTOOLBOX_CACHE_DB", "/env/cache.db")
	t.Setenv("DEVTOOLBOX_LOG_LEVEL", "DEBUG")
	t.Setenv("DEVTOOLBOX_TIMEOUT_SECS", "12")
	t.Setenv("DEVTOOLBOX_GITHUB_API", "http://localhost:8080")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "/env/cache.db", cfg.CacheDBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 12, cfg.Network.TimeoutSecs)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad format", func(c *Config) { c.Export.Format = "xml" }, "export.format"},
		{"plain http remote", func(c *Config) { c.GitHubAPIBaseURL = "http://api.github.com" }, "github_api_base_url"},
		{"not a url", func(c *Config) { c.GitHubAPIBaseURL = "nope" }, "github_api_base_url"},
		{"negative timeout", func(c *Config) { c.Network.TimeoutSecs = -1 }, "network.timeout_secs"},
		{"empty binding", func(c *Config) { c.Keys.Help = "" }, "keys.help"},
		{"empty cache path", func(c *Config) { c.CacheDBPath = "" }, "cache_db_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			found := false
			for _, v := range verrs {
				if v.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected error on %s, got %v", tt.field, err)
		})
	}
}

func TestValidate_DuplicateBinding(t *testing.T) {
	cfg := Default()
	cfg.Keys.Help = cfg.Keys.Quit

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already bound")
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.UI.Theme = "light"
	cfg.Export.Dir = "/tmp/exports"

	require.NoError(t, SaveTOML(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# devtoolbox configuration file")

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.Equal(t, "/tmp/exports", loaded.Export.Dir)
}

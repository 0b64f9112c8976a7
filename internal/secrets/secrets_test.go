// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
}

func TestLoad_ExplicitFileWins(t *testing.T) {
	t.Setenv(TokenVar, "from-env")
	dir := t.TempDir()
	envFile := filepath.Join(dir, "custom.env")
	writeEnv(t, envFile, "GITHUB_TOKEN=from-file\n")

	s, err := Load(envFile, filepath.Join(dir, "config"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", s.GitHubToken())
	assert.Equal(t, envFile, s.Source())
}

func TestLoad_FallsBackToConfigDir(t *testing.T) {
	t.Setenv(TokenVar, "")
	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	writeEnv(t, filepath.Join(configDir, ".env"), "GITHUB_TOKEN=\"quoted-token\"\n")

	s, err := Load(filepath.Join(dir, "missing.env"), configDir)
	require.NoError(t, err)
	assert.Equal(t, "quoted-token", s.GitHubToken())
}

func TestLoad_FallsBackToEnvironment(t *testing.T) {
	t.Setenv(TokenVar, "env-token")
	dir := t.TempDir()

	s, err := Load(filepath.Join(dir, "missing.env"), "")
	require.NoError(t, err)
	assert.Equal(t, "env-token", s.GitHubToken())
	assert.Equal(t, "environment", s.Source())
}

func TestLoad_Missing(t *testing.T) {
	t.Setenv(TokenVar, "")
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.env"), dir)
	assert.True(t, errors.Is(err, ErrMissingToken))
}

func TestTokenSourceAndDestroy(t *testing.T) {
	s := New("ghp_secret", "test")

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", tok.AccessToken)

	assert.NotContains(t, fmt.Sprint(s), "ghp_secret")

	s.Destroy()
	assert.Empty(t, s.GitHubToken())
	_, err = s.Token()
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestHelpMentionsConfigDir(t *testing.T) {
	help := Help("/home/u/.config/devtoolbox")
	assert.Contains(t, help, "/home/u/.config/devtoolbox/.env")
	assert.Contains(t, help, "GITHUB_TOKEN")
}

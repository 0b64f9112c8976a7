// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devtoolbox/internal/config"
	"github.com/jeranaias/devtoolbox/internal/importer"
	"github.com/jeranaias/devtoolbox/internal/storage"
)

// writeConfig puts a config file, cache and seeds under a temp dir.
func writeConfig(t *testing.T, chars string) (cfgPath string, cfg *config.Config) {
	t.Helper()
	dir := t.TempDir()

	cfg = config.Default()
	cfg.CacheDBPath = filepath.Join(dir, "cache.db")
	cfg.Log.Path = filepath.Join(dir, "devtoolbox.log")
	cfg.UnicodeDataPath = filepath.Join(dir, "UnicodeData.txt")
	cfg.BlocksPath = filepath.Join(dir, "Blocks.txt")

	require.NoError(t, os.WriteFile(cfg.UnicodeDataPath, []byte(chars), 0644))
	require.NoError(t, os.WriteFile(cfg.BlocksPath, []byte("0000..007F; Basic Latin\n"), 0644))

	cfgPath = filepath.Join(dir, "config.toml")
	require.NoError(t, config.SaveTOML(cfg, cfgPath))
	return cfgPath, cfg
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version", "--config", "/nonexistent/dir/config.toml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "devtoolbox "+Version))
	assert.Contains(t, out, "commit:")
}

func TestImport_ThenSkipped(t *testing.T) {
	cfgPath, cfg := writeConfig(t, "0041;LATIN CAPITAL LETTER A;Lu\n0042;LATIN CAPITAL LETTER B;Lu\n")

	out, _, err := run(t, "import", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 codepoints and 1 blocks")

	out, _, err = run(t, "import", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "already present (2 codepoints)")

	store, err := storage.Open(context.Background(), cfg.CacheDBPath)
	require.NoError(t, err)
	defer store.Close()
	_, ok, err := store.LookupCodepoint(context.Background(), "0041")
	require.NoError(t, err)
	assert.True(t, ok)

	logData, err := os.ReadFile(cfg.Log.Path)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "IMPORT_COMPLETE")
}

func TestImport_MalformedLeavesCacheEmpty(t *testing.T) {
	cfgPath, cfg := writeConfig(t, "0041;LATIN CAPITAL LETTER A;Lu\nZZZZ;BROKEN;Lu\n")

	_, _, err := run(t, "import", "--config", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, importer.ErrImport))

	store, err := storage.Open(context.Background(), cfg.CacheDBPath)
	require.NoError(t, err)
	defer store.Close()
	n, err := store.CountCodepoints(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImport_FlagOverridesSeed(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	other := filepath.Join(t.TempDir(), "chars.txt")
	require.NoError(t, os.WriteFile(other, []byte("00E9;LATIN SMALL LETTER E WITH ACUTE;Ll\n"), 0644))

	out, _, err := run(t, "import", "--config", cfgPath, "--chars", other)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 codepoints")
}

func TestInvalidLogLevelIsStartupError(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")

	_, _, err := run(t, "import", "--config", cfgPath, "--log-level", "loud")
	require.Error(t, err)

	var se *StartupError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "config", se.Stage)
}

func TestBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("cache_db_path = [broken"), 0600))

	_, _, err := run(t, "import", "--config", path)
	var se *StartupError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "config", se.Stage)
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, &StartupError{Stage: "credentials", Err: errors.New("GITHUB_TOKEN not set"), Hint: "set it\n"})
	assert.Equal(t, "Error: credentials: GITHUB_TOKEN not set\n\nset it\n", buf.String())

	buf.Reset()
	DisplayError(&buf, nil)
	assert.Empty(t, buf.String())
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package repoexplorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devtoolbox/internal/export"
	"github.com/jeranaias/devtoolbox/internal/github"
	"github.com/jeranaias/devtoolbox/internal/storage"
	"github.com/jeranaias/devtoolbox/internal/tools"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// newServer serves six repos for "acme". widget-2 has no releases endpoint.
func newServer(t *testing.T, releaseCalls *atomic.Int32) *github.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users/acme/repos":
			var items []string
			for i := 0; i < 6; i++ {
				items = append(items, fmt.Sprintf(`{"name":"widget-%d","stargazers_count":%d,"language":"Go","updated_at":"2025-03-0%dT00:00:00Z"}`, i, i*10, i+1))
			}
			fmt.Fprintf(w, "[%s]", strings.Join(items, ","))
		case r.URL.Path == "/users/ghost/repos":
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		case strings.HasPrefix(r.URL.Path, "/repos/acme/"):
			releaseCalls.Add(1)
			if strings.Contains(r.URL.Path, "widget-2") {
				http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
				return
			}
			w.Write([]byte(`[{"tag_name":"v1.0.0","assets":[{"name":"a.tar.gz"},{"name":"b.zip"}]}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	c, err := github.NewClient(&github.ClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func typeOwner(t *testing.T, tool *Tool, owner string) {
	t.Helper()
	_, err := tool.HandleInput(context.Background(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(owner)})
	require.NoError(t, err)
}

func press(tool *Tool, k tea.KeyType) (string, error) {
	return tool.HandleInput(context.Background(), tea.KeyMsg{Type: k})
}

func TestFetch_ReleasesForFirstFive(t *testing.T) {
	var calls atomic.Int32
	tool := New(newServer(t, &calls), openStore(t), nil, nil)
	typeOwner(t, tool, "acme")

	status, err := press(tool, tea.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "Found 6 repositories for acme", status)
	assert.EqualValues(t, ReleaseLimit, calls.Load())

	repos := tool.Repos("acme")
	require.Len(t, repos, 6)
	assert.Len(t, repos[0].Releases, 1)
	assert.Empty(t, repos[2].Releases, "failed release call is skipped")
	assert.Empty(t, repos[5].Releases, "beyond the release limit")

	view := tool.View(100, 60)
	assert.Contains(t, view, "widget-0")
	assert.Contains(t, view, "v1.0.0")
	assert.Contains(t, view, "(2 assets)")
}

func TestFetch_FailureLeavesStateUnchanged(t *testing.T) {
	var calls atomic.Int32
	tool := New(newServer(t, &calls), openStore(t), nil, nil)

	_, err := press(tool, tea.KeyEnter)
	assert.ErrorIs(t, err, tools.ErrInput)

	typeOwner(t, tool, "ghost")
	_, err = press(tool, tea.KeyEnter)
	require.Error(t, err)
	assert.ErrorIs(t, err, github.ErrRemote)
	assert.True(t, github.IsNotFound(err))
	assert.Empty(t, tool.Owners())
}

func TestSaveCache_ThenLoadInNewSession(t *testing.T) {
	var calls atomic.Int32
	client := newServer(t, &calls)
	store := openStore(t)
	ctx := context.Background()

	first := New(client, store, nil, nil)
	require.NoError(t, first.SaveCache(ctx), "nothing fetched is a no-op")
	typeOwner(t, first, "acme")
	_, err := press(first, tea.KeyEnter)
	require.NoError(t, err)
	require.NoError(t, first.SaveCache(ctx))

	recs, err := store.Repos(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, recs, 6)
	var r github.Repository
	require.NoError(t, json.Unmarshal([]byte(recs[0].Payload), &r))
	assert.Equal(t, "widget-0", r.Name)
	assert.Equal(t, "v1.0.0", r.Releases[0].TagName)

	second := New(client, store, nil, nil)
	typeOwner(t, second, "acme")
	status, err := press(second, tea.KeyCtrlO)
	require.NoError(t, err)
	assert.Equal(t, "Loaded 6 cached repositories for acme", status)
	assert.Equal(t, first.Repos("acme"), second.Repos("acme"))
	assert.Contains(t, second.View(100, 60), "(cache)")

	third := New(client, store, nil, nil)
	typeOwner(t, third, "nobody")
	status, err = press(third, tea.KeyCtrlO)
	require.NoError(t, err)
	assert.Equal(t, "No cached repositories for nobody", status)
	assert.Empty(t, third.Owners())
}

func TestResultsAccumulatePerOwner(t *testing.T) {
	var calls atomic.Int32
	store := openStore(t)
	ctx := context.Background()
	require.NoError(t, store.UpsertRepo(ctx, storage.RepoRecord{Owner: "other", Name: "x", Payload: `{"name":"x"}`}))

	tool := New(newServer(t, &calls), store, nil, nil)
	typeOwner(t, tool, "other")
	_, err := press(tool, tea.KeyCtrlO)
	require.NoError(t, err)

	for i := 0; i < len("other"); i++ {
		press(tool, tea.KeyBackspace)
	}
	typeOwner(t, tool, "acme")
	_, err = press(tool, tea.KeyEnter)
	require.NoError(t, err)

	assert.Equal(t, []string{"other", "acme"}, tool.Owners())
	assert.Len(t, tool.Repos("other"), 1)
}

func TestExport_Markdown(t *testing.T) {
	var calls atomic.Int32
	dir := t.TempDir()
	tool := New(newServer(t, &calls), openStore(t), &export.Options{OutputDir: dir, Format: "markdown"}, nil)

	_, err := press(tool, tea.KeyCtrlE)
	assert.ErrorIs(t, err, tools.ErrInput)

	typeOwner(t, tool, "acme")
	_, err = press(tool, tea.KeyEnter)
	require.NoError(t, err)

	status, err := press(tool, tea.KeyCtrlE)
	require.NoError(t, err)
	path := filepath.Join(dir, ExportName+".md")
	assert.Equal(t, "Exported to "+path, status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| acme | widget-1 | 10 | Go | 2025-03-02 | v1.0.0 |")
}

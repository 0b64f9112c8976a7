// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repoexplorer implements the Repo Explorer tool. It lists an owner's
// repositories with the releases of the first few, and caches everything it
// fetched in the local store on shutdown.
package repoexplorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/export"
	"github.com/jeranaias/devtoolbox/internal/github"
	"github.com/jeranaias/devtoolbox/internal/logging"
	"github.com/jeranaias/devtoolbox/internal/storage"
	"github.com/jeranaias/devtoolbox/internal/tools"
	"github.com/jeranaias/devtoolbox/internal/ui/components"
	"github.com/jeranaias/devtoolbox/internal/ui/styles"
	"github.com/jeranaias/devtoolbox/internal/util"
)

const (
	// Name is the tab label.
	Name = "Repo Explorer"

	// ExportName is the base name of the Ctrl+E export file.
	ExportName = "repo_results"

	// ReleaseLimit is how many repositories get their releases fetched.
	ReleaseLimit = 5
)

// Client is the subset of the GitHub client this tool calls.
type Client interface {
	ListRepos(ctx context.Context, owner string) ([]github.Repository, error)
	ListReleases(ctx context.Context, owner, repo string) ([]github.Release, error)
}

// Tool is the Repo Explorer tab.
type Tool struct {
	client     Client
	store      *storage.Store
	exportOpts export.Options
	theme      *styles.Theme
	logger     *zap.Logger

	fetching atomic.Bool

	mu     sync.RWMutex
	owner  components.Field
	repos  map[string][]github.Repository
	order  []string
	shown  string
	source string
}

// New creates the tool. exportOpts may be nil for the defaults.
func New(client Client, store *storage.Store, exportOpts *export.Options, logger *zap.Logger) *Tool {
	if exportOpts == nil {
		exportOpts = export.DefaultOptions()
	}
	owner := components.NewField("Owner", "user or organization login")
	owner.Focus()
	return &Tool{
		client:     client,
		store:      store,
		exportOpts: *exportOpts,
		theme:      styles.Default(),
		logger:     logging.OrNop(logger),
		owner:      owner,
		repos:      make(map[string][]github.Repository),
	}
}

// Name implements tools.Tool.
func (t *Tool) Name() string { return Name }

// Busy reports an in-flight fetch.
func (t *Tool) Busy() bool { return t.fetching.Load() }

// Repos returns the repositories held for owner this session.
func (t *Tool) Repos(owner string) []github.Repository {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.repos[owner]
}

// Owners returns every owner fetched or loaded this session, oldest first.
func (t *Tool) Owners() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.order...)
}

// HandleInput implements tools.Tool.
func (t *Tool) HandleInput(ctx context.Context, msg tea.Msg) (string, error) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch key.Type {
	case tea.KeyEnter:
		return t.fetch(ctx)
	case tea.KeyCtrlO:
		return t.loadCached(ctx)
	case tea.KeyCtrlE:
		path, err := t.Export(t.exportOpts.OutputDir)
		if err != nil {
			return "", err
		}
		return "Exported to " + path, nil
	}

	t.mu.Lock()
	t.owner = t.owner.Update(key)
	t.mu.Unlock()
	return "", nil
}

func (t *Tool) ownerInput() (string, error) {
	t.mu.RLock()
	owner := strings.TrimSpace(t.owner.Value())
	t.mu.RUnlock()

	if owner == "" {
		return "", tools.InputErrorf("owner", "enter a user or organization")
	}
	if strings.ContainsAny(owner, " \t/") {
		return "", tools.InputErrorf("owner", "%q is not a valid login", owner)
	}
	return owner, nil
}

func (t *Tool) fetch(ctx context.Context) (string, error) {
	owner, err := t.ownerInput()
	if err != nil {
		return "", err
	}

	t.fetching.Store(true)
	defer t.fetching.Store(false)

	repos, err := t.client.ListRepos(ctx, owner)
	if err != nil {
		t.logger.Warn("REPO_FETCH_FAILED", zap.String("owner", owner), zap.Error(err))
		return "", err
	}

	for i := range repos {
		if i >= ReleaseLimit {
			break
		}
		rels, err := t.client.ListReleases(ctx, owner, repos[i].Name)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			t.logger.Debug("RELEASES_SKIPPED",
				zap.String("repo", owner+"/"+repos[i].Name), zap.Error(err))
			continue
		}
		repos[i].Releases = rels
	}

	t.logger.Info("REPO_FETCH", zap.String("owner", owner), zap.Int("repos", len(repos)))
	t.put(owner, repos, "github")
	return fmt.Sprintf("Found %d repositories for %s", len(repos), owner), nil
}

func (t *Tool) loadCached(ctx context.Context) (string, error) {
	owner, err := t.ownerInput()
	if err != nil {
		return "", err
	}

	recs, err := t.store.Repos(ctx, owner)
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "No cached repositories for " + owner, nil
	}

	repos := make([]github.Repository, 0, len(recs))
	for _, rec := range recs {
		var r github.Repository
		if err := json.Unmarshal([]byte(rec.Payload), &r); err != nil {
			return "", fmt.Errorf("%w: decode cached %s/%s: %w", storage.ErrStorage, rec.Owner, rec.Name, err)
		}
		repos = append(repos, r)
	}

	t.put(owner, repos, "cache")
	return fmt.Sprintf("Loaded %d cached repositories for %s", len(repos), owner), nil
}

func (t *Tool) put(owner string, repos []github.Repository, source string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, seen := t.repos[owner]; !seen {
		t.order = append(t.order, owner)
	}
	t.repos[owner] = repos
	t.shown = owner
	t.source = source
}

// SaveCache implements tools.Tool. Every repository held this session is
// written in one transaction, replacing older payloads.
func (t *Tool) SaveCache(ctx context.Context) error {
	t.mu.RLock()
	var recs []storage.RepoRecord
	for _, owner := range t.order {
		for _, r := range t.repos[owner] {
			payload, err := json.Marshal(r)
			if err != nil {
				t.mu.RUnlock()
				return fmt.Errorf("encode %s/%s: %w", owner, r.Name, err)
			}
			recs = append(recs, storage.RepoRecord{Owner: owner, Name: r.Name, Payload: string(payload)})
		}
	}
	t.mu.RUnlock()

	if len(recs) == 0 {
		return nil
	}
	if err := t.store.UpsertRepos(ctx, recs); err != nil {
		return err
	}
	t.logger.Info("CACHE_SAVED", zap.String("tool", Name), zap.Int("repos", len(recs)))
	return nil
}

// Export implements tools.Exporter.
func (t *Tool) Export(dir string) (string, error) {
	t.mu.RLock()
	var all []github.Repository
	doc := &export.Document{
		Name:    ExportName,
		Title:   "Repositories",
		Headers: []string{"Owner", "Name", "Stars", "Language", "Updated", "Latest Release"},
	}
	for _, owner := range t.order {
		for _, r := range t.repos[owner] {
			all = append(all, r)
			doc.Rows = append(doc.Rows, []string{
				owner, r.Name, strconv.Itoa(r.StargazersCount), r.Language, formatDate(r.UpdatedAt), latestTag(r),
			})
		}
	}
	t.mu.RUnlock()

	if len(all) == 0 {
		return "", tools.InputErrorf("export", "nothing to export, fetch an owner first")
	}
	doc.Data = all

	opts := t.exportOpts
	opts.OutputDir = dir
	return export.ToFile(doc, &opts)
}

// View implements tools.Tool.
func (t *Tool) View(width, height int) string {
	if t.fetching.Load() {
		return components.RenderLoading(t.theme, "Fetching repositories...", width, height)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	th := t.theme

	field := t.owner.View(th, width)

	var lines []string
	repos := t.repos[t.shown]
	if t.shown == "" {
		lines = append(lines, th.Muted.Render("Enter fetches from GitHub, ctrl+o loads the local cache."))
	} else {
		lines = append(lines, th.Title.Render(fmt.Sprintf("%s: %d repositories (%s)", t.shown, len(repos), t.source)))
		for _, r := range repos {
			lines = append(lines, renderRepo(th, r, width)...)
		}
	}

	remaining := height - lipgloss.Height(field)
	if remaining < 1 {
		remaining = 1
	}
	body := lipgloss.NewStyle().MaxHeight(remaining).MaxWidth(width).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, field, body)
}

func renderRepo(th *styles.Theme, r github.Repository, width int) []string {
	head := th.Value.Render(r.Name) + "  " + th.Label.Render(fmt.Sprintf("* %d", r.StargazersCount))
	if r.Language != "" {
		head += "  " + th.Muted.Render(r.Language)
	}
	if !r.UpdatedAt.IsZero() {
		head += "  " + th.Muted.Render("updated "+formatDate(r.UpdatedAt))
	}

	out := []string{head}
	if r.Description != "" {
		out = append(out, "  "+th.Muted.Render(util.TruncateWidth(r.Description, width-2)))
	}
	for _, rel := range r.Releases {
		out = append(out, fmt.Sprintf("  %s %s", th.Label.Render(rel.TagName),
			th.Muted.Render(fmt.Sprintf("(%d assets)", len(rel.Assets)))))
	}
	return out
}

var (
	_ tools.Tool     = (*Tool)(nil)
	_ tools.Exporter = (*Tool)(nil)
	_ tools.Busy     = (*Tool)(nil)
)

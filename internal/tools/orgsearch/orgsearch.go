// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orgsearch implements the Org Research tool: a GitHub organization
// search scoped to a parent organization.
package orgsearch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/export"
	"github.com/jeranaias/devtoolbox/internal/github"
	"github.com/jeranaias/devtoolbox/internal/logging"
	"github.com/jeranaias/devtoolbox/internal/tools"
	"github.com/jeranaias/devtoolbox/internal/ui/components"
	"github.com/jeranaias/devtoolbox/internal/ui/styles"
	"github.com/jeranaias/devtoolbox/internal/util"
)

// Name is the tab label.
const Name = "Org Research"

// ExportName is the base name of the Ctrl+E export file.
const ExportName = "org_results"

// Searcher is the GitHub call this tool needs.
type Searcher interface {
	SearchOrgs(ctx context.Context, query string) ([]github.Organization, error)
}

const (
	focusParent = iota
	focusTerm
	focusAllow
	focusCount
)

type state struct {
	parent        components.Field
	term          components.Field
	allowNoParent bool
	focus         int
	results       []github.Organization
	query         string
}

func (s *state) applyFocus() {
	s.parent.Blur()
	s.term.Blur()
	switch s.focus {
	case focusParent:
		s.parent.Focus()
	case focusTerm:
		s.term.Focus()
	}
}

// Tool is the Org Research tab.
type Tool struct {
	client     Searcher
	exportOpts export.Options
	theme      *styles.Theme
	logger     *zap.Logger

	searching atomic.Bool

	mu    sync.RWMutex
	state state
}

// New creates the tool. exportOpts may be nil for the defaults.
func New(client Searcher, exportOpts *export.Options, logger *zap.Logger) *Tool {
	if exportOpts == nil {
		exportOpts = export.DefaultOptions()
	}
	st := state{
		parent: components.NewField("Parent Org", "organization login, e.g. kubernetes"),
		term:   components.NewField("Search Term", "name fragment"),
	}
	st.applyFocus()
	return &Tool{
		client:     client,
		exportOpts: *exportOpts,
		theme:      styles.Default(),
		logger:     logging.OrNop(logger),
		state:      st,
	}
}

// Name implements tools.Tool.
func (t *Tool) Name() string { return Name }

// Busy reports an in-flight search.
func (t *Tool) Busy() bool { return t.searching.Load() }

// SaveCache implements tools.Tool. Search results are not persisted.
func (t *Tool) SaveCache(context.Context) error { return nil }

func (t *Tool) snapshot() state {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Results returns the last successful search.
func (t *Tool) Results() []github.Organization {
	return t.snapshot().results
}

// AllowNoParent reports whether searches may omit the parent org.
func (t *Tool) AllowNoParent() bool {
	return t.snapshot().allowNoParent
}

// HandleInput implements tools.Tool. Edits apply under the write lock; a
// search reads the fields, runs without the lock and stores its results only
// on success.
func (t *Tool) HandleInput(ctx context.Context, msg tea.Msg) (string, error) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch key.Type {
	case tea.KeyEnter:
		return t.search(ctx)
	case tea.KeyCtrlE:
		path, err := t.Export(t.exportOpts.OutputDir)
		if err != nil {
			return "", err
		}
		return "Exported to " + path, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	s := &t.state

	switch key.Type {
	case tea.KeyUp:
		s.focus = (s.focus + focusCount - 1) % focusCount
		s.applyFocus()
	case tea.KeyDown:
		s.focus = (s.focus + 1) % focusCount
		s.applyFocus()
	case tea.KeyCtrlA:
		s.allowNoParent = !s.allowNoParent
		return "Allow no parent: " + util.YesNo(s.allowNoParent), nil
	case tea.KeySpace:
		if s.focus == focusAllow {
			s.allowNoParent = !s.allowNoParent
			return "Allow no parent: " + util.YesNo(s.allowNoParent), nil
		}
		s.edit(key)
	default:
		s.edit(key)
	}
	return "", nil
}

func (s *state) edit(key tea.KeyMsg) {
	switch s.focus {
	case focusParent:
		s.parent = s.parent.Update(key)
	case focusTerm:
		s.term = s.term.Update(key)
	}
}

// Query builds the GitHub search query for the current fields.
func Query(parent, term string, allowNoParent bool) (string, error) {
	parent = strings.TrimSpace(parent)
	term = strings.TrimSpace(term)

	if parent == "" {
		if !allowNoParent {
			return "", tools.InputErrorf("parent org", "required (ctrl+a to allow searching without one)")
		}
		if term == "" {
			return "", tools.InputErrorf("search term", "enter a search term")
		}
		return term, nil
	}
	if strings.ContainsAny(parent, " \t") {
		return "", tools.InputErrorf("parent org", "must be a single login")
	}
	if term == "" {
		return "org:" + parent, nil
	}
	return fmt.Sprintf("org:%s %s", parent, term), nil
}

func (t *Tool) search(ctx context.Context) (string, error) {
	t.mu.RLock()
	parent, term, allow := t.state.parent.Value(), t.state.term.Value(), t.state.allowNoParent
	t.mu.RUnlock()

	query, err := Query(parent, term, allow)
	if err != nil {
		return "", err
	}

	t.searching.Store(true)
	defer t.searching.Store(false)

	orgs, err := t.client.SearchOrgs(ctx, query)
	if err != nil {
		t.logger.Warn("ORG_SEARCH_FAILED", zap.String("query", query), zap.Error(err))
		return "", err
	}
	t.logger.Info("ORG_SEARCH", zap.String("query", query), zap.Int("results", len(orgs)))

	t.mu.Lock()
	t.state.results = orgs
	t.state.query = query
	t.mu.Unlock()
	return fmt.Sprintf("Found %d organizations", len(orgs)), nil
}

// Export implements tools.Exporter.
func (t *Tool) Export(dir string) (string, error) {
	s := t.snapshot()
	if len(s.results) == 0 {
		return "", tools.InputErrorf("export", "nothing to export, run a search first")
	}

	doc := &export.Document{
		Name:    ExportName,
		Title:   "Organizations for " + s.query,
		Data:    s.results,
		Headers: []string{"Login", "URL", "Email", "Website"},
	}
	for _, o := range s.results {
		doc.Rows = append(doc.Rows, []string{o.Login, o.URL, o.Email, o.WebsiteURL})
	}

	opts := t.exportOpts
	opts.OutputDir = dir
	return export.ToFile(doc, &opts)
}

// View implements tools.Tool.
func (t *Tool) View(width, height int) string {
	if t.searching.Load() {
		return components.RenderLoading(t.theme, "Searching GitHub Organizations...", width, height)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	s := &t.state
	th := t.theme

	fields := lipgloss.JoinVertical(lipgloss.Left,
		s.parent.View(th, width),
		s.term.View(th, width),
		components.RenderToggle(th, "Allow No Parent (ctrl+a)", s.allowNoParent, s.focus == focusAllow, width),
	)

	var lines []string
	if len(s.results) == 0 {
		lines = append(lines, th.Muted.Render("No results. Enter searches, up/down moves between fields."))
	} else {
		lines = append(lines, th.Title.Render(fmt.Sprintf("%d organizations for %q", len(s.results), s.query)))
		for _, o := range s.results {
			line := th.Value.Render(o.Login)
			if o.URL != "" {
				line += "  " + th.Muted.Render(o.URL)
			}
			lines = append(lines, line)
		}
	}

	body := strings.Join(lines, "\n")
	remaining := height - lipgloss.Height(fields)
	if remaining < 1 {
		remaining = 1
	}
	body = lipgloss.NewStyle().MaxHeight(remaining).MaxWidth(width).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, fields, body)
}

var (
	_ tools.Tool     = (*Tool)(nil)
	_ tools.Exporter = (*Tool)(nil)
	_ tools.Busy     = (*Tool)(nil)
)

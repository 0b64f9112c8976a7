// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package unicodeinspector implements the Unicode Inspector tool. It reads
// the reference tables the importer fills and shows names, blocks and
// encodings for text or looked-up codepoints.
package unicodeinspector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/export"
	"github.com/jeranaias/devtoolbox/internal/logging"
	"github.com/jeranaias/devtoolbox/internal/storage"
	"github.com/jeranaias/devtoolbox/internal/tools"
	"github.com/jeranaias/devtoolbox/internal/ui/components"
	"github.com/jeranaias/devtoolbox/internal/ui/styles"
	"github.com/jeranaias/devtoolbox/internal/util"
)

const (
	// Name is the tab label.
	Name = "Unicode Inspector"

	// ExportName is the base name of the Ctrl+E export file.
	ExportName = "unicode_results"

	// SearchLimit caps name search results.
	SearchLimit = 200
)

// Readiness reports whether the reference data import has finished.
// *importer.Handle implements it.
type Readiness interface {
	Ready() bool
}

// CharInfo is one result row.
type CharInfo struct {
	Char      string `json:"char"`
	Codepoint string `json:"codepoint"`
	Name      string `json:"name"`
	Block     string `json:"block"`
	Group     string `json:"group,omitempty"`
	Encodings
}

const (
	focusText = iota
	focusCode
	focusName
	focusSequential
	focusCount
)

// Tool is the Unicode Inspector tab.
type Tool struct {
	store      *storage.Store
	ready      Readiness
	exportOpts export.Options
	theme      *styles.Theme
	logger     *zap.Logger

	mu         sync.RWMutex
	text       components.Field
	code       components.Field
	name       components.Field
	focus      int
	sequential bool
	results    []CharInfo
	forms      *Forms
}

// New creates the tool. ready may be nil when the tables are already
// populated; exportOpts may be nil for the defaults.
func New(store *storage.Store, ready Readiness, exportOpts *export.Options, logger *zap.Logger) *Tool {
	if exportOpts == nil {
		exportOpts = export.DefaultOptions()
	}
	t := &Tool{
		store:      store,
		ready:      ready,
		exportOpts: *exportOpts,
		theme:      styles.Default(),
		logger:     logging.OrNop(logger),
		text:       components.NewField("Unicode Input", "text to analyze"),
		code:       components.NewField("Codepoint", "e.g. U+00E9 or 1F600"),
		name:       components.NewField("Name", "e.g. LATIN SMALL"),
	}
	t.applyFocus()
	return t
}

// Name implements tools.Tool.
func (t *Tool) Name() string { return Name }

// SaveCache implements tools.Tool. The reference tables are written only by
// the importer.
func (t *Tool) SaveCache(context.Context) error { return nil }

// Loading reports whether the reference data is still being imported.
func (t *Tool) Loading() bool {
	return t.ready != nil && !t.ready.Ready()
}

// Busy implements tools.Busy.
func (t *Tool) Busy() bool { return t.Loading() }

// Results returns the current result rows.
func (t *Tool) Results() []CharInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.results
}

// Sequential reports whether analysis lists every codepoint of a grapheme.
func (t *Tool) Sequential() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sequential
}

// applyFocus requires t.mu held for writing (or exclusive access).
func (t *Tool) applyFocus() {
	t.text.Blur()
	t.code.Blur()
	t.name.Blur()
	switch t.focus {
	case focusText:
		t.text.Focus()
	case focusCode:
		t.code.Focus()
	case focusName:
		t.name.Focus()
	}
}

// HandleInput implements tools.Tool.
func (t *Tool) HandleInput(ctx context.Context, msg tea.Msg) (string, error) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch key.Type {
	case tea.KeyEnter:
		return t.analyze(ctx)
	case tea.KeyCtrlL:
		return t.lookup(ctx)
	case tea.KeyCtrlE:
		path, err := t.Export(t.exportOpts.OutputDir)
		if err != nil {
			return "", err
		}
		return "Exported to " + path, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch key.Type {
	case tea.KeyUp:
		t.focus = (t.focus + focusCount - 1) % focusCount
		t.applyFocus()
	case tea.KeyDown:
		t.focus = (t.focus + 1) % focusCount
		t.applyFocus()
	case tea.KeyCtrlA:
		t.sequential = !t.sequential
		return "Sequential Mode: " + util.YesNo(t.sequential), nil
	case tea.KeySpace:
		if t.focus == focusSequential {
			t.sequential = !t.sequential
			return "Sequential Mode: " + util.YesNo(t.sequential), nil
		}
		t.edit(key)
	default:
		t.edit(key)
	}
	return "", nil
}

func (t *Tool) edit(key tea.KeyMsg) {
	switch t.focus {
	case focusText:
		t.text = t.text.Update(key)
	case focusCode:
		t.code = t.code.Update(key)
	case focusName:
		t.name = t.name.Update(key)
	}
}

func (t *Tool) requireReady(field string) error {
	if t.Loading() {
		return tools.InputErrorf(field, "Unicode data is still loading")
	}
	return nil
}

func (t *Tool) analyze(ctx context.Context) (string, error) {
	t.mu.RLock()
	text, sequential := t.text.Value(), t.sequential
	t.mu.RUnlock()

	if text == "" {
		return "", tools.InputErrorf("text", "enter some text to analyze")
	}
	if err := t.requireReady("text"); err != nil {
		return "", err
	}

	var results []CharInfo
	graphemes := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		graphemes++
		cluster := g.Str()
		runes := g.Runes()
		if !sequential {
			info, err := t.describe(ctx, runes[0], cluster)
			if err != nil {
				return "", err
			}
			results = append(results, info)
			continue
		}
		for _, r := range runes {
			info, err := t.describe(ctx, r, string(r))
			if err != nil {
				return "", err
			}
			results = append(results, info)
		}
	}

	forms := Normalize(text)
	t.mu.Lock()
	t.results = results
	t.forms = &forms
	t.mu.Unlock()
	return fmt.Sprintf("Analyzed %d graphemes", graphemes), nil
}

func (t *Tool) lookup(ctx context.Context) (string, error) {
	t.mu.RLock()
	code := strings.TrimSpace(t.code.Value())
	name := strings.TrimSpace(t.name.Value())
	t.mu.RUnlock()

	switch {
	case code != "":
		if err := t.requireReady("codepoint"); err != nil {
			return "", err
		}
		r, err := storage.ParseCodepoint(code)
		if err != nil {
			return "", tools.InputErrorf("codepoint", "%v", err)
		}
		if utf16.IsSurrogate(r) {
			return "", tools.InputErrorf("codepoint", "U+%s is a surrogate and encodes no character", storage.FormatCodepoint(r))
		}
		info, found, err := t.describeKnown(ctx, r)
		if err != nil {
			return "", err
		}
		var results []CharInfo
		if found {
			results = append(results, info)
		}
		t.setLookup(results)
		return fmt.Sprintf("Found %d characters", len(results)), nil

	case name != "":
		if err := t.requireReady("name"); err != nil {
			return "", err
		}
		recs, err := t.store.SearchCodepointNames(ctx, name, SearchLimit)
		if err != nil {
			return "", err
		}
		results := make([]CharInfo, 0, len(recs))
		for _, rec := range recs {
			r, err := storage.ParseCodepoint(rec.Codepoint)
			if err != nil {
				continue
			}
			info, err := t.fromRecord(ctx, r, string(r), rec)
			if err != nil {
				return "", err
			}
			results = append(results, info)
		}
		t.setLookup(results)
		return fmt.Sprintf("Found %d characters", len(results)), nil

	default:
		return "No lookup input", nil
	}
}

func (t *Tool) setLookup(results []CharInfo) {
	t.mu.Lock()
	t.results = results
	t.forms = nil
	t.mu.Unlock()
}

// describe builds a row for r even when the reference data has no entry.
func (t *Tool) describe(ctx context.Context, r rune, char string) (CharInfo, error) {
	rec, _, err := t.store.LookupCodepoint(ctx, storage.FormatCodepoint(r))
	if err != nil {
		return CharInfo{}, err
	}
	return t.fromRecord(ctx, r, char, rec)
}

func (t *Tool) describeKnown(ctx context.Context, r rune) (CharInfo, bool, error) {
	rec, ok, err := t.store.LookupCodepoint(ctx, storage.FormatCodepoint(r))
	if err != nil || !ok {
		return CharInfo{}, false, err
	}
	info, err := t.fromRecord(ctx, r, string(r), rec)
	return info, err == nil, err
}

// fromRecord names the block from the imported ranges, falling back to the
// character row's own group column.
func (t *Tool) fromRecord(ctx context.Context, r rune, char string, rec storage.CodepointRecord) (CharInfo, error) {
	info := CharInfo{
		Char:      char,
		Codepoint: "U+" + storage.FormatCodepoint(r),
		Name:      rec.Name,
		Group:     rec.Block,
	}
	block, ok, err := t.store.BlockFor(ctx, r)
	if err != nil {
		return CharInfo{}, err
	}
	if ok {
		info.Block = block.Name
	} else {
		info.Block = rec.Block
	}
	// Surrogates are listed by name search but have no character of their own.
	if utf16.IsSurrogate(r) {
		info.Char = ""
		return info, nil
	}
	enc, err := Encode(char)
	if err != nil {
		return CharInfo{}, tools.InputErrorf("text", "%v", err)
	}
	info.Encodings = enc
	return info, nil
}

// Export implements tools.Exporter.
func (t *Tool) Export(dir string) (string, error) {
	results := t.Results()
	if len(results) == 0 {
		return "", tools.InputErrorf("export", "nothing to export, analyze or look something up first")
	}

	doc := &export.Document{
		Name:    ExportName,
		Title:   "Unicode Characters",
		Data:    results,
		Headers: []string{"Char", "Codepoint", "Name", "Block", "UTF-8", "UTF-16BE", "UTF-16LE", "Width"},
	}
	for _, c := range results {
		doc.Rows = append(doc.Rows, []string{
			c.Char, c.Codepoint, c.Name, c.Block, c.UTF8, c.UTF16BE, c.UTF16LE, strconv.Itoa(c.Width),
		})
	}

	opts := t.exportOpts
	opts.OutputDir = dir
	return export.ToFile(doc, &opts)
}

// View implements tools.Tool.
func (t *Tool) View(width, height int) string {
	if t.Loading() {
		return components.RenderLoading(t.theme, "Loading Unicode Database...", width, height)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	th := t.theme

	fields := lipgloss.JoinVertical(lipgloss.Left,
		t.text.View(th, width),
		t.code.View(th, width),
		t.name.View(th, width),
		components.RenderToggle(th, "Sequential Mode (ctrl+a)", t.sequential, t.focus == focusSequential, width),
	)

	var lines []string
	if t.forms != nil {
		lines = append(lines, th.Label.Render("NFC ")+th.Value.Render(t.forms.NFC)+
			th.Muted.Render(fmt.Sprintf(" (%d runes)", t.forms.NFCRunes))+"  "+
			th.Label.Render("NFD ")+th.Value.Render(t.forms.NFD)+
			th.Muted.Render(fmt.Sprintf(" (%d runes)", t.forms.NFDRunes)))
	}
	if len(t.results) == 0 {
		lines = append(lines, th.Muted.Render("Enter analyzes the text, ctrl+l looks up the codepoint or name."))
	}
	for _, c := range t.results {
		name := c.Name
		if name == "" {
			name = "(not in database)"
		}
		head := fmt.Sprintf("%s %s %s", th.Value.Render(c.Char), th.Label.Render(c.Codepoint), name)
		if c.Block != "" {
			head += th.Muted.Render(" (" + c.Block + ")")
		}
		if c.Group != "" && c.Group != c.Block {
			head += " " + th.Muted.Render(c.Group)
		}
		detail := fmt.Sprintf("  utf-8 %s  utf-16be %s  utf-16le %s  width %d", c.UTF8, c.UTF16BE, c.UTF16LE, c.Width)
		if c.Char == "" {
			detail = "  no encoding (surrogate)"
		}
		lines = append(lines, head, th.Muted.Render(detail))
	}

	remaining := height - lipgloss.Height(fields)
	if remaining < 1 {
		remaining = 1
	}
	body := lipgloss.NewStyle().MaxHeight(remaining).MaxWidth(width).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, fields, body)
}

var (
	_ tools.Tool     = (*Tool)(nil)
	_ tools.Exporter = (*Tool)(nil)
	_ tools.Busy     = (*Tool)(nil)
)

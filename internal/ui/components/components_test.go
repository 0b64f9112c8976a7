// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devtoolbox/internal/ui/styles"
)

func TestField_EditingKeys(t *testing.T) {
	f := NewField("Owner", "e.g. golang")
	f.Focus()

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("go")},
		{Type: tea.KeySpace, Runes: []rune(" ")},
		{Type: tea.KeyRunes, Runes: []rune("x")},
		{Type: tea.KeyBackspace},
	} {
		f = f.Update(msg)
	}
	if got := f.Value(); got != "go " {
		t.Errorf("Value() = %q, want %q", got, "go ")
	}
}

func TestField_UnfocusedIgnoresInput(t *testing.T) {
	f := NewField("Owner", "")
	f = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if f.Value() != "" {
		t.Errorf("unfocused field accepted input: %q", f.Value())
	}
}

func TestField_UpdateDoesNotMutateOriginal(t *testing.T) {
	orig := NewField("Text", "")
	orig.Focus()
	orig.SetValue("abc")

	next := orig.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if orig.Value() != "abc" {
		t.Errorf("original changed to %q", orig.Value())
	}
	if next.Value() != "ab" {
		t.Errorf("copy = %q, want ab", next.Value())
	}
}

func TestField_View(t *testing.T) {
	th := styles.NewTheme("dark")
	f := NewField("Parent Org", "")
	f.SetValue("golang")

	out := f.View(th, 40)
	if !strings.Contains(out, "Parent Org") || !strings.Contains(out, "golang") {
		t.Errorf("View missing title or value:\n%s", out)
	}
	if w := lipgloss.Width(out); w > 40 {
		t.Errorf("View width = %d, want <= 40", w)
	}
}

func TestRenderToggle(t *testing.T) {
	th := styles.NewTheme("dark")
	if !strings.Contains(RenderToggle(th, "Allow No Parent", true, false, 30), "Yes") {
		t.Error("toggle on should render Yes")
	}
	if !strings.Contains(RenderToggle(th, "Allow No Parent", false, true, 30), "No") {
		t.Error("toggle off should render No")
	}
}

func TestTabAt(t *testing.T) {
	tests := []struct {
		x, want int
	}{
		{-3, 0},
		{0, 0},
		{TabWidth - 1, 0},
		{TabWidth, 1},
		{TabWidth*2 + 5, 2},
	}
	for _, tt := range tests {
		if got := TabAt(tt.x); got != tt.want {
			t.Errorf("TabAt(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestRenderTabs(t *testing.T) {
	th := styles.NewTheme("dark")
	names := []string{"Org Research", "Repo Explorer", "Unicode Inspector"}

	out := RenderTabs(th, names, 1, 80)
	for _, n := range names {
		if !strings.Contains(out, n) {
			t.Errorf("tabs missing %q", n)
		}
	}
	if w := lipgloss.Width(out); w != 80 {
		t.Errorf("tab row width = %d, want 80", w)
	}
}

func TestStatusBar(t *testing.T) {
	th := styles.NewTheme("dark")
	sb := NewStatusBar(th, []Shortcut{{Key: "tab", Desc: "next"}})

	out := sb.View("Found 3 organizations", "", 80)
	if !strings.Contains(out, "Found 3 organizations") || !strings.Contains(out, "next") {
		t.Errorf("status bar missing content:\n%s", out)
	}

	out = sb.View("Error: boom", "|", 80)
	if !strings.Contains(out, styles.ErrorMark) {
		t.Errorf("error status should carry the error indicator:\n%s", out)
	}
	if w := lipgloss.Width(out); w != 80 {
		t.Errorf("status bar width = %d, want 80", w)
	}
}

func TestSpinner(t *testing.T) {
	s := NewSpinner()
	if s.View() != "" {
		t.Error("stopped spinner should render nothing")
	}
	if cmd := s.Start(); cmd == nil {
		t.Error("Start should return a tick")
	}
	if s.Start() != nil {
		t.Error("second Start should not schedule another tick")
	}
	if s.View() == "" {
		t.Error("active spinner should render a frame")
	}
	s.Stop()
	if s.IsActive() {
		t.Error("Stop should deactivate")
	}
}

func TestHighlight(t *testing.T) {
	src := `{"alg": "HS256"}`
	for _, mode := range []string{"dark", "light"} {
		out := Highlight(styles.NewTheme(mode), src, "json")
		if !strings.Contains(out, "alg") || !strings.Contains(out, "HS256") {
			t.Errorf("%s: highlighted output lost content: %q", mode, out)
		}
	}
	if got := Highlight(nil, src, "no-such-language"); got != src {
		t.Errorf("unknown language should return input, got %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	th := styles.NewTheme("dark")
	out := RenderMarkdown(th, "# Help\n\n- **tab** next tool", 60)
	if !strings.Contains(out, "Help") || !strings.Contains(out, "next") {
		t.Errorf("markdown output lost content: %q", out)
	}
}

func TestRenderLoading(t *testing.T) {
	th := styles.NewTheme("dark")
	out := RenderLoading(th, "Loading Unicode data...", 50, 7)
	if !strings.Contains(out, "Loading Unicode data...") {
		t.Error("loading view missing message")
	}
	if h := lipgloss.Height(out); h != 7 {
		t.Errorf("loading height = %d, want 7", h)
	}
}

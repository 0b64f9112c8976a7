// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style

	// Fields
	FieldFocused lipgloss.Style
	FieldBlurred lipgloss.Style
	FieldTitle   lipgloss.Style
	ToggleOn     lipgloss.Style
	ToggleOff    lipgloss.Style

	// Content
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Loading lipgloss.Style
	Box     lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style
}

// NewTheme creates a theme for the given mode: "dark", "light" or "auto"
// (detect from the terminal).
func NewTheme(mode string) *Theme {
	isDark := true
	switch strings.ToLower(mode) {
	case "light":
		isDark = false
	case "dark":
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextOnAccent).
		Background(Accent).
		Padding(0, 1)
	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSubtle).
		Background(Surface).
		Padding(0, 1)
	t.TabBar = lipgloss.NewStyle().
		Background(Surface)

	t.FieldFocused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1)
	t.FieldBlurred = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDim).
		Padding(0, 1)
	t.FieldTitle = lipgloss.NewStyle().
		Foreground(Brand).
		Bold(true)
	t.ToggleOn = lipgloss.NewStyle().Foreground(Success).Bold(true)
	t.ToggleOff = lipgloss.NewStyle().Foreground(TextFaint)

	t.Title = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	t.Label = lipgloss.NewStyle().Foreground(TextSubtle)
	t.Value = lipgloss.NewStyle().Foreground(Text)
	t.Muted = lipgloss.NewStyle().Foreground(TextFaint).Italic(true)
	t.Loading = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSubtle).
		Background(Surface).
		Padding(0, 1)
	t.StatusError = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	t.StatusSuccess = lipgloss.NewStyle().Foreground(Success)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Brand).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextFaint)
}

// =============================================================================
// DEFAULT THEME
// =============================================================================

var defaultTheme = NewTheme("dark")

// Default returns the package default theme. Tools share it unless the app
// installs another with SetDefault at startup.
func Default() *Theme { return defaultTheme }

// SetDefault replaces the default theme. Call before the program starts.
func SetDefault(t *Theme) {
	if t != nil {
		defaultTheme = t
	}
}

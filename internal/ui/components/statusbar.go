// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devtoolbox/internal/ui/styles"
	"github.com/jeranaias/devtoolbox/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom line: an optional spinner, the status
// message and right-aligned key hints.
type StatusBar struct {
	theme     *styles.Theme
	shortcuts []Shortcut
}

// NewStatusBar creates a status bar with the given key hints.
func NewStatusBar(theme *styles.Theme, shortcuts []Shortcut) *StatusBar {
	return &StatusBar{theme: theme, shortcuts: shortcuts}
}

// View renders the bar. Status text starting with "Error:" is shown in the
// error style.
func (s *StatusBar) View(status, spinner string, width int) string {
	t := s.theme

	msgStyle := t.StatusSuccess
	if strings.HasPrefix(status, "Error:") {
		msgStyle = t.StatusError
		status = styles.ErrorMark + " " + status
	}

	left := status
	if spinner != "" {
		left = spinner + " " + left
	}

	hints := make([]string, 0, len(s.shortcuts))
	for _, sc := range s.shortcuts {
		hints = append(hints, t.ShortcutKey.Render(sc.Key)+" "+t.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	inner := width - t.StatusBar.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	// Hints give way to the message when space is short.
	leftMax := inner - lipgloss.Width(right) - 2
	if leftMax < inner/2 {
		right = ""
		leftMax = inner
	}
	left = msgStyle.Render(util.TruncateWidth(left, leftMax))

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return t.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

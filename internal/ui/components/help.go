// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/devtoolbox/internal/ui/styles"
)

// RenderMarkdown renders markdown for the help overlay. The style follows
// the theme instead of querying the terminal, which the TUI owns. Rendering
// failures fall back to the raw text.
func RenderMarkdown(theme *styles.Theme, md string, width int) string {
	style := "dark"
	if !theme.IsDark {
		style = "light"
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

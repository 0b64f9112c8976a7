// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devtoolbox/internal/ui/styles"
	"github.com/jeranaias/devtoolbox/internal/util"
)

// TabWidth is the fixed cell width of one tab, so a click at column x lands
// on tab x / TabWidth.
const TabWidth = 20

// TabAt maps a column on the tab row to a tab index.
func TabAt(x int) int {
	if x < 0 {
		return 0
	}
	return x / TabWidth
}

// RenderTabs renders the tab row, filling width with the bar background.
func RenderTabs(theme *styles.Theme, names []string, active, width int) string {
	var b strings.Builder
	for i, name := range names {
		style := theme.TabInactive
		if i == active {
			style = theme.TabActive
		}
		label := util.TruncateWidth(name, TabWidth-style.GetHorizontalPadding())
		b.WriteString(style.Width(TabWidth).Render(label))
	}

	row := b.String()
	if pad := width - lipgloss.Width(row); pad > 0 {
		row += theme.TabBar.Render(strings.Repeat(" ", pad))
	}
	return row
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devtoolbox/internal/tools"
	"github.com/jeranaias/devtoolbox/internal/ui/components"
)

// View implements tea.Model.
func (m *Model) View() string {
	tabs := components.RenderTabs(m.theme, m.registry.Names(), m.registry.ActiveIndex(), m.width)
	bar := m.statusBar.View(m.status, m.spinner.View(), m.width)

	bodyHeight := m.height - lipgloss.Height(tabs) - lipgloss.Height(bar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch active := m.registry.Active(); {
	case m.showHelp:
		body = components.RenderMarkdown(m.theme, m.helpText(), m.width)
	case active == nil:
		body = m.theme.Muted.Render("No tools registered.")
	default:
		body = active.View(m.width, bodyHeight)
	}
	body = lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, tabs, body, bar)
}

// helpText is the markdown shown by the help binding.
func (m *Model) helpText() string {
	b := m.dispatcher.Bindings()
	var sb strings.Builder
	sb.WriteString("# Help\n\n")
	sb.WriteString("| Key | Action |\n| --- | --- |\n")
	for _, row := range []struct {
		action tools.Action
		desc   string
	}{
		{tools.ActionNextTool, "next tool"},
		{tools.ActionPrevTool, "previous tool"},
		{tools.ActionCopyStatus, "copy the status line"},
		{tools.ActionToggleHelp, "toggle this help"},
		{tools.ActionQuit, "save caches and quit"},
	} {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", b.KeyFor(row.action), row.desc)
	}
	sb.WriteString(`
## Tools

- **Up / Down** move between fields, **Enter** runs the tool.
- **ctrl+a** flips a tool's toggle, **ctrl+e** exports results.
- Repo Explorer: **ctrl+o** shows cached repositories.
- Unicode Inspector: **ctrl+l** looks up a codepoint or name.
- Click a tab to switch to it. **esc** closes this help.
`)
	return sb.String()
}

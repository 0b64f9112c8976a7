// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for devtoolbox.
//
// Colors are lipgloss AdaptiveColors that switch between light and dark
// variants. The Theme collects the styles used by the tab bar, the input
// fields, the tool bodies and the status bar.
//
// The [ui] theme config value selects "dark", "light" or "auto":
//
//	styles.SetDefault(styles.NewTheme(cfg.UI.Theme))
package styles

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Palette roles. Each adapts to the terminal background.
var (
	Accent  = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"} // active tab, focused field
	Brand   = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"} // field titles, shortcut keys
	Success = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	Danger  = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
	Warning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"} // loading views

	Surface   = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"} // tab row, status bar
	Border    = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}
	BorderDim = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

	Text         = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
	TextSubtle   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
	TextFaint    = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	TextOnAccent = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
)

// ErrorMark prefixes error statuses so they read without color.
const ErrorMark = "[X]"

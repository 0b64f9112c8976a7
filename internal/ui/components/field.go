// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for devtoolbox.
package components

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devtoolbox/internal/ui/styles"
)

// =============================================================================
// FIELD - Titled single-line text input
// =============================================================================

// Field is a bordered text input with a title. It is a value type: tools
// copy it, update the copy and swap it in, so a rejected edit never touches
// the field on screen.
type Field struct {
	Title string
	input textinput.Model
}

// NewField creates an unfocused field.
func NewField(title, placeholder string) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 1024
	ti.Cursor.SetMode(cursor.CursorStatic)

	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextFaint).
		Italic(true)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Brand)

	return Field{Title: title, input: ti}
}

// Focus focuses the field.
func (f *Field) Focus() {
	f.input.Focus()
}

// Blur removes focus from the field.
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused returns whether the field has focus.
func (f Field) Focused() bool {
	return f.input.Focused()
}

// Value returns the current text.
func (f Field) Value() string {
	return f.input.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (f *Field) SetValue(value string) {
	f.input.SetValue(value)
	f.input.CursorEnd()
}

// Reset clears the text.
func (f *Field) Reset() {
	f.input.Reset()
}

// Update applies an editing key (runes, space, backspace, cursor movement)
// and returns the updated copy. Unfocused fields ignore input.
func (f Field) Update(msg tea.Msg) Field {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return f
	}
	f.input, _ = f.input.Update(msg)
	return f
}

// View renders the field as a titled box width cells wide.
func (f Field) View(theme *styles.Theme, width int) string {
	box := theme.FieldBlurred
	if f.Focused() {
		box = theme.FieldFocused
	}

	inner := width - box.GetHorizontalFrameSize()
	if inner < 4 {
		inner = 4
	}
	in := f.input
	in.Width = inner - 1

	title := theme.FieldTitle.Render(f.Title)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		box.Width(width-box.GetHorizontalBorderSize()).Render(in.View()),
	)
}

// =============================================================================
// TOGGLE
// =============================================================================

// RenderToggle renders a titled Yes/No switch. focused highlights it like a
// focused field.
func RenderToggle(theme *styles.Theme, title string, on, focused bool, width int) string {
	box := theme.FieldBlurred
	if focused {
		box = theme.FieldFocused
	}
	value := theme.ToggleOff.Render("No")
	if on {
		value = theme.ToggleOn.Render("Yes")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.FieldTitle.Render(title),
		box.Width(width-box.GetHorizontalBorderSize()).Render(value),
	)
}

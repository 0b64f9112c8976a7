// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/devtoolbox/internal/config"
)

// Action is what a global binding asks the event loop to do.
type Action string

const (
	ActionNone       Action = ""
	ActionQuit       Action = "quit"
	ActionCopyStatus Action = "copy_status"
	ActionNextTool   Action = "next_tool"
	ActionPrevTool   Action = "prev_tool"
	ActionToggleHelp Action = "toggle_help"
)

// Bindings maps reserved keys to actions. Keys use bubbletea's
// tea.KeyMsg.String() notation ("ctrl+q", "tab", "shift+tab").
type Bindings struct {
	keys map[string]Action
}

// DefaultBindings returns the built-in global keys.
func DefaultBindings() Bindings {
	return BindingsFromConfig(config.Default().Keys)
}

// BindingsFromConfig builds bindings from the [keys] config section.
func BindingsFromConfig(k config.KeysConfig) Bindings {
	b := Bindings{keys: make(map[string]Action, 5)}
	b.set(k.Quit, ActionQuit)
	b.set(k.CopyStatus, ActionCopyStatus)
	b.set(k.NextTool, ActionNextTool)
	b.set(k.PrevTool, ActionPrevTool)
	b.set(k.Help, ActionToggleHelp)
	return b
}

func (b Bindings) set(key string, a Action) {
	if key != "" {
		b.keys[key] = a
	}
}

// Match returns the action bound to msg, if msg is a reserved key.
func (b Bindings) Match(msg tea.Msg) (Action, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return ActionNone, false
	}
	a, ok := b.keys[key.String()]
	return a, ok
}

// KeyFor returns the key bound to a, for help text.
func (b Bindings) KeyFor(a Action) string {
	for k, v := range b.keys {
		if v == a {
			return k
		}
	}
	return ""
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme_Modes(t *testing.T) {
	if !NewTheme("dark").IsDark {
		t.Error("dark theme should report IsDark")
	}
	if NewTheme("LIGHT").IsDark {
		t.Error("light theme should not report IsDark")
	}
}

func TestThemeStylesRender(t *testing.T) {
	th := NewTheme("dark")

	for name, out := range map[string]string{
		"TabActive":    th.TabActive.Render("Org Research"),
		"FieldFocused": th.FieldFocused.Render("value"),
		"StatusBar":    th.StatusBar.Render("ready"),
		"StatusError":  th.StatusError.Render("Error: x"),
	} {
		if out == "" {
			t.Errorf("%s rendered empty", name)
		}
	}

	if !strings.Contains(th.FieldFocused.Render("value"), "value") {
		t.Error("field style should keep its content")
	}
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	light := NewTheme("light")
	SetDefault(light)
	if Default() != light {
		t.Error("SetDefault did not install theme")
	}

	SetDefault(nil)
	if Default() != light {
		t.Error("SetDefault(nil) must be ignored")
	}
}

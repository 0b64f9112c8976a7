// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/devtoolbox/internal/ui/styles"
)

// chromaStyle follows the theme background.
func chromaStyle(theme *styles.Theme) *chroma.Style {
	name := "monokai"
	if theme != nil && !theme.IsDark {
		name = "github"
	}
	if s := chromaStyles.Get(name); s != nil {
		return s
	}
	return chromaStyles.Fallback
}

// Highlight renders code in the given language with 256-color escapes.
// On any failure the code comes back unchanged.
func Highlight(theme *styles.Theme, code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return code
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return code
	}

	var out strings.Builder
	if err := formatters.TTY256.Format(&out, chromaStyle(theme), it); err != nil {
		return code
	}
	return out.String()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for devtoolbox.
//
// # Components
//
//   - Field: titled single-line text input built on bubbles/textinput
//   - RenderToggle: Yes/No switch drawn like a field
//   - RenderTabs / TabAt: fixed-width tab row and click mapping
//   - StatusBar: status message with spinner and key hints
//   - Spinner: ASCII activity indicator built on bubbles/spinner
//   - RenderLoading: centered loading box
//   - Highlight: chroma syntax highlighting in the theme's style
//   - RenderMarkdown: glamour rendering for the help overlay
//
// All components render with a *styles.Theme.
package components

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// TOOL CONTRACT
// =============================================================================

// Tool is one tab in the toolbox.
//
// View may be called from the render loop while HandleInput is running on
// another goroutine, so implementations guard their own state. HandleInput
// must leave that state untouched when it returns an error.
type Tool interface {
	// Name is the stable tab label.
	Name() string

	// View renders the tool into a width x height region. It must not mutate
	// state and should show a loading indicator while background work the
	// tool depends on is outstanding.
	View(width, height int) string

	// HandleInput processes one key or mouse event that is not a global
	// binding and returns a status line.
	HandleInput(ctx context.Context, msg tea.Msg) (string, error)

	// SaveCache persists anything worth keeping. It is called once at
	// shutdown and is a no-op when there is nothing to write.
	SaveCache(ctx context.Context) error
}

// Exporter is implemented by tools that can write their current results
// to a file. Export returns the path written.
type Exporter interface {
	Export(dir string) (string, error)
}

// Busy is implemented by tools that report outstanding background work so
// the event loop can animate a spinner.
type Busy interface {
	Busy() bool
}

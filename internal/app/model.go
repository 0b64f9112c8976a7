// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/logging"
	"github.com/jeranaias/devtoolbox/internal/tools"
	"github.com/jeranaias/devtoolbox/internal/ui/components"
	"github.com/jeranaias/devtoolbox/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// State is the event loop state.
type State int

const (
	StateIdle         State = iota // waiting for input
	StateHandling                  // a tool dispatch is in flight
	StateShuttingDown              // quit requested
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHandling:
		return "handling"
	case StateShuttingDown:
		return "shutting down"
	default:
		return "unknown"
	}
}

// Readiness reports whether background work has finished.
type Readiness interface {
	Ready() bool
}

// =============================================================================
// MESSAGES
// =============================================================================

// pendingInput is tool-bound input and the tool that was active when it
// arrived.
type pendingInput struct {
	tool tools.Tool
	msg  tea.Msg
}

// dispatchDoneMsg carries a finished tool dispatch back to the loop.
type dispatchDoneMsg struct {
	result tools.Result
}

// savedMsg reports the shutdown cache save.
type savedMsg struct {
	err error
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	// Import is the background import handle; nil when there is none.
	Import Readiness

	// Theme defaults to styles.Default().
	Theme *styles.Theme

	// Clipboard writes the status line; defaults to the system clipboard.
	Clipboard func(string) error

	Logger *zap.Logger
}

// Model is the root bubbletea model.
type Model struct {
	ctx        context.Context
	dispatcher *tools.Dispatcher
	registry   *tools.Registry
	imp        Readiness
	copy       func(string) error
	theme      *styles.Theme
	logger     *zap.Logger

	state    State
	queue    []pendingInput
	status   string
	showHelp bool

	saveOnce sync.Once
	saved    atomic.Bool
	saveErr  error

	spinner   components.Spinner
	statusBar *components.StatusBar

	width  int
	height int
}

// New creates the model. ctx is passed to every tool dispatch and to the
// shutdown save.
func New(ctx context.Context, d *tools.Dispatcher, opts Options) *Model {
	if opts.Theme == nil {
		opts.Theme = styles.Default()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	b := d.Bindings()
	return &Model{
		ctx:        ctx,
		dispatcher: d,
		registry:   d.Registry(),
		imp:        opts.Import,
		copy:       opts.Clipboard,
		theme:      opts.Theme,
		logger:     logging.OrNop(opts.Logger),
		spinner:    components.NewSpinner(),
		statusBar: components.NewStatusBar(opts.Theme, []components.Shortcut{
			{Key: b.KeyFor(tools.ActionNextTool), Desc: "next"},
			{Key: b.KeyFor(tools.ActionCopyStatus), Desc: "copy"},
			{Key: b.KeyFor(tools.ActionToggleHelp), Desc: "help"},
			{Key: b.KeyFor(tools.ActionQuit), Desc: "quit"},
		}),
		width:  80,
		height: 24,
	}
}

// State returns the loop state.
func (m *Model) State() State { return m.state }

// Status returns the status line text.
func (m *Model) Status() string { return m.status }

// Pending returns how many inputs are queued behind the dispatch in flight.
func (m *Model) Pending() int { return len(m.queue) }

// Saved reports whether the shutdown save has run, and its error.
func (m *Model) Saved() (bool, error) {
	if !m.saved.Load() {
		return false, nil
	}
	return true, m.saveErr
}

// saveAll saves every tool's cache exactly once. Later calls wait for the
// first to finish and return its error.
func (m *Model) saveAll(ctx context.Context) error {
	m.saveOnce.Do(func() {
		m.saveErr = m.registry.SaveAll(ctx)
		if m.saveErr != nil {
			m.logger.Error("CACHE_SAVE_FAILED", zap.Error(m.saveErr))
		}
		m.saved.Store(true)
	})
	return m.saveErr
}

// importing reports whether the background import is still outstanding.
func (m *Model) importing() bool {
	return m.imp != nil && !m.imp.Ready()
}

// busy reports whether the spinner should run.
func (m *Model) busy() bool {
	if m.state == StateHandling || m.importing() {
		return true
	}
	if b, ok := m.registry.Active().(tools.Busy); ok && b.Busy() {
		return true
	}
	return false
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.importing() {
		m.status = "Loading Unicode data..."
		return m.spinner.Start()
	}
	return nil
}

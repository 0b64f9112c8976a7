// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/logging"
)

// =============================================================================
// DISPATCHER
// =============================================================================

// Result is the outcome of one dispatch.
type Result struct {
	// Action is set when msg was a global binding.
	Action Action

	// Tool names the tool that handled msg, empty for global bindings.
	Tool   string
	Status string
	Err    error
}

// Dispatcher routes input either to a global binding or to the active tool.
// At most one tool dispatch runs at a time.
type Dispatcher struct {
	registry *Registry
	bindings Bindings
	logger   *zap.Logger

	mu sync.Mutex
}

// NewDispatcher creates a dispatcher over registry.
func NewDispatcher(registry *Registry, bindings Bindings, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		bindings: bindings,
		logger:   logging.OrNop(logger),
	}
}

// Registry returns the underlying registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Bindings returns the global key bindings.
func (d *Dispatcher) Bindings() Bindings { return d.bindings }

// Global handles msg if it is a reserved binding. Tool switching is applied
// to the registry immediately; the other actions are returned for the event
// loop to carry out. It never waits on a tool dispatch in flight.
func (d *Dispatcher) Global(msg tea.Msg) (Result, bool) {
	action, ok := d.bindings.Match(msg)
	if !ok {
		return Result{}, false
	}

	switch action {
	case ActionNextTool:
		d.registry.Advance()
	case ActionPrevTool:
		d.registry.Retreat()
	}
	return Result{Action: action}, true
}

// Dispatch intercepts global bindings, then routes msg to the active tool's
// HandleInput. A panicking tool is recovered and reported as an error.
func (d *Dispatcher) Dispatch(ctx context.Context, msg tea.Msg) Result {
	if res, ok := d.Global(msg); ok {
		return res
	}

	return d.DispatchTo(ctx, d.registry.Active(), msg)
}

// DispatchTo routes msg to tool, which the caller resolved when the input
// arrived. Global bindings are not checked.
func (d *Dispatcher) DispatchTo(ctx context.Context, tool Tool, msg tea.Msg) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if tool == nil {
		return Result{Err: ErrNoTools}
	}
	return d.invoke(ctx, tool, msg)
}

func (d *Dispatcher) invoke(ctx context.Context, tool Tool, msg tea.Msg) (res Result) {
	res.Tool = tool.Name()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("DISPATCH_PANIC",
				zap.String("tool", res.Tool),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			res.Status = ""
			res.Err = fmt.Errorf("%s crashed: %v", res.Tool, r)
		}
	}()

	status, err := tool.HandleInput(ctx, msg)
	if err != nil {
		d.logger.Debug("DISPATCH_ERROR", zap.String("tool", res.Tool), zap.Error(err))
	}
	res.Status, res.Err = status, err
	return res
}

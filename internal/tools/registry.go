// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the tools in tab order and tracks which one is active.
// Tools are registered at startup; after Seal the set never changes. The
// active index is always valid while at least one tool is registered.
type Registry struct {
	mu     sync.RWMutex
	tools  []Tool
	active int
	sealed bool
}

// NewRegistry creates a registry with tools registered in order.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a tool. Insertion order is tab order.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}
	if tool == nil {
		return errors.New("cannot register nil tool")
	}
	for _, t := range r.tools {
		if t.Name() == tool.Name() {
			return fmt.Errorf("%w: %s", ErrDuplicateTool, tool.Name())
		}
	}
	r.tools = append(r.tools, tool)
	return nil
}

// Seal freezes the tool set.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Len returns the number of tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// All returns the tools in tab order.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns the tab labels in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name()
	}
	return names
}

// Active returns the active tool, or nil when the registry is empty.
func (r *Registry) Active() Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.tools) == 0 {
		return nil
	}
	return r.tools[r.active]
}

// ActiveIndex returns the active tab index.
func (r *Registry) ActiveIndex() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Advance moves to the next tool, wrapping to the first.
func (r *Registry) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.tools) > 0 {
		r.active = (r.active + 1) % len(r.tools)
	}
}

// Retreat moves to the previous tool, wrapping to the last.
func (r *Registry) Retreat() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.tools); n > 0 {
		r.active = (r.active - 1 + n) % n
	}
}

// SelectAt activates tab i, clamped to the valid range.
func (r *Registry) SelectAt(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.tools)
	switch {
	case n == 0:
		return
	case i < 0:
		i = 0
	case i >= n:
		i = n - 1
	}
	r.active = i
}

// SaveAll calls SaveCache on every tool in tab order. Every tool is given a
// chance to save; failures are joined.
func (r *Registry) SaveAll(ctx context.Context) error {
	var errs []error
	for _, t := range r.All() {
		if err := t.SaveCache(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
		}
	}
	return errors.Join(errs...)
}

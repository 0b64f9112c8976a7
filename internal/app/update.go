// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/tools"
	"github.com/jeranaias/devtoolbox/internal/ui/components"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinner.Stop()
			if m.status == "Loading Unicode data..." {
				m.status = "Unicode data ready"
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dispatchDoneMsg:
		return m.handleDispatchDone(msg)

	case savedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.state == StateShuttingDown {
			return m, nil
		}
		if res, ok := m.dispatcher.Global(msg); ok {
			return m.handleGlobal(res)
		}
		if m.showHelp && msg.Type == tea.KeyEsc {
			m.showHelp = false
			return m, nil
		}
		return m.enqueue(msg)

	case tea.MouseMsg:
		if m.state == StateShuttingDown {
			return m, nil
		}
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseMotion, tea.MouseRelease:
		return m, nil
	case tea.MouseLeft:
		if msg.Y == 0 {
			m.registry.SelectAt(components.TabAt(msg.X))
			return m, nil
		}
	}
	return m.enqueue(msg)
}

// handleGlobal applies a reserved binding on the loop goroutine. Tool
// switching has already been applied by the dispatcher.
func (m *Model) handleGlobal(res tools.Result) (tea.Model, tea.Cmd) {
	switch res.Action {
	case tools.ActionQuit:
		return m.beginShutdown()

	case tools.ActionCopyStatus:
		if err := m.copy(m.status); err != nil {
			m.logger.Warn("CLIPBOARD_FAILED", zap.Error(err))
			m.status = "Error: copy to clipboard: " + err.Error()
			return m, nil
		}
		m.status = "Copied to clipboard!"

	case tools.ActionToggleHelp:
		m.showHelp = !m.showHelp

	case tools.ActionNextTool, tools.ActionPrevTool:
		m.showHelp = false
		if m.busy() {
			return m, m.spinner.Start()
		}
	}
	return m, nil
}

// enqueue dispatches msg to the active tool now, or queues it behind the
// dispatch in flight.
func (m *Model) enqueue(msg tea.Msg) (tea.Model, tea.Cmd) {
	in := pendingInput{tool: m.registry.Active(), msg: msg}
	if m.state == StateHandling {
		m.queue = append(m.queue, in)
		return m, nil
	}
	return m, m.startDispatch(in)
}

func (m *Model) startDispatch(in pendingInput) tea.Cmd {
	m.state = StateHandling
	ctx, d := m.ctx, m.dispatcher
	run := func() tea.Msg {
		return dispatchDoneMsg{result: d.DispatchTo(ctx, in.tool, in.msg)}
	}
	return tea.Batch(run, m.spinner.Start())
}

func (m *Model) handleDispatchDone(msg dispatchDoneMsg) (tea.Model, tea.Cmd) {
	res := msg.result
	switch {
	case res.Err != nil:
		m.status = "Error: " + res.Err.Error()
	case res.Status != "":
		m.status = res.Status
	}

	if m.state == StateShuttingDown {
		m.queue = nil
		return m, m.save()
	}

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return m, m.startDispatch(next)
	}
	m.state = StateIdle
	return m, nil
}

// beginShutdown saves every tool's cache, waiting first for a dispatch in
// flight so no tool is saved mid-update.
func (m *Model) beginShutdown() (tea.Model, tea.Cmd) {
	wasHandling := m.state == StateHandling
	m.state = StateShuttingDown
	m.status = "Saving..."
	if wasHandling {
		return m, nil
	}
	return m, m.save()
}

func (m *Model) save() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return savedMsg{err: m.saveAll(ctx)}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives m on the terminal until quit. Caches are saved by the quit
// binding before the terminal is released; if the program ends any other way
// (context cancelled, kill) they are saved here instead.
func Run(m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	}, opts...)

	_, runErr := tea.NewProgram(m, opts...).Run()
	if runErr != nil {
		runErr = fmt.Errorf("run tui: %w", runErr)
	}

	return finish(m, runErr)
}

// finish saves the caches unless the quit binding already did. A save still
// running when the program ends is waited for, never repeated.
func finish(m *Model, runErr error) error {
	// The program context may be the one that was cancelled.
	return errors.Join(runErr, m.saveAll(context.WithoutCancel(m.ctx)))
}

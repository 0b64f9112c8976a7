// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when the TUI is started without a terminal.
var ErrNoTerminal = errors.New("stdin and stdout must be a terminal")

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RequiresTTY fails with a StartupError unless both stdin and stdout are
// terminals.
func RequiresTTY() error {
	if IsTTY() && IsStdoutTTY() {
		return nil
	}
	return &StartupError{
		Stage: "terminal",
		Err:   ErrNoTerminal,
		Hint:  "Run devtoolbox from an interactive terminal. Use 'devtoolbox import' for headless setup.",
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Exit codes. Every startup failure is fatal with ExitFailure.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// StartupError is a failure before the TUI takes the terminal.
type StartupError struct {
	Stage string // config, log, credentials, cache, tools, terminal
	Err   error
	Hint  string // printed after the error when set
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// DisplayError prints err, and its hint if any, to w.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)

	var se *StartupError
	if errors.As(err, &se) && se.Hint != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(se.Hint, "\n"))
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrStorage matches every error returned by a Store operation.
	ErrStorage = errors.New("storage error")

	// ErrClosed is wrapped when the store has already been closed.
	ErrClosed = errors.New("store is closed")

	// ErrInvalidCodepoint is returned by NormalizeCodepoint.
	ErrInvalidCodepoint = errors.New("invalid codepoint")
)

// Error is a failed store operation. Op names the operation
// ("exec", "query", "commit", "upsert repo", ...).
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrStorage so callers need not know the concrete type.
func (e *Error) Is(target error) bool { return target == ErrStorage }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Err: err}
}

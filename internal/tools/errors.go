// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"errors"
	"fmt"
)

var (
	// ErrInput matches every *InputError.
	ErrInput = errors.New("invalid input")

	// ErrSealed is returned by Register after Seal.
	ErrSealed = errors.New("registry is sealed")

	// ErrDuplicateTool is returned when two tools share a name.
	ErrDuplicateTool = errors.New("duplicate tool name")

	// ErrNoTools is returned when dispatching to an empty registry.
	ErrNoTools = errors.New("no tools registered")
)

// InputError is user input a tool cannot act on. The tool's state is left
// unchanged.
type InputError struct {
	Field string
	Msg   string
}

// InputErrorf builds an InputError for field.
func InputErrorf(field, format string, args ...any) *InputError {
	return &InputError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Is reports ErrInput.
func (e *InputError) Is(target error) bool { return target == ErrInput }

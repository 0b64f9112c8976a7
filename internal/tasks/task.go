// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks tracks the lifecycle of background jobs.
package tasks

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the state of a background task.
type Status string

const (
	// StatusQueued is the state before the job goroutine starts work.
	StatusQueued Status = "Queued"

	// StatusRunning indicates the job is executing.
	StatusRunning Status = "Running"

	// StatusComplete indicates the job finished successfully.
	StatusComplete Status = "Complete"

	// StatusFailed indicates the job stopped on an error.
	StatusFailed Status = "Failed"
)

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// =============================================================================
// TASK
// =============================================================================

// Task records one background job. Transitions only move forward:
// Queued -> Running -> Complete | Failed.
type Task struct {
	// ID is a unique identifier for this task.
	ID string

	// Description is shown in logs and the status bar.
	Description string

	mu        sync.RWMutex
	status    Status
	startTime time.Time
	endTime   time.Time
	err       error
}

// New creates a queued task.
func New(description string) *Task {
	return &Task{
		ID:          uuid.New().String(),
		Description: description,
		status:      StatusQueued,
	}
}

// transition moves to next when allowed (must be called with lock held).
func (t *Task) transition(next Status) error {
	if t.status == next {
		return nil
	}
	ok := false
	switch t.status {
	case StatusQueued:
		ok = next == StatusRunning || next == StatusFailed
	case StatusRunning:
		ok = next == StatusComplete || next == StatusFailed
	}
	if !ok {
		return fmt.Errorf("invalid status transition from %s to %s", t.status, next)
	}
	t.status = next
	return nil
}

// Start marks the task running.
func (t *Task) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.transition(StatusRunning); err != nil {
		return err
	}
	t.startTime = time.Now()
	return nil
}

// Complete marks the task finished successfully.
func (t *Task) Complete() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.transition(StatusComplete); err != nil {
		return err
	}
	t.endTime = time.Now()
	return nil
}

// Fail marks the task failed with err.
func (t *Task) Fail(err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if terr := t.transition(StatusFailed); terr != nil {
		return terr
	}
	t.err = err
	t.endTime = time.Now()
	return nil
}

// Status returns the current status.
func (t *Task) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Err returns the failure cause, nil unless Failed.
func (t *Task) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

// Duration is the running time so far, or the total once terminal.
func (t *Task) Duration() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.startTime.IsZero() {
		return 0
	}
	if t.endTime.IsZero() {
		return time.Since(t.startTime)
	}
	return t.endTime.Sub(t.startTime)
}

// Summary renders a one-line description for the status bar.
func (t *Task) Summary() string {
	t.mu.RLock()
	status, err := t.status, t.err
	t.mu.RUnlock()

	switch status {
	case StatusFailed:
		return fmt.Sprintf("%s: failed: %v", t.Description, err)
	case StatusComplete:
		return fmt.Sprintf("%s: done in %s", t.Description, t.Duration().Round(time.Millisecond))
	default:
		return fmt.Sprintf("%s: %s", t.Description, status)
	}
}

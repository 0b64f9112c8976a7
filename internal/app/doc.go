// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the bubbletea event loop that hosts the tools.
//
// The loop owns the screen and a small state machine:
//
//	Idle -> Handling       tool-bound input starts a dispatch in a tea.Cmd
//	Handling -> Idle       the dispatch reports back and the queue is empty
//	any -> ShuttingDown    the quit binding; caches are saved, then tea.Quit
//
// Input that arrives while Handling is queued and dispatched in order.
// Global bindings (quit, copy status, tool switching, help) never wait for a
// dispatch.
package app

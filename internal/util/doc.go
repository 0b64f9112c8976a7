// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across devtoolbox packages.
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync and rename
//
// String Utilities:
//   - TruncateWidth: truncation by terminal cell width (go-runewidth)
//   - YesNo: toggle rendering for tool panels
package util

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes tool results to files for the Ctrl+E binding.
//
// # Supported Formats
//
//   - JSON: the tool's result structs, indented
//   - Markdown: a table of the same results
//
// # Usage
//
//	path, err := export.ToFile(&export.Document{
//	    Name: "org_results",
//	    Data: orgs,
//	}, &export.Options{OutputDir: cfg.Export.Dir, Format: cfg.Export.Format})
//
// The file name is stable per tool, so exporting again replaces the
// previous file.
package export

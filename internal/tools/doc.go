// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools defines the tool-plugin runtime.
//
// Every tab in devtoolbox is a Tool. A Registry keeps the tools in tab order
// with an active cursor, and a Dispatcher routes each input event either to
// a reserved global binding (quit, copy status, next/previous tool, help) or
// to the active tool's HandleInput.
//
// # Usage
//
//	reg, err := tools.NewRegistry(orgTool, repoTool, unicodeTool)
//	if err != nil {
//	    return err
//	}
//	reg.Seal()
//
//	d := tools.NewDispatcher(reg, tools.DefaultBindings(), logger)
//	res := d.Dispatch(ctx, msg)
//	if res.Err != nil {
//	    status = "Error: " + res.Err.Error()
//	}
//
// At shutdown, Registry.SaveAll gives each tool a chance to persist its cache.
package tools

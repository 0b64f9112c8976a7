// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli wires configuration, logging, credentials, the cache store and
// the tools together behind the devtoolbox command line.
//
// Commands:
//
//	devtoolbox           run the TUI (requires a terminal and GITHUB_TOKEN)
//	devtoolbox import    load the Unicode reference data and exit
//	devtoolbox version   print build information
//
// Startup failures are printed to stderr and exit with status 1.
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// devtoolbox is a terminal workbench of small developer tools.
package main

import (
	"os"

	"github.com/jeranaias/devtoolbox/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

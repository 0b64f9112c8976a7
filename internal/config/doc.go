// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for devtoolbox.
//
// Configuration is TOML, with sensible defaults, environment variable
// overrides and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (DEVTOOLBOX_*)
//   - <user config dir>/devtoolbox/config.toml (or --config)
//   - Built-in defaults
//
// The file is written with defaults on first run.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store, err := storage.Open(ctx, cfg.CacheDBPath)
package config

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage is the shared SQLite cache behind every devtoolbox tool.
//
// A single Store is opened at startup and shared by the interactive tools
// and the background importer. All access is serialized by one mutex that is
// held for exactly one statement or one whole transaction, so a reader never
// observes a half-applied import.
//
// # Tables
//
//   - repos: Repo Explorer results keyed by (owner, name), last write wins
//   - reference_chars: codepoint reference rows, written once by the importer
//   - reference_groups: named codepoint ranges (blocks)
//   - schema_migrations: applied schema versions
//
// # Usage
//
//	store, err := storage.Open(ctx, cfg.CacheDBPath)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.Transaction(ctx, func(tx *storage.Tx) error {
//	    return tx.UpsertRepo(storage.RepoRecord{Owner: "golang", Name: "go", Payload: "{}"})
//	})
//
// Every failure is a *Error and matches ErrStorage with errors.Is.
package storage

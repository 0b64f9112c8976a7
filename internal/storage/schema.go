// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is one forward-only schema step.
type migration struct {
	Version int
	Name    string
	Up      string
}

// migrations are applied in order; a version is never edited once released.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create cache tables",
		Up: `
			CREATE TABLE IF NOT EXISTS repos (
				owner   TEXT NOT NULL,
				name    TEXT NOT NULL,
				payload TEXT NOT NULL,
				PRIMARY KEY (owner, name)
			);

			CREATE TABLE IF NOT EXISTS reference_chars (
				code TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				grp  TEXT NOT NULL DEFAULT ''
			);

			CREATE TABLE IF NOT EXISTS reference_groups (
				name        TEXT PRIMARY KEY,
				range_start INTEGER NOT NULL,
				range_end   INTEGER NOT NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "index lookups",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_reference_chars_name ON reference_chars(name);
			CREATE INDEX IF NOT EXISTS idx_reference_groups_range ON reference_groups(range_start, range_end);
		`,
	},
}

// SchemaVersion is the newest migration version.
func SchemaVersion() int {
	return migrations[len(migrations)-1].Version
}

// migrate brings db up to SchemaVersion. Every statement is idempotent, so a
// crash between a step and its bookkeeping row is harmless.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if _, err := db.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT OR IGNORE INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

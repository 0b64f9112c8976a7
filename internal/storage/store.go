// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage is the shared SQLite cache behind every devtoolbox tool.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// STORE
// =============================================================================

// Row is the scan surface handed to Query callbacks.
type Row interface {
	Scan(dest ...any) error
}

// Store is a mutex-guarded SQLite database. The lock is held for exactly one
// statement, or for one whole transaction, and is always released before a
// method returns.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the cache database at path and brings the
// schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, wrap("open", errors.New("database path is empty"))
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, wrap("open", fmt.Errorf("create database directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap("open", err)
	}

	// One connection: SQLite has a single writer and an in-memory database
	// would otherwise be per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, wrap("open", fmt.Errorf("set pragma %q: %w", pragma, err))
		}
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, wrap("migrate", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database. Further calls fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return wrap("close", err)
}

// Exec runs one statement and returns the number of rows it affected.
func (s *Store) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, wrap("exec", ErrClosed)
	}
	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, wrap("exec", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap("exec", err)
	}
	return n, nil
}

// Query runs stmt and calls scan once per row while the lock is held. A
// non-nil error from scan stops iteration and is returned wrapped.
func (s *Store) Query(ctx context.Context, stmt string, scan func(Row) error, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return wrap("query", ErrClosed)
	}
	return queryRows(ctx, s.db, stmt, scan, args...)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryRows(ctx context.Context, q queryer, stmt string, scan func(Row) error, args ...any) error {
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return wrap("query", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return wrap("scan", err)
		}
	}
	return wrap("query", rows.Err())
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// Tx is a transaction in progress. It is only valid inside the callback
// passed to Transaction and must not be retained.
type Tx struct {
	ctx context.Context
	tx  *sql.Tx
}

// Exec runs a statement inside the transaction.
func (t *Tx) Exec(stmt string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(t.ctx, stmt, args...)
	if err != nil {
		return 0, wrap("exec", err)
	}
	n, err := res.RowsAffected()
	return n, wrap("exec", err)
}

// QueryRow runs a single-row query inside the transaction.
func (t *Tx) QueryRow(stmt string, args ...any) Row {
	return t.tx.QueryRowContext(t.ctx, stmt, args...)
}

// Query streams rows to scan inside the transaction.
func (t *Tx) Query(stmt string, scan func(Row) error, args ...any) error {
	return queryRows(t.ctx, t.tx, stmt, scan, args...)
}

// Transaction runs fn in one transaction while holding the store lock.
// A nil return commits; an error or panic rolls back. Errors from fn are
// returned as-is, panics are re-raised after the rollback.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Tx) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return wrap("begin", ErrClosed)
	}
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && err != nil {
			err = errors.Join(err, wrap("rollback", rbErr))
		}
	}()

	if err := fn(&Tx{ctx: ctx, tx: sqlTx}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return wrap("commit", err)
	}
	committed = true
	return nil
}

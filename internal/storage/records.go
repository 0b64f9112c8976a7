// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// RepoRecord is one cached repository. Payload is the JSON the Repo Explorer
// fetched; the key is (Owner, Name) and the last write wins.
type RepoRecord struct {
	Owner   string
	Name    string
	Payload string
}

// CodepointRecord is one row of the character reference table.
type CodepointRecord struct {
	Codepoint string // normalized, see NormalizeCodepoint
	Name      string
	Block     string
}

// BlockRecord is one named codepoint range, inclusive on both ends.
type BlockRecord struct {
	Name       string
	RangeStart rune
	RangeEnd   rune
}

// Contains reports whether r falls inside the block.
func (b BlockRecord) Contains(r rune) bool {
	return r >= b.RangeStart && r <= b.RangeEnd
}

// =============================================================================
// CODEPOINT KEYS
// =============================================================================

// FormatCodepoint renders r the way reference_chars keys it: upper-case hex,
// at least four digits.
func FormatCodepoint(r rune) string {
	return fmt.Sprintf("%04X", r)
}

// NormalizeCodepoint parses "41", "0041", "U+0041" or "0x41" into the key
// format used by reference_chars.
func NormalizeCodepoint(s string) (string, error) {
	r, err := ParseCodepoint(s)
	if err != nil {
		return "", err
	}
	return FormatCodepoint(r), nil
}

// ParseCodepoint parses a hex codepoint with an optional U+ or 0x prefix.
func ParseCodepoint(s string) (rune, error) {
	t := strings.TrimSpace(s)
	if len(t) >= 2 {
		switch t[:2] {
		case "U+", "u+", "0x", "0X":
			t = t[2:]
		}
	}
	if t == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCodepoint, s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCodepoint, s)
	}
	return rune(v), nil
}

// =============================================================================
// REPOS
// =============================================================================

const upsertRepoSQL = `INSERT OR REPLACE INTO repos (owner, name, payload) VALUES (?, ?, ?)`

// UpsertRepo inserts or replaces one repository.
func (s *Store) UpsertRepo(ctx context.Context, rec RepoRecord) error {
	_, err := s.Exec(ctx, upsertRepoSQL, rec.Owner, rec.Name, rec.Payload)
	return wrap("upsert repo", err)
}

// UpsertRepos writes all records in one transaction.
func (s *Store) UpsertRepos(ctx context.Context, recs []RepoRecord) error {
	if len(recs) == 0 {
		return nil
	}
	return s.Transaction(ctx, func(tx *Tx) error {
		for _, rec := range recs {
			if err := tx.UpsertRepo(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Repos returns every cached repository for owner, ordered by name.
func (s *Store) Repos(ctx context.Context, owner string) ([]RepoRecord, error) {
	var out []RepoRecord
	err := s.Query(ctx,
		"SELECT owner, name, payload FROM repos WHERE owner = ? ORDER BY name",
		func(row Row) error {
			var r RepoRecord
			if err := row.Scan(&r.Owner, &r.Name, &r.Payload); err != nil {
				return err
			}
			out = append(out, r)
			return nil
		}, owner)
	return out, err
}

// Repo returns one cached repository. ok is false when it is absent.
func (s *Store) Repo(ctx context.Context, owner, name string) (rec RepoRecord, ok bool, err error) {
	err = s.Query(ctx,
		"SELECT owner, name, payload FROM repos WHERE owner = ? AND name = ?",
		func(row Row) error {
			ok = true
			return row.Scan(&rec.Owner, &rec.Name, &rec.Payload)
		}, owner, name)
	return rec, ok, err
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

// CountCodepoints returns the number of rows in reference_chars.
func (s *Store) CountCodepoints(ctx context.Context) (int, error) {
	return s.count(ctx, "reference_chars")
}

// CountBlocks returns the number of rows in reference_groups.
func (s *Store) CountBlocks(ctx context.Context) (int, error) {
	return s.count(ctx, "reference_groups")
}

func (s *Store) count(ctx context.Context, table string) (int, error) {
	var n int
	err := s.Query(ctx, "SELECT COUNT(*) FROM "+table, func(row Row) error {
		return row.Scan(&n)
	})
	return n, err
}

// LookupCodepoint returns the reference row for code, which may be in any
// form ParseCodepoint accepts.
func (s *Store) LookupCodepoint(ctx context.Context, code string) (rec CodepointRecord, ok bool, err error) {
	key, err := NormalizeCodepoint(code)
	if err != nil {
		return rec, false, err
	}
	err = s.Query(ctx,
		"SELECT code, name, grp FROM reference_chars WHERE code = ?",
		func(row Row) error {
			ok = true
			return row.Scan(&rec.Codepoint, &rec.Name, &rec.Block)
		}, key)
	return rec, ok, err
}

// SearchCodepointNames returns characters whose name contains fragment,
// case-insensitively, in codepoint order. limit <= 0 means no limit.
func (s *Store) SearchCodepointNames(ctx context.Context, fragment string, limit int) ([]CodepointRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	pattern := "%" + escapeLike(strings.ToUpper(fragment)) + "%"

	var out []CodepointRecord
	err := s.Query(ctx, `
		SELECT code, name, grp FROM reference_chars
		WHERE UPPER(name) LIKE ? ESCAPE '\'
		ORDER BY LENGTH(code), code
		LIMIT ?`,
		func(row Row) error {
			var r CodepointRecord
			if err := row.Scan(&r.Codepoint, &r.Name, &r.Block); err != nil {
				return err
			}
			out = append(out, r)
			return nil
		}, pattern, limit)
	return out, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// BlockFor returns the narrowest block containing r.
func (s *Store) BlockFor(ctx context.Context, r rune) (rec BlockRecord, ok bool, err error) {
	err = s.Query(ctx, `
		SELECT name, range_start, range_end FROM reference_groups
		WHERE range_start <= ? AND range_end >= ?
		ORDER BY range_end - range_start
		LIMIT 1`,
		func(row Row) error {
			var start, end int64
			if err := row.Scan(&rec.Name, &start, &end); err != nil {
				return err
			}
			rec.RangeStart, rec.RangeEnd = rune(start), rune(end)
			ok = true
			return nil
		}, int64(r), int64(r))
	return rec, ok, err
}

// =============================================================================
// TRANSACTION HELPERS
// =============================================================================

// UpsertRepo inserts or replaces one repository.
func (t *Tx) UpsertRepo(rec RepoRecord) error {
	_, err := t.Exec(upsertRepoSQL, rec.Owner, rec.Name, rec.Payload)
	return wrap("upsert repo", err)
}

// UpsertCodepoint inserts or replaces one character row.
func (t *Tx) UpsertCodepoint(rec CodepointRecord) error {
	_, err := t.Exec(
		"INSERT OR REPLACE INTO reference_chars (code, name, grp) VALUES (?, ?, ?)",
		rec.Codepoint, rec.Name, rec.Block)
	return wrap("upsert codepoint", err)
}

// UpsertBlock inserts or replaces one block row.
func (t *Tx) UpsertBlock(rec BlockRecord) error {
	_, err := t.Exec(
		"INSERT OR REPLACE INTO reference_groups (name, range_start, range_end) VALUES (?, ?, ?)",
		rec.Name, int64(rec.RangeStart), int64(rec.RangeEnd))
	return wrap("upsert block", err)
}

// CountCodepoints counts reference_chars inside the transaction.
func (t *Tx) CountCodepoints() (int, error) {
	var n int
	err := t.QueryRow("SELECT COUNT(*) FROM reference_chars").Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, wrap("count codepoints", err)
}

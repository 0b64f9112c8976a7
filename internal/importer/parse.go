// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/devtoolbox/internal/storage"
)

// ParseError is a seed line whose fields are present but unusable.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Is reports ErrImport.
func (e *ParseError) Is(target error) bool { return target == ErrImport }

const maxLine = 1 << 20

// openSeed opens path, returning a nil reader when the file does not exist.
func openSeed(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrImport, path, err)
	}
	return f, nil
}

// parseChars reads "code;name;block[;...]" lines. Lines with fewer than
// three fields are skipped; a bad hex code is an error.
func parseChars(r io.Reader, path string) ([]storage.CodepointRecord, error) {
	var out []storage.CodepointRecord

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ";")
		if len(fields) < 3 {
			continue
		}
		code, err := storage.NormalizeCodepoint(fields[0])
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Msg: fmt.Sprintf("bad codepoint %q", strings.TrimSpace(fields[0]))}
		}
		out = append(out, storage.CodepointRecord{
			Codepoint: code,
			Name:      strings.TrimSpace(fields[1]),
			Block:     strings.TrimSpace(fields[2]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrImport, path, err)
	}
	return out, nil
}

// parseBlocks reads "start..end; name" lines. Comments (#), blank lines and
// lines without a ';' are skipped; a bad range is an error.
func parseBlocks(r io.Reader, path string) ([]storage.BlockRecord, error) {
	var out []storage.BlockRecord

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		rng, name, ok := strings.Cut(text, ";")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)

		lo, hi, ok := strings.Cut(strings.TrimSpace(rng), "..")
		if !ok || name == "" {
			return nil, &ParseError{Path: path, Line: line, Msg: fmt.Sprintf("malformed block %q", text)}
		}
		start, err1 := storage.ParseCodepoint(lo)
		end, err2 := storage.ParseCodepoint(hi)
		if err1 != nil || err2 != nil || start > end {
			return nil, &ParseError{Path: path, Line: line, Msg: fmt.Sprintf("bad range %q", strings.TrimSpace(rng))}
		}
		out = append(out, storage.BlockRecord{Name: name, RangeStart: start, RangeEnd: end})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrImport, path, err)
	}
	return out, nil
}

func loadChars(path string) ([]storage.CodepointRecord, error) {
	f, err := openSeed(path)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return parseChars(f, path)
}

func loadBlocks(path string) ([]storage.BlockRecord, error) {
	f, err := openSeed(path)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return parseBlocks(f, path)
}

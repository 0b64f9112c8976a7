// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes tool results to files for the Ctrl+E binding.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/devtoolbox/internal/util"
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is one tool's exportable result set.
type Document struct {
	// Name is the output file name without extension, e.g. "org_results".
	Name string

	// Title heads the Markdown rendering.
	Title string

	// Data is marshaled as-is by the JSON exporter.
	Data any

	// Headers and Rows are the tabular view used by the Markdown exporter.
	Headers []string
	Rows    [][]string
}

// =============================================================================
// FORMATS
// =============================================================================

// Exporter renders a Document into one file format.
type Exporter interface {
	Export(doc *Document) ([]byte, error)

	// FileExtension includes the dot.
	FileExtension() string
}

// ForFormat returns the exporter for a config format name.
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return NewJSONExporter(), nil
	case "markdown", "md":
		return NewMarkdownExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
}

// Options is the [export] config section.
type Options struct {
	// OutputDir defaults to the working directory.
	OutputDir string

	// Format is "json" (default) or "markdown".
	Format string
}

// DefaultOptions exports JSON into the working directory.
func DefaultOptions() *Options {
	return &Options{OutputDir: ".", Format: "json"}
}

// ToFile renders doc in the configured format and writes it atomically to
// <OutputDir>/<Name><ext>, replacing an earlier export of the same tool.
// Returns the path written.
func ToFile(doc *Document, opts *Options) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	exporter, err := ForFormat(opts.Format)
	if err != nil {
		return "", err
	}
	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", doc.Name, err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, sanitizeFilename(doc.Name)+exporter.FileExtension())
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// sanitizeFilename keeps a document name usable as a file name on every
// platform. Names are cut at 50 runes.
func sanitizeFilename(s string) string {
	if r := []rune(s); len(r) > 50 {
		s = string(r[:50])
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r), r < 32, r == 127:
			return '-'
		}
		return r
	}, s)
	if s == "" {
		return "results"
	}
	return s
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

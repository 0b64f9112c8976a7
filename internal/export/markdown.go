// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders Document.Headers and Rows as a Markdown table.
type MarkdownExporter struct {
	now func() time.Time
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{now: time.Now}
}

// Export converts a document to Markdown.
func (e *MarkdownExporter) Export(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if len(doc.Headers) == 0 {
		return nil, fmt.Errorf("document %q has no table headers", doc.Name)
	}

	var sb strings.Builder

	title := doc.Title
	if title == "" {
		title = doc.Name
	}
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString(fmt.Sprintf("_Exported %s by devtoolbox, %d rows._\n\n", formatTimestamp(e.now()), len(doc.Rows)))

	sb.WriteString("| " + strings.Join(escapeCells(doc.Headers), " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(doc.Headers)) + "\n")
	for _, row := range doc.Rows {
		cells := make([]string, len(doc.Headers))
		copy(cells, row)
		sb.WriteString("| " + strings.Join(escapeCells(cells), " | ") + " |\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// escapeCells makes cell text safe inside a table row.
func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	r := strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")
	for i, c := range cells {
		out[i] = r.Replace(c)
	}
	return out
}

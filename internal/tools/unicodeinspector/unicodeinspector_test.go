// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package unicodeinspector

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devtoolbox/internal/export"
	"github.com/jeranaias/devtoolbox/internal/storage"
	"github.com/jeranaias/devtoolbox/internal/tools"
)

type flag struct{ atomic.Bool }

func (f *flag) Ready() bool { return f.Load() }

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	ctx := context.Background()
	s, err := storage.Open(ctx, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	err = s.Transaction(ctx, func(tx *storage.Tx) error {
		for _, c := range []storage.CodepointRecord{
			{Codepoint: "0041", Name: "LATIN CAPITAL LETTER A", Block: "Lu"},
			{Codepoint: "0065", Name: "LATIN SMALL LETTER E", Block: "Ll"},
			{Codepoint: "0301", Name: "COMBINING ACUTE ACCENT", Block: "Mn"},
			{Codepoint: "1F600", Name: "GRINNING FACE", Block: "So"},
		} {
			if err := tx.UpsertCodepoint(c); err != nil {
				return err
			}
		}
		for _, b := range []storage.BlockRecord{
			{Name: "Basic Latin", RangeStart: 0x0000, RangeEnd: 0x007F},
			{Name: "Combining Diacritical Marks", RangeStart: 0x0300, RangeEnd: 0x036F},
		} {
			if err := tx.UpsertBlock(b); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return s
}

func typeText(t *testing.T, tool *Tool, s string) {
	t.Helper()
	_, err := tool.HandleInput(context.Background(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	require.NoError(t, err)
}

func press(tool *Tool, k tea.KeyType) (string, error) {
	return tool.HandleInput(context.Background(), tea.KeyMsg{Type: k})
}

func TestEncode(t *testing.T) {
	tests := []struct {
		in   string
		want Encodings
	}{
		{"A", Encodings{UTF8: "41", UTF16BE: "00 41", UTF16LE: "41 00", Width: 1}},
		{"€", Encodings{UTF8: "E2 82 AC", UTF16BE: "20 AC", UTF16LE: "AC 20", Width: 1}},
		{"中", Encodings{UTF8: "E4 B8 AD", UTF16BE: "4E 2D", UTF16LE: "2D 4E", Width: 2}},
		{"😀", Encodings{UTF8: "F0 9F 98 80", UTF16BE: "D8 3D DE 00", UTF16LE: "3D D8 00 DE", Width: 2}},
	}
	for _, tt := range tests {
		got, err := Encode(tt.in)
		require.NoError(t, err)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Encode(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestNormalize(t *testing.T) {
	f := Normalize("e\u0301")
	assert.Equal(t, "\u00e9", f.NFC)
	assert.Equal(t, 1, f.NFCRunes)
	assert.Equal(t, "e\u0301", f.NFD)
	assert.Equal(t, 2, f.NFDRunes)
}

func TestAnalyze_GraphemesAndSequentialMode(t *testing.T) {
	tool := New(seededStore(t), nil, nil, nil)
	typeText(t, tool, "Ae\u0301")

	status, err := press(tool, tea.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "Analyzed 2 graphemes", status)

	res := tool.Results()
	require.Len(t, res, 2)
	assert.Equal(t, "U+0041", res[0].Codepoint)
	assert.Equal(t, "Basic Latin", res[0].Block)
	assert.Equal(t, "Lu", res[0].Group)
	assert.Equal(t, "e\u0301", res[1].Char)
	assert.Equal(t, "U+0065", res[1].Codepoint)
	assert.Equal(t, "65 CC 81", res[1].UTF8)

	status, err = press(tool, tea.KeyCtrlA)
	require.NoError(t, err)
	assert.Equal(t, "Sequential Mode: Yes", status)

	status, err = press(tool, tea.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "Analyzed 2 graphemes", status)

	res = tool.Results()
	require.Len(t, res, 3)
	assert.Equal(t, "COMBINING ACUTE ACCENT", res[2].Name)
	assert.Equal(t, "Combining Diacritical Marks", res[2].Block)

	view := tool.View(100, 60)
	assert.Contains(t, view, "NFC")
	assert.Contains(t, view, "COMBINING ACUTE ACCENT")
}

func TestAnalyze_UnknownAndBlockFallback(t *testing.T) {
	tool := New(seededStore(t), nil, nil, nil)
	typeText(t, tool, "€😀")

	_, err := press(tool, tea.KeyEnter)
	require.NoError(t, err)
	res := tool.Results()
	require.Len(t, res, 2)

	assert.Empty(t, res[0].Name)
	assert.Empty(t, res[0].Block)
	assert.Equal(t, "GRINNING FACE", res[1].Name)
	assert.Equal(t, "So", res[1].Block, "no range covers it, so the group is used")
	assert.Contains(t, tool.View(100, 60), "(not in database)")
}

func TestAnalyze_EmptyTextKeepsResults(t *testing.T) {
	tool := New(seededStore(t), nil, nil, nil)
	typeText(t, tool, "A")
	_, err := press(tool, tea.KeyEnter)
	require.NoError(t, err)

	press(tool, tea.KeyBackspace)
	_, err = press(tool, tea.KeyEnter)
	assert.ErrorIs(t, err, tools.ErrInput)
	assert.Len(t, tool.Results(), 1)
}

func TestLookup(t *testing.T) {
	tool := New(seededStore(t), nil, nil, nil)

	status, err := press(tool, tea.KeyCtrlL)
	require.NoError(t, err)
	assert.Equal(t, "No lookup input", status)

	press(tool, tea.KeyDown)
	typeText(t, tool, "u+41")
	status, err = press(tool, tea.KeyCtrlL)
	require.NoError(t, err)
	assert.Equal(t, "Found 1 characters", status)
	assert.Equal(t, "LATIN CAPITAL LETTER A", tool.Results()[0].Name)

	for range "u+41" {
		press(tool, tea.KeyBackspace)
	}
	typeText(t, tool, "zz")
	_, err = press(tool, tea.KeyCtrlL)
	var ie *tools.InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "codepoint", ie.Field)
	assert.Len(t, tool.Results(), 1, "failed lookup leaves results alone")

	press(tool, tea.KeyBackspace)
	press(tool, tea.KeyBackspace)
	typeText(t, tool, "10FFFF")
	status, err = press(tool, tea.KeyCtrlL)
	require.NoError(t, err)
	assert.Equal(t, "Found 0 characters", status)
	assert.Empty(t, tool.Results())

	for range "10FFFF" {
		press(tool, tea.KeyBackspace)
	}
	press(tool, tea.KeyDown)
	typeText(t, tool, "latin")
	status, err = press(tool, tea.KeyCtrlL)
	require.NoError(t, err)
	assert.Equal(t, "Found 2 characters", status)
	assert.Equal(t, "U+0041", tool.Results()[0].Codepoint)
}

func TestLookup_Surrogates(t *testing.T) {
	store := seededStore(t)
	require.NoError(t, store.Transaction(context.Background(), func(tx *storage.Tx) error {
		return tx.UpsertCodepoint(storage.CodepointRecord{Codepoint: "D800", Name: "<Non Private Use High Surrogate, First>", Block: "Cs"})
	}))
	tool := New(store, nil, nil, nil)

	press(tool, tea.KeyDown)
	typeText(t, tool, "u+41")
	_, err := press(tool, tea.KeyCtrlL)
	require.NoError(t, err)
	for range "u+41" {
		press(tool, tea.KeyBackspace)
	}

	typeText(t, tool, "D800")
	_, err = press(tool, tea.KeyCtrlL)
	var ie *tools.InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "codepoint", ie.Field)
	require.Len(t, tool.Results(), 1)
	assert.Equal(t, "U+0041", tool.Results()[0].Codepoint)

	for range "D800" {
		press(tool, tea.KeyBackspace)
	}
	press(tool, tea.KeyDown)
	typeText(t, tool, "surrogate")
	status, err := press(tool, tea.KeyCtrlL)
	require.NoError(t, err)
	assert.Equal(t, "Found 1 characters", status)

	res := tool.Results()
	require.Len(t, res, 1)
	assert.Equal(t, "U+D800", res[0].Codepoint)
	assert.Empty(t, res[0].Char)
	assert.Empty(t, res[0].UTF8)
	assert.Empty(t, res[0].UTF16BE)
	assert.Contains(t, tool.View(100, 60), "no encoding (surrogate)")
}

func TestLoadingUntilReady(t *testing.T) {
	ready := &flag{}
	tool := New(seededStore(t), ready, nil, nil)

	assert.True(t, tool.Busy())
	assert.Contains(t, tool.View(80, 24), "Loading Unicode Database...")

	typeText(t, tool, "A")
	_, err := press(tool, tea.KeyEnter)
	assert.ErrorIs(t, err, tools.ErrInput)

	ready.Store(true)
	assert.False(t, tool.Busy())
	assert.NotContains(t, tool.View(80, 24), "Loading")
	_, err = press(tool, tea.KeyEnter)
	assert.NoError(t, err)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	tool := New(seededStore(t), nil, &export.Options{OutputDir: dir, Format: "json"}, nil)

	_, err := press(tool, tea.KeyCtrlE)
	assert.ErrorIs(t, err, tools.ErrInput)

	typeText(t, tool, "A")
	_, err = press(tool, tea.KeyEnter)
	require.NoError(t, err)
	status, err := press(tool, tea.KeyCtrlE)
	require.NoError(t, err)
	assert.Equal(t, "Exported to "+filepath.Join(dir, ExportName+".json"), status)

	data, err := os.ReadFile(filepath.Join(dir, ExportName+".json"))
	require.NoError(t, err)
	var got []CharInfo
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "U+0041", got[0].Codepoint)
	assert.Equal(t, "00 41", got[0].UTF16BE)
}

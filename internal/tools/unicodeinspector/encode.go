// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package unicodeinspector

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// Encodings are the byte forms of one character, as space separated hex.
type Encodings struct {
	UTF8    string `json:"utf8"`
	UTF16BE string `json:"utf16be"`
	UTF16LE string `json:"utf16le"`
	Width   int    `json:"width"`
}

// Encode returns the UTF-8, UTF-16 and display width of s.
func Encode(s string) (Encodings, error) {
	be, err := xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM).NewEncoder().String(s)
	if err != nil {
		return Encodings{}, fmt.Errorf("utf-16be: %w", err)
	}
	le, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewEncoder().String(s)
	if err != nil {
		return Encodings{}, fmt.Errorf("utf-16le: %w", err)
	}
	return Encodings{
		UTF8:    fmt.Sprintf("% X", s),
		UTF16BE: fmt.Sprintf("% X", be),
		UTF16LE: fmt.Sprintf("% X", le),
		Width:   runewidth.StringWidth(s),
	}, nil
}

// Forms holds the normalization forms of the analyzed text.
type Forms struct {
	NFC      string `json:"nfc"`
	NFD      string `json:"nfd"`
	NFCRunes int    `json:"nfc_runes"`
	NFDRunes int    `json:"nfd_runes"`
}

// Normalize returns the NFC and NFD forms of s.
func Normalize(s string) Forms {
	nfc := norm.NFC.String(s)
	nfd := norm.NFD.String(s)
	return Forms{
		NFC:      nfc,
		NFD:      nfd,
		NFCRunes: len([]rune(nfc)),
		NFDRunes: len([]rune(nfd)),
	}
}

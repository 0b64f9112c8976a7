// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jwtdecoder implements the JWT Decoder tool. Tokens are decoded
// without verifying the signature.
package jwtdecoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jeranaias/devtoolbox/internal/tools"
	"github.com/jeranaias/devtoolbox/internal/ui/components"
	"github.com/jeranaias/devtoolbox/internal/ui/styles"
)

// Name is the tab label.
const Name = "JWT Decoder"

// Decoded is a token split into its readable parts.
type Decoded struct {
	Header    string
	Payload   string
	Algorithm string
	Signed    bool
	Times     []Timestamp
}

// Timestamp is one registered time claim.
type Timestamp struct {
	Claim string
	Time  time.Time
}

// Decode parses token without verifying it.
func Decode(token string) (*Decoded, error) {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		return nil, tools.InputErrorf("token", "paste a token to decode")
	}

	// A missing or unregistered alg only matters for verification; the
	// header and claims are already decoded by then.
	claims := jwt.MapClaims{}
	tok, parts, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil && (tok == nil || !errors.Is(err, jwt.ErrTokenUnverifiable)) {
		return nil, tools.InputErrorf("token", "%v", err)
	}

	header, err := json.MarshalIndent(tok.Header, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	payload, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode claims: %w", err)
	}

	d := &Decoded{
		Header:  string(header),
		Payload: string(payload),
		Signed:  len(parts) == 3 && parts[2] != "",
	}
	d.Algorithm = "unknown"
	if tok.Method != nil {
		d.Algorithm = tok.Method.Alg()
	} else if alg, ok := tok.Header["alg"].(string); ok && alg != "" {
		d.Algorithm = alg
	}

	for _, c := range []struct {
		name string
		get  func() (*jwt.NumericDate, error)
	}{
		{"exp", claims.GetExpirationTime},
		{"iat", claims.GetIssuedAt},
		{"nbf", claims.GetNotBefore},
	} {
		// Claims that are not NumericDates stay visible in the payload only.
		nd, err := c.get()
		if err == nil && nd != nil {
			d.Times = append(d.Times, Timestamp{Claim: c.name, Time: nd.Time})
		}
	}
	return d, nil
}

// Tool is the JWT Decoder tab.
type Tool struct {
	theme *styles.Theme
	now   func() time.Time

	mu      sync.RWMutex
	token   components.Field
	decoded *Decoded
}

// New creates the tool.
func New() *Tool {
	f := components.NewField("Token", "eyJhbGciOi...")
	f.Focus()
	return &Tool{
		theme: styles.Default(),
		now:   time.Now,
		token: f,
	}
}

// Name implements tools.Tool.
func (t *Tool) Name() string { return Name }

// SaveCache implements tools.Tool. Tokens are never persisted.
func (t *Tool) SaveCache(context.Context) error { return nil }

// Decoded returns the last successfully decoded token, or nil.
func (t *Tool) Decoded() *Decoded {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.decoded
}

// HandleInput implements tools.Tool.
func (t *Tool) HandleInput(_ context.Context, msg tea.Msg) (string, error) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	if key.Type == tea.KeyEnter {
		t.mu.RLock()
		raw := t.token.Value()
		t.mu.RUnlock()

		d, err := Decode(raw)
		if err != nil {
			return "", err
		}
		t.mu.Lock()
		t.decoded = d
		t.mu.Unlock()
		return "Decoded " + d.Algorithm + " token", nil
	}

	t.mu.Lock()
	t.token = t.token.Update(key)
	t.mu.Unlock()
	return "", nil
}

// View implements tools.Tool.
func (t *Tool) View(width, height int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	th := t.theme

	field := t.token.View(th, width)
	var lines []string
	if t.decoded == nil {
		lines = append(lines, th.Muted.Render("Paste a token and press Enter. The signature is not verified."))
	} else {
		d := t.decoded
		lines = append(lines, th.Title.Render("Header"), components.Highlight(th, d.Header, "json"))
		lines = append(lines, th.Title.Render("Payload"), components.Highlight(th, d.Payload, "json"))
		now := t.now()
		for _, ts := range d.Times {
			lines = append(lines, th.Label.Render(ts.Claim)+" "+th.Value.Render(ts.Time.UTC().Format(time.RFC3339))+
				" "+th.Muted.Render(relative(ts, now)))
		}
		if !d.Signed {
			lines = append(lines, th.StatusError.Render("unsigned token"))
		}
	}

	remaining := height - lipgloss.Height(field)
	if remaining < 1 {
		remaining = 1
	}
	body := lipgloss.NewStyle().MaxHeight(remaining).MaxWidth(width).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, field, body)
}

func relative(ts Timestamp, now time.Time) string {
	switch ts.Claim {
	case "exp":
		if now.After(ts.Time) {
			return "(expired)"
		}
		return "(valid)"
	case "nbf":
		if now.Before(ts.Time) {
			return "(not yet valid)"
		}
	}
	return ""
}

var _ tools.Tool = (*Tool)(nil)

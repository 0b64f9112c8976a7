// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package secrets loads the GitHub access token used by the network tools.
//
// The token is looked up in this order:
//   - the --env file (default .env in the working directory)
//   - <user config dir>/devtoolbox/.env
//   - the process environment
//
// It is held as a byte slice so Destroy can zero it on shutdown.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/subosito/gotenv"
	"golang.org/x/oauth2"
)

// TokenVar is the environment variable holding the GitHub token.
const TokenVar = "GITHUB_TOKEN"

// DefaultEnvFile is the .env file consulted first.
const DefaultEnvFile = ".env"

// ErrMissingToken is returned by Load when no token could be found.
var ErrMissingToken = errors.New("GITHUB_TOKEN not set")

// SetupHelp is printed alongside ErrMissingToken at startup.
const SetupHelp = `devtoolbox needs a GitHub personal access token.

Create one at https://github.com/settings/tokens (no scopes are required for
public data) and provide it in one of these ways:

  1. A .env file in the current directory:       GITHUB_TOKEN=ghp_...
  2. A file passed with --env:                   devtoolbox --env path/to/file
  3. %s
  4. The environment:                             export GITHUB_TOKEN=ghp_...
`

// Secrets holds process-lifetime credentials.
type Secrets struct {
	mu     sync.RWMutex
	token  []byte
	source string
}

// Load resolves the GitHub token. envFile may be empty for DefaultEnvFile.
// configDir is the devtoolbox config directory; empty skips that lookup.
func Load(envFile, configDir string) (*Secrets, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	candidates := []string{envFile}
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, ".env"))
	}

	for _, path := range candidates {
		env, err := readEnvFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if tok := strings.TrimSpace(env[TokenVar]); tok != "" {
			return New(tok, path), nil
		}
	}

	if tok := strings.TrimSpace(os.Getenv(TokenVar)); tok != "" {
		return New(tok, "environment"), nil
	}
	return nil, ErrMissingToken
}

// New wraps a token directly. source is informational.
func New(token, source string) *Secrets {
	return &Secrets{token: []byte(token), source: source}
}

// Help renders SetupHelp for the given config directory.
func Help(configDir string) string {
	where := "A .env file in the devtoolbox config directory"
	if configDir != "" {
		where = fmt.Sprintf("%-46s GITHUB_TOKEN=ghp_...", filepath.Join(configDir, ".env")+":")
	}
	return fmt.Sprintf(SetupHelp, where)
}

func readEnvFile(path string) (gotenv.Env, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gotenv.StrictParse(f)
}

// GitHubToken returns a copy of the token. Empty after Destroy.
func (s *Secrets) GitHubToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.token)
}

// Source reports where the token was found.
func (s *Secrets) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Token implements oauth2.TokenSource.
func (s *Secrets) Token() (*oauth2.Token, error) {
	tok := s.GitHubToken()
	if tok == "" {
		return nil, ErrMissingToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// Destroy zeroes the token in place.
func (s *Secrets) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.token {
		s.token[i] = 0
	}
	s.token = nil
}

// String never reveals the token.
func (s *Secrets) String() string {
	return "Secrets{github_token: [REDACTED]}"
}

var _ oauth2.TokenSource = (*Secrets)(nil)

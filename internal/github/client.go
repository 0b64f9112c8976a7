// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrRemote matches every *RemoteError.
var ErrRemote = errors.New("github request failed")

// RemoteError is a failed GitHub call: a transport failure (StatusCode 0),
// a non-success status, or an undecodable body. Requests are never retried.
type RemoteError struct {
	StatusCode int
	Status     string
	URL        string
	Message    string
	Cause      error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString("GitHub API error")
	if e.Status != "" {
		b.WriteString(": ")
		b.WriteString(e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error { return e.Cause }

// Is reports ErrRemote.
func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

// remoteError converts a go-github failure. resp is nil when the request
// never got a response.
func remoteError(path string, resp *gh.Response, err error) error {
	re := &RemoteError{URL: path, Cause: err}
	if resp != nil && resp.Response != nil {
		re.StatusCode = resp.StatusCode
		re.Status = resp.Status
		if resp.Request != nil {
			re.URL = resp.Request.URL.String()
		}
	}

	var (
		errResp *gh.ErrorResponse
		rateErr *gh.RateLimitError
		abuse   *gh.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &errResp):
		re.Message, re.Cause = errResp.Message, nil
	case errors.As(err, &rateErr):
		re.Message, re.Cause = rateErr.Message, nil
	case errors.As(err, &abuse):
		re.Message, re.Cause = abuse.Message, nil
	case re.StatusCode >= 200 && re.StatusCode < 300:
		re.Message = "failed to decode response"
	}
	return re
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the GitHub client.
type ClientConfig struct {
	// BaseURL is the REST endpoint (default: https://api.github.com)
	BaseURL string

	// Timeout bounds each request (default: 30s)
	Timeout time.Duration

	// UserAgent is sent with every request; GitHub rejects requests without one.
	UserAgent string

	// RequestsPerSecond and Burst throttle calls client-side. Zero disables.
	RequestsPerSecond float64
	Burst             int

	// TokenSource supplies the bearer token. Nil sends unauthenticated requests.
	TokenSource oauth2.TokenSource
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "https://api.github.com",
		Timeout:           30 * time.Second,
		UserAgent:         "Dev-Toolbox/1.0",
		RequestsPerSecond: 5,
		Burst:             5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client calls the GitHub REST API. It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	api        *gh.Client
	limiter    *rate.Limiter
}

// NewClient creates a client with the given configuration. Zero values are
// filled from DefaultConfig.
func NewClient(config *ClientConfig) (*Client, error) {
	d := DefaultConfig()
	if config == nil {
		config = d
	}
	cfg := *config
	if cfg.BaseURL == "" {
		cfg.BaseURL = d.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = d.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = d.UserAgent
	}

	base, err := url.Parse(cfg.BaseURL + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API base URL %q", cfg.BaseURL)
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.TokenSource != nil {
		transport = &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, cfg.TokenSource),
			Base:   http.DefaultTransport,
		}
	}
	httpClient := &http.Client{Timeout: cfg.Timeout, Transport: transport}

	api := gh.NewClient(httpClient)
	api.BaseURL = base
	api.UserAgent = cfg.UserAgent

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		config:     &cfg,
		httpClient: httpClient,
		api:        api,
		limiter:    limiter,
	}, nil
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string { return c.config.BaseURL }

func (c *Client) wait(ctx context.Context, path string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RemoteError{URL: path, Message: "rate limiter", Cause: err}
	}
	return nil
}

// SearchOrgs searches organizations. query is GitHub search syntax without
// the type qualifier, e.g. "org:golang tools". Only the first page is read.
func (c *Client) SearchOrgs(ctx context.Context, query string) ([]Organization, error) {
	const path = "search/users"
	if err := c.wait(ctx, path); err != nil {
		return nil, err
	}

	res, resp, err := c.api.Search.Users(ctx, query+" type:org", &gh.SearchOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, remoteError(path, resp, err)
	}

	orgs := make([]Organization, 0, len(res.Users))
	for _, u := range res.Users {
		orgs = append(orgs, organizationFrom(u))
	}
	return orgs, nil
}

// ListRepos lists public repositories owned by a user or organization.
// Only the first page is read.
func (c *Client) ListRepos(ctx context.Context, owner string) ([]Repository, error) {
	path := "users/" + owner + "/repos"
	if err := c.wait(ctx, path); err != nil {
		return nil, err
	}

	list, resp, err := c.api.Repositories.List(ctx, owner, &gh.RepositoryListOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, remoteError(path, resp, err)
	}

	repos := make([]Repository, 0, len(list))
	for _, r := range list {
		repos = append(repos, repositoryFrom(r))
	}
	return repos, nil
}

// ListReleases lists releases of owner/repo.
func (c *Client) ListReleases(ctx context.Context, owner, repo string) ([]Release, error) {
	path := "repos/" + owner + "/" + repo + "/releases"
	if err := c.wait(ctx, path); err != nil {
		return nil, err
	}

	list, resp, err := c.api.Repositories.ListReleases(ctx, owner, repo, nil)
	if err != nil {
		return nil, remoteError(path, resp, err)
	}

	releases := make([]Release, 0, len(list))
	for _, r := range list {
		releases = append(releases, releaseFrom(r))
	}
	return releases, nil
}

// IsNotFound reports whether err is a 404 from GitHub.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// String describes the client for logs.
func (c *Client) String() string {
	return fmt.Sprintf("github.Client{%s}", c.config.BaseURL)
}

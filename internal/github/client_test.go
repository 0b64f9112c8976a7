// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(&ClientConfig{
		BaseURL:     srv.URL + "/",
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}),
	})
	require.NoError(t, err)
	return c
}

func TestSearchOrgs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/users", r.URL.Path)
		assert.Equal(t, "org:golang tools type:org", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "Dev-Toolbox/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))
		w.Write([]byte(`{"total_count":2,"items":[{"login":"golang","url":"u1"},{"login":"gotools","url":"u2"}]}`))
	})

	orgs, err := c.SearchOrgs(context.Background(), "org:golang tools")
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "golang", orgs[0].Login)
}

func TestListReposAndReleases(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/acme/repos":
			w.Write([]byte(`[{"name":"widget","stargazers_count":7,"language":"Go","created_at":"2024-01-02T03:04:05Z","pushed_at":null}]`))
		case "/repos/acme/widget/releases":
			w.Write([]byte(`[{"tag_name":"v1.0.0","assets":[{"name":"widget.tar.gz"}]}]`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	repos, err := c.ListRepos(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, 7, repos[0].StargazersCount)
	assert.Equal(t, 2024, repos[0].CreatedAt.Year())
	assert.True(t, repos[0].PushedAt.IsZero())

	rels, err := c.ListReleases(ctx, "acme", "widget")
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "widget.tar.gz", rels[0].Assets[0].Name)
}

func TestRemoteError_Status(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	})

	_, err := c.ListRepos(context.Background(), "acme")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemote))

	var re *RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
	assert.Contains(t, err.Error(), "API rate limit exceeded")
	assert.False(t, IsNotFound(err))
}

func TestRemoteError_NotFound(t *testing.T) {
	c := newTestClient(t, http.NotFound)

	_, err := c.ListReleases(context.Background(), "acme", "missing")
	assert.True(t, IsNotFound(err))
}

func TestRemoteError_BadBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := c.SearchOrgs(context.Background(), "x")
	require.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestRemoteError_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := NewClient(&ClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.SearchOrgs(context.Background(), "x")
	require.ErrorIs(t, err, ErrRemote)

	var re *RemoteError
	require.True(t, errors.As(err, &re))
	assert.Zero(t, re.StatusCode)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com", c.BaseURL())
	assert.Equal(t, "https://api.github.com/", c.api.BaseURL.String())
	assert.Equal(t, DefaultConfig().Timeout, c.httpClient.Timeout)
}

func TestNewClient_BadBaseURL(t *testing.T) {
	_, err := NewClient(&ClientConfig{BaseURL: "not a url"})
	assert.Error(t, err)
}

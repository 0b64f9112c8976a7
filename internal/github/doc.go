// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package github is a small GitHub REST client for the devtoolbox tools.
//
// It wraps go-github. Requests carry the token from a secrets.Secrets (an
// oauth2.TokenSource), are throttled client-side with a token bucket and are
// never retried. Any failure is a *RemoteError matching ErrRemote. Results
// are converted to this package's types, which are what the tools cache and
// export.
//
//	client, err := github.NewClient(&github.ClientConfig{
//	    BaseURL:     cfg.GitHubAPIBaseURL,
//	    Timeout:     30 * time.Second,
//	    TokenSource: secrets,
//	})
//	orgs, err := client.SearchOrgs(ctx, "org:golang tools")
package github

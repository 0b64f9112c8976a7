// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"time"

	gh "github.com/google/go-github/v68/github"
)

// Organization is one item of a user search restricted to organizations.
type Organization struct {
	Login      string `json:"login"`
	URL        string `json:"url"`
	HTMLURL    string `json:"html_url,omitempty"`
	Email      string `json:"email,omitempty"`
	WebsiteURL string `json:"website_url,omitempty"`
}

// Repository is the subset of a repo the explorer shows and caches. Releases
// is not part of the /repos payload; the explorer fills it from a second call.
type Repository struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name,omitempty"`
	Description     string    `json:"description,omitempty"`
	Language        string    `json:"language,omitempty"`
	StargazersCount int       `json:"stargazers_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
	Releases        []Release `json:"releases"`
}

// Release is one published release.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a file attached to a release.
type Asset struct {
	Name string `json:"name"`
}

func organizationFrom(u *gh.User) Organization {
	return Organization{
		Login:      u.GetLogin(),
		URL:        u.GetURL(),
		HTMLURL:    u.GetHTMLURL(),
		Email:      u.GetEmail(),
		WebsiteURL: u.GetBlog(),
	}
}

func repositoryFrom(r *gh.Repository) Repository {
	return Repository{
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Description:     r.GetDescription(),
		Language:        r.GetLanguage(),
		StargazersCount: r.GetStargazersCount(),
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		PushedAt:        r.GetPushedAt().Time,
	}
}

func releaseFrom(r *gh.RepositoryRelease) Release {
	rel := Release{TagName: r.GetTagName()}
	for _, a := range r.Assets {
		rel.Assets = append(rel.Assets, Asset{Name: a.GetName()})
	}
	return rel
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package repoexplorer

import (
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/jeranaias/devtoolbox/internal/github"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// latestTag is the highest stable semver tag. Without one it is the first
// listed release, which GitHub orders newest first.
func latestTag(r github.Repository) string {
	if len(r.Releases) == 0 {
		return ""
	}

	var (
		best    *semver.Version
		bestTag string
	)
	for _, rel := range r.Releases {
		v, err := semver.NewVersion(rel.TagName)
		if err != nil || v.Prerelease() != "" {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestTag = v, rel.TagName
		}
	}
	if best == nil {
		return r.Releases[0].TagName
	}
	return bestTag
}

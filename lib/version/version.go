// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/swfpack/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// shortCommitLength matches git's default abbreviation.
const shortCommitLength = 7

// buildInfo holds the resolved commit, dirty flag, and build time.
type buildInfo struct {
	commit string
	dirty  bool
	time   string
}

// resolve combines the ldflags values with the toolchain's VCS stamp.
// Injected values win.
func resolve(settings []debug.BuildSetting) buildInfo {
	info := buildInfo{commit: GitCommit, dirty: GitDirty == "true", time: BuildTime}
	if GitCommit != "unknown" {
		return info
	}
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			info.commit = setting.Value
			if len(info.commit) > shortCommitLength {
				info.commit = info.commit[:shortCommitLength]
			}
		case "vcs.modified":
			info.dirty = setting.Value == "true"
		case "vcs.time":
			if BuildTime == "unknown" {
				info.time = setting.Value
			}
		}
	}
	return info
}

func current() buildInfo {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	return resolve(settings)
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return current().format()
}

func (b buildInfo) format() string {
	dirty := ""
	if b.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, b.commit, dirty, b.time)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return current().commit
}

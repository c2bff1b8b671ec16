// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via -ldflags -X at build time. Left at their defaults, they are
// filled from the VCS stamp the go command embeds in the binary.
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// Format is the item schema version written into every saved property.
const Format = "1.3.0"

// buildSettings reads the vcs.* settings of the running binary.
var buildSettings = func() map[string]string {
	settings := make(map[string]string)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	return settings
}

func stamp() (commit, buildTime string, dirty bool) {
	commit, buildTime, dirty = GitCommit, BuildTime, GitDirty == "true"
	if commit != "unknown" {
		return commit, buildTime, dirty
	}
	settings := buildSettings()
	if revision := settings["vcs.revision"]; revision != "" {
		commit = revision[:min(len(revision), 12)]
		dirty = settings["vcs.modified"] == "true"
	}
	if buildTime == "unknown" && settings["vcs.time"] != "" {
		buildTime = settings["vcs.time"]
	}
	return commit, buildTime, dirty
}

// Info returns the one-line version: binary version, commit, build
// time and item format.
func Info() string {
	commit, buildTime, dirty := stamp()
	suffix := ""
	if dirty {
		suffix = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s, format %s)", Version, commit, suffix, buildTime, Format)
}

// Full returns [Info] followed by the Go toolchain and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

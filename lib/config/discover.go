// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import "os/exec"

// GhostscriptCandidates are the usual Ghostscript command names, most
// common first.
var GhostscriptCandidates = []string{"gs", "gswin64c", "gswin32c", "gsc"}

// Discover returns the first candidate for which exists reports true.
// found is false when none does.
func Discover(candidates []string, exists func(string) bool) (found bool, path string) {
	for _, candidate := range candidates {
		if candidate != "" && exists(candidate) {
			return true, candidate
		}
	}
	return false, ""
}

// OnPath reports whether name resolves through PATH. It is the usual
// predicate for [Discover].
func OnPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// GhostscriptCommand returns the configured Ghostscript command, or the
// first of [GhostscriptCandidates] accepted by exists.
func (c *Config) GhostscriptCommand(exists func(string) bool) (string, bool) {
	if c.Ghostscript.Command != "" {
		return c.Ghostscript.Command, true
	}
	found, path := Discover(GhostscriptCandidates, exists)
	return path, found
}

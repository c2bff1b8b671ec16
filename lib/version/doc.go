// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the latexplace
// binary and the format version stamped onto every saved item.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// When the commit is not injected, [Info] falls back to the vcs.*
// settings the go command records in the binary.
//
// [Format] is the item schema version written as the latex2ai_version
// attribute. It is independent of the binary version: a development
// build still writes the current schema so that items it creates are
// not mistaken for legacy ones when read back.
package version

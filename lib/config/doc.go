// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for latexplace.
//
// Configuration is loaded from a single file named by either the
// LATEXPLACE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search; without a file, callers use [Default].
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${LATEXPLACE_ROOT}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// Tool discovery is separate from loading. [Discover] picks the first
// usable candidate from a list, given a predicate that decides whether
// a candidate exists; it touches neither the filesystem nor PATH on its
// own, so callers and tests choose how existence is checked.
//
// This package depends on no other latexplace packages.
package config

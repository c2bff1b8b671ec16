// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package debugbundle packs the files of a failed compile run (engine
// log, combined source, resolved header) into one compressed tar
// archive that a user can attach to a bug report.
//
// Archives are zstd-compressed by default. LZ4 is available for large
// logs where speed matters more than ratio. The archive extension
// records the compression: ".tar.zst" or ".tar.lz4". Every bundle carries
// a SHA256SUMS manifest (see lib/binhash). [Read] reverses
// [Export] and is what tests and the CLI use to inspect a bundle.
package debugbundle

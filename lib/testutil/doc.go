// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for latexplace packages.
//
// [FakeToolchain] is a [process.Runner] that stands in for the
// typesetting engine and the page splitter. It reads the combined
// source the compile pipeline writes, produces one fixture page per
// item, and splits the result the way Ghostscript does, so the whole
// compile, persist and relink path runs without a TeX installation.
//
// [PDF] and [WritePDF] build minimal, well-formed PDF files with a
// chosen page count and page size. Each page carries a label so that
// different inputs produce different bytes.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package latex turns item markup into artifact files.
//
// A compile run writes one combined source file with one standalone page
// per item, runs the typesetting engine on it, and splits the resulting
// PDF into one file per page with Ghostscript. Page i of the output
// belongs to item i of the input. Both tools run through a
// [process.Runner] in a scratch directory.
//
// Failures are classified into a [Kind]. A markup error is the one the
// user can fix: its [Result] keeps the paths of the log, source and
// header so a diagnostic view can show them. A missing engine or splitter
// and any other failure abort the action.
//
// The user header (LaTeX2AI_header.tex next to the document) supplies
// the document class and packages. Its \input directives are inlined
// before compiling, so a header may pull in shared preamble files.
package latex

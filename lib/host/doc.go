// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package host defines the boundary between latexplace and the drawing
// application that owns documents and placed objects.
//
// A [Document] enumerates and places objects and groups mutations into
// undo transactions. An [Object] is a [placement.Object] that also
// carries a text note (where the item property is stored) and the
// hidden/locked flags that batch operations respect.
//
// Relinking may replace an object. [Rebind] converts the handle that
// [placement.Object.Relink] returns back into an [Object].
//
// Package memhost provides a file-backed implementation used by the
// CLI and tests.
package host

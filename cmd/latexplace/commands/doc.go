// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the latexplace command tree.
//
// Every document command opens the same session: configuration from
// --config or LATEXPLACE_CONFIG (falling back to built-in defaults), the
// artifact store next to the document, the document itself, the
// compile pipeline and the item model. Mutating commands save the
// document when the action succeeds; a failed action leaves both the
// document file and its undo journal untouched.
//
// User interaction (diagnostic view, markup correction, confirmations)
// goes through a terminal implementation of item.UI. When stdin is not
// a terminal, diagnostics cancel and confirmations decline.
package commands

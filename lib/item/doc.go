// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package item ties an item property to a placed object in a host
// document and implements the user actions on items.
//
// A [Model] is built for one open document. Its operations each run in
// one host undo transaction:
//
//   - [Model.CreateNew] compiles a property, stores the artifact and
//     places it with its anchor at a given point.
//   - [Model.Edit] applies a changed property, recompiling only when
//     the markup (or the baseline flag) changed.
//   - [Model.RedoBatch] refits, and optionally recompiles in a single
//     engine run, a set of items, skipping hidden and locked ones.
//   - [Model.Reconcile] brings every item of a saved document in line
//     with the artifact store and removes orphaned artifact files.
//
// Compile failures are routed through the [UI]: markup errors open a
// diagnostic loop (view log, export a debug bundle, re-edit, cancel);
// missing tools abort the action with a warning and leave the document
// untouched.
package item

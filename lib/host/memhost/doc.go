// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package memhost is a host document kept in memory and persisted as a
// single CBOR file.
//
// It implements [host.Document] and [host.Object] with the geometry a
// drawing application would apply: an object's bounds are its artifact
// box drawn through the placed matrix, document-space transforms are
// composed onto the placed matrix, and relinking replaces the object
// with a fresh one that re-reads the artifact box from the linked file.
//
// Every [Document.Transaction] records a snapshot of the objects it
// started from in a bounded undo journal, which is persisted with the
// document and consumed by [Document.Undo].
package memhost

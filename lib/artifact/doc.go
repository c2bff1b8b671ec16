// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package artifact names, stores and garbage-collects the compiled PDF
// snippets that placed items link to.
//
// Artifacts live in a links directory next to the document they belong
// to. Each file is named after the document and the content hash of its
// payload:
//
//	drawing.ai
//	links/drawing_LaTeX2AI_3f9a...c1.pdf
//
// Hashing is BLAKE3 in keyed mode with a fixed domain key, computed over
// the base64 payload that the item property embeds. The file name is a
// pure function of the document name and the hash, so identical
// artifacts within one document share a single file and an item whose
// file went missing can always be restored from its embedded payload.
//
// A small CBOR index in the links directory records the page count and
// page box of every persisted artifact so hosts can size a placed object
// without reparsing the PDF.
//
// [Store.Sweep] removes artifact files no item references anymore. Files
// whose name starts with a sibling document's prefix are never touched:
// sibling documents in the same directory share the links directory.
package artifact

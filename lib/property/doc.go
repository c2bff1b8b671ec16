// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package property defines the per-item record that a placed artifact
// carries in its note: the markup, its alignment, how the host fits the
// artifact, the editor cursor, and the artifact bytes themselves.
//
// The artifact is embedded as base64 together with its content hash, so
// an item can restore its linked file when the file is gone. The hash
// always matches the payload; [Property.SetArtifact] and
// [Property.SetArtifactFile] are the only ways to change either.
//
// Properties serialize to the XML form of [paramlist.List]. Reading is
// versioned: documents written by older releases lack the embedded
// artifact or the hash method, and are upgraded on read.
package property

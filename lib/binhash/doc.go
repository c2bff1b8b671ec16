// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes SHA256 digests of diagnostic files and
// reads and writes them as a checksum manifest in the format of
// sha256sum(1), so a debug bundle can be checked with standard tools
// after it leaves the machine that produced it.
//
// These digests identify files for humans and for integrity checks
// only. Artifact identity uses the keyed BLAKE3 hash of lib/artifact.
package binhash

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pdfbox reads the two facts the rest of the system needs about
// a compiled artifact: how many pages it has and the size of its page
// box. The compile pipeline uses the page count to verify a split, the
// artifact store records the page box in its index, and the in-memory
// host uses it as the placed object's artifact box.
package pdfbox

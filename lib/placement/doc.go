// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package placement computes where a placed artifact sits in document
// space and corrects its bounding geometry after the host has rotated,
// skewed or scaled it.
//
// A placed object carries a "placed matrix" in the host's convention.
// The canonical matrix is (1, 0, 0, -1): the host flips the y axis, so an
// artifact placed this way is neither scaled nor skewed. The mapping from
// artifact coordinates to document coordinates is the placed matrix
// followed by that flip. Matrices use the PDF row-vector convention of
// [matrix.Matrix]: a point (x, y) maps to (a·x + c·y + e, b·x + d·y + f)
// and A.Mul(B) applies A first.
//
// The functions here only touch a host object through the [Object]
// interface. [ComputePosition] measures anchor points, [MoveItem] moves
// an object until an anchor reaches a target, and [RedoBoundary]
// restores the canonical matrix while keeping the rotation and the
// anchor point, which gives the object a tight, unskewed bounding box
// again.
package placement

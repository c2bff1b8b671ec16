// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package placement

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Object is the host capability this package needs from a placed
// object. Every call may fail because the host may reject it.
type Object interface {
	// Bounds returns the axis-aligned document-space bounding box of
	// the object as the host reports it.
	Bounds() (rect.Rect, error)

	// Matrix returns the placed matrix.
	Matrix() (matrix.Matrix, error)

	// SetMatrix replaces the placed matrix.
	SetMatrix(m matrix.Matrix) error

	// Transform applies a document-space transformation to the whole
	// object.
	Transform(m matrix.Matrix) error

	// ArtifactBox returns the artifact's own page box.
	ArtifactBox() (rect.Rect, error)

	Placement() (Placement, error)
	SetPlacement(p Placement) error

	// LinkedPath returns the artifact file the object displays.
	LinkedPath() (string, error)

	// Relink points the object at path. The host may replace the
	// object in the process; the returned handle must be used from
	// then on.
	Relink(path string) (Object, error)
}

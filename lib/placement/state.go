// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package placement

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Canonical is the placed matrix of an unscaled, unskewed, unrotated
// artifact.
var Canonical = matrix.Matrix{1, 0, 0, -1, 0, 0}

// Tolerances bound the numeric comparisons of this package.
type Tolerances struct {
	// EpsPos is the largest anchor distance treated as "in place".
	EpsPos float64
	// EpsAngle is the largest angle, in radians, treated as zero.
	EpsAngle float64
	// EpsStretch is the largest deviation of a stretch factor from 1,
	// or of the axis cosine from 0, treated as none.
	EpsStretch float64
	// MaxMoveAttempts bounds the translate-and-measure loop of
	// [MoveItem].
	MaxMoveAttempts int
}

// DefaultTolerances returns the tolerances used unless configured
// otherwise.
func DefaultTolerances() Tolerances {
	return Tolerances{
		EpsPos:          0.002,
		EpsAngle:        0.001,
		EpsStretch:      0.001,
		MaxMoveAttempts: 3,
	}
}

// AffineState describes the linear part of a placed matrix.
type AffineState struct {
	// Angle1 and Angle2 are the document-space directions of the
	// artifact's horizontal and vertical axes.
	Angle1, Angle2 float64
	// Stretch1 and Stretch2 are the scale factors along those axes.
	Stretch1, Stretch2 float64

	Rotated   bool
	Diamond   bool
	Stretched bool
}

// State derives the affine state of a placed matrix.
func State(m matrix.Matrix, tolerances Tolerances) AffineState {
	a, b, c, d := m[0], m[1], m[2], m[3]
	state := AffineState{
		Angle1:   -math.Atan2(b, a),
		Angle2:   math.Atan2(-d, c),
		Stretch1: math.Hypot(a, b),
		Stretch2: math.Hypot(c, d),
	}
	state.Rotated = math.Abs(state.Angle1) > tolerances.EpsAngle
	state.Diamond = math.Abs(math.Cos(state.Angle2-state.Angle1)) >= tolerances.EpsStretch
	state.Stretched = math.Abs(state.Stretch1-1) >= tolerances.EpsStretch ||
		math.Abs(state.Stretch2-1) >= tolerances.EpsStretch
	return state
}

// Boundary labels the state of an object's bounding geometry.
type Boundary int

const (
	BoundaryOK Boundary = iota
	BoundaryStretched
	BoundaryDiamond
)

func (b Boundary) String() string {
	switch b {
	case BoundaryOK:
		return "ok"
	case BoundaryStretched:
		return "stretched"
	case BoundaryDiamond:
		return "diamond"
	default:
		return "unknown"
	}
}

// Classify returns the boundary label of the state. A skewed object is
// reported as diamond even when it is also stretched.
func (s AffineState) Classify() Boundary {
	switch {
	case s.Diamond:
		return BoundaryDiamond
	case s.Stretched:
		return BoundaryStretched
	default:
		return BoundaryOK
	}
}

// NeedsRedo reports whether [RedoBoundary] would change the object.
func (s AffineState) NeedsRedo() bool {
	return s.Stretched || s.Diamond
}

// Rotation returns the counter-clockwise rotation by phi radians about
// the origin.
func Rotation(phi float64) matrix.Matrix {
	sin, cos := math.Sincos(phi)
	return matrix.Matrix{cos, sin, -sin, cos, 0, 0}
}

// Apply maps a point through m.
func Apply(m matrix.Matrix, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// flipY mirrors the y axis. It is its own inverse.
var flipY = matrix.Matrix{1, 0, 0, -1, 0, 0}

// Compose returns the transformation that applies first and then
// second.
func Compose(first, second matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		second[0]*first[0] + second[2]*first[1],
		second[1]*first[0] + second[3]*first[1],
		second[0]*first[2] + second[2]*first[3],
		second[1]*first[2] + second[3]*first[3],
		second[0]*first[4] + second[2]*first[5] + second[4],
		second[1]*first[4] + second[3]*first[5] + second[5],
	}
}

// ToDocument returns the mapping from artifact coordinates to document
// coordinates for a placed matrix.
func ToDocument(placed matrix.Matrix) matrix.Matrix {
	return Compose(placed, flipY)
}

// FromDocument is the inverse of [ToDocument].
func FromDocument(document matrix.Matrix) matrix.Matrix {
	return Compose(document, flipY)
}

// TransformPlaced returns the placed matrix of an object after the
// document-space transformation t has been applied to it.
func TransformPlaced(placed, t matrix.Matrix) matrix.Matrix {
	return FromDocument(Compose(ToDocument(placed), t))
}

// DocumentBounds returns the axis-aligned document-space box of an
// artifact box drawn through a placed matrix.
func DocumentBounds(placed matrix.Matrix, box rect.Rect) rect.Rect {
	document := ToDocument(placed)
	corners := [4][2]float64{
		{box.LLx, box.LLy}, {box.URx, box.LLy}, {box.LLx, box.URy}, {box.URx, box.URy},
	}
	bounds := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, corner := range corners {
		x, y := Apply(document, corner[0], corner[1])
		bounds.LLx = math.Min(bounds.LLx, x)
		bounds.LLy = math.Min(bounds.LLy, y)
		bounds.URx = math.Max(bounds.URx, x)
		bounds.URy = math.Max(bounds.URy, y)
	}
	return bounds
}

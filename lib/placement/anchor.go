// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package placement

import "fmt"

// Anchor is one of the nine grid positions of a rectangle.
type Anchor int

const (
	TopLeft Anchor = iota
	TopMid
	TopRight
	MidLeft
	MidMid
	MidRight
	BottomLeft
	BottomMid
	BottomRight
)

// Anchors lists every valid anchor in row-major order.
var Anchors = []Anchor{
	TopLeft, TopMid, TopRight,
	MidLeft, MidMid, MidRight,
	BottomLeft, BottomMid, BottomRight,
}

var anchorNames = [...]string{
	TopLeft:     "top-left",
	TopMid:      "top-mid",
	TopRight:    "top-right",
	MidLeft:     "mid-left",
	MidMid:      "mid-mid",
	MidRight:    "mid-right",
	BottomLeft:  "bottom-left",
	BottomMid:   "bottom-mid",
	BottomRight: "bottom-right",
}

// Valid reports whether the anchor is one of the nine grid positions.
func (a Anchor) Valid() bool {
	return a >= TopLeft && a <= BottomRight
}

func (a Anchor) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// ParseAnchor parses the names produced by [Anchor.String].
func ParseAnchor(name string) (Anchor, error) {
	for anchor, anchorName := range anchorNames {
		if anchorName == name {
			return Anchor(anchor), nil
		}
	}
	return 0, fmt.Errorf("unknown anchor %q", name)
}

// AlignmentToFactor returns the normalized position of the anchor inside
// its rectangle: fx is 0 at the left edge and 1 at the right edge, fy is
// 0 at the bottom and 1 at the top. An invalid anchor is a programming
// error and panics.
func AlignmentToFactor(anchor Anchor) (fx, fy float64) {
	if !anchor.Valid() {
		panic(fmt.Sprintf("placement: anchor %d is not one of the nine grid positions", int(anchor)))
	}
	column := int(anchor) % 3
	row := int(anchor) / 3
	return float64(column) / 2, 1 - float64(row)/2
}

// Method is the host's rule for fitting an artifact into a placed
// object's frame.
type Method int

const (
	// MethodConform scales the artifact to fill the frame.
	MethodConform Method = iota
	// MethodAsIs keeps the artifact's natural size.
	MethodAsIs
)

func (m Method) String() string {
	switch m {
	case MethodConform:
		return "conform"
	case MethodAsIs:
		return "as-is"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Placement is the host-side fitting state of a placed object.
type Placement struct {
	Method Method
	Anchor Anchor
	Clip   bool
}

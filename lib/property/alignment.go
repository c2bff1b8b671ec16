// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/latexplace/lib/placement"
)

// Horizontal is the horizontal part of an [Alignment].
type Horizontal int

const (
	Left Horizontal = iota
	CentreH
	Right
)

var horizontalNames = [...]string{Left: "left", CentreH: "centreH", Right: "right"}

func (h Horizontal) String() string {
	if h < Left || h > Right {
		return fmt.Sprintf("Horizontal(%d)", int(h))
	}
	return horizontalNames[h]
}

// ParseHorizontal parses a wire name. "centre" and "center" are accepted
// as shorthands for centreH.
func ParseHorizontal(name string) (Horizontal, error) {
	switch name {
	case "centre", "center":
		return CentreH, nil
	}
	for value, wire := range horizontalNames {
		if wire == name {
			return Horizontal(value), nil
		}
	}
	return 0, fmt.Errorf("unknown horizontal alignment %q", name)
}

// Vertical is the vertical part of an [Alignment].
type Vertical int

const (
	Top Vertical = iota
	CentreV
	Baseline
	Bottom
)

var verticalNames = [...]string{Top: "top", CentreV: "centreV", Baseline: "baseline", Bottom: "bottom"}

func (v Vertical) String() string {
	if v < Top || v > Bottom {
		return fmt.Sprintf("Vertical(%d)", int(v))
	}
	return verticalNames[v]
}

// ParseVertical parses a wire name. "centre" and "center" are accepted
// as shorthands for centreV.
func ParseVertical(name string) (Vertical, error) {
	switch name {
	case "centre", "center":
		return CentreV, nil
	}
	for value, wire := range verticalNames {
		if wire == name {
			return Vertical(value), nil
		}
	}
	return 0, fmt.Errorf("unknown vertical alignment %q", name)
}

// Alignment is the point of the artifact that stays fixed when the
// artifact changes size.
type Alignment struct {
	Horizontal Horizontal
	Vertical   Vertical
}

// DefaultAlignment is centre/centre.
var DefaultAlignment = Alignment{Horizontal: CentreH, Vertical: CentreV}

// ParseAlignment parses "H,V", for example "left,baseline".
func ParseAlignment(text string) (Alignment, error) {
	horizontal, vertical, ok := strings.Cut(text, ",")
	if !ok {
		return Alignment{}, fmt.Errorf("alignment %q: want HORIZONTAL,VERTICAL", text)
	}
	h, err := ParseHorizontal(strings.TrimSpace(horizontal))
	if err != nil {
		return Alignment{}, err
	}
	v, err := ParseVertical(strings.TrimSpace(vertical))
	if err != nil {
		return Alignment{}, err
	}
	return Alignment{Horizontal: h, Vertical: v}, nil
}

func (a Alignment) String() string {
	return a.Horizontal.String() + "," + a.Vertical.String()
}

// IsBaseline reports whether the artifact is compiled with baseline
// padding.
func (a Alignment) IsBaseline() bool {
	return a.Vertical == Baseline
}

// Anchor maps the alignment to the grid anchor of the placed object.
// Baseline items are padded so the baseline lies at the vertical centre,
// so baseline shares the centre row.
func (a Alignment) Anchor() placement.Anchor {
	var column int
	switch a.Horizontal {
	case Left:
		column = 0
	case CentreH:
		column = 1
	case Right:
		column = 2
	default:
		panic(fmt.Sprintf("property: invalid horizontal alignment %d", int(a.Horizontal)))
	}
	var row int
	switch a.Vertical {
	case Top:
		row = 0
	case CentreV, Baseline:
		row = 1
	case Bottom:
		row = 2
	default:
		panic(fmt.Sprintf("property: invalid vertical alignment %d", int(a.Vertical)))
	}
	return placement.Anchor(row*3 + column)
}

// PlacedMethod is how the host fits the artifact into the placed
// object.
type PlacedMethod int

const (
	// FillToBoundary scales the artifact to the object's frame. New
	// items always use it.
	FillToBoundary PlacedMethod = iota
	// KeepScale keeps the artifact's natural size.
	KeepScale
	// KeepScaleClip keeps the natural size and clips to the frame.
	KeepScaleClip
)

var placedMethodNames = [...]string{
	FillToBoundary: "fill_to_boundary_box",
	KeepScale:      "keep_scale",
	KeepScaleClip:  "keep_scale_clip",
}

func (m PlacedMethod) String() string {
	if m < FillToBoundary || m > KeepScaleClip {
		return fmt.Sprintf("PlacedMethod(%d)", int(m))
	}
	return placedMethodNames[m]
}

// ParsePlacedMethod parses a wire name.
func ParsePlacedMethod(name string) (PlacedMethod, error) {
	for value, wire := range placedMethodNames {
		if wire == name {
			return PlacedMethod(value), nil
		}
	}
	return 0, fmt.Errorf("unknown placed method %q", name)
}

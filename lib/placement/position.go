// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package placement

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

var (
	// ErrMoveNotConverged is returned by [MoveItem] when the anchor is
	// still off target after the configured number of attempts.
	ErrMoveNotConverged = errors.New("object did not reach its target position")

	// ErrRelinkFailed is returned when the host relinks an object but
	// hands back no handle.
	ErrRelinkFailed = errors.New("relink returned no object")
)

// ComputePosition returns the document-space position of each anchor of
// the object's artifact.
//
// For an unrotated, unskewed object the anchors interpolate the bounding
// box. Otherwise the artifact is a parallelogram spanned by its scaled
// width and height vectors, and the anchors are located on it relative
// to the bounding box's lower-left corner.
//
// Bounds of a keep-scale object without clipping include content outside
// the artifact box, so clipping is switched on while measuring and the
// previous placement restored afterwards.
func ComputePosition(object Object, anchors []Anchor, tolerances Tolerances) (points []vec.Vec2, err error) {
	placement, err := object.Placement()
	if err != nil {
		return nil, fmt.Errorf("reading placement: %w", err)
	}
	if placement.Method == MethodAsIs && !placement.Clip {
		clipped := placement
		clipped.Clip = true
		if err := object.SetPlacement(clipped); err != nil {
			return nil, fmt.Errorf("enabling clip for measurement: %w", err)
		}
		defer func() {
			if restoreErr := object.SetPlacement(placement); restoreErr != nil {
				err = errors.Join(err, fmt.Errorf("restoring placement: %w", restoreErr))
			}
		}()
	}

	bounds, err := object.Bounds()
	if err != nil {
		return nil, fmt.Errorf("reading bounds: %w", err)
	}
	placed, err := object.Matrix()
	if err != nil {
		return nil, fmt.Errorf("reading placed matrix: %w", err)
	}
	state := State(placed, tolerances)

	points = make([]vec.Vec2, len(anchors))
	if !state.Rotated && !state.Diamond {
		width := bounds.URx - bounds.LLx
		height := bounds.URy - bounds.LLy
		for i, anchor := range anchors {
			fx, fy := AlignmentToFactor(anchor)
			points[i] = vec.Vec2{X: bounds.LLx + fx*width, Y: bounds.LLy + fy*height}
		}
		return points, nil
	}

	box, err := object.ArtifactBox()
	if err != nil {
		return nil, fmt.Errorf("reading artifact box: %w", err)
	}
	for i, anchor := range anchors {
		points[i] = parallelogramPoint(bounds.LLx, bounds.LLy, box.URx-box.LLx, box.URy-box.LLy, state, anchor)
	}
	return points, nil
}

// parallelogramPoint locates an anchor on the artifact parallelogram
// whose axis-aligned bounding box has its lower-left corner at (left,
// bottom).
func parallelogramPoint(left, bottom, width, height float64, state AffineState, anchor Anchor) vec.Vec2 {
	v1 := vec.Vec2{X: math.Cos(state.Angle1), Y: math.Sin(state.Angle1)}.Mul(state.Stretch1 * width)
	v2 := vec.Vec2{X: math.Cos(state.Angle2), Y: math.Sin(state.Angle2)}.Mul(state.Stretch2 * height)

	minX := math.Min(math.Min(0, v1.X), math.Min(v2.X, v1.X+v2.X))
	minY := math.Min(math.Min(0, v1.Y), math.Min(v2.Y, v1.Y+v2.Y))
	origin := vec.Vec2{X: left - minX, Y: bottom - minY}

	fx, fy := AlignmentToFactor(anchor)
	return origin.Add(v1.Mul(fx)).Add(v2.Mul(fy))
}

// Position returns the document-space position of a single anchor.
func Position(object Object, anchor Anchor, tolerances Tolerances) (vec.Vec2, error) {
	points, err := ComputePosition(object, []Anchor{anchor}, tolerances)
	if err != nil {
		return vec.Vec2{}, err
	}
	return points[0], nil
}

// MoveItem translates the object until its anchor lies within EpsPos of
// target. The host may snap or round a translation, so the position is
// re-measured after every move; at most MaxMoveAttempts moves are made.
func MoveItem(object Object, anchor Anchor, target vec.Vec2, tolerances Tolerances) error {
	for attempt := 0; ; attempt++ {
		current, err := Position(object, anchor, tolerances)
		if err != nil {
			return err
		}
		delta := target.Sub(current)
		residual := math.Hypot(delta.X, delta.Y)
		if residual <= tolerances.EpsPos {
			return nil
		}
		if attempt >= tolerances.MaxMoveAttempts {
			return fmt.Errorf("moving %s anchor to (%g, %g), %g away after %d attempts: %w",
				anchor, target.X, target.Y, residual, attempt, ErrMoveNotConverged)
		}
		if err := object.Transform(matrix.Translate(delta.X, delta.Y)); err != nil {
			return fmt.Errorf("translating object: %w", err)
		}
	}
}

// RedoBoundary restores the canonical placed matrix of a stretched or
// skewed object while keeping its rotation and the position of anchor.
// Objects that are neither are returned unchanged. The host replaces the
// object while relinking, so the returned handle supersedes the one
// passed in.
func RedoBoundary(object Object, anchor Anchor, tolerances Tolerances) (Object, error) {
	placed, err := object.Matrix()
	if err != nil {
		return object, fmt.Errorf("reading placed matrix: %w", err)
	}
	state := State(placed, tolerances)
	if !state.NeedsRedo() {
		return object, nil
	}

	target, err := Position(object, anchor, tolerances)
	if err != nil {
		return object, fmt.Errorf("measuring anchor before reset: %w", err)
	}

	if err := object.Transform(Rotation(-state.Angle1)); err != nil {
		return object, fmt.Errorf("removing rotation: %w", err)
	}
	unrotated, err := object.Matrix()
	if err != nil {
		return object, fmt.Errorf("reading placed matrix: %w", err)
	}
	reset := Canonical
	reset[4], reset[5] = unrotated[4], unrotated[5]
	if err := object.SetMatrix(reset); err != nil {
		return object, fmt.Errorf("resetting placed matrix: %w", err)
	}
	if err := object.Transform(Rotation(state.Angle1)); err != nil {
		return object, fmt.Errorf("restoring rotation: %w", err)
	}

	path, err := object.LinkedPath()
	if err != nil {
		return object, fmt.Errorf("reading linked path: %w", err)
	}
	relinked, err := object.Relink(path)
	if err != nil {
		return object, fmt.Errorf("relinking %s: %w", path, err)
	}
	if relinked == nil {
		return object, fmt.Errorf("relinking %s: %w", path, ErrRelinkFailed)
	}

	if err := MoveItem(relinked, anchor, target, tolerances); err != nil {
		return relinked, err
	}
	return relinked, nil
}

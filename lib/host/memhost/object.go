// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package memhost

import (
	"fmt"
	"path/filepath"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"github.com/bureau-foundation/latexplace/lib/host"
	"github.com/bureau-foundation/latexplace/lib/placement"
)

// Object is a handle to a placed object of a Document.
type Object struct {
	document *Document
	id       string
}

var _ host.Object = (*Object)(nil)

func (o *Object) record() (*record, error) {
	r := o.document.find(o.id)
	if r == nil {
		return nil, fmt.Errorf("%s: %w", o.id, host.ErrStale)
	}
	return r, nil
}

// ID implements host.Object.
func (o *Object) ID() string { return o.id }

// Bounds implements placement.Object. A keep-scale object without
// clipping shows content beyond its artifact box, which widens its
// bounds by the document's bleed.
func (o *Object) Bounds() (rect.Rect, error) {
	r, err := o.record()
	if err != nil {
		return rect.Rect{}, err
	}
	bounds := placement.DocumentBounds(r.matrix(), r.box())
	if placement.Method(r.Method) == placement.MethodAsIs && !r.Clip {
		bleed := o.document.bleed
		bounds = rect.Rect{
			LLx: bounds.LLx - bleed, LLy: bounds.LLy - bleed,
			URx: bounds.URx + bleed, URy: bounds.URy + bleed,
		}
	}
	return bounds, nil
}

// Matrix implements placement.Object.
func (o *Object) Matrix() (matrix.Matrix, error) {
	r, err := o.record()
	if err != nil {
		return matrix.Matrix{}, err
	}
	return r.matrix(), nil
}

// SetMatrix implements placement.Object.
func (o *Object) SetMatrix(m matrix.Matrix) error {
	r, err := o.record()
	if err != nil {
		return err
	}
	r.Matrix = m
	return nil
}

// Transform implements placement.Object.
func (o *Object) Transform(m matrix.Matrix) error {
	r, err := o.record()
	if err != nil {
		return err
	}
	r.Matrix = placement.TransformPlaced(r.matrix(), m)
	return nil
}

// ArtifactBox implements placement.Object.
func (o *Object) ArtifactBox() (rect.Rect, error) {
	r, err := o.record()
	if err != nil {
		return rect.Rect{}, err
	}
	return r.box(), nil
}

// Placement implements placement.Object.
func (o *Object) Placement() (placement.Placement, error) {
	r, err := o.record()
	if err != nil {
		return placement.Placement{}, err
	}
	return placement.Placement{
		Method: placement.Method(r.Method),
		Anchor: placement.Anchor(r.Anchor),
		Clip:   r.Clip,
	}, nil
}

// SetPlacement implements placement.Object.
func (o *Object) SetPlacement(p placement.Placement) error {
	if !p.Anchor.Valid() {
		return fmt.Errorf("invalid anchor %d", int(p.Anchor))
	}
	r, err := o.record()
	if err != nil {
		return err
	}
	r.Method = int(p.Method)
	r.Anchor = int(p.Anchor)
	r.Clip = p.Clip
	return nil
}

// LinkedPath implements placement.Object.
func (o *Object) LinkedPath() (string, error) {
	r, err := o.record()
	if err != nil {
		return "", err
	}
	return r.LinkedPath, nil
}

// Relink implements placement.Object. The object is replaced by a new
// one at the same position in the document with a new ID; its artifact
// box is re-read from path. This handle becomes stale.
func (o *Object) Relink(path string) (placement.Object, error) {
	r, err := o.record()
	if err != nil {
		return nil, err
	}
	box, err := o.document.describe(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact box of %s: %w", path, err)
	}
	replacement := *r
	replacement.ID = o.document.allocateID()
	replacement.LinkedPath = path
	replacement.Name = filepath.Base(path)
	replacement.Box = [4]float64{box.LLx, box.LLy, box.URx, box.URy}
	*r = replacement
	o.document.logger.Debug("object relinked", "item", replacement.ID, "replaces", o.id, "path", path)
	return &Object{document: o.document, id: replacement.ID}, nil
}

// Note implements host.Object.
func (o *Object) Note() (string, error) {
	r, err := o.record()
	if err != nil {
		return "", err
	}
	return r.Note, nil
}

// SetNote implements host.Object.
func (o *Object) SetNote(note string) error {
	r, err := o.record()
	if err != nil {
		return err
	}
	r.Note = note
	return nil
}

// Name returns the object's display name.
func (o *Object) Name() (string, error) {
	r, err := o.record()
	if err != nil {
		return "", err
	}
	return r.Name, nil
}

// Hidden implements host.Object.
func (o *Object) Hidden() (bool, error) {
	r, err := o.record()
	if err != nil {
		return false, err
	}
	return r.Hidden, nil
}

// Locked implements host.Object.
func (o *Object) Locked() (bool, error) {
	r, err := o.record()
	if err != nil {
		return false, err
	}
	return r.Locked, nil
}

// SetHidden hides or shows the object.
func (o *Object) SetHidden(hidden bool) error {
	r, err := o.record()
	if err != nil {
		return err
	}
	r.Hidden = hidden
	return nil
}

// SetLocked locks or unlocks the object.
func (o *Object) SetLocked(locked bool) error {
	r, err := o.record()
	if err != nil {
		return err
	}
	r.Locked = locked
	return nil
}

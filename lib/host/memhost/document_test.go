// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package memhost

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/bureau-foundation/latexplace/lib/host"
	"github.com/bureau-foundation/latexplace/lib/placement"
	"github.com/bureau-foundation/latexplace/lib/testutil"
)

func newDocument(t *testing.T, options Options) (*Document, string) {
	t.Helper()
	dir := t.TempDir()
	artifactPath := filepath.Join(dir, "links", "drawing_LaTeX2AI_a.pdf")
	testutil.WritePDF(t, artifactPath, testutil.Page{Width: 40, Height: 20})
	return New(filepath.Join(dir, "drawing.lxp"), options), artifactPath
}

func near(a, b vec.Vec2) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= 1e-9
}

func TestPlaceAndPosition(t *testing.T) {
	document, artifactPath := newDocument(t, Options{})
	object, err := document.Place(artifactPath, vec.Vec2{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	bounds, err := object.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if bounds.LLx != 100 || bounds.LLy != 100 || bounds.URx != 140 || bounds.URy != 120 {
		t.Errorf("bounds = %+v, want (100,100)-(140,120)", bounds)
	}

	position, err := placement.Position(object, placement.MidMid, placement.DefaultTolerances())
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if !near(position, vec.Vec2{X: 120, Y: 110}) {
		t.Errorf("mid-mid = %v, want (120, 110)", position)
	}
}

func TestRotatedPositionMatchesGeometry(t *testing.T) {
	document, artifactPath := newDocument(t, Options{})
	object, err := document.Place(artifactPath, vec.Vec2{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := object.Transform(placement.Rotation(math.Pi / 2)); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	// A quarter turn maps the artifact's top-right corner (40, 20) to
	// (-20, 40).
	position, err := placement.Position(object, placement.TopRight, placement.DefaultTolerances())
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if !near(position, vec.Vec2{X: -20, Y: 40}) {
		t.Errorf("top-right = %v, want (-20, 40)", position)
	}
}

func TestBleedIgnoredWhileMeasuring(t *testing.T) {
	document, artifactPath := newDocument(t, Options{Bleed: 5})
	object, err := document.Place(artifactPath, vec.Vec2{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	asIs := placement.Placement{Method: placement.MethodAsIs, Anchor: placement.MidMid}
	if err := object.SetPlacement(asIs); err != nil {
		t.Fatalf("SetPlacement: %v", err)
	}
	bounds, _ := object.Bounds()
	if bounds.LLx != 95 {
		t.Errorf("unclipped bounds LLx = %g, want 95", bounds.LLx)
	}

	position, err := placement.Position(object, placement.BottomLeft, placement.DefaultTolerances())
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if !near(position, vec.Vec2{X: 100, Y: 100}) {
		t.Errorf("bottom-left = %v, want (100, 100)", position)
	}
	restored, _ := object.Placement()
	if restored != asIs {
		t.Errorf("placement after measuring = %+v, want %+v", restored, asIs)
	}
}

func TestRelinkReplacesObject(t *testing.T) {
	document, artifactPath := newDocument(t, Options{})
	object, err := document.Place(artifactPath, vec.Vec2{X: 10, Y: 10})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := object.SetNote("note"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}

	widePath := filepath.Join(filepath.Dir(artifactPath), "wide.pdf")
	testutil.WritePDF(t, widePath, testutil.Page{Width: 80, Height: 20})
	relinked, err := host.Relink(object, widePath)
	if err != nil {
		t.Fatalf("Relink: %v", err)
	}
	if relinked.ID() == object.ID() {
		t.Error("relink kept the old ID")
	}
	if _, err := object.Note(); !errors.Is(err, host.ErrStale) {
		t.Errorf("old handle error = %v, want ErrStale", err)
	}
	note, _ := relinked.Note()
	if note != "note" {
		t.Errorf("note after relink = %q", note)
	}
	box, _ := relinked.ArtifactBox()
	if box.URx-box.LLx != 80 {
		t.Errorf("artifact width after relink = %g, want 80", box.URx-box.LLx)
	}
	objects, _ := document.Objects()
	if len(objects) != 1 || objects[0].ID() != relinked.ID() {
		t.Errorf("objects after relink = %v", objects)
	}
}

func TestRedoBoundaryRestoresCanonical(t *testing.T) {
	document, artifactPath := newDocument(t, Options{})
	object, err := document.Place(artifactPath, vec.Vec2{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	tolerances := placement.DefaultTolerances()
	stretch := matrix.Matrix{2, 0, 0, 1.5, 0, 0}
	if err := object.Transform(placement.Compose(stretch, placement.Rotation(0.3))); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	before, err := placement.Position(object, placement.MidMid, tolerances)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}

	redone, err := placement.RedoBoundary(object, placement.MidMid, tolerances)
	if err != nil {
		t.Fatalf("RedoBoundary: %v", err)
	}
	placed, _ := redone.Matrix()
	state := placement.State(placed, tolerances)
	if state.Stretched || state.Diamond {
		t.Errorf("state after redo = %+v", state)
	}
	if math.Abs(state.Angle1+0.3) > 1e-9 && math.Abs(state.Angle1-0.3) > 1e-9 {
		t.Errorf("rotation lost: angle1 = %g", state.Angle1)
	}
	after, err := placement.Position(redone, placement.MidMid, tolerances)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if math.Hypot(after.X-before.X, after.Y-before.Y) > tolerances.EpsPos {
		t.Errorf("anchor moved from %v to %v", before, after)
	}

	again, err := placement.RedoBoundary(redone, placement.MidMid, tolerances)
	if err != nil {
		t.Fatalf("second RedoBoundary: %v", err)
	}
	if again.(host.Object).ID() != redone.(host.Object).ID() {
		t.Error("second RedoBoundary relinked an already canonical object")
	}
}

func TestTransactionRollbackAndUndo(t *testing.T) {
	document, artifactPath := newDocument(t, Options{})

	failure := errors.New("boom")
	err := document.Transaction("failing", func() error {
		if _, err := document.Place(artifactPath, vec.Vec2{}); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("Transaction error = %v", err)
	}
	if objects, _ := document.Objects(); len(objects) != 0 {
		t.Fatalf("rollback left %d objects", len(objects))
	}
	if document.UndoDepth() != 0 {
		t.Errorf("failed transaction recorded an undo step")
	}

	err = document.Transaction("create", func() error {
		return document.Transaction("inner", func() error {
			_, err := document.Place(artifactPath, vec.Vec2{})
			return err
		})
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if document.UndoDepth() != 1 {
		t.Errorf("undo depth = %d, want 1", document.UndoDepth())
	}
	name, err := document.Undo()
	if err != nil || name != "create" {
		t.Fatalf("Undo = %q, %v", name, err)
	}
	if objects, _ := document.Objects(); len(objects) != 0 {
		t.Errorf("undo left %d objects", len(objects))
	}
	if _, err := document.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty journal = %v", err)
	}
}

func TestTransactionPanicUnwinds(t *testing.T) {
	document, artifactPath := newDocument(t, Options{})

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected the panic to propagate")
			}
		}()
		_ = document.Transaction("panicking", func() error {
			if _, err := document.Place(artifactPath, vec.Vec2{}); err != nil {
				return err
			}
			placement.AlignmentToFactor(placement.Anchor(99))
			return nil
		})
	}()
	if objects, _ := document.Objects(); len(objects) != 0 {
		t.Fatalf("panicking transaction left %d objects", len(objects))
	}

	// The next transaction must be a top-level one with its own undo
	// step and rollback.
	failure := errors.New("boom")
	err := document.Transaction("failing", func() error {
		if _, err := document.Place(artifactPath, vec.Vec2{}); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("Transaction error = %v", err)
	}
	if objects, _ := document.Objects(); len(objects) != 0 {
		t.Errorf("failed transaction after a panic left %d objects", len(objects))
	}
	if err := document.Transaction("create", func() error {
		_, err := document.Place(artifactPath, vec.Vec2{})
		return err
	}); err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if document.UndoDepth() != 1 {
		t.Errorf("undo depth = %d, want 1", document.UndoDepth())
	}
}

func TestSaveAndOpen(t *testing.T) {
	document, artifactPath := newDocument(t, Options{})
	if document.Saved() {
		t.Fatal("new document reports saved")
	}
	object, err := document.Place(artifactPath, vec.Vec2{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	object.SetNote("<LaTeX2AI_item/>")
	concrete, _ := document.Lookup(object.ID())
	concrete.SetLocked(true)
	if err := document.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(document.Path(), Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !reopened.Saved() {
		t.Error("reopened document not saved")
	}
	loaded, err := reopened.Object(object.ID())
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	note, _ := loaded.Note()
	locked, _ := loaded.Locked()
	if note != "<LaTeX2AI_item/>" || !locked {
		t.Errorf("reloaded note=%q locked=%v", note, locked)
	}
	skipped, _ := host.Skipped(loaded)
	if !skipped {
		t.Error("locked object not skipped")
	}
	placed, _ := loaded.Matrix()
	if placed != (matrix.Matrix{1, 0, 0, -1, 3, -4}) {
		t.Errorf("matrix = %v", placed)
	}

	next, err := reopened.Place(artifactPath, vec.Vec2{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if next.ID() == object.ID() {
		t.Error("ID reused after reopen")
	}
}

func TestObjectNotFound(t *testing.T) {
	document := New(filepath.Join(t.TempDir(), "d.lxp"), Options{})
	if _, err := document.Object("obj-9"); !errors.Is(err, host.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/vec"

	"github.com/bureau-foundation/latexplace/lib/placement"
)

var (
	// ErrNotFound is returned when an object ID names no object.
	ErrNotFound = errors.New("object not found")

	// ErrStale is returned by operations on a handle whose object was
	// replaced or removed.
	ErrStale = errors.New("object handle is stale")
)

// Object is a placed object in a host document.
type Object interface {
	placement.Object

	// ID identifies the object within its document. Relinking may
	// change it.
	ID() string

	Note() (string, error)
	SetNote(note string) error

	// Hidden and Locked objects are skipped by batch operations.
	Hidden() (bool, error)
	Locked() (bool, error)
}

// Document is an open host document.
type Document interface {
	// Path returns the document file path.
	Path() string

	// Saved reports whether the document has ever been written to
	// Path.
	Saved() bool

	// Objects returns every placed object in document order.
	Objects() ([]Object, error)

	// Object returns the object with the given ID.
	Object(id string) (Object, error)

	// Place links the artifact at path as a new object with the
	// canonical placed matrix and the lower-left corner of its
	// artifact box at at.
	Place(path string, at vec.Vec2) (Object, error)

	// Transaction runs fn as one undoable step named name. If fn
	// fails, every change it made is rolled back and its error
	// returned. Transactions nest: an inner call joins the outer one.
	Transaction(name string, fn func() error) error
}

// Rebind converts a handle returned by a relink back into an Object.
func Rebind(object placement.Object) (Object, error) {
	if object == nil {
		return nil, placement.ErrRelinkFailed
	}
	bound, ok := object.(Object)
	if !ok {
		return nil, fmt.Errorf("relinked handle %T is not a host object: %w", object, placement.ErrRelinkFailed)
	}
	return bound, nil
}

// Relink relinks object to path and returns the replacement handle.
func Relink(object Object, path string) (Object, error) {
	relinked, err := object.Relink(path)
	if err != nil {
		return nil, fmt.Errorf("relinking %s to %s: %w", object.ID(), path, err)
	}
	return Rebind(relinked)
}

// Skipped reports whether batch operations must leave the object
// alone.
func Skipped(object Object) (bool, error) {
	hidden, err := object.Hidden()
	if err != nil {
		return false, err
	}
	if hidden {
		return true, nil
	}
	return object.Locked()
}

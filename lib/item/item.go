// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bureau-foundation/latexplace/lib/host"
	"github.com/bureau-foundation/latexplace/lib/placement"
	"github.com/bureau-foundation/latexplace/lib/property"
)

// ErrNotItem is returned by Adopt for an object whose note holds no
// item property.
var ErrNotItem = errors.New("object is not a latexplace item")

// Item is a placed object together with its property.
type Item struct {
	object   host.Object
	property property.Property
}

// ID returns the host ID of the item's object.
func (i *Item) ID() string { return i.object.ID() }

// Object returns the item's current object handle.
func (i *Item) Object() host.Object { return i.object }

// Property returns the item's property.
func (i *Item) Property() property.Property { return i.property }

// State returns the affine state of the item's placed matrix.
func (i *Item) State(tolerances placement.Tolerances) (placement.AffineState, error) {
	placed, err := i.object.Matrix()
	if err != nil {
		return placement.AffineState{}, err
	}
	return placement.State(placed, tolerances), nil
}

// Adopt reads the property stored in object's note. If the host's
// placement settings disagree with the property, the property's are
// applied.
func (m *Model) Adopt(object host.Object) (*Item, error) {
	note, err := object.Note()
	if err != nil {
		return nil, fmt.Errorf("reading note of %s: %w", object.ID(), err)
	}
	if !strings.Contains(note, "<"+property.RootName) {
		return nil, fmt.Errorf("%s: %w", object.ID(), ErrNotItem)
	}
	p, err := property.Parse(note)
	if err != nil {
		return nil, fmt.Errorf("reading property of %s: %w", object.ID(), err)
	}

	want := p.Placement()
	have, err := object.Placement()
	if err != nil {
		return nil, fmt.Errorf("reading placement of %s: %w", object.ID(), err)
	}
	if have != want {
		m.logger.Warn("placement settings of item do not match its property; applying the property",
			"item", object.ID(), "host", fmt.Sprintf("%+v", have), "property", fmt.Sprintf("%+v", want))
		if err := object.SetPlacement(want); err != nil {
			return nil, fmt.Errorf("restoring placement of %s: %w", object.ID(), err)
		}
	}
	return &Item{object: object, property: p}, nil
}

// Items adopts every item of the document, in document order. Objects
// that are not items are skipped.
func (m *Model) Items() ([]*Item, error) {
	objects, err := m.document.Objects()
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	var items []*Item
	for _, object := range objects {
		item, err := m.Adopt(object)
		if errors.Is(err, ErrNotItem) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Find adopts the item with the given object ID.
func (m *Model) Find(id string) (*Item, error) {
	object, err := m.document.Object(id)
	if err != nil {
		return nil, err
	}
	return m.Adopt(object)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"seehuhn.de/go/geom/vec"

	"github.com/bureau-foundation/latexplace/lib/artifact"
	"github.com/bureau-foundation/latexplace/lib/debugbundle"
	"github.com/bureau-foundation/latexplace/lib/host"
	"github.com/bureau-foundation/latexplace/lib/latex"
	"github.com/bureau-foundation/latexplace/lib/placement"
	"github.com/bureau-foundation/latexplace/lib/property"
)

// Compiler turns properties into artifact files.
type Compiler interface {
	CompileOne(ctx context.Context, p property.Property) (latex.Result, string)
	CompileBatch(ctx context.Context, items []latex.Item) (latex.Result, []string)
}

// Config holds the collaborators of a [Model].
type Config struct {
	Document host.Document
	Store    *artifact.Store
	Compiler Compiler
	UI       UI

	// Tolerances default to placement.DefaultTolerances when zero.
	Tolerances placement.Tolerances

	// LastInputPath receives the property of every successful create
	// and edit. Empty disables recording.
	LastInputPath string

	// Debug verifies stored artifact hashes during Reconcile.
	Debug bool

	// BundleCompression selects the debug bundle format.
	BundleCompression debugbundle.Compression

	Logger *slog.Logger
}

// Model implements the item actions for one document.
type Model struct {
	document          host.Document
	store             *artifact.Store
	compiler          Compiler
	ui                UI
	tolerances        placement.Tolerances
	lastInputPath     string
	debug             bool
	bundleCompression debugbundle.Compression
	logger            *slog.Logger
}

// New returns a Model.
func New(config Config) (*Model, error) {
	var errs []error
	if config.Document == nil {
		errs = append(errs, errors.New("document is required"))
	}
	if config.Store == nil {
		errs = append(errs, errors.New("artifact store is required"))
	}
	if config.Compiler == nil {
		errs = append(errs, errors.New("compiler is required"))
	}
	if config.UI == nil {
		errs = append(errs, errors.New("UI is required"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	tolerances := config.Tolerances
	if tolerances == (placement.Tolerances{}) {
		tolerances = placement.DefaultTolerances()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Model{
		document:          config.Document,
		store:             config.Store,
		compiler:          config.Compiler,
		ui:                config.UI,
		tolerances:        tolerances,
		lastInputPath:     config.LastInputPath,
		debug:             config.Debug,
		bundleCompression: config.BundleCompression,
		logger:            logger,
	}, nil
}

// Tolerances returns the placement tolerances in use.
func (m *Model) Tolerances() placement.Tolerances { return m.tolerances }

// CreateNew compiles p and places the result with its anchor at at.
func (m *Model) CreateNew(ctx context.Context, at vec.Vec2, p property.Property) (*Item, error) {
	var created *Item
	err := m.document.Transaction("Create LaTeX item", func() error {
		compiled, path, err := m.compile(ctx, p)
		if err != nil {
			return err
		}
		if err := compiled.SetArtifactFile(path); err != nil {
			return err
		}
		target, err := m.persist(compiled)
		if err != nil {
			return err
		}

		object, err := m.document.Place(target, at)
		if err != nil {
			return fmt.Errorf("placing %s: %w", target, err)
		}
		if err := object.SetPlacement(compiled.Placement()); err != nil {
			return fmt.Errorf("setting placement: %w", err)
		}
		if err := placement.MoveItem(object, compiled.Alignment.Anchor(), at, m.tolerances); err != nil {
			return err
		}
		if err := object.SetNote(compiled.String()); err != nil {
			return fmt.Errorf("writing note: %w", err)
		}
		created = &Item{object: object, property: compiled}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("item created", "item", created.ID(), "document", m.document.Path())
	m.recordLastInput(created.property)
	return created, nil
}

// Edit replaces the property of item with after. Only the work the
// difference requires is done: a markup or baseline change recompiles
// and relinks, an alignment or method change refits the object, and any
// change rewrites the note. On success item is updated in place.
func (m *Model) Edit(ctx context.Context, item *Item, after property.Property) error {
	changes := property.Diff(item.property, after)
	if !changes.Any() {
		m.logger.Debug("edit changed nothing", "item", item.ID())
		return nil
	}

	object := item.object
	next := after
	err := m.document.Transaction("Edit LaTeX item", func() error {
		if changes.NeedsCompile() {
			compiled, path, err := m.compile(ctx, next)
			if err != nil {
				return err
			}
			next = compiled
			if err := next.SetArtifactFile(path); err != nil {
				return err
			}
			target, err := m.persist(next)
			if err != nil {
				return err
			}
			if err := object.SetPlacement(next.Placement()); err != nil {
				return fmt.Errorf("setting placement: %w", err)
			}
			if object, err = m.relink(object, target, next.Alignment.Anchor()); err != nil {
				return err
			}
		} else {
			next.CopyArtifact(item.property)
			if changes.NeedsReposition() {
				if err := object.SetPlacement(next.Placement()); err != nil {
					return fmt.Errorf("setting placement: %w", err)
				}
				redone, err := placement.RedoBoundary(object, next.Alignment.Anchor(), m.tolerances)
				if err != nil {
					return err
				}
				if object, err = host.Rebind(redone); err != nil {
					return err
				}
			}
		}
		if err := object.SetNote(next.String()); err != nil {
			return fmt.Errorf("writing note: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("item edited", "item", object.ID(),
		"markup", changes.Markup, "alignment", changes.Alignment, "method", changes.Method)
	item.object, item.property = object, next
	m.recordLastInput(next)
	return nil
}

// Position returns the document-space point of the item's own anchor.
func (m *Model) Position(item *Item) (vec.Vec2, error) {
	return placement.Position(item.object, item.property.Alignment.Anchor(), m.tolerances)
}

// Positions returns the document-space points of the given anchors.
func (m *Model) Positions(item *Item, anchors []placement.Anchor) ([]vec.Vec2, error) {
	return placement.ComputePosition(item.object, anchors, m.tolerances)
}

// RedoBoundary refits a single item. It is RedoBatch in boundary mode
// for one item, without the hidden/locked check.
func (m *Model) RedoBoundary(item *Item) error {
	var object host.Object
	err := m.document.Transaction("Redo LaTeX item boundary", func() error {
		redone, err := placement.RedoBoundary(item.object, item.property.Alignment.Anchor(), m.tolerances)
		if err != nil {
			return err
		}
		object, err = host.Rebind(redone)
		return err
	})
	if err != nil {
		return err
	}
	item.object = object
	return nil
}

// persist writes the artifact of p to its canonical path.
func (m *Model) persist(p property.Property) (string, error) {
	hash, ok := p.Hash()
	if !ok {
		return "", fmt.Errorf("persisting item: %w", artifact.ErrEmptyPayload)
	}
	target := m.store.PathFor(hash)
	if err := m.store.Persist(p.Payload(), target); err != nil {
		return "", err
	}
	m.logger.Debug("artifact persisted", "path", target, "hash", artifact.FormatHash(hash))
	return target, nil
}

// relink points object at path and refits it so that anchor stays where
// it was before the relink.
func (m *Model) relink(object host.Object, path string, anchor placement.Anchor) (host.Object, error) {
	target, err := placement.Position(object, anchor, m.tolerances)
	if err != nil {
		return nil, fmt.Errorf("measuring anchor before relink: %w", err)
	}
	relinked, err := host.Relink(object, path)
	if err != nil {
		return nil, err
	}
	redone, err := placement.RedoBoundary(relinked, anchor, m.tolerances)
	if err != nil {
		return nil, err
	}
	bound, err := host.Rebind(redone)
	if err != nil {
		return nil, err
	}
	if err := placement.MoveItem(bound, anchor, target, m.tolerances); err != nil {
		return nil, err
	}
	return bound, nil
}

func (m *Model) recordLastInput(p property.Property) {
	if m.lastInputPath == "" {
		return
	}
	if err := property.WriteLastInput(m.lastInputPath, p); err != nil {
		m.logger.Warn("recording last input failed", "path", m.lastInputPath, "error", err)
	}
}

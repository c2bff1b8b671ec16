// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bureau-foundation/latexplace/lib/artifact"
)

// ReconcileReport summarises a Reconcile run.
type ReconcileReport struct {
	// Skipped is true when the document was never saved.
	Skipped bool

	Items int
	// Adopted items had no embedded artifact but a linked file, which
	// was embedded.
	Adopted int
	// Recompiled items had neither and were recompiled.
	Recompiled int
	// Declined items had neither and the user chose not to recompile.
	Declined int
	// Relinked items pointed at a path other than their canonical one,
	// or their file was missing.
	Relinked int
	// Deleted lists the artifact files removed from the links
	// directory.
	Deleted []string
}

// Reconcile makes every item of the document consistent with the
// artifact store, then deletes artifact files that neither this
// document nor a sibling document uses.
func (m *Model) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport
	if !m.document.Saved() {
		m.logger.Info("document was never saved, skipping reconcile", "document", m.document.Path())
		report.Skipped = true
		return report, nil
	}

	var used []string
	err := m.document.Transaction("Reconcile LaTeX items", func() error {
		report = ReconcileReport{}
		used = nil

		items, err := m.Items()
		if err != nil {
			return err
		}
		report.Items = len(items)

		var working, missing []*Item
		for _, item := range items {
			if item.property.HasArtifact() {
				if m.debug {
					if err := item.property.VerifyHash(); err != nil {
						return fmt.Errorf("item %s: %w", item.ID(), err)
					}
				}
				working = append(working, item)
				continue
			}
			linked, err := item.object.LinkedPath()
			if err != nil {
				return fmt.Errorf("reading linked path of %s: %w", item.ID(), err)
			}
			if !artifact.Exists(linked) {
				missing = append(missing, item)
				continue
			}
			if err := item.property.SetArtifactFile(linked); err != nil {
				return err
			}
			if err := item.object.SetNote(item.property.String()); err != nil {
				return fmt.Errorf("writing note of %s: %w", item.ID(), err)
			}
			report.Adopted++
			working = append(working, item)
		}

		if len(missing) > 0 {
			confirmed, err := m.ui.ConfirmRedo(len(missing))
			if err != nil {
				return err
			}
			if confirmed {
				redo, err := m.RedoBatch(ctx, missing, ModeMarkup)
				if err != nil {
					return err
				}
				report.Recompiled = redo.Recompiled
				for _, item := range missing {
					if item.property.HasArtifact() {
						working = append(working, item)
					}
				}
			} else {
				report.Declined = len(missing)
			}
		}

		for _, item := range working {
			hash, _ := item.property.Hash()
			target := m.store.PathFor(hash)
			linked, err := item.object.LinkedPath()
			if err != nil {
				return fmt.Errorf("reading linked path of %s: %w", item.ID(), err)
			}
			samePath := filepath.Clean(linked) == target
			if !samePath || !artifact.Exists(target) {
				if _, err := m.persist(item.property); err != nil {
					return err
				}
				if !samePath {
					if item.object, err = m.relink(item.object, target, item.property.Alignment.Anchor()); err != nil {
						return err
					}
				}
				report.Relinked++
			}
			used = append(used, target)
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	siblings, err := m.store.Siblings()
	if err != nil {
		return report, err
	}
	deleted, err := m.store.Sweep(used, siblings)
	if err != nil {
		return report, err
	}
	report.Deleted = deleted
	m.logger.Info("document reconciled", "document", m.document.Path(), "items", report.Items,
		"relinked", report.Relinked, "deleted", len(deleted))
	return report, nil
}

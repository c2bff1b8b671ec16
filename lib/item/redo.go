// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/latexplace/lib/host"
	"github.com/bureau-foundation/latexplace/lib/latex"
	"github.com/bureau-foundation/latexplace/lib/placement"
	"github.com/bureau-foundation/latexplace/lib/property"
)

// Mode selects what RedoBatch redoes.
type Mode int

const (
	// ModeBoundary refits stretched or skewed items.
	ModeBoundary Mode = iota
	// ModeMarkup recompiles every item and then refits it.
	ModeMarkup
)

func (m Mode) String() string {
	if m == ModeMarkup {
		return "markup"
	}
	return "boundary"
}

// RedoReport summarises a RedoBatch run.
type RedoReport struct {
	// Skipped counts hidden or locked items that were left alone.
	Skipped int
	// Recompiled counts items that received a new artifact.
	Recompiled int
	// Refitted counts items whose boundary was reset.
	Refitted int
}

// RedoBatch redoes items. Hidden and locked items are skipped and
// reported through the UI. In markup mode every eligible item is
// recompiled in one engine run and relinked to its new artifact. In
// both modes every eligible item is then refitted. Eligible items are
// updated in place on success.
func (m *Model) RedoBatch(ctx context.Context, items []*Item, mode Mode) (RedoReport, error) {
	var report RedoReport
	var eligible []*Item
	for _, item := range items {
		skipped, err := host.Skipped(item.object)
		if err != nil {
			return report, fmt.Errorf("reading state of %s: %w", item.ID(), err)
		}
		if skipped {
			report.Skipped++
			continue
		}
		eligible = append(eligible, item)
	}
	if report.Skipped > 0 {
		m.ui.Warn(fmt.Sprintf("%d hidden or locked item(s) will be skipped.", report.Skipped))
	}
	if len(eligible) == 0 {
		return report, nil
	}

	objects := make([]host.Object, len(eligible))
	properties := make([]property.Property, len(eligible))
	for i, item := range eligible {
		objects[i] = item.object
		properties[i] = item.property
	}

	var counts RedoReport
	err := m.document.Transaction("Redo LaTeX items", func() error {
		counts = RedoReport{}
		if mode == ModeMarkup {
			batch := make([]latex.Item, len(eligible))
			for i := range eligible {
				batch[i] = latex.ItemFor(properties[i], objects[i].ID())
			}
			paths, err := m.compileBatch(ctx, batch)
			if err != nil {
				return err
			}
			for i := range eligible {
				if err := properties[i].SetArtifactFile(paths[i]); err != nil {
					return err
				}
				target, err := m.persist(properties[i])
				if err != nil {
					return err
				}
				if objects[i], err = m.relink(objects[i], target, properties[i].Alignment.Anchor()); err != nil {
					return err
				}
				if err := objects[i].SetNote(properties[i].String()); err != nil {
					return fmt.Errorf("writing note of %s: %w", objects[i].ID(), err)
				}
				counts.Recompiled++
			}
		}

		for i := range eligible {
			placed, err := objects[i].Matrix()
			if err != nil {
				return err
			}
			if !placement.State(placed, m.tolerances).NeedsRedo() {
				continue
			}
			redone, err := placement.RedoBoundary(objects[i], properties[i].Alignment.Anchor(), m.tolerances)
			if err != nil {
				return fmt.Errorf("refitting %s: %w", objects[i].ID(), err)
			}
			if objects[i], err = host.Rebind(redone); err != nil {
				return err
			}
			counts.Refitted++
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	for i, item := range eligible {
		item.object, item.property = objects[i], properties[i]
	}
	report.Recompiled, report.Refitted = counts.Recompiled, counts.Refitted
	m.logger.Info("items redone", "mode", mode.String(), "items", len(eligible),
		"skipped", report.Skipped, "refitted", report.Refitted)
	return report, nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
	"github.com/bureau-foundation/latexplace/lib/item"
)

func redoCommand(environment Environment) *cli.Command {
	var (
		session SessionFlags
		markup  bool
		itemIDs []string
	)
	return &cli.Command{
		Name:    "redo",
		Summary: "Refit or recompile items",
		Description: `Reset the boundary of items, or recompile them.

Without --markup every selected item whose placed object was stretched
or rotated is refitted to its artifact, keeping its anchor in place.
With --markup the selected items are first compiled again in a single
engine run. Hidden and locked items are skipped.`,
		Usage: "latexplace redo --doc DOCUMENT [--markup] [--item ID]...",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("redo", pflag.ContinueOnError)
			session.AddFlags(flagSet)
			flagSet.BoolVar(&markup, "markup", false, "recompile the markup before refitting")
			flagSet.StringSliceVar(&itemIDs, "item", nil, "item IDs to redo (default: all items)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			opened, err := session.Open(environment, logger)
			if err != nil {
				return err
			}

			var items []*item.Item
			if len(itemIDs) == 0 {
				items, err = opened.model.Items()
				if err != nil {
					return err
				}
			} else {
				for _, id := range itemIDs {
					found, err := opened.findItem(id)
					if err != nil {
						return err
					}
					items = append(items, found)
				}
			}

			mode := item.ModeBoundary
			if markup {
				mode = item.ModeMarkup
			}
			report, err := opened.model.RedoBatch(ctx, items, mode)
			if err != nil {
				return err
			}
			if err := opened.Save(); err != nil {
				return err
			}
			logger.Info("redo finished", "mode", mode, "recompiled", report.Recompiled, "refitted", report.Refitted, "skipped", report.Skipped)
			fmt.Fprintf(environment.Stdout, "recompiled %d, refitted %d, skipped %d\n", report.Recompiled, report.Refitted, report.Skipped)
			return nil
		},
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
	"seehuhn.de/go/geom/vec"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
	"github.com/bureau-foundation/latexplace/lib/placement"
)

func positionCommand(environment Environment) *cli.Command {
	var (
		session SessionFlags
		itemID  string
		anchor  string
	)
	return &cli.Command{
		Name:    "position",
		Summary: "Print the document position of an item anchor",
		Description: `Print where an anchor of an item lies in the document.

The default anchor is the one selected by the item's alignment. The
position follows the placed object through rotation and stretching.`,
		Usage: "latexplace position --doc DOCUMENT --item ID [--anchor ANCHOR]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("position", pflag.ContinueOnError)
			session.AddFlags(flagSet)
			flagSet.StringVar(&itemID, "item", "", "item ID (required)")
			flagSet.StringVar(&anchor, "anchor", "", "anchor such as top-left or mid-mid (default: from alignment)")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			opened, err := session.Open(environment, logger)
			if err != nil {
				return err
			}
			target, err := opened.findItem(itemID)
			if err != nil {
				return err
			}

			var point vec.Vec2
			if anchor == "" {
				point, err = opened.model.Position(target)
			} else {
				var parsed placement.Anchor
				parsed, err = placement.ParseAnchor(anchor)
				if err != nil {
					return err
				}
				var points []vec.Vec2
				points, err = opened.model.Positions(target, []placement.Anchor{parsed})
				if err == nil {
					point = points[0]
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(environment.Stdout, formatPoint(point))
			return nil
		},
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
)

func editCommand(environment Environment) *cli.Command {
	var (
		session    SessionFlags
		properties propertyFlags
		itemID     string
		flagSet    *pflag.FlagSet
	)
	return &cli.Command{
		Name:    "edit",
		Summary: "Change the markup, alignment or method of an item",
		Description: `Change an existing item.

Markup changes, and alignment changes into or out of baseline, compile
the item again and relink it to the new artifact while its anchor stays
put. Other alignment and method changes only refit the placed object.
A cursor-only change rewrites the stored property and nothing else.`,
		Usage: "latexplace edit --doc DOCUMENT --item ID [--markup M] [--align H,V] [--method M] [--cursor N]",
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("edit", pflag.ContinueOnError)
			session.AddFlags(flagSet)
			properties.addFlags(flagSet)
			flagSet.StringVar(&itemID, "item", "", "item ID (required)")
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
			target, err := opened.findItem(itemID)
			if err != nil {
				return err
			}
			after, err := properties.apply(flagSet, target.Property())
			if err != nil {
				return err
			}
			if err := opened.model.Edit(ctx, target, after); err != nil {
				return err
			}
			if err := opened.Save(); err != nil {
				return err
			}
			logger.Info("item edited", "item", target.ID())
			fmt.Fprintln(environment.Stdout, target.ID())
			return nil
		},
	}
}

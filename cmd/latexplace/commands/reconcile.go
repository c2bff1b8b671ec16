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

func reconcileCommand(environment Environment) *cli.Command {
	var session SessionFlags
	return &cli.Command{
		Name:    "reconcile",
		Summary: "Repair item links and delete unused artifacts",
		Description: `Make every item consistent with the links directory.

Items that lost their embedded artifact take it from their linked file,
or are recompiled after confirmation. Every item is relinked to its
canonical artifact path. Artifact files used by neither this document
nor a sibling document in the same directory are then deleted.
Documents that were never saved are left alone.`,
		Usage: "latexplace reconcile --doc DOCUMENT",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("reconcile", pflag.ContinueOnError)
			session.AddFlags(flagSet)
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
			report, err := opened.model.Reconcile(ctx)
			if err != nil {
				return err
			}
			if report.Skipped {
				fmt.Fprintln(environment.Stdout, "document was never saved; nothing to reconcile")
				return nil
			}
			if err := opened.Save(); err != nil {
				return err
			}
			fmt.Fprintf(environment.Stdout, "items %d, adopted %d, recompiled %d, declined %d, relinked %d, deleted %d\n",
				report.Items, report.Adopted, report.Recompiled, report.Declined, report.Relinked, len(report.Deleted))
			for _, path := range report.Deleted {
				logger.Debug("deleted artifact", "path", path)
			}
			return nil
		},
	}
}

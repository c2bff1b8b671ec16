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

func undoCommand(environment Environment) *cli.Command {
	var session SessionFlags
	return &cli.Command{
		Name:    "undo",
		Summary: "Undo the last action on a document",
		Description: `Undo the last successful action recorded in the document's journal.

Artifact files written by the action stay in the links directory until
the next reconcile.`,
		Usage: "latexplace undo --doc DOCUMENT",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("undo", pflag.ContinueOnError)
			session.AddFlags(flagSet)
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
			name, err := opened.document.Undo()
			if err != nil {
				return err
			}
			if err := opened.Save(); err != nil {
				return err
			}
			fmt.Fprintf(environment.Stdout, "undid %q\n", name)
			return nil
		},
	}
}

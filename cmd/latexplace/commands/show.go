// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
	"github.com/bureau-foundation/latexplace/lib/item"
)

const markupColumnWidth = 32

func showCommand(environment Environment) *cli.Command {
	var session SessionFlags
	return &cli.Command{
		Name:    "show",
		Summary: "List the items of a document",
		Usage:   "latexplace show --doc DOCUMENT",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
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
			items, err := opened.model.Items()
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(environment.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tALIGN\tMETHOD\tBOUNDARY\tPOSITION\tLINK\tMARKUP")
			for _, current := range items {
				row, err := showRow(opened, current)
				if err != nil {
					return fmt.Errorf("item %s: %w", current.ID(), err)
				}
				fmt.Fprintln(writer, row)
			}
			return writer.Flush()
		},
	}
}

func showRow(opened *session, current *item.Item) (string, error) {
	p := current.Property()
	state, err := current.State(opened.model.Tolerances())
	if err != nil {
		return "", err
	}
	position, err := opened.model.Position(current)
	if err != nil {
		return "", err
	}
	linked, err := current.Object().LinkedPath()
	if err != nil {
		return "", err
	}
	if relative, err := filepath.Rel(filepath.Dir(opened.document.Path()), linked); err == nil {
		linked = relative
	}
	return strings.Join([]string{
		current.ID(),
		p.Alignment.String(),
		p.Method.String(),
		state.Classify().String(),
		formatPoint(position),
		linked,
		truncate(strings.ReplaceAll(p.Markup, "\n", " "), markupColumnWidth),
	}, "\t"), nil
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-3]) + "..."
}

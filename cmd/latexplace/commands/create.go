// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
	"github.com/bureau-foundation/latexplace/lib/property"
)

// propertyFlags are the item fields settable from the command line.
type propertyFlags struct {
	markup    string
	alignment string
	method    string
	cursor    int
}

func (f *propertyFlags) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.markup, "markup", "", "LaTeX markup of the item")
	flagSet.StringVar(&f.alignment, "align", "", "alignment as HORIZONTAL,VERTICAL (left|centreH|right, top|centreV|baseline|bottom)")
	flagSet.StringVar(&f.method, "method", "", "placed method (fill_to_boundary_box|keep_scale|keep_scale_clip)")
	flagSet.IntVar(&f.cursor, "cursor", 0, "editor cursor offset in the markup")
}

// apply overwrites the fields of p whose flags were given.
func (f *propertyFlags) apply(flagSet *pflag.FlagSet, p property.Property) (property.Property, error) {
	if flagSet.Changed("markup") {
		if f.markup == "" {
			return p, errors.New("--markup must not be empty")
		}
		p.Markup = f.markup
		if !flagSet.Changed("cursor") {
			p.Cursor = len(f.markup)
		}
	}
	if flagSet.Changed("align") {
		alignment, err := property.ParseAlignment(f.alignment)
		if err != nil {
			return p, err
		}
		p.Alignment = alignment
	}
	if flagSet.Changed("method") {
		method, err := property.ParsePlacedMethod(f.method)
		if err != nil {
			return p, err
		}
		p.Method = method
	}
	if flagSet.Changed("cursor") {
		if f.cursor < 0 || f.cursor > len(p.Markup) {
			return p, fmt.Errorf("--cursor %d outside the markup (length %d)", f.cursor, len(p.Markup))
		}
		p.Cursor = f.cursor
	}
	return p, nil
}

func createCommand(environment Environment) *cli.Command {
	var (
		session    SessionFlags
		properties propertyFlags
		at         string
		flagSet    *pflag.FlagSet
	)
	return &cli.Command{
		Name:    "create",
		Summary: "Compile markup and place it as a new item",
		Description: `Compile markup and place the result as a new item.

Fields not given on the command line start from the last successful
create or edit. The item's alignment anchor is placed at --at.`,
		Usage: "latexplace create --doc DOCUMENT --at X,Y [--markup M] [--align H,V] [--method M]",
		Examples: []cli.Example{
			{
				Description: "Left-align on the baseline at (10,20)",
				Command:     "latexplace create --doc figure.lxp --at 10,20 --markup 'x_1' --align left,baseline",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("create", pflag.ContinueOnError)
			session.AddFlags(flagSet)
			properties.addFlags(flagSet)
			flagSet.StringVar(&at, "at", "", "document point for the item's anchor, X,Y (required)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if at == "" {
				return errors.New("--at is required")
			}
			point, err := parsePoint(at)
			if err != nil {
				return err
			}
			opened, err := session.Open(environment, logger)
			if err != nil {
				return err
			}

			initial, err := property.ReadLastInput(opened.config.Paths.LastInput)
			if err != nil {
				logger.Warn("ignoring last input", "error", err)
				initial = property.Default()
			}
			initial, err = properties.apply(flagSet, initial)
			if err != nil {
				return err
			}

			created, err := opened.model.CreateNew(ctx, point, initial)
			if err != nil {
				return err
			}
			if err := opened.Save(); err != nil {
				return err
			}
			logger.Info("item created", "item", created.ID(), "document", opened.document.Path())
			fmt.Fprintln(environment.Stdout, created.ID())
			return nil
		},
	}
}

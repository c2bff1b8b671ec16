// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
)

func configCommand(environment Environment) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Summary: "Inspect the configuration",
		Subcommands: []*cli.Command{
			configCheckCommand(environment),
		},
	}
}

func configCheckCommand(environment Environment) *cli.Command {
	var flags ConfigFlags
	return &cli.Command{
		Name:    "check",
		Summary: "Validate the configuration and probe the external tools",
		Description: `Load and validate the configuration, then run the typesetting
engine with -version and Ghostscript with -v to confirm both can be
used. Exits 1 if any check fails.`,
		Usage: "latexplace config check [--config FILE]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("check", pflag.ContinueOnError)
			flags.AddFlags(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			renderer := lipgloss.NewRenderer(environment.Stdout)
			pass := renderer.NewStyle().Foreground(lipgloss.Color("42")).Render("ok  ")
			fail := renderer.NewStyle().Foreground(lipgloss.Color("203")).Render("FAIL")

			report := func(name string, err error) bool {
				if err != nil {
					fmt.Fprintf(environment.Stdout, "%s %s: %v\n", fail, name, err)
					return false
				}
				fmt.Fprintf(environment.Stdout, "%s %s\n", pass, name)
				return true
			}

			cfg, err := flags.Load()
			if !report("configuration", err) {
				return &cli.ExitError{Code: 1}
			}
			compiler := newCompiler(cfg, environment, "", logger)
			engineOK := report("engine "+compiler.Config().EnginePath(), compiler.CheckEngine(ctx))
			ghostscriptOK := report("ghostscript "+compiler.Config().Ghostscript, compiler.CheckGhostscript(ctx))
			if !engineOK || !ghostscriptOK {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

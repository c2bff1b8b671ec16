// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
	"github.com/bureau-foundation/latexplace/lib/version"
)

// Root builds the command tree on the process's own streams.
func Root() *cli.Command {
	return NewRoot(DefaultEnvironment())
}

// NewRoot builds the command tree for environment.
func NewRoot(environment Environment) *cli.Command {
	return &cli.Command{
		Name:   "latexplace",
		Stderr: environment.Stderr,
		Description: `latexplace: typeset LaTeX items placed in a vector document.

Each item keeps its markup, alignment and compiled PDF inside the
document. The compiled PDF is also written to a links directory next
to the document, named after the content hash, and the placed object
links to that file.`,
		Subcommands: []*cli.Command{
			createCommand(environment),
			editCommand(environment),
			redoCommand(environment),
			reconcileCommand(environment),
			positionCommand(environment),
			showCommand(environment),
			undoCommand(environment),
			dumpCommand(environment),
			configCommand(environment),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Fprintf(environment.Stdout, "latexplace %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Check that pdflatex and Ghostscript can be run",
				Command:     "latexplace config check",
			},
			{
				Description: "Place an equation with its centre at (120,110)",
				Command:     "latexplace create --doc figure.lxp --at 120,110 --markup '$a^2+b^2=c^2$'",
			},
			{
				Description: "List the items of a document",
				Command:     "latexplace show --doc figure.lxp",
			},
			{
				Description: "Recompile every item after changing the header",
				Command:     "latexplace redo --doc figure.lxp --markup",
			},
		},
	}
}

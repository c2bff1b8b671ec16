// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
	"github.com/bureau-foundation/latexplace/lib/artifact"
	"github.com/bureau-foundation/latexplace/lib/codec"
)

func dumpCommand(environment Environment) *cli.Command {
	var (
		session SessionFlags
		index   bool
	)
	return &cli.Command{
		Name:    "dump",
		Summary: "Print a document or artifact index file in CBOR diagnostic notation",
		Description: `Print the raw contents of a document file, or with --index the
artifact index of its links directory, in CBOR diagnostic notation
(RFC 8949). Nothing is modified.`,
		Usage: "latexplace dump --doc DOCUMENT [--index]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dump", pflag.ContinueOnError)
			session.AddFlags(flagSet)
			flagSet.BoolVar(&index, "index", false, "dump the artifact index instead of the document")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if session.DocumentPath == "" {
				return errors.New("--doc is required")
			}
			path := session.DocumentPath
			if index {
				cfg, err := session.Load()
				if err != nil {
					return err
				}
				store, err := artifact.NewStore(session.DocumentPath, artifact.Options{
					LinksDir: cfg.Artifacts.LinksDir,
					Postfix:  cfg.Artifacts.Postfix,
					Logger:   logger,
				})
				if err != nil {
					return err
				}
				path = filepath.Join(store.Dir(), artifact.IndexFileName)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			text, err := codec.Diagnose(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", path, err)
			}
			fmt.Fprintln(environment.Stdout, text)
			return nil
		},
	}
}

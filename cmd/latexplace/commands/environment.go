// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"os"

	"github.com/bureau-foundation/latexplace/lib/process"
)

// Environment is what the commands touch outside the document: the
// process runner for external tools and the standard streams.
type Environment struct {
	Runner process.Runner
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive forces the prompting mode of the terminal UI. Nil
	// means detect it from Stdin.
	Interactive *bool
}

// DefaultEnvironment runs real tools on the process's own streams.
func DefaultEnvironment() Environment {
	return Environment{
		Runner: process.ExecRunner{},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

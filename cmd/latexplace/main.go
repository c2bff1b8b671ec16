// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// latexplace creates and maintains typeset items in a vector document.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/commands"
	"github.com/bureau-foundation/latexplace/lib/process"
)

func main() {
	// Commands that print their own output (like config check) return
	// an exit error with the desired code, which Exit honours without
	// a redundant "error:" line.
	process.Exit(run())
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return commands.Root().Execute(ctx, os.Args[1:])
}

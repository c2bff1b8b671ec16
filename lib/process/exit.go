// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that carry the exit code of a
// command that already reported its own failure.
type ExitCoder interface {
	ExitCode() int
}

// Exit terminates main with the outcome of run(). nil exits 0. An
// [ExitCoder] anywhere in the chain exits with its code and prints
// nothing. Any other error is written as "error: ..." to stderr and
// exits 1.
func Exit(err error) {
	os.Exit(report(os.Stderr, err))
}

func report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}

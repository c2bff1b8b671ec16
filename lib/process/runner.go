// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// ExitNotFound is the exit code reported when the requested binary does
// not exist or could not be started.
const ExitNotFound = 127

// Invocation describes one external command.
type Invocation struct {
	// Path is the binary to run. A bare name is resolved through PATH.
	Path string

	// Args are the arguments passed after Path.
	Args []string

	// Dir is the working directory of the child. Empty means the
	// current directory.
	Dir string
}

// String renders the invocation as a quoted command line for logs and
// error messages.
func (inv Invocation) String() string {
	var builder strings.Builder
	builder.WriteString(`"`)
	builder.WriteString(inv.Path)
	builder.WriteString(`"`)
	for _, arg := range inv.Args {
		builder.WriteByte(' ')
		if strings.ContainsAny(arg, " \t") {
			builder.WriteString(`"` + arg + `"`)
		} else {
			builder.WriteString(arg)
		}
	}
	return builder.String()
}

// Result is the outcome of a finished invocation.
type Result struct {
	ExitCode int
	Output   string
}

// Runner executes invocations synchronously.
type Runner interface {
	Run(ctx context.Context, invocation Invocation) (Result, error)
}

// ExecRunner runs invocations as real child processes via os/exec.
type ExecRunner struct{}

// Run starts the child, waits for it, and reports its exit code and
// combined output. A non-zero exit is not an error: only failures of
// the runner itself (other than a missing binary) are returned as
// errors.
func (ExecRunner) Run(ctx context.Context, invocation Invocation) (Result, error) {
	if invocation.Dir != "" {
		info, err := os.Stat(invocation.Dir)
		if err != nil {
			return Result{}, fmt.Errorf("running %s: working directory: %w", invocation, err)
		}
		if !info.IsDir() {
			return Result{}, fmt.Errorf("running %s: working directory %s is not a directory", invocation, invocation.Dir)
		}
	}

	var output bytes.Buffer
	command := exec.CommandContext(ctx, invocation.Path, invocation.Args...)
	command.Dir = invocation.Dir
	command.Stdout = &output
	command.Stderr = &output

	err := command.Run()
	if err == nil {
		return Result{ExitCode: 0, Output: output.String()}, nil
	}

	var exitError *exec.ExitError
	var pathError *fs.PathError
	switch {
	case errors.As(err, &exitError):
		return Result{ExitCode: exitError.ExitCode(), Output: output.String()}, nil
	case errors.Is(err, exec.ErrNotFound):
		return Result{ExitCode: ExitNotFound, Output: err.Error()}, nil
	case errors.As(err, &pathError) && pathError.Path == command.Path &&
		(errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)):
		// The binary itself is missing or not executable.
		return Result{ExitCode: ExitNotFound, Output: err.Error()}, nil
	default:
		return Result{}, fmt.Errorf("running %s: %w", invocation, err)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process runs the external tools latexplace depends on (the
// typesetting engine and the page splitter) and provides the binary
// entrypoint helpers used by cmd/latexplace.
//
// Invocations are synchronous: [Runner.Run] blocks until the child exits
// and returns its exit code together with the combined stdout and stderr.
// A binary that cannot be found or started is reported with
// [ExitNotFound], the same code a POSIX shell uses, so callers classify
// "tool missing" identically whether the tool was launched directly or
// through a wrapper script.
//
// [Exit] maps the error returned by a command to the process exit
// status.
package process

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package latex

import (
	"context"
	"fmt"
	"strings"

	"github.com/bureau-foundation/latexplace/lib/process"
)

// CheckEngine runs the engine with -version and verifies that it
// identifies itself as a TeX engine.
func (c *Compiler) CheckEngine(ctx context.Context) error {
	return c.probe(ctx, c.config.EnginePath(), "-version", "TeX", ErrEngineUnavailable)
}

// CheckGhostscript runs Ghostscript with -v and verifies its banner.
func (c *Compiler) CheckGhostscript(ctx context.Context) error {
	return c.probe(ctx, c.config.ghostscript(), "-v", "Ghostscript", ErrSplitterUnavailable)
}

func (c *Compiler) probe(ctx context.Context, command, flag, banner string, unavailable error) error {
	invocation := process.Invocation{Path: command, Args: []string{flag}}
	result, err := c.runner.Run(ctx, invocation)
	if err != nil {
		return fmt.Errorf("probing %s: %w", command, err)
	}
	if result.ExitCode == process.ExitNotFound {
		return fmt.Errorf("%s: %w", command, unavailable)
	}
	if result.ExitCode != 0 || !strings.Contains(result.Output, banner) {
		return fmt.Errorf("%s does not look like %s (exit code %d): %w", command, banner, result.ExitCode, unavailable)
	}
	c.logger.Debug("tool available", "command", command, "banner", firstLine(result.Output))
	return nil
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}

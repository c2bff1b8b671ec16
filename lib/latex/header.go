// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package latex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrIncludeCycle is returned when header files \input each other in a
// cycle.
var ErrIncludeCycle = errors.New("header include cycle")

// inputDirective matches \input{name} outside of comments.
var inputDirective = regexp.MustCompile(`\\input\{([^{}]+)\}`)

// ResolveHeader reads the header at path and inlines every \input{...}
// it contains, recursively. Relative names resolve against the directory
// of the file containing the directive; a name without extension gets
// ".tex". A directive whose file does not exist is kept as written so
// the engine can still find it on its own search path.
func ResolveHeader(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving header path: %w", err)
	}
	return resolveHeader(absolute, nil)
}

func resolveHeader(path string, ancestors []string) (string, error) {
	for _, ancestor := range ancestors {
		if ancestor == path {
			chain := append(append([]string(nil), ancestors...), path)
			return "", fmt.Errorf("%s: %w", strings.Join(chain, " -> "), ErrIncludeCycle)
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading header: %w", err)
	}
	ancestors = append(ancestors, path)

	lines := strings.SplitAfter(string(content), "\n")
	var builder strings.Builder
	for _, line := range lines {
		code, comment := splitComment(line)
		var resolveErr error
		expanded := inputDirective.ReplaceAllStringFunc(code, func(directive string) string {
			if resolveErr != nil {
				return directive
			}
			name := inputDirective.FindStringSubmatch(directive)[1]
			included := includePath(filepath.Dir(path), strings.TrimSpace(name))
			if _, err := os.Stat(included); errors.Is(err, fs.ErrNotExist) {
				return directive
			}
			text, err := resolveHeader(included, ancestors)
			if err != nil {
				resolveErr = err
				return directive
			}
			return strings.TrimRight(text, "\n") + "\n"
		})
		if resolveErr != nil {
			return "", resolveErr
		}
		builder.WriteString(expanded)
		builder.WriteString(comment)
	}
	return builder.String(), nil
}

// splitComment splits a line at its first unescaped %.
func splitComment(line string) (code, comment string) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return line[:i], line[i:]
		}
	}
	return line, ""
}

func includePath(dir, name string) string {
	if filepath.Ext(name) == "" {
		name += ".tex"
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}

// EnsureHeader writes [DefaultHeader] to path unless a file already
// exists there. It reports whether the file was created.
func EnsureHeader(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking header %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating directory for header: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultHeader), 0o644); err != nil {
		return false, fmt.Errorf("writing default header: %w", err)
	}
	return true, nil
}

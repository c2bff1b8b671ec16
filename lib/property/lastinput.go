// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LastInputFileName is the default name of the last-input file inside
// the application directory.
const LastInputFileName = "LaTeX2AI_last_input.xml"

// ReadLastInput returns the property recorded by the last successful
// create or edit, for pre-filling a new item. A missing file yields
// [Default].
func ReadLastInput(path string) (Property, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Property{}, fmt.Errorf("reading last input: %w", err)
	}
	property, err := Parse(string(data))
	if err != nil {
		return Property{}, fmt.Errorf("parsing last input %s: %w", path, err)
	}
	return property, nil
}

// WriteLastInput records a property as the last input. The embedded
// artifact is not written: a new item always compiles its own.
func WriteLastInput(path string, p Property) error {
	p.ClearArtifact()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for last input: %w", err)
	}
	if err := os.WriteFile(path, []byte(p.String()), 0o644); err != nil {
		return fmt.Errorf("writing last input: %w", err)
	}
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Siblings returns the names, without extension, of the other documents
// in this document's directory that share its extension. Artifacts they
// own live in the same links directory.
func (s *Store) Siblings() ([]string, error) {
	directory := filepath.Dir(s.documentPath)
	extension := filepath.Ext(s.documentPath)
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("listing documents in %s: %w", directory, err)
	}

	var siblings []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != extension || name == filepath.Base(s.documentPath) {
			continue
		}
		siblings = append(siblings, strings.TrimSuffix(name, extension))
	}
	return siblings, nil
}

// Sweep deletes artifact files in the links directory that are neither
// listed in keep nor owned by one of the sibling documents. A file is an
// artifact when its name contains the postfix and ends in ".pdf". Paths
// in keep are compared in absolute, cleaned form. Sweep returns the deleted paths
// in sorted order.
func (s *Store) Sweep(keep []string, siblings []string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	pattern := regexp.MustCompile(`^.*` + regexp.QuoteMeta(s.postfix) + `.*\.pdf$`)
	kept := make(map[string]bool, len(keep))
	for _, path := range keep {
		if absolute, err := filepath.Abs(path); err == nil {
			path = absolute
		}
		kept[filepath.Clean(path)] = true
	}
	siblingPrefixes := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling == s.documentName {
			continue
		}
		siblingPrefixes = append(siblingPrefixes, sibling+s.postfix)
	}

	var deleted []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !pattern.MatchString(name) {
			continue
		}
		path := filepath.Join(s.dir, name)
		if kept[path] {
			continue
		}
		if slices.ContainsFunc(siblingPrefixes, func(prefix string) bool {
			return strings.HasPrefix(name, prefix)
		}) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return deleted, fmt.Errorf("removing unused artifact %s: %w", path, err)
		}
		s.logger.Info("removed unused artifact", "path", path)
		deleted = append(deleted, path)
	}

	if len(deleted) > 0 {
		if err := s.updateIndex(func(index *Index) {
			for _, path := range deleted {
				delete(index.Entries, filepath.Base(path))
			}
		}); err != nil {
			return deleted, err
		}
	}
	slices.Sort(deleted)
	return deleted, nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/latexplace/lib/codec"
	"github.com/bureau-foundation/latexplace/lib/pdfbox"
)

// IndexFileName is the name of the index file inside the links
// directory. The leading dot keeps it out of the artifact pattern.
const IndexFileName = ".latexplace-index.cbor"

// indexVersion is bumped when IndexEntry changes incompatibly. An index
// with a different version is discarded and rebuilt on demand.
const indexVersion = 1

// Index maps artifact file names to what is known about them.
type Index struct {
	Version int                   `cbor:"version"`
	Entries map[string]IndexEntry `cbor:"entries"`
}

// IndexEntry records the size and first page box of one artifact file.
type IndexEntry struct {
	Size   int64   `cbor:"size"`
	Pages  int     `cbor:"pages"`
	Width  float64 `cbor:"width"`
	Height float64 `cbor:"height"`
}

// Describe returns the index entry for the artifact at path. Missing or
// incomplete entries are filled by reading the PDF and written back.
func (s *Store) Describe(path string) (IndexEntry, error) {
	index, err := s.loadIndex()
	if err != nil {
		return IndexEntry{}, err
	}
	name := filepath.Base(path)
	inStore := filepath.Dir(path) == s.dir
	if entry, ok := index.Entries[name]; ok && inStore && entry.Pages > 0 {
		return entry, nil
	}

	info, err := pdfbox.Inspect(path)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("describing artifact: %w", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("describing artifact: %w", err)
	}
	entry := IndexEntry{
		Size:   stat.Size(),
		Pages:  info.Pages,
		Width:  info.MediaBox.Width(),
		Height: info.MediaBox.Height(),
	}
	if inStore {
		if err := s.updateIndex(func(index *Index) { index.Entries[name] = entry }); err != nil {
			return IndexEntry{}, err
		}
	}
	return entry, nil
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, IndexFileName)
}

func (s *Store) loadIndex() (*Index, error) {
	empty := &Index{Version: indexVersion, Entries: make(map[string]IndexEntry)}

	data, err := os.ReadFile(s.indexPath())
	if errors.Is(err, fs.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading artifact index: %w", err)
	}

	var index Index
	if err := codec.Unmarshal(data, &index); err != nil {
		s.logger.Warn("discarding unreadable artifact index", "path", s.indexPath(), "error", err)
		return empty, nil
	}
	if index.Version != indexVersion {
		s.logger.Info("discarding artifact index with different version",
			"path", s.indexPath(), "version", index.Version)
		return empty, nil
	}
	if index.Entries == nil {
		index.Entries = make(map[string]IndexEntry)
	}
	return &index, nil
}

func (s *Store) updateIndex(mutate func(*Index)) error {
	index, err := s.loadIndex()
	if err != nil {
		return err
	}
	mutate(index)
	data, err := codec.Marshal(index)
	if err != nil {
		return fmt.Errorf("encoding artifact index: %w", err)
	}
	if err := writeFileAtomic(s.indexPath(), data); err != nil {
		return fmt.Errorf("writing artifact index: %w", err)
	}
	return nil
}

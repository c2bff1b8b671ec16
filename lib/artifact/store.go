// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/latexplace/lib/pdfbox"
)

// Defaults for [Options].
const (
	DefaultLinksDir = "links"
	DefaultPostfix  = "_LaTeX2AI_"
)

// ErrEmptyPayload is returned by [Store.Persist] for an empty payload.
// Writing an empty artifact would leave an item linked to a file no
// host can place.
var ErrEmptyPayload = errors.New("artifact payload is empty")

// Options configures a [Store].
type Options struct {
	// LinksDir is the directory, relative to the document, that holds
	// artifact files. Default "links".
	LinksDir string

	// Postfix separates the document name from the hash in artifact
	// file names. Default "_LaTeX2AI_".
	Postfix string

	// Logger receives index maintenance messages. Nil discards.
	Logger *slog.Logger
}

// Store manages the artifact files of one document. It is not safe for
// concurrent use; callers run one user action at a time.
type Store struct {
	documentPath string
	documentName string
	dir          string
	postfix      string
	logger       *slog.Logger
}

// NewStore returns a Store for the document at documentPath. The links
// directory is created lazily by [Store.Persist].
func NewStore(documentPath string, options Options) (*Store, error) {
	if documentPath == "" {
		return nil, errors.New("artifact store requires a saved document path")
	}
	absolute, err := filepath.Abs(documentPath)
	if err != nil {
		return nil, fmt.Errorf("resolving document path: %w", err)
	}
	if options.LinksDir == "" {
		options.LinksDir = DefaultLinksDir
	}
	if options.Postfix == "" {
		options.Postfix = DefaultPostfix
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	base := filepath.Base(absolute)
	return &Store{
		documentPath: absolute,
		documentName: strings.TrimSuffix(base, filepath.Ext(base)),
		dir:          filepath.Join(filepath.Dir(absolute), options.LinksDir),
		postfix:      options.Postfix,
		logger:       logger,
	}, nil
}

// Dir returns the links directory.
func (s *Store) Dir() string { return s.dir }

// DocumentPath returns the absolute path of the owning document.
func (s *Store) DocumentPath() string { return s.documentPath }

// DocumentName returns the document file name without extension.
func (s *Store) DocumentName() string { return s.documentName }

// Prefix returns the file name prefix every artifact of this document
// carries: the document name followed by the postfix.
func (s *Store) Prefix() string { return s.documentName + s.postfix }

// PathFor returns the canonical artifact path for a payload hash:
// {links_dir}/{document_name}{postfix}{hash}.pdf.
func (s *Store) PathFor(hash Hash) string {
	return filepath.Join(s.dir, s.Prefix()+FormatHash(hash)+".pdf")
}

// Persist decodes the base64 payload and writes it to path via a
// temporary file and an atomic rename, then records the artifact in the
// index. The parent directory is created if needed.
func (s *Store) Persist(payload, path string) error {
	if payload == "" {
		return fmt.Errorf("persisting %s: %w", path, ErrEmptyPayload)
	}
	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decoding payload for %s: %w", path, err)
	}
	if len(content) == 0 {
		return fmt.Errorf("persisting %s: %w", path, ErrEmptyPayload)
	}

	if err := writeFileAtomic(path, content); err != nil {
		return err
	}

	entry := IndexEntry{Size: int64(len(content))}
	if info, err := pdfbox.InspectBytes(content); err != nil {
		s.logger.Warn("persisted artifact is not a readable PDF", "path", path, "error", err)
	} else {
		entry.Pages = info.Pages
		entry.Width = info.MediaBox.Width()
		entry.Height = info.MediaBox.Height()
	}
	if filepath.Dir(path) == s.dir {
		if err := s.updateIndex(func(index *Index) {
			index.Entries[filepath.Base(path)] = entry
		}); err != nil {
			return err
		}
	}
	return nil
}

// ReadPayload reads the artifact file at path and returns its base64
// payload.
func ReadPayload(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading artifact %s: %w", path, err)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("reading artifact %s: %w", path, ErrEmptyPayload)
	}
	return base64.StdEncoding.EncodeToString(content), nil
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func writeFileAtomic(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}

	success = true
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package debugbundle

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/latexplace/lib/binhash"
)

// Compression selects the archive compression.
type Compression string

const (
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// Extension returns the archive file extension for the compression.
func (c Compression) Extension() string {
	switch c {
	case CompressionLZ4:
		return ".tar.lz4"
	default:
		return ".tar.zst"
	}
}

// ErrNoFiles is returned by Export when none of the given files exist.
var ErrNoFiles = errors.New("debugbundle: no files to export")

// File names one file to include. Name is the path inside the
// archive; Path is where it is read from.
type File struct {
	Name string
	Path string
}

// Options configures Export.
type Options struct {
	// Compression defaults to CompressionZstd.
	Compression Compression

	// Now stamps the archive name and entries. Defaults to time.Now.
	Now func() time.Time
}

// Export writes the files that exist into {dir}/{base}-{timestamp}
// plus the compression extension and returns the archive path.
// Missing files are skipped; the list of skipped names is written to
// MISSING inside the archive. A SHA256SUMS manifest covering every
// other entry is written last. The archive is written to a temp file
// and renamed into place.
func Export(dir, base string, files []File, options Options) (string, error) {
	now := time.Now
	if options.Now != nil {
		now = options.Now
	}
	compression := options.Compression
	if compression == "" {
		compression = CompressionZstd
	}
	if compression != CompressionZstd && compression != CompressionLZ4 {
		return "", fmt.Errorf("debugbundle: unknown compression %q", compression)
	}

	type entry struct {
		name string
		data []byte
	}
	var entries []entry
	var missing []string
	for _, file := range files {
		data, err := os.ReadFile(file.Path)
		if errors.Is(err, os.ErrNotExist) {
			missing = append(missing, file.Name)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file.Path, err)
		}
		entries = append(entries, entry{name: file.Name, data: data})
	}
	if len(entries) == 0 {
		return "", ErrNoFiles
	}
	if len(missing) > 0 {
		entries = append(entries, entry{name: "MISSING", data: []byte(strings.Join(missing, "\n") + "\n")})
	}
	manifest := make(binhash.Manifest, len(entries))
	for _, e := range entries {
		manifest.Add(e.name, e.data)
	}
	manifestText, err := manifest.MarshalText()
	if err != nil {
		return "", err
	}
	entries = append(entries, entry{name: binhash.ManifestName, data: manifestText})

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	stamp := now().UTC()
	path := filepath.Join(dir, base+"-"+stamp.Format("20060102T150405Z")+compression.Extension())

	temporary, err := os.CreateTemp(dir, ".bundle-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	success := false
	defer func() {
		if !success {
			temporary.Close()
			os.Remove(temporary.Name())
		}
	}()

	compressor, err := newCompressor(temporary, compression)
	if err != nil {
		return "", err
	}
	archive := tar.NewWriter(compressor)
	for _, e := range entries {
		header := &tar.Header{
			Name:    e.name,
			Mode:    0o644,
			Size:    int64(len(e.data)),
			ModTime: stamp,
			Format:  tar.FormatPAX,
		}
		if err := archive.WriteHeader(header); err != nil {
			return "", fmt.Errorf("writing header for %s: %w", e.name, err)
		}
		if _, err := archive.Write(e.data); err != nil {
			return "", fmt.Errorf("writing %s: %w", e.name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return "", fmt.Errorf("closing archive: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return "", fmt.Errorf("closing %s stream: %w", compression, err)
	}
	if err := temporary.Sync(); err != nil {
		return "", fmt.Errorf("syncing bundle: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return "", fmt.Errorf("closing bundle: %w", err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return "", fmt.Errorf("renaming bundle into place: %w", err)
	}
	success = true
	return path, nil
}

func newCompressor(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		return encoder, nil
	}
}

// Read returns the entries of a bundle written by Export, keyed by
// archive name, after checking them against the bundle's SHA256SUMS
// manifest when it has one. The manifest itself is not returned. The
// compression is chosen from the file extension.
func Read(path string) (map[string][]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var source io.Reader
	switch {
	case strings.HasSuffix(path, CompressionLZ4.Extension()):
		source = lz4.NewReader(file)
	case strings.HasSuffix(path, CompressionZstd.Extension()):
		decoder, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer decoder.Close()
		source = decoder
	default:
		return nil, fmt.Errorf("debugbundle: unrecognized archive extension: %s", path)
	}

	entries := make(map[string][]byte)
	archive := tar.NewReader(source)
	for {
		header, err := archive.Next()
		if err == io.EOF {
			return verified(path, entries)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		data, err := io.ReadAll(archive)
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", header.Name, path, err)
		}
		entries[header.Name] = data
	}
}

func verified(path string, entries map[string][]byte) (map[string][]byte, error) {
	text, ok := entries[binhash.ManifestName]
	if !ok {
		return entries, nil
	}
	delete(entries, binhash.ManifestName)
	manifest, err := binhash.ParseManifest(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := manifest.Verify(entries); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

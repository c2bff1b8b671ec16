// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package debugbundle

import (
	"archive/tar"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/latexplace/lib/binhash"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	for _, compression := range []Compression{CompressionZstd, CompressionLZ4} {
		t.Run(string(compression), func(t *testing.T) {
			source := t.TempDir()
			logPath := filepath.Join(source, "item.log")
			texPath := filepath.Join(source, "item.tex")
			writeFile(t, logPath, "! Undefined control sequence.\n")
			writeFile(t, texPath, "\\LaTeXtoAI{$\\undefined$}\n")

			out := filepath.Join(t.TempDir(), "debug")
			path, err := Export(out, "drawing", []File{
				{Name: "item.log", Path: logPath},
				{Name: "item.tex", Path: texPath},
				{Name: "header.tex", Path: filepath.Join(source, "absent.tex")},
			}, Options{Compression: compression, Now: fixedNow})
			if err != nil {
				t.Fatalf("Export: %v", err)
			}
			want := filepath.Join(out, "drawing-20260304T050607Z"+compression.Extension())
			if path != want {
				t.Errorf("path = %s, want %s", path, want)
			}

			entries, err := Read(path)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			got := make(map[string]string)
			for name, data := range entries {
				got[name] = string(data)
			}
			expected := map[string]string{
				"item.log": "! Undefined control sequence.\n",
				"item.tex": "\\LaTeXtoAI{$\\undefined$}\n",
				"MISSING":  "header.tex\n",
			}
			if diff := cmp.Diff(expected, got); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadRejectsTamperedBundle(t *testing.T) {
	source := t.TempDir()
	logPath := filepath.Join(source, "item.log")
	writeFile(t, logPath, "log\n")

	out := t.TempDir()
	path, err := Export(out, "drawing", []File{{Name: "item.log", Path: logPath}}, Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	entries, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := entries[binhash.ManifestName]; ok {
		t.Error("Read returned the manifest as an entry")
	}

	// Rebuild the archive with altered content and the old manifest.
	tampered := filepath.Join(out, "tampered"+CompressionZstd.Extension())
	file, err := os.Create(tampered)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	compressor, err := newCompressor(file, CompressionZstd)
	if err != nil {
		t.Fatalf("newCompressor: %v", err)
	}
	manifest := binhash.Manifest{}
	manifest.Add("item.log", []byte("log\n"))
	manifestText, _ := manifest.MarshalText()
	archive := tar.NewWriter(compressor)
	for name, data := range map[string]string{"item.log": "forged\n", binhash.ManifestName: string(manifestText)} {
		if err := archive.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(data))}); err != nil {
			t.Fatalf("WriteHeader: %v", err)
		}
		if _, err := archive.Write([]byte(data)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	archive.Close()
	compressor.Close()
	file.Close()

	if _, err := Read(tampered); !errors.Is(err, binhash.ErrMismatch) {
		t.Errorf("Read of tampered bundle: err = %v, want ErrMismatch", err)
	}
}

func TestExportNoFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Export(dir, "drawing", []File{{Name: "a", Path: filepath.Join(dir, "nope")}}, Options{})
	if !errors.Is(err, ErrNoFiles) {
		t.Fatalf("err = %v, want ErrNoFiles", err)
	}
	leftovers, _ := os.ReadDir(dir)
	if len(leftovers) != 0 {
		t.Errorf("export left files behind: %v", leftovers)
	}
}

func TestExportUnknownCompression(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "x")
	_, err := Export(dir, "drawing", []File{{Name: "a", Path: filepath.Join(dir, "a")}}, Options{Compression: "gzip"})
	if err == nil || !strings.Contains(err.Error(), "gzip") {
		t.Fatalf("err = %v, want unknown compression", err)
	}
}

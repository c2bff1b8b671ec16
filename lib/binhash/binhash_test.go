// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHashFile(t *testing.T) {
	content := []byte("! Undefined control sequence.\n")
	path := filepath.Join(t.TempDir(), "item.log")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := Digest(sha256.Sum256(content)); got != want {
		t.Errorf("HashFile = %s, want %s", got, want)
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("HashFile of a missing file succeeded")
	}
}

func TestParseDigest(t *testing.T) {
	digest := HashBytes([]byte("x"))
	parsed, err := ParseDigest(digest.String())
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if parsed != digest {
		t.Errorf("ParseDigest(%s) = %s", digest, parsed)
	}
	for _, bad := range []string{"", "zz", strings.Repeat("ab", 31)} {
		if _, err := ParseDigest(bad); err == nil {
			t.Errorf("ParseDigest(%q) succeeded", bad)
		}
	}
}

func TestManifestText(t *testing.T) {
	manifest := Manifest{}
	manifest.Add("item.tex", []byte("source"))
	manifest.Add("item.log", []byte("log"))

	text, err := manifest.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(text)), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "  item.log") || !strings.HasSuffix(lines[1], "  item.tex") {
		t.Errorf("manifest not sorted sha256sum text:\n%s", text)
	}

	parsed, err := ParseManifest(text)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if diff := cmp.Diff(manifest, parsed); diff != "" {
		t.Errorf("parsed manifest differs (-want +got):\n%s", diff)
	}
}

func TestParseManifestBinaryMarker(t *testing.T) {
	digest := HashBytes([]byte("pdf"))
	manifest, err := ParseManifest([]byte(digest.String() + " *item.pdf\n"))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if manifest["item.pdf"] != digest {
		t.Errorf("manifest = %v", manifest)
	}
	if _, err := ParseManifest([]byte("not a manifest line\n")); err == nil {
		t.Error("ParseManifest accepted a malformed line")
	}
}

func TestManifestVerify(t *testing.T) {
	manifest := Manifest{}
	manifest.Add("a", []byte("one"))
	manifest.Add("b", []byte("two"))

	if err := manifest.Verify(map[string][]byte{"a": []byte("one"), "b": []byte("two")}); err != nil {
		t.Errorf("Verify of intact files: %v", err)
	}
	err := manifest.Verify(map[string][]byte{"a": []byte("changed")})
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("Verify error = %v, want ErrMismatch", err)
	}
	if !strings.Contains(err.Error(), "a:") || !strings.Contains(err.Error(), "b:") {
		t.Errorf("Verify should report both the changed and the missing file: %v", err)
	}
}

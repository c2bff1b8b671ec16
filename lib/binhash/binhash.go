// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ManifestName is the conventional name of a checksum manifest.
const ManifestName = "SHA256SUMS"

// ErrMismatch is returned by [Manifest.Verify] when content does not
// match its recorded digest.
var ErrMismatch = errors.New("checksum mismatch")

// Digest is a SHA256 digest.
type Digest [32]byte

// String returns the lowercase hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// HashBytes returns the digest of data.
func HashBytes(data []byte) Digest {
	return sha256.Sum256(data)
}

// HashFile streams the file at path through SHA256.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// ParseDigest parses a 64-character hex digest.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

// Manifest maps file names to digests.
type Manifest map[string]Digest

// Add records the digest of data under name.
func (m Manifest) Add(name string, data []byte) {
	m[name] = HashBytes(data)
}

// MarshalText renders the manifest as sha256sum output, sorted by name.
func (m Manifest) MarshalText() ([]byte, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		if strings.ContainsAny(name, "\n\r") {
			return nil, fmt.Errorf("file name %q contains a line break", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var buffer bytes.Buffer
	for _, name := range names {
		fmt.Fprintf(&buffer, "%s  %s\n", m[name], name)
	}
	return buffer.Bytes(), nil
}

// ParseManifest parses sha256sum output. Both the text ("  ") and the
// binary (" *") separators are accepted.
func ParseManifest(data []byte) (Manifest, error) {
	manifest := make(Manifest)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if len(line) < 67 || (line[64:66] != "  " && line[64:66] != " *") {
			return nil, fmt.Errorf("manifest line %d: malformed", lineNumber)
		}
		digest, err := ParseDigest(line[:64])
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", lineNumber, err)
		}
		manifest[line[66:]] = digest
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Verify checks every manifest entry against files. A listed name
// absent from files is a mismatch.
func (m Manifest) Verify(files map[string][]byte) error {
	var errs []error
	for name, want := range m {
		data, ok := files[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w: file missing", name, ErrMismatch))
			continue
		}
		if got := HashBytes(data); got != want {
			errs = append(errs, fmt.Errorf("%s: %w: have %s, want %s", name, ErrMismatch, got, want))
		}
	}
	return errors.Join(errs...)
}

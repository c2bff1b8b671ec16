// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

type sampleEntry struct {
	Hash   string  `cbor:"hash"`
	Width  float64 `cbor:"width"`
	Height float64 `cbor:"height"`
	Pages  int     `cbor:"pages,omitempty"`
}

func TestMarshalDeterministicAcrossMapOrder(t *testing.T) {
	// Go map iteration order is random; the encoded bytes must not be.
	entries := map[string]sampleEntry{
		"b": {Hash: "bb", Width: 2, Height: 1},
		"a": {Hash: "aa", Width: 40, Height: 20, Pages: 1},
		"c": {Hash: "cc", Width: 0.5, Height: 0.25},
	}

	first, err := Marshal(entries)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(entries)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}

	var decoded map[string]sampleEntry
	if err := Unmarshal(first, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["a"] != entries["a"] {
		t.Errorf("decoded[a] = %+v, want %+v", decoded["a"], entries["a"])
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	type newer struct {
		Hash  string `cbor:"hash"`
		Extra string `cbor:"extra"`
	}
	data, err := Marshal(newer{Hash: "aa", Extra: "from the future"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var older sampleEntry
	if err := Unmarshal(data, &older); err != nil {
		t.Fatalf("Unmarshal into older type: %v", err)
	}
	if older.Hash != "aa" {
		t.Errorf("Hash = %q, want %q", older.Hash, "aa")
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(sampleEntry{Hash: "aa", Width: 1, Height: 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(text, `"hash"`) {
		t.Errorf("Diagnose output %q does not name the hash field", text)
	}
}

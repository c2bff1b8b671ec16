// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/latexplace/lib/testutil"
)

func newTestStore(t *testing.T, documentName string) (*Store, string) {
	t.Helper()
	directory := t.TempDir()
	documentPath := filepath.Join(directory, documentName+".ai")
	if err := os.WriteFile(documentPath, []byte("document"), 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}
	store, err := NewStore(documentPath, Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, directory
}

func fixturePayload(label string) string {
	return base64.StdEncoding.EncodeToString(testutil.PDF(testutil.Page{Width: 40, Height: 20, Label: label}))
}

func TestPathForIsPureAndDistinct(t *testing.T) {
	store, directory := newTestStore(t, "drawing")
	first := HashPayload(fixturePayload("a"))
	second := HashPayload(fixturePayload("b"))

	want := filepath.Join(directory, "links", "drawing_LaTeX2AI_"+FormatHash(first)+".pdf")
	if got := store.PathFor(first); got != want {
		t.Errorf("PathFor = %q, want %q", got, want)
	}
	if store.PathFor(first) != store.PathFor(first) {
		t.Error("PathFor is not deterministic")
	}
	if store.PathFor(first) == store.PathFor(second) {
		t.Error("different artifacts map to the same path")
	}
}

func TestPersistWritesAndIndexes(t *testing.T) {
	store, _ := newTestStore(t, "drawing")
	payload := fixturePayload("x")
	path := store.PathFor(HashPayload(payload))

	if err := store.Persist(payload, path); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	roundTrip, err := ReadPayload(path)
	if err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	if roundTrip != payload {
		t.Fatal("persisted file does not decode to the original payload")
	}

	entry, err := store.Describe(path)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if entry.Pages != 1 || entry.Width != 40 || entry.Height != 20 {
		t.Errorf("entry = %+v, want one 40x20 page", entry)
	}

	leftovers, err := filepath.Glob(filepath.Join(store.Dir(), ".tmp-*"))
	if err != nil || len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestPersistEmptyPayload(t *testing.T) {
	store, _ := newTestStore(t, "drawing")
	path := filepath.Join(store.Dir(), "empty.pdf")
	if err := store.Persist("", path); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("err = %v, want ErrEmptyPayload", err)
	}
	if Exists(path) {
		t.Fatal("empty payload created a file")
	}
}

func TestDescribeFallsBackToPDF(t *testing.T) {
	store, _ := newTestStore(t, "drawing")
	path := filepath.Join(store.Dir(), "drawing_LaTeX2AI_external.pdf")
	testutil.WritePDF(t, path, testutil.Page{Width: 15, Height: 5})

	entry, err := store.Describe(path)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if entry.Width != 15 || entry.Height != 5 {
		t.Errorf("entry = %+v, want 15x5", entry)
	}

	index, err := store.loadIndex()
	if err != nil {
		t.Fatalf("loadIndex: %v", err)
	}
	if _, ok := index.Entries[filepath.Base(path)]; !ok {
		t.Error("Describe did not record the entry in the index")
	}
}

func TestSweepKeepsReferencedAndSiblingFiles(t *testing.T) {
	store, directory := newTestStore(t, "drawing")
	if err := os.WriteFile(filepath.Join(directory, "poster.ai"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	write := func(name string) string {
		path := filepath.Join(store.Dir(), name)
		testutil.WritePDF(t, path, testutil.Page{Width: 1, Height: 1, Label: name})
		return path
	}
	used := write("drawing_LaTeX2AI_used.pdf")
	orphan := write("drawing_LaTeX2AI_orphan.pdf")
	sibling := write("poster_LaTeX2AI_other.pdf")
	unrelated := write("figure.pdf")

	siblings, err := store.Siblings()
	if err != nil {
		t.Fatalf("Siblings: %v", err)
	}
	if diff := cmp.Diff([]string{"poster"}, siblings); diff != "" {
		t.Fatalf("Siblings mismatch (-want +got):\n%s", diff)
	}

	deleted, err := store.Sweep([]string{used}, siblings)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if diff := cmp.Diff([]string{orphan}, deleted); diff != "" {
		t.Errorf("deleted mismatch (-want +got):\n%s", diff)
	}
	for _, path := range []string{used, sibling, unrelated} {
		if !Exists(path) {
			t.Errorf("%s was deleted", filepath.Base(path))
		}
	}
	if Exists(orphan) {
		t.Error("orphan survived the sweep")
	}
}

func TestSweepWithoutLinksDirectory(t *testing.T) {
	store, _ := newTestStore(t, "drawing")
	deleted, err := store.Sweep(nil, nil)
	if err != nil || len(deleted) != 0 {
		t.Fatalf("Sweep = %v, %v; want nothing", deleted, err)
	}
}

func TestPrefixUsesConfiguredPostfix(t *testing.T) {
	directory := t.TempDir()
	store, err := NewStore(filepath.Join(directory, "plan.ai"), Options{LinksDir: "art", Postfix: "_x_"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Prefix() != "plan_x_" {
		t.Errorf("Prefix = %q", store.Prefix())
	}
	if !strings.HasPrefix(store.PathFor(Hash{}), filepath.Join(directory, "art")) {
		t.Errorf("PathFor = %q, want inside the configured links dir", store.PathFor(Hash{}))
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pdfbox_test

import (
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/latexplace/lib/pdfbox"
	"github.com/bureau-foundation/latexplace/lib/testutil"
)

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "three.pdf")
	testutil.WritePDF(t, path,
		testutil.Page{Width: 40, Height: 20, Label: "a"},
		testutil.Page{Width: 10, Height: 10, Label: "b"},
		testutil.Page{Width: 10, Height: 10, Label: "c"},
	)

	info, err := pdfbox.Inspect(path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Pages != 3 {
		t.Errorf("Pages = %d, want 3", info.Pages)
	}
	if info.MediaBox.Width() != 40 || info.MediaBox.Height() != 20 {
		t.Errorf("MediaBox = %+v, want 40x20", info.MediaBox)
	}

	count, err := pdfbox.PageCount(path)
	if err != nil || count != 3 {
		t.Errorf("PageCount = %d, %v; want 3", count, err)
	}
}

func TestInspectBytes(t *testing.T) {
	info, err := pdfbox.InspectBytes(testutil.PDF(testutil.Page{Width: 12.5, Height: 7.25}))
	if err != nil {
		t.Fatalf("InspectBytes: %v", err)
	}
	if info.Pages != 1 || info.MediaBox.Width() != 12.5 || info.MediaBox.Height() != 7.25 {
		t.Errorf("info = %+v", info)
	}
}

func TestInspectMissingFile(t *testing.T) {
	if _, err := pdfbox.Inspect(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestInspectGarbage(t *testing.T) {
	if _, err := pdfbox.InspectBytes([]byte("not a pdf")); err == nil {
		t.Fatal("expected error for non-PDF input")
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pdfbox

import (
	"bytes"
	"errors"
	"fmt"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// ErrNoPages is returned for a document whose page tree is empty.
var ErrNoPages = errors.New("document has no pages")

// maxParentDepth bounds the walk up the page tree when looking for an
// inherited MediaBox.
const maxParentDepth = 64

// Box is a page rectangle in PDF user space units.
type Box struct {
	LLx, LLy, URx, URy float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.URx - b.LLx }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.URy - b.LLy }

// Info describes a PDF file.
type Info struct {
	Pages    int
	MediaBox Box // of the first page
}

// Inspect opens the PDF at path and returns its page count and the
// MediaBox of the first page.
func Inspect(path string) (Info, error) {
	reader, err := pdf.Open(path, nil)
	if err != nil {
		return Info{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer reader.Close()

	info, err := inspect(reader)
	if err != nil {
		return Info{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return info, nil
}

// InspectBytes is [Inspect] for an in-memory PDF.
func InspectBytes(data []byte) (Info, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return Info{}, fmt.Errorf("parsing PDF: %w", err)
	}
	defer reader.Close()
	return inspect(reader)
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string) (int, error) {
	reader, err := pdf.Open(path, nil)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer reader.Close()

	count, err := pagetree.NumPages(reader)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return count, nil
}

func inspect(reader *pdf.Reader) (Info, error) {
	count, err := pagetree.NumPages(reader)
	if err != nil {
		return Info{}, fmt.Errorf("counting pages: %w", err)
	}
	if count == 0 {
		return Info{}, ErrNoPages
	}

	pages, err := pagetree.FindPages(reader)
	if err != nil {
		return Info{}, fmt.Errorf("walking page tree: %w", err)
	}
	if len(pages) == 0 || pages[0] == 0 {
		return Info{}, ErrNoPages
	}

	box, err := mediaBox(reader, pages[0])
	if err != nil {
		return Info{}, err
	}
	return Info{Pages: count, MediaBox: box}, nil
}

// mediaBox resolves the MediaBox of a page, following Parent links for
// the inherited value.
func mediaBox(reader pdf.Getter, page pdf.Reference) (Box, error) {
	var node pdf.Object = page
	for depth := 0; depth < maxParentDepth; depth++ {
		dict, err := pdf.GetDict(reader, node)
		if err != nil {
			return Box{}, fmt.Errorf("reading page tree node: %w", err)
		}
		if dict == nil {
			break
		}
		if raw, ok := dict["MediaBox"]; ok {
			rect, err := pdf.GetRectangle(reader, raw)
			if err != nil {
				return Box{}, fmt.Errorf("reading MediaBox: %w", err)
			}
			if rect != nil {
				return Box{LLx: rect.LLx, LLy: rect.LLy, URx: rect.URx, URy: rect.URy}, nil
			}
		}
		parent, ok := dict["Parent"]
		if !ok {
			break
		}
		node = parent
	}
	return Box{}, errors.New("page has no MediaBox")
}

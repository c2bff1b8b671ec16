// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// Page describes one page of a fixture PDF.
type Page struct {
	Width, Height float64

	// Label is stored in the page dictionary. It has no visual effect
	// but makes pages with different labels differ byte-wise.
	Label string
}

// PDF renders a minimal PDF 1.4 file with the given pages. The output
// has a correct cross-reference table so any conforming reader can
// open it.
func PDF(pages ...Page) []byte {
	var buffer bytes.Buffer
	offsets := make([]int, 0, len(pages)+2)

	buffer.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	object := func(number int, body string) {
		offsets = append(offsets, buffer.Len())
		fmt.Fprintf(&buffer, "%d 0 obj\n%s\nendobj\n", number, body)
	}

	object(1, "<< /Type /Catalog /Pages 2 0 R >>")

	var kids bytes.Buffer
	for i := range pages {
		fmt.Fprintf(&kids, "%d 0 R ", i+3)
	}
	object(2, fmt.Sprintf("<< /Type /Pages /Kids [ %s] /Count %d >>", kids.String(), len(pages)))

	for i, page := range pages {
		object(i+3, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /PieceInfo << /Fixture << /Label <%s> >> >> >>",
			formatNumber(page.Width), formatNumber(page.Height), hex.EncodeToString([]byte(page.Label))))
	}

	xrefOffset := buffer.Len()
	fmt.Fprintf(&buffer, "xref\n0 %d\n", len(offsets)+1)
	buffer.WriteString("0000000000 65535 f\r\n")
	for _, offset := range offsets {
		fmt.Fprintf(&buffer, "%010d 00000 n\r\n", offset)
	}
	fmt.Fprintf(&buffer, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)
	return buffer.Bytes()
}

// WritePDF writes a fixture PDF to path, creating parent directories.
func WritePDF(t *testing.T, path string, pages ...Page) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, PDF(pages...), 0o644); err != nil {
		t.Fatalf("writing fixture PDF %s: %v", path, err)
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/latexplace/lib/artifact"
	"github.com/bureau-foundation/latexplace/lib/paramlist"
	"github.com/bureau-foundation/latexplace/lib/placement"
	"github.com/bureau-foundation/latexplace/lib/testutil"
	"github.com/bureau-foundation/latexplace/lib/version"
)

func TestAlignmentAnchors(t *testing.T) {
	seen := make(map[placement.Anchor]Alignment)
	count := 0
	for horizontal := Left; horizontal <= Right; horizontal++ {
		for vertical := Top; vertical <= Bottom; vertical++ {
			alignment := Alignment{Horizontal: horizontal, Vertical: vertical}
			anchor := alignment.Anchor()
			count++
			if !anchor.Valid() {
				t.Fatalf("%s maps to invalid anchor %d", alignment, anchor)
			}
			if vertical == Baseline {
				centre := Alignment{Horizontal: horizontal, Vertical: CentreV}.Anchor()
				if anchor != centre {
					t.Errorf("%s -> %s, want the centre row %s", alignment, anchor, centre)
				}
				continue
			}
			if previous, ok := seen[anchor]; ok {
				t.Errorf("%s and %s both map to %s", previous, alignment, anchor)
			}
			seen[anchor] = alignment
		}
	}
	if count != 12 || len(seen) != 9 {
		t.Fatalf("%d alignments onto %d anchors, want 12 onto 9", count, len(seen))
	}
}

func TestParseAlignment(t *testing.T) {
	alignment, err := ParseAlignment("left, baseline")
	if err != nil {
		t.Fatalf("ParseAlignment: %v", err)
	}
	if alignment != (Alignment{Horizontal: Left, Vertical: Baseline}) {
		t.Errorf("alignment = %v", alignment)
	}
	if alignment, err := ParseAlignment("centre,centre"); err != nil || alignment != DefaultAlignment {
		t.Errorf("ParseAlignment(centre,centre) = %v, %v", alignment, err)
	}
	for _, bad := range []string{"left", "middle,top", "left,middle"} {
		if _, err := ParseAlignment(bad); err == nil {
			t.Errorf("ParseAlignment(%q) succeeded", bad)
		}
	}
}

func TestPlacementFromMethod(t *testing.T) {
	tests := []struct {
		method PlacedMethod
		want   placement.Placement
	}{
		{FillToBoundary, placement.Placement{Method: placement.MethodConform, Anchor: placement.MidMid}},
		{KeepScale, placement.Placement{Method: placement.MethodAsIs, Anchor: placement.MidMid}},
		{KeepScaleClip, placement.Placement{Method: placement.MethodAsIs, Anchor: placement.MidMid, Clip: true}},
	}
	for _, test := range tests {
		property := Default()
		property.Method = test.method
		if got := property.Placement(); got != test.want {
			t.Errorf("%s: Placement = %+v, want %+v", test.method, got, test.want)
		}
	}
}

func TestSetArtifactKeepsHashInSync(t *testing.T) {
	property := Default()
	if property.HasArtifact() {
		t.Fatal("default property has an artifact")
	}
	if err := property.SetArtifact(""); !errors.Is(err, artifact.ErrEmptyPayload) {
		t.Fatalf("SetArtifact(\"\"): err = %v", err)
	}

	path := filepath.Join(t.TempDir(), "a.pdf")
	testutil.WritePDF(t, path, testutil.Page{Width: 1, Height: 1})
	if err := property.SetArtifactFile(path); err != nil {
		t.Fatalf("SetArtifactFile: %v", err)
	}
	hash, ok := property.Hash()
	if !ok || hash != artifact.HashPayload(property.Payload()) {
		t.Fatal("hash does not match payload after SetArtifactFile")
	}
	if err := property.VerifyHash(); err != nil {
		t.Fatalf("VerifyHash: %v", err)
	}
}

func TestDiff(t *testing.T) {
	base := Default()
	tests := []struct {
		name    string
		mutate  func(*Property)
		want    Changes
		compile bool
	}{
		{name: "nothing", mutate: func(*Property) {}},
		{name: "cursor", mutate: func(p *Property) { p.Cursor = 5 }, want: Changes{Cursor: true}},
		{name: "markup", mutate: func(p *Property) { p.Markup = "$x$" }, want: Changes{Markup: true}, compile: true},
		{name: "alignment", mutate: func(p *Property) { p.Alignment.Horizontal = Left }, want: Changes{Alignment: true}},
		{
			name:    "baseline",
			mutate:  func(p *Property) { p.Alignment.Vertical = Baseline },
			want:    Changes{Alignment: true, Markup: true},
			compile: true,
		},
		{name: "method", mutate: func(p *Property) { p.Method = KeepScaleClip }, want: Changes{Method: true}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			changed := base
			test.mutate(&changed)
			got := Diff(base, changed)
			if got != test.want {
				t.Errorf("Diff = %+v, want %+v", got, test.want)
			}
			if got.NeedsCompile() != test.compile {
				t.Errorf("NeedsCompile = %v, want %v", got.NeedsCompile(), test.compile)
			}
		})
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	property := Property{
		Markup:    "\\int_0^1 x\\,dx < \"1\" & more",
		Alignment: Alignment{Horizontal: Right, Vertical: Baseline},
		Method:    KeepScaleClip,
		Cursor:    7,
	}
	payload := base64.StdEncoding.EncodeToString(testutil.PDF(testutil.Page{Width: 3, Height: 4, Label: "x"}))
	if err := property.SetArtifact(payload); err != nil {
		t.Fatal(err)
	}

	text := property.String()
	if !strings.Contains(text, `latex2ai_version="`+version.Format+`"`) {
		t.Errorf("serialized form lacks the format version:\n%s", text)
	}
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, text)
	}
	if parsed != property {
		t.Errorf("round trip changed the property:\n got %+v\nwant %+v", parsed, property)
	}
}

func TestParseLegacyWithoutVersion(t *testing.T) {
	text := `<LaTeX2AI_item text_align_horizontal="left" text_align_vertical="top">` +
		`<latex cursor_position="2">$x$</latex></LaTeX2AI_item>`
	property, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if property.Markup != "$x$" || property.Method != FillToBoundary || property.Cursor != 2 {
		t.Errorf("property = %+v", property)
	}
	if property.HasArtifact() {
		t.Error("legacy property gained an artifact")
	}
}

func TestParseOldVersionKey(t *testing.T) {
	text := `<LaTeX2AI_item l2a_version="0.9.1" text_align_horizontal="right" text_align_vertical="bottom" placed_option="keep_scale">` +
		`<latex>$y$</latex></LaTeX2AI_item>`
	property, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if property.Method != KeepScale || property.Alignment.Vertical != Bottom {
		t.Errorf("property = %+v", property)
	}
}

func TestParseBothVersionKeys(t *testing.T) {
	text := `<LaTeX2AI_item l2a_version="0.9.1" latex2ai_version="1.0.0" text_align_horizontal="right" text_align_vertical="bottom">` +
		`<latex>$y$</latex></LaTeX2AI_item>`
	if _, err := Parse(text); !errors.Is(err, paramlist.ErrAmbiguousKey) {
		t.Fatalf("err = %v, want ErrAmbiguousKey", err)
	}
}

func embeddedList(t *testing.T, formatVersion, hash, method string) *paramlist.List {
	t.Helper()
	list := paramlist.New()
	list.SetOption("latex2ai_version", formatVersion)
	list.SetOption("text_align_horizontal", "centreH")
	list.SetOption("text_align_vertical", "centreV")
	list.SetOption("placed_option", "fill_to_boundary_box")
	latex, _ := list.AddSubList("latex")
	_ = latex.SetBody("$z$")
	contents, _ := list.AddSubList("pdf_file_contents")
	if hash != "" {
		contents.SetOption("hash", hash)
	}
	if method != "" {
		contents.SetOption("hash_method", method)
	}
	_ = contents.SetBody("JVBERi0xLjQK")
	return list
}

func TestLegacyHashIsRecomputed(t *testing.T) {
	for _, method := range []string{"", "crc64"} {
		property, err := FromList(embeddedList(t, "1.1.0", "12345", method))
		if err != nil {
			t.Fatalf("method %q: FromList: %v", method, err)
		}
		hash, ok := property.Hash()
		if !ok || hash != artifact.HashPayload("JVBERi0xLjQK") {
			t.Errorf("method %q: hash not recomputed", method)
		}
	}
}

func TestCurrentFormatRequiresHashMethod(t *testing.T) {
	if _, err := FromList(embeddedList(t, version.Format, "", "")); !errors.Is(err, paramlist.ErrMissingKey) {
		t.Fatalf("err = %v, want ErrMissingKey", err)
	}
}

func TestHashMismatchIsFatal(t *testing.T) {
	wrong := artifact.FormatHash(artifact.HashPayload("something else"))
	_, err := FromList(embeddedList(t, version.Format, wrong, "blake3"))
	if !errors.Is(err, ErrHashMismatch) {
		t.Fatalf("err = %v, want ErrHashMismatch", err)
	}
}

func TestInvalidVersion(t *testing.T) {
	if _, err := FromList(embeddedList(t, "one", "", "")); err == nil {
		t.Fatal("expected error for an invalid version")
	}
}

func TestLastInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app", LastInputFileName)

	property, err := ReadLastInput(path)
	if err != nil {
		t.Fatalf("ReadLastInput (missing): %v", err)
	}
	if property != Default() {
		t.Errorf("missing last input = %+v, want defaults", property)
	}

	property.Markup = "$e^{i\\pi}$"
	property.Alignment = Alignment{Horizontal: Left, Vertical: Top}
	if err := property.SetArtifact("JVBERi0xLjQK"); err != nil {
		t.Fatal(err)
	}
	if err := WriteLastInput(path, property); err != nil {
		t.Fatalf("WriteLastInput: %v", err)
	}
	read, err := ReadLastInput(path)
	if err != nil {
		t.Fatalf("ReadLastInput: %v", err)
	}
	if read.Markup != property.Markup || read.Alignment != property.Alignment {
		t.Errorf("last input = %+v", read)
	}
	if read.HasArtifact() {
		t.Error("last input carried the artifact")
	}
}

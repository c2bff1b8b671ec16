// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paramlist

import (
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	list := New()
	list.SetOption("text_align_horizontal", "centreH")
	list.SetOption("latex2ai_version", "1.3.0")
	latex, err := list.AddSubList("latex")
	if err != nil {
		t.Fatalf("AddSubList: %v", err)
	}
	latex.SetIntOption("cursor_position", 4)
	markup := "  $a < b & \"c\"$\n\\textbf{x}  "
	if err := latex.SetBody(markup); err != nil {
		t.Fatalf("SetBody: %v", err)
	}

	text := list.MarshalXML("LaTeX2AI_item")
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, text)
	}
	if !parsed.Equal(list) {
		t.Fatalf("round trip changed the list:\n%s", text)
	}

	parsedLatex, err := parsed.SubList("latex")
	if err != nil {
		t.Fatalf("SubList: %v", err)
	}
	body, ok := parsedLatex.Body()
	if !ok || body != markup {
		t.Errorf("body = %q (%v), want %q", body, ok, markup)
	}
	cursor, err := parsedLatex.IntOption("cursor_position")
	if err != nil || cursor != 4 {
		t.Errorf("cursor_position = %d, %v; want 4", cursor, err)
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	first := New()
	first.SetOption("b", "2")
	first.SetOption("a", "1")
	second := New()
	second.SetOption("a", "1")
	second.SetOption("b", "2")
	if first.MarshalXML("root") != second.MarshalXML("root") {
		t.Fatal("insertion order leaked into the text form")
	}
	if got := first.MarshalXML("root"); got != "<root a=\"1\" b=\"2\"/>\n" {
		t.Errorf("MarshalXML = %q", got)
	}
}

func TestBodyAndChildrenExclusive(t *testing.T) {
	list := New()
	if err := list.SetBody("x"); err != nil {
		t.Fatalf("SetBody: %v", err)
	}
	if _, err := list.AddSubList("child"); !errors.Is(err, ErrBodyAndChildren) {
		t.Errorf("AddSubList after body: err = %v, want ErrBodyAndChildren", err)
	}

	other := New()
	if _, err := other.AddSubList("child"); err != nil {
		t.Fatalf("AddSubList: %v", err)
	}
	if err := other.SetBody("x"); !errors.Is(err, ErrBodyAndChildren) {
		t.Errorf("SetBody after child: err = %v, want ErrBodyAndChildren", err)
	}

	if _, err := Parse("<r>text<c/></r>"); !errors.Is(err, ErrBodyAndChildren) {
		t.Errorf("Parse mixed content: err = %v, want ErrBodyAndChildren", err)
	}
}

func TestMissingKeyListsExisting(t *testing.T) {
	list := New()
	list.SetOption("present", "1")
	_, err := list.Option("absent")
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("err = %v, want ErrMissingKey", err)
	}
	if !strings.Contains(err.Error(), "present") {
		t.Errorf("error %q does not list existing keys", err)
	}
}

func TestOptionAny(t *testing.T) {
	tests := []struct {
		name      string
		options   map[string]string
		wantKey   string
		wantFound bool
		wantErr   error
	}{
		{name: "new key", options: map[string]string{"latex2ai_version": "1.0.0"}, wantKey: "latex2ai_version", wantFound: true},
		{name: "old key", options: map[string]string{"l2a_version": "0.9.0"}, wantKey: "l2a_version", wantFound: true},
		{name: "neither", options: map[string]string{}},
		{name: "both", options: map[string]string{"latex2ai_version": "1.0.0", "l2a_version": "0.9.0"}, wantErr: ErrAmbiguousKey},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			list := New()
			for key, value := range test.options {
				list.SetOption(key, value)
			}
			key, _, found, err := list.OptionAny("latex2ai_version", "l2a_version")
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("err = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("OptionAny: %v", err)
			}
			if key != test.wantKey || found != test.wantFound {
				t.Errorf("OptionAny = (%q, %v), want (%q, %v)", key, found, test.wantKey, test.wantFound)
			}
		})
	}
}

func TestParseRejectsDuplicateChildren(t *testing.T) {
	if _, err := Parse("<r><c/><c/></r>"); err == nil {
		t.Fatal("expected error for duplicate child elements")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse("   "); err == nil {
		t.Fatal("expected error for input without a root element")
	}
}

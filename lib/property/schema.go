// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/bureau-foundation/latexplace/lib/artifact"
	"github.com/bureau-foundation/latexplace/lib/paramlist"
	"github.com/bureau-foundation/latexplace/lib/version"
)

// RootName is the root element of the serialized form.
const RootName = "LaTeX2AI_item"

// Attribute and sub-list names of the serialized form.
const (
	keyHorizontal   = "text_align_horizontal"
	keyVertical     = "text_align_vertical"
	keyPlacedOption = "placed_option"
	keyVersion      = "latex2ai_version"
	keyVersionOld   = "l2a_version"
	keyLatex        = "latex"
	keyCursor       = "cursor_position"
	keyContents     = "pdf_file_contents"
	keyHash         = "hash"
	keyHashMethod   = "hash_method"
)

// legacyVersion is assumed when a property carries no version at all.
const legacyVersion = "0.0.0"

// schema decodes one range of serialized versions. The set of
// implementations is closed: [schemaFor] is the only constructor.
type schema interface {
	decode(list *paramlist.List) (Property, error)
	String() string
}

// schemaLegacy covers releases before 1.0.0. They embedded no artifact
// and placed_option did not always exist.
type schemaLegacy struct{}

// schemaEmbedded covers 1.x releases before the current format. They
// embedded the artifact but not always the hash method.
type schemaEmbedded struct{}

// schemaCurrent is the format this release writes.
type schemaCurrent struct{}

func (schemaLegacy) String() string   { return "legacy" }
func (schemaEmbedded) String() string { return "embedded" }
func (schemaCurrent) String() string  { return "current" }

func schemaFor(formatVersion string) (schema, error) {
	canonical := "v" + formatVersion
	if !semver.IsValid(canonical) {
		return nil, fmt.Errorf("invalid format version %q", formatVersion)
	}
	switch {
	case semver.Compare(canonical, "v1.0.0") < 0:
		return schemaLegacy{}, nil
	case semver.Compare(canonical, "v"+version.Format) < 0:
		return schemaEmbedded{}, nil
	default:
		return schemaCurrent{}, nil
	}
}

func (schemaLegacy) decode(list *paramlist.List) (Property, error) {
	return decodeCommon(list, false)
}

func (schemaEmbedded) decode(list *paramlist.List) (Property, error) {
	property, err := decodeCommon(list, true)
	if err != nil {
		return Property{}, err
	}
	if err := decodeArtifact(list, &property, false); err != nil {
		return Property{}, err
	}
	return property, nil
}

func (schemaCurrent) decode(list *paramlist.List) (Property, error) {
	property, err := decodeCommon(list, true)
	if err != nil {
		return Property{}, err
	}
	if err := decodeArtifact(list, &property, true); err != nil {
		return Property{}, err
	}
	return property, nil
}

func decodeCommon(list *paramlist.List, requirePlacedOption bool) (Property, error) {
	property := Default()

	horizontal, err := list.Option(keyHorizontal)
	if err != nil {
		return Property{}, err
	}
	if property.Alignment.Horizontal, err = ParseHorizontal(horizontal); err != nil {
		return Property{}, err
	}
	vertical, err := list.Option(keyVertical)
	if err != nil {
		return Property{}, err
	}
	if property.Alignment.Vertical, err = ParseVertical(vertical); err != nil {
		return Property{}, err
	}

	if requirePlacedOption || list.HasOption(keyPlacedOption) {
		method, err := list.Option(keyPlacedOption)
		if err != nil {
			return Property{}, err
		}
		if property.Method, err = ParsePlacedMethod(method); err != nil {
			return Property{}, err
		}
	}

	latex, err := list.SubList(keyLatex)
	if err != nil {
		return Property{}, err
	}
	property.Markup, _ = latex.Body()
	if latex.HasOption(keyCursor) {
		if property.Cursor, err = latex.IntOption(keyCursor); err != nil {
			return Property{}, err
		}
	}
	return property, nil
}

// decodeArtifact reads the embedded artifact. A hash produced by another
// method, or no method at all, is recomputed; a blake3 hash must match.
func decodeArtifact(list *paramlist.List, property *Property, requireHashMethod bool) error {
	if !list.HasSubList(keyContents) {
		return nil
	}
	contents, err := list.SubList(keyContents)
	if err != nil {
		return err
	}
	payload, ok := contents.Body()
	if !ok || payload == "" {
		return nil
	}

	method := ""
	if requireHashMethod || contents.HasOption(keyHashMethod) {
		if method, err = contents.Option(keyHashMethod); err != nil {
			return err
		}
	}
	if err := property.SetArtifact(payload); err != nil {
		return err
	}
	if method != artifact.MethodName {
		return nil
	}

	stored, err := contents.Option(keyHash)
	if err != nil {
		return err
	}
	hash, err := artifact.ParseHash(stored)
	if err != nil {
		return err
	}
	if hash != property.hash {
		return fmt.Errorf("stored %s, computed %s: %w", stored, artifact.FormatHash(property.hash), ErrHashMismatch)
	}
	return nil
}

// ToList renders the property in the current format.
func (p Property) ToList() *paramlist.List {
	list := paramlist.New()
	list.SetOption(keyHorizontal, p.Alignment.Horizontal.String())
	list.SetOption(keyVertical, p.Alignment.Vertical.String())
	list.SetOption(keyPlacedOption, p.Method.String())
	list.SetOption(keyVersion, version.Format)

	// A fresh list has no body, so adding sub-lists cannot fail.
	latex, _ := list.AddSubList(keyLatex)
	latex.SetIntOption(keyCursor, p.Cursor)
	_ = latex.SetBody(p.Markup)

	if p.payload != "" {
		contents, _ := list.AddSubList(keyContents)
		contents.SetOption(keyHash, artifact.FormatHash(p.hash))
		contents.SetOption(keyHashMethod, artifact.MethodName)
		_ = contents.SetBody(p.payload)
	}
	return list
}

// String returns the XML form stored in the item's note.
func (p Property) String() string {
	return p.ToList().MarshalXML(RootName)
}

// FromList reads a property written by any release.
func FromList(list *paramlist.List) (Property, error) {
	_, formatVersion, found, err := list.OptionAny(keyVersion, keyVersionOld)
	if err != nil {
		return Property{}, fmt.Errorf("reading format version: %w", err)
	}
	if !found {
		formatVersion = legacyVersion
	}
	decoder, err := schemaFor(formatVersion)
	if err != nil {
		return Property{}, err
	}
	property, err := decoder.decode(list)
	if err != nil {
		return Property{}, fmt.Errorf("reading %s property (format %s): %w", decoder, formatVersion, err)
	}
	return property, nil
}

// Parse reads the XML form of a property.
func Parse(text string) (Property, error) {
	list, err := paramlist.Parse(text)
	if err != nil {
		return Property{}, err
	}
	return FromList(list)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/latexplace/lib/artifact"
	"github.com/bureau-foundation/latexplace/lib/placement"
)

// DefaultMarkup is the markup of a brand-new item when no last input
// exists.
const DefaultMarkup = `$a^2+b^2=c^2$`

// ErrHashMismatch is returned when a stored hash does not match the
// embedded payload. Either the note was edited by hand or it was
// corrupted; in both cases the artifact cannot be trusted.
var ErrHashMismatch = errors.New("artifact hash does not match embedded payload")

// Property is the persistent state of one item.
type Property struct {
	Markup    string
	Alignment Alignment
	Method    PlacedMethod

	// Cursor is the editor cursor offset in Markup. It only round-trips
	// through the editor and never triggers work.
	Cursor int

	payload string
	hash    artifact.Hash
}

// Default returns the property of a new item.
func Default() Property {
	return Property{
		Markup:    DefaultMarkup,
		Alignment: DefaultAlignment,
		Method:    FillToBoundary,
	}
}

// SetArtifact embeds a base64 payload and recomputes its hash.
func (p *Property) SetArtifact(payload string) error {
	if payload == "" {
		return artifact.ErrEmptyPayload
	}
	p.payload = payload
	p.hash = artifact.HashPayload(payload)
	return nil
}

// SetArtifactFile embeds the artifact file at path.
func (p *Property) SetArtifactFile(path string) error {
	payload, err := artifact.ReadPayload(path)
	if err != nil {
		return err
	}
	return p.SetArtifact(payload)
}

// ClearArtifact drops the embedded artifact.
func (p *Property) ClearArtifact() {
	p.payload = ""
	p.hash = artifact.Hash{}
}

// CopyArtifact embeds the artifact of other, or none if other has
// none.
func (p *Property) CopyArtifact(other Property) {
	p.payload = other.payload
	p.hash = other.hash
}

// HasArtifact reports whether an artifact is embedded.
func (p Property) HasArtifact() bool {
	return p.payload != ""
}

// Payload returns the embedded base64 payload, or "" if none.
func (p Property) Payload() string {
	return p.payload
}

// Hash returns the hash of the embedded payload. The second result is
// false when no artifact is embedded.
func (p Property) Hash() (artifact.Hash, bool) {
	return p.hash, p.payload != ""
}

// VerifyHash recomputes the payload hash and compares it with the
// stored one.
func (p Property) VerifyHash() error {
	if p.payload == "" {
		return nil
	}
	if artifact.HashPayload(p.payload) != p.hash {
		return fmt.Errorf("stored %s: %w", artifact.FormatHash(p.hash), ErrHashMismatch)
	}
	return nil
}

// Placement returns the host placement that the property implies.
func (p Property) Placement() placement.Placement {
	result := placement.Placement{Method: placement.MethodConform, Anchor: p.Alignment.Anchor()}
	switch p.Method {
	case KeepScale:
		result.Method = placement.MethodAsIs
	case KeepScaleClip:
		result.Method = placement.MethodAsIs
		result.Clip = true
	}
	return result
}

// Changes lists which parts of a property differ between two versions.
type Changes struct {
	Markup    bool
	Alignment bool
	Method    bool
	Cursor    bool
}

// Diff compares two versions of a property. A switch into or out of
// baseline alignment counts as a markup change because it changes the
// compiled source.
func Diff(before, after Property) Changes {
	changes := Changes{
		Markup:    before.Markup != after.Markup,
		Alignment: before.Alignment != after.Alignment,
		Method:    before.Method != after.Method,
		Cursor:    before.Cursor != after.Cursor,
	}
	if before.Alignment.IsBaseline() != after.Alignment.IsBaseline() {
		changes.Markup = true
	}
	return changes
}

// Any reports whether anything changed.
func (c Changes) Any() bool {
	return c.Markup || c.Alignment || c.Method || c.Cursor
}

// NeedsCompile reports whether the artifact must be rebuilt.
func (c Changes) NeedsCompile() bool {
	return c.Markup
}

// NeedsReposition reports whether the placed object must be refitted
// without recompiling.
func (c Changes) NeedsReposition() bool {
	return c.Alignment || c.Method
}

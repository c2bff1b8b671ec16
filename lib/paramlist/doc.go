// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package paramlist implements the attribute tree used to persist item
// properties inside a placed object's note and in the last-input file.
//
// A [List] is a node with named string options, named sub-lists, and an
// optional text body ("main option"). A node carries either sub-lists or
// a body, never both. The text form is XML: options become attributes,
// sub-lists become child elements named by their key, and the body is the
// element's character data.
//
//	<LaTeX2AI_item text_align_horizontal="centreH" latex2ai_version="1.3.0">
//	  <latex cursor_position="4">$a^2+b^2=c^2$</latex>
//	</LaTeX2AI_item>
package paramlist

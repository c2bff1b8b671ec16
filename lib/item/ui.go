// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"errors"

	"github.com/bureau-foundation/latexplace/lib/latex"
	"github.com/bureau-foundation/latexplace/lib/property"
)

// ErrCanceled is returned when the user cancels an action.
var ErrCanceled = errors.New("canceled by user")

// Choice is the user's answer to a diagnostic view.
type Choice int

const (
	ChoiceViewLog Choice = iota
	ChoiceExportBundle
	ChoiceReEdit
	ChoiceCancel
)

func (c Choice) String() string {
	switch c {
	case ChoiceViewLog:
		return "view log"
	case ChoiceExportBundle:
		return "export debug bundle"
	case ChoiceReEdit:
		return "edit markup"
	case ChoiceCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// UI is the user-facing collaborator of a [Model].
type UI interface {
	// Diagnose presents a markup error. canReEdit is false for batch
	// runs, where ChoiceReEdit must not be offered.
	Diagnose(result latex.Result, canReEdit bool) (Choice, error)

	// ShowLog displays the engine log.
	ShowLog(path, content string) error

	// EditMarkup lets the user correct a property after a markup
	// error.
	EditMarkup(p property.Property) (property.Property, error)

	// ConfirmRedo asks whether count items without an artifact should
	// be recompiled.
	ConfirmRedo(count int) (bool, error)

	Warn(message string)
	Info(message string)
}

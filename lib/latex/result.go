// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package latex

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a compile run.
type Kind int

const (
	KindOK Kind = iota
	// KindMarkup means the engine ran and produced no PDF: the markup
	// or the header has an error the user can fix.
	KindMarkup
	// KindEngineUnavailable means the engine binary could not be run.
	KindEngineUnavailable
	// KindSplitterUnavailable means Ghostscript could not be run or
	// did not produce every page.
	KindSplitterUnavailable
	// KindOther covers every other failure.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindMarkup:
		return "error_markup"
	case KindEngineUnavailable:
		return "error_engine_unavailable"
	case KindSplitterUnavailable:
		return "error_splitter_unavailable"
	case KindOther:
		return "error_other"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	ErrEngineUnavailable   = errors.New("typesetting engine could not be run")
	ErrSplitterUnavailable = errors.New("page splitter could not be run")
	ErrMarkup              = errors.New("typesetting failed")
)

// Result is the outcome of a compile run.
type Result struct {
	Kind Kind

	// Paths to the diagnostic files of a KindMarkup result.
	LogPath    string
	SourcePath string
	HeaderPath string

	// Err describes any result other than KindOK and KindMarkup.
	Err error
}

// OK reports whether the run succeeded.
func (r Result) OK() bool { return r.Kind == KindOK }

// AsError returns nil for a successful result and a *CompileError
// otherwise.
func (r Result) AsError() error {
	if r.OK() {
		return nil
	}
	return &CompileError{Result: r}
}

// CompileError carries a failed [Result] through error returns.
type CompileError struct {
	Result Result
}

func (e *CompileError) Error() string {
	switch e.Result.Kind {
	case KindMarkup:
		return fmt.Sprintf("%s: see %s", ErrMarkup, e.Result.LogPath)
	default:
		if e.Result.Err != nil {
			return fmt.Sprintf("%s: %v", e.Result.Kind, e.Result.Err)
		}
		return e.Result.Kind.String()
	}
}

func (e *CompileError) Unwrap() error {
	if e.Result.Kind == KindMarkup {
		return ErrMarkup
	}
	return e.Result.Err
}

func failure(kind Kind, err error) Result {
	return Result{Kind: kind, Err: err}
}

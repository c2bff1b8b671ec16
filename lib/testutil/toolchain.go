// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bureau-foundation/latexplace/lib/process"
)

// FakeToolchain is a [process.Runner] emulating a typesetting engine
// and Ghostscript. The engine recognises one page per source line that
// starts with \LaTeXtoAI{ or \LaTeXtoAIbase{ and labels each fixture
// page with that line, so identical markup yields identical artifacts.
// The splitter writes one single-page PDF per page of its input.
//
// The zero value emulates pdflatex and gs producing 40x20 pages.
type FakeToolchain struct {
	// EngineName and GhostscriptName select which invocations are
	// treated as which tool, by the base name of Invocation.Path.
	// Defaults: "pdflatex" and "gs".
	EngineName      string
	GhostscriptName string

	// Width and Height of every generated page. Default 40x20.
	Width, Height float64

	// MarkupError is a substring that makes the engine fail with a
	// TeX error. Default `\undefined`.
	MarkupError string

	EngineMissing      bool
	GhostscriptMissing bool

	// EngineSilentFailure makes the engine exit 0 without output.
	EngineSilentFailure bool

	// DropSplitPage, when positive, makes the splitter skip that
	// 1-based page.
	DropSplitPage int

	mutex  sync.Mutex
	calls  []process.Invocation
	labels map[string][]string
}

// Run implements [process.Runner].
func (f *FakeToolchain) Run(ctx context.Context, invocation process.Invocation) (process.Result, error) {
	if err := ctx.Err(); err != nil {
		return process.Result{}, err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.calls = append(f.calls, invocation)

	switch filepath.Base(invocation.Path) {
	case f.engineName():
		return f.runEngine(invocation)
	case f.ghostscriptName():
		return f.runGhostscript(invocation)
	default:
		return process.Result{ExitCode: process.ExitNotFound, Output: "command not found: " + invocation.Path}, nil
	}
}

// Calls returns a copy of every invocation seen so far.
func (f *FakeToolchain) Calls() []process.Invocation {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]process.Invocation(nil), f.calls...)
}

// CallCount returns how many invocations targeted the named tool.
func (f *FakeToolchain) CallCount(name string) int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	count := 0
	for _, call := range f.calls {
		if filepath.Base(call.Path) == name {
			count++
		}
	}
	return count
}

func (f *FakeToolchain) runEngine(invocation process.Invocation) (process.Result, error) {
	if f.EngineMissing {
		return process.Result{ExitCode: process.ExitNotFound, Output: "not found"}, nil
	}
	if len(invocation.Args) == 1 && invocation.Args[0] == "-version" {
		return process.Result{Output: "pdfTeX 3.141592653-2.6-1.40.25 (TeX Live 2023)\n"}, nil
	}
	if len(invocation.Args) == 0 {
		return process.Result{ExitCode: 1, Output: "no input file"}, nil
	}

	source := resolve(invocation.Dir, invocation.Args[len(invocation.Args)-1])
	base := strings.TrimSuffix(source, filepath.Ext(source))
	content, err := os.ReadFile(source)
	if err != nil {
		return process.Result{ExitCode: 1, Output: err.Error()}, nil
	}

	marker := f.MarkupError
	if marker == "" {
		marker = `\undefined`
	}
	var labels []string
	for line := range strings.SplitSeq(string(content), "\n") {
		if strings.HasPrefix(line, `\LaTeXtoAI{`) || strings.HasPrefix(line, `\LaTeXtoAIbase{`) {
			if strings.Contains(line, marker) {
				log := fmt.Sprintf("%s:1: Undefined control sequence.\nl.1 %s\n", filepath.Base(source), line)
				if err := os.WriteFile(base+".log", []byte(log), 0o644); err != nil {
					return process.Result{}, err
				}
				return process.Result{ExitCode: 1, Output: log}, nil
			}
			labels = append(labels, line)
		}
	}

	if err := os.WriteFile(base+".log", []byte("Output written.\n"), 0o644); err != nil {
		return process.Result{}, err
	}
	if f.EngineSilentFailure {
		return process.Result{}, nil
	}

	pages := make([]Page, len(labels))
	for i, label := range labels {
		pages[i] = f.page(label)
	}
	if err := os.WriteFile(base+".pdf", PDF(pages...), 0o644); err != nil {
		return process.Result{}, err
	}
	if f.labels == nil {
		f.labels = make(map[string][]string)
	}
	f.labels[base+".pdf"] = labels
	return process.Result{Output: fmt.Sprintf("Output written on %s.pdf (%d pages).\n", filepath.Base(base), len(labels))}, nil
}

func (f *FakeToolchain) runGhostscript(invocation process.Invocation) (process.Result, error) {
	if f.GhostscriptMissing {
		return process.Result{ExitCode: process.ExitNotFound, Output: "not found"}, nil
	}
	if len(invocation.Args) == 1 && invocation.Args[0] == "-v" {
		return process.Result{Output: "GPL Ghostscript 10.02.1 (2023-11-01)\n"}, nil
	}

	var pattern, input string
	for i := 0; i < len(invocation.Args); i++ {
		switch arg := invocation.Args[i]; {
		case arg == "-o" && i+1 < len(invocation.Args):
			pattern = invocation.Args[i+1]
			i++
		case strings.HasPrefix(arg, "-"):
		default:
			input = arg
		}
	}
	if pattern == "" || input == "" {
		return process.Result{ExitCode: 1, Output: "usage: gs -o output input"}, nil
	}

	input = resolve(invocation.Dir, input)
	labels, ok := f.labels[input]
	if !ok {
		return process.Result{ExitCode: 1, Output: "Error: /undefinedfilename in " + input}, nil
	}
	for i, label := range labels {
		if i+1 == f.DropSplitPage {
			continue
		}
		output := resolve(invocation.Dir, strings.Replace(pattern, "%d", fmt.Sprint(i+1), 1))
		if err := os.WriteFile(output, PDF(f.page(label)), 0o644); err != nil {
			return process.Result{}, err
		}
	}
	return process.Result{Output: fmt.Sprintf("Processing pages 1 through %d.\n", len(labels))}, nil
}

func (f *FakeToolchain) page(label string) Page {
	width, height := f.Width, f.Height
	if width == 0 {
		width = 40
	}
	if height == 0 {
		height = 20
	}
	return Page{Width: width, Height: height, Label: label}
}

func (f *FakeToolchain) engineName() string {
	if f.EngineName != "" {
		return f.EngineName
	}
	return "pdflatex"
}

func (f *FakeToolchain) ghostscriptName() string {
	if f.GhostscriptName != "" {
		return f.GhostscriptName
	}
	return "gs"
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

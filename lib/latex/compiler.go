// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package latex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bureau-foundation/latexplace/lib/pdfbox"
	"github.com/bureau-foundation/latexplace/lib/process"
	"github.com/bureau-foundation/latexplace/lib/property"
)

// Defaults for [Config].
const (
	DefaultEngine      = "pdflatex"
	DefaultEngineFlags = "-interaction nonstopmode -halt-on-error -file-line-error"
	DefaultGhostscript = "gs"
)

// Config is the read-only configuration of a [Compiler].
type Config struct {
	// Engine is the engine binary name, for example "pdflatex" or
	// "lualatex".
	Engine string

	// EngineBinDir is the directory containing Engine. Empty means
	// look the engine up on PATH.
	EngineBinDir string

	// EngineFlags are passed before the source file name.
	EngineFlags string

	// Ghostscript is the Ghostscript command, a name or a path.
	Ghostscript string

	// HeaderPath is the user header. A missing header compiles with
	// [DefaultHeader].
	HeaderPath string

	// ScratchDir holds the files of a compile run. It is created on
	// demand and reused between runs.
	ScratchDir string

	// Debug enables extra consistency checks of the split output.
	Debug bool
}

// EnginePath returns the command used to run the engine.
func (c Config) EnginePath() string {
	engine := c.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	if c.EngineBinDir == "" {
		return engine
	}
	return filepath.Join(c.EngineBinDir, engine)
}

func (c Config) ghostscript() string {
	if c.Ghostscript == "" {
		return DefaultGhostscript
	}
	return c.Ghostscript
}

func (c Config) engineFlags() []string {
	if c.EngineFlags == "" {
		return strings.Fields(DefaultEngineFlags)
	}
	return strings.Fields(c.EngineFlags)
}

// Compiler runs the compile-and-split pipeline.
type Compiler struct {
	config Config
	runner process.Runner
	logger *slog.Logger
}

// NewCompiler returns a Compiler. A nil logger discards.
func NewCompiler(config Config, runner process.Runner, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compiler{config: config, runner: runner, logger: logger}
}

// Config returns the compiler's configuration.
func (c *Compiler) Config() Config { return c.config }

// CompileOne compiles a single property and returns the path of its
// artifact.
func (c *Compiler) CompileOne(ctx context.Context, p property.Property) (Result, string) {
	result, paths := c.CompileBatch(ctx, []Item{ItemFor(p, "")})
	if !result.OK() {
		return result, ""
	}
	return result, paths[0]
}

// CompileBatch compiles items in one engine run and returns one
// artifact path per item, in input order. The paths point into the
// scratch directory and stay valid until the next run.
func (c *Compiler) CompileBatch(ctx context.Context, items []Item) (Result, []string) {
	if len(items) == 0 {
		return failure(KindOther, errors.New("nothing to compile")), nil
	}
	scratch := c.config.ScratchDir
	if scratch == "" {
		return failure(KindOther, errors.New("no scratch directory configured")), nil
	}
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return failure(KindOther, fmt.Errorf("creating scratch directory: %w", err)), nil
	}

	sourcePath := filepath.Join(scratch, SourceBaseName+".tex")
	headerPath := filepath.Join(scratch, HeaderFileName)
	pdfPath := filepath.Join(scratch, SourceBaseName+".pdf")
	logPath := filepath.Join(scratch, SourceBaseName+".log")

	if err := c.writeInputs(sourcePath, headerPath, items); err != nil {
		return failure(KindOther, err), nil
	}
	if err := removeIfExists(pdfPath); err != nil {
		return failure(KindOther, err), nil
	}
	if err := ctx.Err(); err != nil {
		return failure(KindOther, err), nil
	}

	engine := process.Invocation{
		Path: c.config.EnginePath(),
		Args: append(c.config.engineFlags(), filepath.Base(sourcePath)),
		Dir:  scratch,
	}
	c.logger.Info("running typesetting engine", "items", len(items), "engine", c.config.EnginePath())
	c.logger.Debug("engine invocation", "command", engine.String())
	engineResult, err := c.runner.Run(ctx, engine)
	if err != nil {
		return failure(KindOther, err), nil
	}
	if engineResult.ExitCode == process.ExitNotFound {
		return failure(KindEngineUnavailable, fmt.Errorf("%s: %w: %s",
			engine.Path, ErrEngineUnavailable, strings.TrimSpace(engineResult.Output))), nil
	}
	if _, err := os.Stat(pdfPath); err != nil {
		if engineResult.ExitCode == 0 {
			return failure(KindOther, fmt.Errorf("%s exited successfully without writing %s", engine.Path, filepath.Base(pdfPath))), nil
		}
		c.logger.Warn("typesetting failed", "exit_code", engineResult.ExitCode, "path", logPath)
		return Result{Kind: KindMarkup, LogPath: logPath, SourcePath: sourcePath, HeaderPath: headerPath}, nil
	}

	paths, result := c.split(ctx, pdfPath, len(items))
	if !result.OK() {
		return result, nil
	}
	c.logger.Info("compiled artifacts", "pages", len(paths))
	return Result{Kind: KindOK}, paths
}

func (c *Compiler) writeInputs(sourcePath, headerPath string, items []Item) error {
	header := DefaultHeader
	if c.config.HeaderPath != "" {
		if _, err := os.Stat(c.config.HeaderPath); err == nil {
			resolved, err := ResolveHeader(c.config.HeaderPath)
			if err != nil {
				return err
			}
			header = resolved
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking header: %w", err)
		}
	}
	if err := os.WriteFile(headerPath, []byte(header), 0o644); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := os.WriteFile(sourcePath, []byte(Source(items)), 0o644); err != nil {
		return fmt.Errorf("writing source: %w", err)
	}
	return nil
}

// split runs Ghostscript once to write {base}_{i}.pdf for every page and
// checks that every expected page exists.
func (c *Compiler) split(ctx context.Context, pdfPath string, pages int) ([]string, Result) {
	directory := filepath.Dir(pdfPath)
	base := strings.TrimSuffix(filepath.Base(pdfPath), ".pdf")

	stale, err := filepath.Glob(filepath.Join(directory, base+"_*.pdf"))
	if err != nil {
		return nil, failure(KindOther, err)
	}
	for _, path := range stale {
		if err := removeIfExists(path); err != nil {
			return nil, failure(KindOther, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, failure(KindOther, err)
	}

	splitter := process.Invocation{
		Path: c.config.ghostscript(),
		Args: []string{"-sDEVICE=pdfwrite", "-o", base + "_%d.pdf", filepath.Base(pdfPath)},
		Dir:  directory,
	}
	c.logger.Debug("splitter invocation", "command", splitter.String())
	splitResult, err := c.runner.Run(ctx, splitter)
	if err != nil {
		return nil, failure(KindOther, err)
	}
	if splitResult.ExitCode == process.ExitNotFound {
		return nil, failure(KindSplitterUnavailable, fmt.Errorf("%s: %w: %s",
			splitter.Path, ErrSplitterUnavailable, strings.TrimSpace(splitResult.Output)))
	}
	if splitResult.ExitCode != 0 {
		return nil, failure(KindSplitterUnavailable, fmt.Errorf("%s exited with code %d: %w: %s",
			splitter.Path, splitResult.ExitCode, ErrSplitterUnavailable, strings.TrimSpace(splitResult.Output)))
	}

	paths := make([]string, pages)
	for i := range paths {
		paths[i] = filepath.Join(directory, base+"_"+strconv.Itoa(i+1)+".pdf")
		if _, err := os.Stat(paths[i]); err != nil {
			return nil, failure(KindSplitterUnavailable, fmt.Errorf("page %d of %d missing after split: %w",
				i+1, pages, ErrSplitterUnavailable))
		}
	}

	if c.config.Debug {
		count, err := pdfbox.PageCount(pdfPath)
		if err != nil {
			return nil, failure(KindOther, err)
		}
		if count != pages {
			return nil, failure(KindOther, fmt.Errorf("compiled %d pages for %d items", count, pages))
		}
		extra := filepath.Join(directory, base+"_"+strconv.Itoa(pages+1)+".pdf")
		if _, err := os.Stat(extra); err == nil {
			return nil, failure(KindOther, fmt.Errorf("splitter wrote more pages than the %d items", pages))
		}
	}
	return paths, Result{Kind: KindOK}
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing stale %s: %w", path, err)
	}
	return nil
}

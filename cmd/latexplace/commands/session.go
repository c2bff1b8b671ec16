// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"seehuhn.de/go/geom/rect"

	"github.com/bureau-foundation/latexplace/lib/artifact"
	"github.com/bureau-foundation/latexplace/lib/config"
	"github.com/bureau-foundation/latexplace/lib/debugbundle"
	"github.com/bureau-foundation/latexplace/lib/host/memhost"
	"github.com/bureau-foundation/latexplace/lib/item"
	"github.com/bureau-foundation/latexplace/lib/latex"
	"github.com/bureau-foundation/latexplace/lib/placement"
)

// ConfigFlags holds --config, shared by every command that reads
// configuration.
type ConfigFlags struct {
	ConfigPath string
}

// AddFlags registers --config.
func (f *ConfigFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.ConfigPath, "config", "", "path to latexplace.yaml (default: $"+config.EnvironmentVariable+", then built-in defaults)")
}

// Load resolves, validates and prepares the configuration. An explicit
// --config wins over the environment variable; with neither, the
// built-in defaults apply.
func (f *ConfigFlags) Load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case f.ConfigPath != "":
		cfg, err = config.LoadFile(f.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
		cfg.Expand()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SessionFlags holds the flags of every document command.
type SessionFlags struct {
	ConfigFlags
	DocumentPath string
}

// AddFlags registers --config and --doc.
func (f *SessionFlags) AddFlags(flagSet *pflag.FlagSet) {
	f.ConfigFlags.AddFlags(flagSet)
	flagSet.StringVar(&f.DocumentPath, "doc", "", "path of the document (required)")
}

// session is one opened document with its collaborators.
type session struct {
	config   *config.Config
	document *memhost.Document
	store    *artifact.Store
	compiler *latex.Compiler
	model    *item.Model
	ui       *terminalUI
	logger   *slog.Logger
}

// newCompiler builds the compile pipeline for cfg. headerPath may be
// empty when no document is involved.
func newCompiler(cfg *config.Config, environment Environment, headerPath string, logger *slog.Logger) *latex.Compiler {
	ghostscript, found := cfg.GhostscriptCommand(config.OnPath)
	if !found {
		logger.Warn("no Ghostscript found on PATH; splitting will fail", "candidates", config.GhostscriptCandidates)
		ghostscript = latex.DefaultGhostscript
	}
	return latex.NewCompiler(latex.Config{
		Engine:       cfg.Latex.Engine,
		EngineBinDir: cfg.Latex.BinDir,
		EngineFlags:  cfg.Latex.Flags,
		Ghostscript:  ghostscript,
		HeaderPath:   headerPath,
		ScratchDir:   cfg.Paths.Scratch,
		Debug:        cfg.Debug,
	}, environment.Runner, logger)
}

// Open loads the configuration and opens the document named by --doc.
func (f *SessionFlags) Open(environment Environment, logger *slog.Logger) (*session, error) {
	if f.DocumentPath == "" {
		return nil, errors.New("--doc is required")
	}
	cfg, err := f.Load()
	if err != nil {
		return nil, err
	}

	documentPath, err := filepath.Abs(f.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("resolving document path: %w", err)
	}
	store, err := artifact.NewStore(documentPath, artifact.Options{
		LinksDir: cfg.Artifacts.LinksDir,
		Postfix:  cfg.Artifacts.Postfix,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	document, err := memhost.Open(documentPath, memhost.Options{
		Describe: func(path string) (rect.Rect, error) {
			entry, err := store.Describe(path)
			if err != nil {
				return rect.Rect{}, err
			}
			return rect.Rect{URx: entry.Width, URy: entry.Height}, nil
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	headerPath := filepath.Join(filepath.Dir(documentPath), cfg.Latex.HeaderName)
	created, err := latex.EnsureHeader(headerPath)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info("wrote default header", "path", headerPath)
	}

	ui := newTerminalUI(environment)
	compiler := newCompiler(cfg, environment, headerPath, logger)
	model, err := item.New(item.Config{
		Document: document,
		Store:    store,
		Compiler: compiler,
		UI:       ui,
		Tolerances: placement.Tolerances{
			EpsPos:          cfg.Placement.EpsPos,
			EpsAngle:        cfg.Placement.EpsAngle,
			EpsStretch:      cfg.Placement.EpsStretch,
			MaxMoveAttempts: cfg.Placement.MaxMoveAttempts,
		},
		LastInputPath:     cfg.Paths.LastInput,
		Debug:             cfg.Debug,
		BundleCompression: debugbundle.Compression(cfg.Artifacts.BundleCompression),
		Logger:            logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("session opened", "document", documentPath, "saved", document.Saved())
	return &session{
		config:   cfg,
		document: document,
		store:    store,
		compiler: compiler,
		model:    model,
		ui:       ui,
		logger:   logger,
	}, nil
}

// Save writes the document after a successful action.
func (s *session) Save() error {
	if err := s.document.Save(); err != nil {
		return fmt.Errorf("saving %s: %w", s.document.Path(), err)
	}
	s.logger.Debug("document saved", "document", s.document.Path(), "undo_depth", s.document.UndoDepth())
	return nil
}

// findItem resolves --item.
func (s *session) findItem(id string) (*item.Item, error) {
	if id == "" {
		return nil, errors.New("--item is required")
	}
	return s.model.Find(id)
}


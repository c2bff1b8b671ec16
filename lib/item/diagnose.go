// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/latexplace/lib/debugbundle"
	"github.com/bureau-foundation/latexplace/lib/latex"
	"github.com/bureau-foundation/latexplace/lib/property"
)

// DebugDir is the directory, inside the links directory, that receives
// debug bundles.
const DebugDir = "debug"

// compile compiles p, running the diagnostic loop on markup errors. The
// returned property carries any correction the user made.
func (m *Model) compile(ctx context.Context, p property.Property) (property.Property, string, error) {
	for {
		result, path := m.compiler.CompileOne(ctx, p)
		if result.OK() {
			return p, path, nil
		}
		if err := m.diagnose(result, &p); err != nil {
			return p, "", err
		}
	}
}

// compileBatch compiles items in one run. Markup errors open the
// diagnostic loop without the option to edit.
func (m *Model) compileBatch(ctx context.Context, items []latex.Item) ([]string, error) {
	result, paths := m.compiler.CompileBatch(ctx, items)
	if result.OK() {
		return paths, nil
	}
	return nil, m.diagnose(result, nil)
}

// diagnose handles a failed compile. It returns nil when the user
// edited *edit and wants to retry, and an error otherwise. A nil edit
// disables editing.
func (m *Model) diagnose(result latex.Result, edit *property.Property) error {
	if result.Kind != latex.KindMarkup {
		m.logger.Warn("compile failed", "kind", result.Kind.String(), "error", result.Err)
		m.ui.Warn(failureMessage(result))
		return result.AsError()
	}

	for {
		choice, err := m.ui.Diagnose(result, edit != nil)
		if err != nil {
			return err
		}
		m.logger.Debug("diagnostic choice", "choice", choice.String())
		switch choice {
		case ChoiceViewLog:
			content, err := os.ReadFile(result.LogPath)
			if err != nil {
				m.ui.Warn(fmt.Sprintf("The log file could not be read: %v", err))
				continue
			}
			if err := m.ui.ShowLog(result.LogPath, string(content)); err != nil {
				return err
			}
		case ChoiceExportBundle:
			path, err := m.ExportBundle(result)
			if err != nil {
				m.ui.Warn(fmt.Sprintf("The debug bundle could not be written: %v", err))
				continue
			}
			m.ui.Info("Debug bundle written to " + path)
		case ChoiceReEdit:
			if edit == nil {
				continue
			}
			edited, err := m.ui.EditMarkup(*edit)
			if err != nil {
				return err
			}
			*edit = edited
			return nil
		case ChoiceCancel:
			return fmt.Errorf("%w: %w", ErrCanceled, result.AsError())
		default:
			return fmt.Errorf("unknown diagnostic choice %d", int(choice))
		}
	}
}

// ExportBundle writes the log, source and header of a failed compile
// into a debug bundle next to the document's artifacts and returns its
// path.
func (m *Model) ExportBundle(result latex.Result) (string, error) {
	files := []debugbundle.File{
		{Name: filepath.Base(result.LogPath), Path: result.LogPath},
		{Name: filepath.Base(result.SourcePath), Path: result.SourcePath},
		{Name: filepath.Base(result.HeaderPath), Path: result.HeaderPath},
	}
	path, err := debugbundle.Export(filepath.Join(m.store.Dir(), DebugDir), m.store.DocumentName(), files,
		debugbundle.Options{Compression: m.bundleCompression})
	if err != nil {
		return "", err
	}
	m.logger.Info("debug bundle exported", "path", path)
	return path, nil
}

func failureMessage(result latex.Result) string {
	switch result.Kind {
	case latex.KindEngineUnavailable:
		return "The typesetting engine could not be run. Check latex.engine and latex.bin_dir in the configuration."
	case latex.KindSplitterUnavailable:
		return "Ghostscript could not split the compiled pages. Check ghostscript.command in the configuration."
	default:
		return fmt.Sprintf("The item could not be compiled: %v", result.AsError())
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when no --config flag is
// given.
const EnvironmentVariable = "LATEXPLACE_CONFIG"

// Config is the configuration of the latexplace tools.
type Config struct {
	// Paths configures where latexplace keeps its own files.
	Paths PathsConfig `yaml:"paths"`

	// Latex configures the typesetting engine.
	Latex LatexConfig `yaml:"latex"`

	// Ghostscript configures the page splitter.
	Ghostscript GhostscriptConfig `yaml:"ghostscript"`

	// Artifacts configures artifact file naming.
	Artifacts ArtifactsConfig `yaml:"artifacts"`

	// Placement configures the numeric tolerances of placement.
	Placement PlacementConfig `yaml:"placement"`

	// Debug enables consistency checks of compiled output and of
	// stored artifact hashes.
	Debug bool `yaml:"debug"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for latexplace data.
	Root string `yaml:"root"`

	// Scratch is where compile runs write their files.
	Scratch string `yaml:"scratch"`

	// LastInput is the file recording the last item property.
	LastInput string `yaml:"last_input"`
}

// LatexConfig configures the typesetting engine.
type LatexConfig struct {
	// Engine is the engine binary name. Default: pdflatex
	Engine string `yaml:"engine"`

	// BinDir is the directory holding the engine. Empty means PATH.
	BinDir string `yaml:"bin_dir"`

	// Flags are passed to the engine before the source file.
	Flags string `yaml:"flags"`

	// HeaderName is the header file name looked up next to the
	// document. Default: LaTeX2AI_header.tex
	HeaderName string `yaml:"header_name"`
}

// GhostscriptConfig configures the page splitter.
type GhostscriptConfig struct {
	// Command is the Ghostscript binary, a name or a path. Empty
	// means discover one of the usual names on PATH.
	Command string `yaml:"command"`
}

// ArtifactsConfig configures artifact file naming.
type ArtifactsConfig struct {
	// LinksDir is the directory next to the document that holds
	// artifacts. Default: links
	LinksDir string `yaml:"links_dir"`

	// Postfix separates document name and hash. Default: _LaTeX2AI_
	Postfix string `yaml:"postfix"`

	// BundleCompression is the debug bundle format, "zstd" or "lz4".
	// Default: zstd
	BundleCompression string `yaml:"bundle_compression"`
}

// PlacementConfig holds placement tolerances.
type PlacementConfig struct {
	EpsPos          float64 `yaml:"eps_pos"`
	EpsAngle        float64 `yaml:"eps_angle"`
	EpsStretch      float64 `yaml:"eps_stretch"`
	MaxMoveAttempts int     `yaml:"max_move_attempts"`
}

// Default returns the default configuration. Values in a loaded file
// are merged over it.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Root:      "${HOME}/.cache/latexplace",
			Scratch:   "${LATEXPLACE_ROOT}/scratch",
			LastInput: "${LATEXPLACE_ROOT}/LaTeX2AI_last_input.xml",
		},
		Latex: LatexConfig{
			Engine:     "pdflatex",
			Flags:      "-interaction nonstopmode -halt-on-error -file-line-error",
			HeaderName: "LaTeX2AI_header.tex",
		},
		Artifacts: ArtifactsConfig{
			LinksDir:          "links",
			Postfix:           "_LaTeX2AI_",
			BundleCompression: "zstd",
		},
		Placement: PlacementConfig{
			EpsPos:          0.002,
			EpsAngle:        0.001,
			EpsStretch:      0.001,
			MaxMoveAttempts: 3,
		},
	}
}

// Load loads configuration from the file named by LATEXPLACE_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your latexplace.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Expand()
	return cfg, nil
}

// Expand expands ${HOME}, ${LATEXPLACE_ROOT} and ${VAR:-default} in
// path fields. LoadFile calls it; callers using [Default] directly call
// it themselves.
func (c *Config) Expand() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["LATEXPLACE_ROOT"] = c.Paths.Root

	c.Paths.Scratch = expandVars(c.Paths.Scratch, vars)
	c.Paths.LastInput = expandVars(c.Paths.LastInput, vars)
	c.Latex.BinDir = expandVars(c.Latex.BinDir, vars)
	c.Ghostscript.Command = expandVars(c.Ghostscript.Command, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		defaultValue := parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Scratch == "" {
		errs = append(errs, errors.New("paths.scratch is required"))
	}
	if c.Latex.Engine == "" {
		errs = append(errs, errors.New("latex.engine is required"))
	}
	if strings.ContainsRune(c.Latex.Engine, filepath.Separator) {
		errs = append(errs, errors.New("latex.engine must be a name; put its directory in latex.bin_dir"))
	}
	if c.Latex.HeaderName == "" || filepath.Base(c.Latex.HeaderName) != c.Latex.HeaderName {
		errs = append(errs, errors.New("latex.header_name must be a plain file name"))
	}
	if c.Artifacts.LinksDir == "" || filepath.IsAbs(c.Artifacts.LinksDir) {
		errs = append(errs, errors.New("artifacts.links_dir must be a relative directory"))
	}
	if c.Artifacts.Postfix == "" {
		errs = append(errs, errors.New("artifacts.postfix is required"))
	}
	if strings.ContainsRune(c.Artifacts.Postfix, filepath.Separator) {
		errs = append(errs, errors.New("artifacts.postfix must not contain a path separator"))
	}
	switch c.Artifacts.BundleCompression {
	case "zstd", "lz4":
	default:
		errs = append(errs, fmt.Errorf("artifacts.bundle_compression %q must be zstd or lz4", c.Artifacts.BundleCompression))
	}
	if c.Placement.EpsPos <= 0 || c.Placement.EpsAngle <= 0 || c.Placement.EpsStretch <= 0 {
		errs = append(errs, errors.New("placement tolerances must be positive"))
	}
	if c.Placement.MaxMoveAttempts < 1 {
		errs = append(errs, errors.New("placement.max_move_attempts must be at least 1"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates the configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Paths.Root, c.Paths.Scratch, filepath.Dir(c.Paths.LastInput)} {
		if path == "" || path == "." {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}

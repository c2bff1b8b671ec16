// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name:   "latexplace",
		Stderr: &bytes.Buffer{},
		Subcommands: []*Command{
			{
				Name: "show",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					called = "show"
					return nil
				},
			},
			{
				Name: "create",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					called = "create"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"create"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "create" {
		t.Errorf("dispatched to %q, want %q", called, "create")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name:   "latexplace",
		Stderr: &bytes.Buffer{},
		Subcommands: []*Command{
			{
				Name: "config",
				Subcommands: []*Command{
					{
						Name: "check",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "config check"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"config", "check", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "config check" {
		t.Errorf("dispatched to %q, want %q", called, "config check")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var document string
	var verboseLogged bool

	command := &Command{
		Name:   "show",
		Stderr: &bytes.Buffer{},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.StringVar(&document, "doc", "", "document path")
			return flagSet
		},
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			verboseLogged = logger.Enabled(ctx, slog.LevelDebug)
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--doc", "figure.lxp", "--verbose"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if document != "figure.lxp" {
		t.Errorf("document = %q, want figure.lxp", document)
	}
	if !verboseLogged {
		t.Error("--verbose did not enable debug logging")
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name:   "latexplace",
		Stderr: &bytes.Buffer{},
		Subcommands: []*Command{
			{Name: "reconcile", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "redo", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"reconcil"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "reconcile"`) {
		t.Errorf("error = %q, want a suggestion for reconcile", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name:   "position",
		Stderr: &bytes.Buffer{},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("position", pflag.ContinueOnError)
			flagSet.String("anchor", "", "anchor")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--ancor", "top-left"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --anchor") {
		t.Errorf("error = %q, want a suggestion for --anchor", err)
	}
}

func TestCommand_Execute_HelpPrintsExamples(t *testing.T) {
	var output bytes.Buffer
	root := &Command{
		Name:    "latexplace",
		Summary: "Place typeset artifacts",
		Stderr:  &output,
		Subcommands: []*Command{
			{
				Name:     "create",
				Summary:  "Create an item",
				Examples: []Example{{Description: "Place an equation", Command: "latexplace create --at 10,20"}},
				Run:      func(context.Context, []string, *slog.Logger) error { return nil },
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"create", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, want := range []string{"Usage:\n  latexplace create [flags]", "--verbose", "# Place an equation"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("help output missing %q:\n%s", want, output.String())
		}
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "latexplace",
		Stderr:      &bytes.Buffer{},
		Subcommands: []*Command{{Name: "show", Run: func(context.Context, []string, *slog.Logger) error { return nil }}},
	}
	if err := root.Execute(context.Background(), nil); err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute(nil) error = %v, want subcommand required", err)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"redo", "redo", 0},
		{"reconcil", "reconcile", 1},
		{"show", "shwo", 2},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	flagSet.String("doc", "", "document")
	flagSet.StringP("item", "i", "", "item")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"misspelled long flag", []string{"--docc", "a.lxp"}, "--doc"},
		{"misspelled long flag with value", []string{"--iten=obj-1"}, "--item"},
		{"known shorthand then unknown", []string{"-i", "obj-1", "--dco"}, "--doc"},
		{"unknown shorthand", []string{"-d"}, "--doc"},
		{"no close match", []string{"--zzzzzzzz"}, ""},
		{"positional only", []string{"obj-1"}, ""},
		{"after terminator", []string{"--", "--docc"}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := suggestFlag(test.args, flagSet); got != test.want {
				t.Errorf("suggestFlag(%q) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}

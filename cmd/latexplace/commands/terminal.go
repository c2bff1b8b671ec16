// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/latexplace/cmd/latexplace/cli"
	"github.com/bureau-foundation/latexplace/lib/item"
	"github.com/bureau-foundation/latexplace/lib/latex"
	"github.com/bureau-foundation/latexplace/lib/property"
)

// Engine log lines worth showing first: TeX's "! message" lines and
// -file-line-error's "file:line: message" lines.
var logErrorLine = regexp.MustCompile(`^!|^[^:\s]+\.\w+:\d+: `)

const (
	excerptLines = 6
	sourceLines  = 40
)

// terminalUI implements item.UI on line-oriented standard streams.
type terminalUI struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	color       bool

	titleStyle lipgloss.Style
	warnStyle  lipgloss.Style
	infoStyle  lipgloss.Style
	faintStyle lipgloss.Style
	keyStyle   lipgloss.Style
	panelStyle lipgloss.Style
}

func newTerminalUI(environment Environment) *terminalUI {
	interactive := cli.IsTerminal(environment.Stdin)
	if environment.Interactive != nil {
		interactive = *environment.Interactive
	}
	out := environment.Stderr
	renderer := lipgloss.NewRenderer(out)
	return &terminalUI{
		in:          bufio.NewReader(environment.Stdin),
		out:         out,
		interactive: interactive,
		color:       cli.IsTerminal(out),

		titleStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		warnStyle:  renderer.NewStyle().Foreground(lipgloss.Color("214")),
		infoStyle:  renderer.NewStyle().Foreground(lipgloss.Color("75")),
		faintStyle: renderer.NewStyle().Foreground(lipgloss.Color("243")),
		keyStyle:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		panelStyle: renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1),
	}
}

var _ item.UI = (*terminalUI)(nil)

func (u *terminalUI) Diagnose(result latex.Result, canReEdit bool) (item.Choice, error) {
	var panel strings.Builder
	panel.WriteString(u.titleStyle.Render("Typesetting failed"))
	panel.WriteString("\n")
	for _, file := range []struct{ label, path string }{
		{"log", result.LogPath},
		{"source", result.SourcePath},
		{"header", result.HeaderPath},
	} {
		if file.path != "" {
			fmt.Fprintf(&panel, "\n%s %s", u.faintStyle.Render(fmt.Sprintf("%-7s", file.label+":")), file.path)
		}
	}
	if excerpt := u.logExcerpt(result.LogPath); excerpt != "" {
		panel.WriteString("\n\n")
		panel.WriteString(excerpt)
	}
	fmt.Fprintln(u.out, u.panelStyle.Render(panel.String()))

	if source, err := os.ReadFile(result.SourcePath); err == nil {
		fmt.Fprintln(u.out, u.highlight(firstLines(string(source), sourceLines), "latex"))
	}

	choices := map[string]item.Choice{
		"l": item.ChoiceViewLog,
		"b": item.ChoiceExportBundle,
		"c": item.ChoiceCancel,
	}
	keys := []string{"l", "b"}
	if canReEdit {
		choices["e"] = item.ChoiceReEdit
		keys = append(keys, "e")
	}
	keys = append(keys, "c")

	if !u.interactive {
		u.Info("standard input is not a terminal; canceling")
		return item.ChoiceCancel, nil
	}

	var menu []string
	for _, key := range keys {
		menu = append(menu, fmt.Sprintf("[%s] %s", u.keyStyle.Render(key), choices[key]))
	}
	for {
		answer, err := u.prompt(strings.Join(menu, "  ") + " > ")
		if errors.Is(err, io.EOF) {
			return item.ChoiceCancel, nil
		}
		if err != nil {
			return item.ChoiceCancel, err
		}
		if choice, ok := choices[strings.ToLower(answer)]; ok {
			return choice, nil
		}
		u.Warn(fmt.Sprintf("unknown choice %q", answer))
	}
}

func (u *terminalUI) ShowLog(path, content string) error {
	fmt.Fprintln(u.out, u.faintStyle.Render("--- "+path))
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if logErrorLine.MatchString(line) {
			line = u.titleStyle.Render(line)
		}
		if _, err := fmt.Fprintln(u.out, line); err != nil {
			return err
		}
	}
	return nil
}

func (u *terminalUI) EditMarkup(p property.Property) (property.Property, error) {
	if !u.interactive {
		return p, item.ErrCanceled
	}
	fmt.Fprintln(u.out, u.faintStyle.Render("current markup:"))
	fmt.Fprintln(u.out, u.highlight(p.Markup, "latex"))
	answer, err := u.prompt("new markup (empty keeps current) > ")
	if errors.Is(err, io.EOF) {
		return p, item.ErrCanceled
	}
	if err != nil {
		return p, err
	}
	if answer != "" {
		p.Markup = answer
		p.Cursor = len(answer)
	}
	return p, nil
}

func (u *terminalUI) ConfirmRedo(count int) (bool, error) {
	question := fmt.Sprintf("%d item(s) have neither an embedded artifact nor a linked file. Recompile them? [y/N] ", count)
	if !u.interactive {
		u.Info(question + "no (not a terminal)")
		return false, nil
	}
	answer, err := u.prompt(question)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (u *terminalUI) Warn(message string) {
	fmt.Fprintln(u.out, u.warnStyle.Render("warning: ")+message)
}

func (u *terminalUI) Info(message string) {
	fmt.Fprintln(u.out, u.infoStyle.Render(message))
}

// prompt writes question and reads one trimmed line.
func (u *terminalUI) prompt(question string) (string, error) {
	fmt.Fprint(u.out, question)
	line, err := u.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// logExcerpt returns the first error lines of the engine log.
func (u *terminalUI) logExcerpt(path string) string {
	if path == "" {
		return ""
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return u.faintStyle.Render(fmt.Sprintf("(log unreadable: %v)", err))
	}
	var excerpt []string
	for _, line := range strings.Split(string(content), "\n") {
		if logErrorLine.MatchString(line) {
			excerpt = append(excerpt, line)
			if len(excerpt) == excerptLines {
				break
			}
		}
	}
	return strings.Join(excerpt, "\n")
}

// highlight syntax-highlights code for a terminal, or returns it
// unchanged when colour is off or the language is unknown.
func (u *terminalUI) highlight(code, language string) string {
	if !u.color {
		return code
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return u.faintStyle.Render(code)
	}
	return buffer.String()
}

func firstLines(text string, count int) string {
	lines := strings.SplitN(text, "\n", count+1)
	if len(lines) > count {
		lines = append(lines[:count], "...")
	}
	return strings.Join(lines, "\n")
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package latex

import (
	"strings"

	"github.com/bureau-foundation/latexplace/lib/property"
)

// File names inside the scratch directory.
const (
	HeaderFileName = "LaTeX2AI_header.tex"
	SourceBaseName = "LaTeX2AI_item"
)

// DefaultHeader is written next to a document that has no header yet.
// The standalone class and \itemscalefactor are required by the item
// macros.
const DefaultHeader = `% latexplace header: packages and macros available to every item.
% The document class must stay standalone.
\documentclass[class=scrartcl]{standalone}
\KOMAoptions{fontsize=11pt}
\usepackage{amsmath}

% Scale factor applied to every item. Must be defined.
\newcommand{\itemscalefactor}{1}

% Add packages and macros below.
`

// preamble follows the header. \LaTeXtoAI puts its argument on its own
// page. \LaTeXtoAIbase additionally pads the page with invisible strokes
// so the text baseline ends up at the vertical centre of the page.
const preamble = `
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage{tikz}

\newlength\maxheight
\newlength\diffheight

\standaloneconfig{border=1pt, multi}
\newenvironment{lta}{\ignorespaces}{\ignorespacesafterend}
\standaloneenv{lta}

\newcommand{\LaTeXtoAI}[1]{%
    \begin{lta}%
        \scalebox{\itemscalefactor}{#1}%
    \end{lta}%
}

\newbox\ltabox
\newcommand{\LaTeXtoAIbase}[1]{%
    \begin{lta}%
        \scalebox{\itemscalefactor}{%
            \setbox\ltabox\hbox{#1}%
            \begin{tikzpicture}[baseline={(current bounding box.center)}]%
                \pgfmathsetlength{\maxheight}{max(\ht\ltabox,\dp\ltabox)+1pt};
                \pgfmathsetlength{\diffheight}{0.01pt};
                \draw [line width=0.5\diffheight, opacity=0, draw=white](0,\maxheight-\diffheight)--(0,\maxheight);%
                \draw [line width=0.5\diffheight, opacity=0, draw=white](0,-\maxheight+\diffheight)--(0,-\maxheight);%
            \end{tikzpicture}%
            \unhbox\ltabox}%
    \end{lta}%
}

\begin{document}
`

// Item is one page of a compile run.
type Item struct {
	Markup   string
	Baseline bool

	// Label is written as a comment above the item to make the
	// combined source easier to read in a diagnostic view.
	Label string
}

// ItemFor returns the compile item of a property.
func ItemFor(p property.Property, label string) Item {
	return Item{Markup: p.Markup, Baseline: p.Alignment.IsBaseline(), Label: label}
}

// Code returns the macro call that typesets the item.
func (i Item) Code() string {
	if i.Baseline {
		return `\LaTeXtoAIbase{` + i.Markup + `}`
	}
	return `\LaTeXtoAI{` + i.Markup + `}`
}

// Source returns the combined source for items. Every macro call starts
// on its own line.
func Source(items []Item) string {
	var builder strings.Builder
	builder.WriteString("\\input{" + strings.TrimSuffix(HeaderFileName, ".tex") + "}\n")
	builder.WriteString(preamble)
	for _, item := range items {
		builder.WriteString("\n")
		if item.Label != "" {
			builder.WriteString("% item: " + strings.ReplaceAll(item.Label, "\n", " ") + "\n")
		}
		builder.WriteString(item.Code())
		builder.WriteString("\n")
	}
	builder.WriteString("\n\\end{document}\n")
	return builder.String()
}

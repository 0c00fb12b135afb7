// Package diagnostics renders parser diagnostics against their source
// file: a location header, the offending line, and a caret underline.
package diagnostics

import (
	"strings"

	"github.com/fatih/color"

	"github.com/pythia-lang/pythia/internal/parser"
	"github.com/pythia-lang/pythia/internal/position"
)

var (
	locStyle   = color.New(color.Bold)
	errStyle   = color.New(color.FgRed, color.Bold)
	caretStyle = color.New(color.FgRed, color.Bold)
)

// SetColor toggles colored output globally.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Render formats one diagnostic as
//
//	file:line:col: error[code]: message
//	    offending source line
//	    ^^^^^ caret underline
//
// The underline covers the diagnostic span where it stays on one line,
// and degrades to a single caret otherwise.
func Render(sf *position.SourceFile, d parser.Diagnostic) string {
	span := sf.SpanFromOffsets(d.Span.Start, d.Span.End)
	start := span.Start

	var b strings.Builder
	b.WriteString(locStyle.Sprintf("%s:%d:%d: ", sf.Filename, start.Line, start.Column))
	b.WriteString(errStyle.Sprintf("error[%s]: ", d.Code))
	b.WriteString(d.Message)
	b.WriteByte('\n')

	line := sf.GetLine(start.Line)
	if line == "" {
		return b.String()
	}
	b.WriteString("    " + line + "\n")

	width := 1
	if span.End.Line == start.Line && span.End.Column > start.Column {
		width = span.End.Column - start.Column
	}
	pad := strings.Map(func(r rune) rune {
		if r != '\t' {
			return ' '
		}
		return r
	}, line[:clamp(start.Column-1, len(line))])
	b.WriteString("    " + pad + caretStyle.Sprint(strings.Repeat("^", width)) + "\n")
	return b.String()
}

// RenderAll renders every diagnostic in order, separated by blank
// lines.
func RenderAll(sf *position.SourceFile, ds []parser.Diagnostic) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = Render(sf, d)
	}
	return strings.Join(parts, "\n")
}

// Summary is the one-line count trailer printed after a check run.
func Summary(count int) string {
	if count == 0 {
		return "no syntax errors"
	}
	return errStyle.Sprintf("%d syntax error(s)", count)
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"scriptsense/internal/diag"
	"scriptsense/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и, по опции, Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := printer{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type printer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *printer) paint(attr color.Attribute, s string) string {
	if !p.opts.Color {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

func (p *printer) diagnostic(d diag.Diagnostic) {
	sevAttr := color.FgYellow
	switch d.Severity {
	case diag.SevError:
		sevAttr = color.FgRed
	case diag.SevInfo:
		sevAttr = color.FgCyan
	}
	start, _ := p.fs.Resolve(d.Primary)
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.paint(color.Bold, p.location(d.Primary.File, start)),
		p.paint(sevAttr, d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)
	p.snippet(d.Primary, sevAttr)
	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		pos, _ := p.fs.Resolve(n.Span)
		fmt.Fprintf(p.w, "  %s: %s %s\n", p.location(n.Span.File, pos), p.paint(color.FgCyan, "note:"), n.Msg)
	}
}

func (p *printer) location(id source.FileID, pos source.LineCol) string {
	return fmt.Sprintf("%s:%d:%d", displayPath(p.fs.Get(id), p.opts.PathMode), pos.Line, pos.Col)
}

// snippet prints the context lines and the primary line with a caret run
// under the span. Multi-line spans are underlined to the end of the first
// line.
func (p *printer) snippet(span source.Span, attr color.Attribute) {
	f := p.fs.Get(span.File)
	start, end := p.fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	first := int64(start.Line) - int64(max(p.opts.Context, 0))
	if first < 1 {
		first = 1
	}
	gutter := len(fmt.Sprint(start.Line))
	for ln := uint32(first); ln <= start.Line; ln++ { // #nosec G115 -- first is in [1, start.Line]
		fmt.Fprintf(p.w, "%*d | %s\n", gutter, ln, expandTabs(f.Line(ln)))
	}

	line := f.Line(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		width = max(len(line)-col, 1)
	}
	pad := len(expandTabs(line[:col]))
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(p.w, "%s | %s%s\n", strings.Repeat(" ", gutter), strings.Repeat(" ", pad), p.paint(attr, marker))
}

func displayPath(f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	if mode == PathModeBasename {
		return filepath.Base(f.Path)
	}
	return f.Path
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

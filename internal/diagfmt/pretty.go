package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rxguard/internal/diag"
	"rxguard/internal/source"
)

// Pretty renders the bag in human-readable form. It walks bag.Items() and
// expects bag.Sort() to have run already. Each diagnostic prints as
//
//	<path>:<line>:<col>: <sev> <CODE>: <message>
//
// followed by the source line with a caret underline over the span, then
// notes in the same shape, then fix titles when requested.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	p.header(d.Severity, d.Code, d.Message, d.Primary)
	p.context(d.Primary)
	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			p.note(n)
		}
	}
	if p.opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(p.w, "  fix available: %s (%s)\n", f.Title, f.ID)
		}
	}
}

func (p *prettyPrinter) header(sev diag.Severity, code diag.Code, msg string, sp source.Span) {
	loc := p.location(sp)
	if !p.opts.Color {
		fmt.Fprintf(p.w, "%s: %s %s: %s\n", loc, sev, code.ID(), msg)
		return
	}
	sevColor := severityColor(sev)
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		color.New(color.Bold).Sprint(loc),
		sevColor.Sprint(sev.String()),
		sevColor.Sprint(code.ID()),
		msg)
}

func (p *prettyPrinter) note(n diag.Note) {
	loc := p.location(n.Span)
	if p.opts.Color {
		loc = color.New(color.Faint).Sprint(loc)
	}
	fmt.Fprintf(p.w, "  note: %s: %s\n", loc, n.Msg)
}

// context prints the source line holding the span start plus the configured
// surrounding lines, with a caret underline sized to the span.
func (p *prettyPrinter) context(sp source.Span) {
	if p.opts.Context <= 0 || p.fs == nil {
		return
	}
	file := p.fs.Get(sp.File)
	if file == nil || len(file.Content) == 0 {
		return
	}
	start, end := p.fs.Resolve(sp)

	first := start.Line
	if extra := uint32(p.opts.Context - 1); first > extra+1 {
		first -= extra
	} else {
		first = 1
	}
	for ln := first; ln <= start.Line; ln++ {
		line := file.Line(ln)
		fmt.Fprintf(p.w, "  %4d | %s\n", ln, strings.TrimRight(line, "\n"))
	}

	line := strings.TrimRight(file.Line(start.Line), "\n")
	prefix := line
	if int(start.Col-1) <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := runewidth.StringWidth(prefix)
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		seg := line
		if int(end.Col-1) <= len(line) {
			seg = line[start.Col-1 : end.Col-1]
		}
		width = max(runewidth.StringWidth(seg), 1)
	}
	underline := "^" + strings.Repeat("~", width-1)
	if p.opts.Color {
		underline = severityColorForUnderline().Sprint(underline)
	}
	fmt.Fprintf(p.w, "       | %s%s\n", strings.Repeat(" ", pad), underline)
}

func (p *prettyPrinter) location(sp source.Span) string {
	if p.fs == nil {
		return sp.String()
	}
	file := p.fs.Get(sp.File)
	if file == nil {
		return sp.String()
	}
	start, _ := p.fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(file, p.fs, p.opts.PathMode), start.Line, start.Col)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func severityColorForUnderline() *color.Color {
	return color.New(color.FgGreen, color.Bold)
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"arttrace/internal/diag"
	"arttrace/internal/source"
)

type palette struct {
	err, warn, info, path, code, gutter, caret, note func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		path:   mk(color.Bold),
		code:   mk(color.Faint),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	default:
		return p.info(sev.String())
	}
}

// Pretty writes every diagnostic of the bag in a human readable form:
//
//	path:line:col: SEVERITY CODE: message
//	   7 | Alice.b:TypeX {
//	     |               ^
//	  note: path:line:col: text
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	if loc := location(fs, d.Primary, opts.PathMode, opts.BaseDir); loc != "" {
		fmt.Fprintf(w, "%s ", p.path(loc+":"))
	}
	fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity), p.code(d.Code.ID()), d.Message)

	if opts.Context {
		if line, ok := sourceLine(fs, d.Primary); ok {
			gutter := fmt.Sprintf("%4d | ", d.Primary.Line)
			blank := strings.Repeat(" ", len(gutter)-2) + "| "
			fmt.Fprintf(w, "%s%s\n", p.gutter(gutter), line)
			fmt.Fprintf(w, "%s%s\n", p.gutter(blank), p.caret(underline(line, d.Primary)))
		}
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nloc := location(fs, n.Span, opts.PathMode, opts.BaseDir)
			if nloc != "" {
				fmt.Fprintf(w, "  %s %s: %s\n", p.note("note:"), nloc, n.Msg)
			} else {
				fmt.Fprintf(w, "  %s %s\n", p.note("note:"), n.Msg)
			}
		}
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode, baseDir string) string {
	path := formatPath(fs, span, mode, baseDir)
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", path, span.Line, max(span.Start, 1))
}

func sourceLine(fs *source.FileSet, span source.Span) (string, bool) {
	if fs == nil || span.Line == 0 {
		return "", false
	}
	f := fs.Get(span.File)
	if f == nil || int(span.Line) > f.LineCount() {
		return "", false
	}
	return strings.ReplaceAll(f.GetLine(span.Line), "\t", " "), true
}

// underline draws ^~~~ beneath the span, measuring display width so wide
// runes before the span keep the caret aligned.
func underline(line string, span source.Span) string {
	start := clampCol(span.Start, len(line))
	end := clampCol(span.End, len(line))
	if end < start {
		end = start
	}
	pad := runewidth.StringWidth(line[:start])
	width := runewidth.StringWidth(line[start:end])
	if width <= 1 {
		return strings.Repeat(" ", pad) + "^"
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

func clampCol(col uint32, n int) int {
	if col <= 1 {
		return 0
	}
	c := int(col - 1)
	if c > n {
		return n
	}
	return c
}

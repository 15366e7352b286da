package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"logdoc/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^ под колонкой, затем Notes.
// Диагностики без позиции печатаются как <path>: <SEV> <CODE>: <Message>.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	p := newPalette(opts.Color)
	for _, d := range items {
		writeOne(w, d, p, opts)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "%s %d more diagnostics suppressed\n", p.note.Sprint("note:"), dropped)
	}
}

type palette struct {
	err, warn, info, note, path, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:   mk(color.FgRed, color.Bold),
		warn:  mk(color.FgYellow, color.Bold),
		info:  mk(color.FgCyan),
		note:  mk(color.FgBlue),
		path:  mk(color.Bold),
		caret: mk(color.FgGreen, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

func writeOne(w io.Writer, d *diag.Diagnostic, p palette, opts PrettyOpts) {
	if d == nil {
		return
	}
	path := formatPath(d.Path, opts.PathMode, opts.BaseDir)
	loc := path
	if d.Pos.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", path, d.Pos.Line, d.Pos.Col)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprint(loc),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)

	if d.Snippet != "" && d.Pos.Line > 0 {
		gutter := fmt.Sprintf("%d", d.Pos.Line)
		fmt.Fprintf(w, " %s | %s\n", gutter, d.Snippet)
		pad := caretPadding(d.Snippet, d.Pos.Col)
		fmt.Fprintf(w, " %s | %s%s\n", strings.Repeat(" ", len(gutter)), pad, p.caret.Sprint("^"))
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
		}
	}
}

// caretPadding сохраняет табы из исходной строки, чтобы ^ совпал с колонкой.
func caretPadding(line string, col uint32) string {
	if col <= 1 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(line) && uint32(i) < col-1; i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

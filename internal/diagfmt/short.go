package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"logdoc/internal/diag"
)

// Short пишет по одной строке на диагностику, в порядке bag:
//
//	path:line:col: severity CODE: message
//
// Удобно для grep и аннотаций CI. Переводы строк в сообщении схлопываются.
func Short(w io.Writer, bag *diag.Bag, opts ShortOpts) {
	if bag == nil {
		return
	}
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, d := range items {
		loc := formatPath(d.Path, opts.PathMode, opts.BaseDir)
		if d.HasSpan && d.Pos.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", loc, d.Pos.Line, d.Pos.Col)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", loc, strings.ToLower(d.Severity.String()), d.Code.ID(), oneLine(d.Message))
	}
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}

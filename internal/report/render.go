package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatMsgpack  Format = "msgpack"
)

// ParseFormat accepts markdown|md|json|msgpack.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("unsupported report format %q (expected markdown|json|msgpack)", s)
}

// Render writes doc to w in the given format.
func Render(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatMarkdown, "":
		return Markdown(w, doc)
	case FormatJSON:
		return JSON(w, doc)
	case FormatMsgpack:
		return Msgpack(w, doc)
	}
	return fmt.Errorf("unsupported report format %q", f)
}

var header = [5]string{"file", "path", "lineno", "message", "args"}

// Markdown renders the title, then one "## LEVEL" section with a pipe table
// per severity, sections separated by a blank line.
func Markdown(w io.Writer, doc *Document) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", doc.Title)
	for _, t := range doc.Tables {
		fmt.Fprintf(&b, "\n## %s\n\n", t.Name)
		writeTable(&b, t)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, t Table) {
	cells := make([][5]string, 0, len(t.Rows))
	var widths [5]int
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.Rows {
		row := r.Cells()
		for i := range row {
			row[i] = escapeCell(row[i])
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
		cells = append(cells, row)
	}

	writeRow(b, header, widths)
	b.WriteByte('|')
	for _, w := range widths {
		b.WriteByte(':')
		b.WriteString(strings.Repeat("-", w+1))
		b.WriteByte('|')
	}
	b.WriteByte('\n')
	for _, row := range cells {
		writeRow(b, row, widths)
	}
}

func writeRow(b *strings.Builder, row [5]string, widths [5]int) {
	b.WriteByte('|')
	for i, c := range row {
		b.WriteByte(' ')
		b.WriteString(runewidth.FillRight(c, widths[i]))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}

// escapeCell keeps a cell on one table line.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// JSON renders the document as indented JSON.
func JSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// Msgpack renders the document as MessagePack with the JSON field names.
func Msgpack(w io.Writer, doc *Document) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(doc)
}

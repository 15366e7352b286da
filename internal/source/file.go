// Package source loads Python files and maps byte offsets to lines.
package source

import (
	"bytes"
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// FileID identifies a file within one FileSet.
type FileID uint32

// Pos is a 1-based line and byte column.
type Pos struct {
	Line uint32
	Col  uint32
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// File is one decoded source file. Content has no BOM and uses '\n' line
// endings, so offsets match what the parser sees.
type File struct {
	ID      FileID
	Path    string // slash-form, as loaded
	Content []byte
	starts  []uint32 // offset of the first byte of every line
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode strips a UTF-8 BOM and turns CRLF into LF. Lone '\r' stays.
func decode(content []byte) []byte {
	content = bytes.TrimPrefix(content, utf8BOM)
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	}
	return content
}

func lineStarts(content []byte) []uint32 {
	starts := []uint32{0}
	for i, c := range content {
		if c == '\n' {
			starts = append(starts, u32(i+1))
		}
	}
	return starts
}

// Lines returns the number of lines; a trailing newline does not open a new one.
func (f *File) Lines() int {
	n := len(f.starts)
	if n > 1 && int(f.starts[n-1]) == len(f.Content) {
		n--
	}
	return n
}

// Position converts a byte offset into a line and column. Offsets past the
// end land on the last line.
func (f *File) Position(off uint32) Pos {
	i := sort.Search(len(f.starts), func(i int) bool { return f.starts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return Pos{Line: u32(i + 1), Col: off - f.starts[i] + 1}
}

// Line returns line n (1-based) without its newline, or "" when out of range.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.starts) {
		return ""
	}
	start := int(f.starts[n-1])
	if start >= len(f.Content) {
		return ""
	}
	end := len(f.Content)
	if int(n) < len(f.starts) {
		end = int(f.starts[n]) - 1
	}
	return string(f.Content[start:end])
}

// Text returns the bytes covered by span. Out-of-range spans are clamped.
func (f *File) Text(span Span) string {
	n := len(f.Content)
	start, end := min(int(span.Start), n), min(int(span.End), n)
	if end < start {
		return ""
	}
	return string(f.Content[start:end])
}

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return v
}

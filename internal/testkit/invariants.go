package testkit

import (
	"fmt"
	"strings"
	"unicode"

	"fortio.org/safecast"

	"logdoc/internal/ast"
	"logdoc/internal/scan"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) the root span is within file content bounds
// 2) every node span is non-inverted and points at the builder's file
// 3) every child span is contained in its parent span
// 4) node lines are 1-based
func CheckSpanInvariants(b *ast.Builder) error {
	if b == nil || b.File == nil {
		return fmt.Errorf("nil builder or file")
	}
	root := b.Get(b.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(b.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", root.Span.End, lenContent)
	}

	for i := uint32(1); i <= b.Len(); i++ {
		id := ast.NodeID(i)
		n := b.Get(id)
		if n.Span.End < n.Span.Start {
			return fmt.Errorf("inverted span for node %d: %v", id, n.Span)
		}
		if n.Span.File != b.File.ID {
			return fmt.Errorf("node %d span file mismatch: got=%d want=%d", id, n.Span.File, b.File.ID)
		}
		if n.Line == 0 {
			return fmt.Errorf("node %d has line 0", id)
		}
		for _, c := range b.Children(id) {
			cn := b.Get(c)
			if cn == nil {
				return fmt.Errorf("node %d has dangling child %d", id, c)
			}
			if !n.Span.Contains(cn.Span) {
				return fmt.Errorf("child %d span %v is outside parent %d span %v", c, cn.Span, id, n.Span)
			}
		}
	}
	return nil
}

// irregularSpace reports any whitespace other than a single ASCII space.
func irregularSpace(s string) bool {
	prev := false
	for _, r := range s {
		sp := unicode.IsSpace(r)
		if sp && (prev || r != ' ') {
			return true
		}
		prev = sp
	}
	return false
}

// CheckRecordInvariants verifies the shape of scanned records:
// 1) line >= 1 and lines are non-decreasing within a file
// 2) messages carry no edge whitespace, whitespace runs or double quotes
// 3) args carry no leading/trailing tabs or newlines
func CheckRecordInvariants(res *scan.Result) error {
	if res == nil {
		return nil
	}
	prevPath := ""
	for _, f := range res.Files {
		if f.Path <= prevPath && prevPath != "" {
			return fmt.Errorf("files out of order: %q after %q", f.Path, prevPath)
		}
		prevPath = f.Path
		if len(f.Records) == 0 {
			return fmt.Errorf("%s: empty file report", f.Path)
		}
		var prevLine uint32
		for _, r := range f.Records {
			if r.Line == 0 {
				return fmt.Errorf("%s: record with line 0", f.Path)
			}
			if r.Line < prevLine {
				return fmt.Errorf("%s: line %d after %d", f.Path, r.Line, prevLine)
			}
			prevLine = r.Line
			if r.Level != res.Level {
				return fmt.Errorf("%s:%d: level %s in %s pass", f.Path, r.Line, r.Level, res.Level)
			}
			if r.Message != strings.TrimSpace(r.Message) || irregularSpace(r.Message) {
				return fmt.Errorf("%s:%d: message not normalized: %q", f.Path, r.Line, r.Message)
			}
			if strings.Contains(r.Message, `"`) {
				return fmt.Errorf("%s:%d: message keeps quotes: %q", f.Path, r.Line, r.Message)
			}
			for _, a := range r.Args {
				if a != strings.Trim(a, "\n\t") {
					return fmt.Errorf("%s:%d: arg not trimmed: %q", f.Path, r.Line, a)
				}
			}
		}
	}
	return nil
}

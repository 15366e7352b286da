// Package parser turns Python source into the closed ast model.
//
// The concrete syntax tree comes from tree-sitter's Python grammar; only the
// shapes the scanner inspects (calls, attributes, names, literals, starred and
// keyword arguments) are lowered to typed nodes, everything else becomes
// ast.NodeOther with its children.
package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"logdoc/internal/ast"
	"logdoc/internal/diag"
	"logdoc/internal/source"
)

// ErrSyntax marks a file whose tree contains ERROR or MISSING nodes.
var ErrSyntax = errors.New("syntax error")

// ErrNotText marks a file that contains NUL bytes and so is not Python source.
var ErrNotText = errors.New("not a text file")

const defaultMaxDepth = 2048

type Options struct {
	Reporter diag.Reporter
	MaxDepth uint // 0 - defaultMaxDepth
}

// FileParseError reports a file that could not be parsed.
type FileParseError struct {
	Path string
	Line uint32
	Col  uint32
	Err  error
}

func (e *FileParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Col, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileParseError) Unwrap() error { return e.Err }

// Parser — состояние на один файл
type Parser struct {
	file     *source.File
	b        *ast.Builder
	maxDepth uint
}

// ParseFile parses one file of fs and returns its node arena.
// The tree-sitter tree is released before ParseFile returns.
func ParseFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*ast.Builder, error) {
	file := fs.Get(id)
	if file == nil {
		return nil, fmt.Errorf("parser: unknown file id %d", id)
	}

	if off := bytes.IndexByte(file.Content, 0); off >= 0 {
		return nil, notText(fs, file, uint32(off), opts)
	}

	tsp := sitter.NewParser()
	defer tsp.Close()
	tsp.SetLanguage(python.GetLanguage())

	tree, err := tsp.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, &FileParseError{Path: file.Path, Err: fmt.Errorf("tree-sitter: %w", err)}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(fs, file, root, opts)
	}

	p := Parser{
		file:     file,
		b:        ast.NewBuilder(file, ast.Hints{Nodes: uint(root.NamedChildCount()) * 8}),
		maxDepth: opts.MaxDepth,
	}
	if p.maxDepth == 0 {
		p.maxDepth = defaultMaxDepth
	}
	p.b.Root = p.lower(root, 0)
	return p.b, nil
}

func syntaxError(fs *source.FileSet, file *source.File, root *sitter.Node, opts Options) error {
	bad := firstBadNode(root)
	if bad == nil {
		bad = root
	}
	sp := source.Span{File: file.ID, Start: bad.StartByte(), End: bad.EndByte()}
	code, msg := diag.SynSyntaxError, "invalid syntax"
	if bad.IsMissing() {
		code, msg = diag.SynMissingToken, fmt.Sprintf("missing %q", bad.Type())
	}
	if opts.Reporter != nil {
		b := diag.ReportError(opts.Reporter, code, sp, msg).WithPath(file.Path)
		b.Diagnostic().Located(fs)
		b.WithNote(sp, "file skipped").Emit()
	}
	pt := bad.StartPoint()
	return &FileParseError{
		Path: file.Path,
		Line: pt.Row + 1,
		Col:  pt.Column + 1,
		Err:  fmt.Errorf("%w: %s", ErrSyntax, msg),
	}
}

func notText(fs *source.FileSet, file *source.File, off uint32, opts Options) error {
	sp := source.Span{File: file.ID, Start: off, End: off + 1}
	if opts.Reporter != nil {
		b := diag.ReportError(opts.Reporter, diag.SynUnsupportedFS, sp, "file contains a NUL byte").WithPath(file.Path)
		b.Diagnostic().Located(fs)
		b.WithNote(sp, "file skipped").Emit()
	}
	return &FileParseError{Path: file.Path, Err: ErrNotText}
}

// firstBadNode returns the first ERROR or MISSING node in pre-order.
func firstBadNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstBadNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

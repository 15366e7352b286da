// Package match finds logging call sites of the form <receiver>.<method>(...)
// in a parsed file.
package match

import (
	"iter"

	"logdoc/internal/ast"
	"logdoc/internal/levels"
)

// CallSite is one matched call with its positional arguments unparsed.
type CallSite struct {
	Path      string
	Line      uint32
	Fragments []string
}

// Cursor walks a tree depth-first in pre-order and yields matching calls.
// It is lazy and cannot be restarted; create a new Cursor for another pass.
type Cursor struct {
	b        *ast.Builder
	receiver string
	method   string
	path     string
	stack    []ast.NodeID
}

// New validates level and returns a cursor over b.
func New(b *ast.Builder, receiver string, level levels.Level) (*Cursor, error) {
	if err := levels.Check(level); err != nil {
		return nil, err
	}
	c := &Cursor{
		b:        b,
		receiver: receiver,
		method:   level.Method(),
	}
	if b != nil {
		if b.File != nil {
			c.path = b.File.Path
		}
		if b.Root.IsValid() {
			c.stack = append(c.stack, b.Root)
		}
	}
	return c, nil
}

// Next returns the next call site, or false once the tree is exhausted.
func (c *Cursor) Next() (CallSite, bool) {
	for len(c.stack) > 0 {
		id := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

		n := c.b.Get(id)
		if n == nil {
			continue
		}
		switch n.Kind {
		case ast.NodeCall:
			// в вызовы не спускаемся: вложенные и цепочечные вызовы не учитываются
			if site, ok := c.matchCall(id, n); ok {
				return site, true
			}
		case ast.NodeAttribute, ast.NodeStarred, ast.NodeKeyword, ast.NodeOther:
			c.pushChildren(id)
		case ast.NodeName, ast.NodeConstant:
		}
	}
	return CallSite{}, false
}

func (c *Cursor) pushChildren(id ast.NodeID) {
	kids := c.b.Children(id)
	for i := len(kids) - 1; i >= 0; i-- {
		c.stack = append(c.stack, kids[i])
	}
}

func (c *Cursor) matchCall(id ast.NodeID, n *ast.Node) (CallSite, bool) {
	call, _ := c.b.Call(id)
	attr, ok := c.b.Attribute(call.Callee)
	if !ok || attr.Attr != c.method {
		return CallSite{}, false
	}
	base, ok := c.b.Name(attr.Value)
	if !ok || base.Ident != c.receiver {
		return CallSite{}, false
	}

	fragments := make([]string, 0, len(call.Args))
	for _, arg := range call.Args {
		if k := c.b.Get(arg).Kind; k == ast.NodeKeyword {
			continue
		}
		if st, ok := c.b.Star(arg); ok && st.Double {
			continue
		}
		fragments = append(fragments, c.b.Unparse(arg))
	}
	if len(fragments) == 0 {
		return CallSite{}, false
	}
	return CallSite{Path: c.path, Line: n.Line, Fragments: fragments}, true
}

// All adapts the cursor to a range-over-func sequence.
func (c *Cursor) All() iter.Seq[CallSite] {
	return func(yield func(CallSite) bool) {
		for {
			site, ok := c.Next()
			if !ok || !yield(site) {
				return
			}
		}
	}
}

// Collect drains the cursor.
func (c *Cursor) Collect() []CallSite {
	var out []CallSite
	for site := range c.All() {
		out = append(out, site)
	}
	return out
}

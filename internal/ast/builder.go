package ast

import (
	"logdoc/internal/source"
)

type Hints struct{ Nodes uint }

// Builder owns the node arenas for one source file.
type Builder struct {
	File *source.File
	Root NodeID

	Nodes      *Arena[Node]
	Calls      *Arena[CallExpr]
	Attributes *Arena[AttributeExpr]
	Names      *Arena[NameExpr]
	Constants  *Arena[ConstantExpr]
	Starred    *Arena[StarredExpr]
	Keywords   *Arena[KeywordArg]
	Others     *Arena[OtherNode]
}

func NewBuilder(file *source.File, hints Hints) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	small := hints.Nodes / 4
	return &Builder{
		File:       file,
		Nodes:      NewArena[Node](hints.Nodes),
		Calls:      NewArena[CallExpr](small),
		Attributes: NewArena[AttributeExpr](small),
		Names:      NewArena[NameExpr](small),
		Constants:  NewArena[ConstantExpr](small),
		Starred:    NewArena[StarredExpr](0),
		Keywords:   NewArena[KeywordArg](0),
		Others:     NewArena[OtherNode](hints.Nodes),
	}
}

func (b *Builder) new(kind NodeKind, sp source.Span, line uint32, payload uint32) NodeID {
	return NodeID(b.Nodes.Allocate(Node{
		Kind:    kind,
		Span:    sp,
		Line:    line,
		Payload: PayloadID(payload),
	}))
}

// Get returns the node with the given ID.
func (b *Builder) Get(id NodeID) *Node {
	return b.Nodes.Get(uint32(id))
}

func (b *Builder) Len() uint32 { return b.Nodes.Len() }

// NewCall creates a call node.
func (b *Builder) NewCall(sp source.Span, line uint32, callee NodeID, args []NodeID) NodeID {
	payload := b.Calls.Allocate(CallExpr{Callee: callee, Args: append([]NodeID(nil), args...)})
	return b.new(NodeCall, sp, line, payload)
}

// Call returns the call payload for id.
func (b *Builder) Call(id NodeID) (*CallExpr, bool) {
	n := b.Get(id)
	if n == nil || n.Kind != NodeCall {
		return nil, false
	}
	return b.Calls.Get(uint32(n.Payload)), true
}

func (b *Builder) NewAttribute(sp source.Span, line uint32, value NodeID, attr string) NodeID {
	payload := b.Attributes.Allocate(AttributeExpr{Value: value, Attr: attr})
	return b.new(NodeAttribute, sp, line, payload)
}

func (b *Builder) Attribute(id NodeID) (*AttributeExpr, bool) {
	n := b.Get(id)
	if n == nil || n.Kind != NodeAttribute {
		return nil, false
	}
	return b.Attributes.Get(uint32(n.Payload)), true
}

func (b *Builder) NewName(sp source.Span, line uint32, ident string) NodeID {
	payload := b.Names.Allocate(NameExpr{Ident: ident})
	return b.new(NodeName, sp, line, payload)
}

func (b *Builder) Name(id NodeID) (*NameExpr, bool) {
	n := b.Get(id)
	if n == nil || n.Kind != NodeName {
		return nil, false
	}
	return b.Names.Get(uint32(n.Payload)), true
}

func (b *Builder) NewConstant(sp source.Span, line uint32, kind ConstKind, value string) NodeID {
	payload := b.Constants.Allocate(ConstantExpr{Kind: kind, Value: value})
	return b.new(NodeConstant, sp, line, payload)
}

func (b *Builder) Constant(id NodeID) (*ConstantExpr, bool) {
	n := b.Get(id)
	if n == nil || n.Kind != NodeConstant {
		return nil, false
	}
	return b.Constants.Get(uint32(n.Payload)), true
}

func (b *Builder) NewStarred(sp source.Span, line uint32, value NodeID, double bool) NodeID {
	payload := b.Starred.Allocate(StarredExpr{Value: value, Double: double})
	return b.new(NodeStarred, sp, line, payload)
}

func (b *Builder) Star(id NodeID) (*StarredExpr, bool) {
	n := b.Get(id)
	if n == nil || n.Kind != NodeStarred {
		return nil, false
	}
	return b.Starred.Get(uint32(n.Payload)), true
}

func (b *Builder) NewKeyword(sp source.Span, line uint32, name string, value NodeID) NodeID {
	payload := b.Keywords.Allocate(KeywordArg{Name: name, Value: value})
	return b.new(NodeKeyword, sp, line, payload)
}

func (b *Builder) Keyword(id NodeID) (*KeywordArg, bool) {
	n := b.Get(id)
	if n == nil || n.Kind != NodeKeyword {
		return nil, false
	}
	return b.Keywords.Get(uint32(n.Payload)), true
}

func (b *Builder) NewOther(sp source.Span, line uint32, label string, children []NodeID) NodeID {
	payload := b.Others.Allocate(OtherNode{Label: label, Children: append([]NodeID(nil), children...)})
	return b.new(NodeOther, sp, line, payload)
}

func (b *Builder) Other(id NodeID) (*OtherNode, bool) {
	n := b.Get(id)
	if n == nil || n.Kind != NodeOther {
		return nil, false
	}
	return b.Others.Get(uint32(n.Payload)), true
}

// Children returns the direct children of id in source order.
func (b *Builder) Children(id NodeID) []NodeID {
	n := b.Get(id)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case NodeCall:
		call := b.Calls.Get(uint32(n.Payload))
		out := make([]NodeID, 0, len(call.Args)+1)
		out = append(out, call.Callee)
		return append(out, call.Args...)
	case NodeAttribute:
		return []NodeID{b.Attributes.Get(uint32(n.Payload)).Value}
	case NodeStarred:
		return []NodeID{b.Starred.Get(uint32(n.Payload)).Value}
	case NodeKeyword:
		return []NodeID{b.Keywords.Get(uint32(n.Payload)).Value}
	case NodeOther:
		return b.Others.Get(uint32(n.Payload)).Children
	case NodeName, NodeConstant:
		return nil
	}
	return nil
}

// Text returns the verbatim source covered by id.
func (b *Builder) Text(id NodeID) string {
	n := b.Get(id)
	if n == nil || b.File == nil {
		return ""
	}
	return b.File.Text(n.Span)
}

package ast

import (
	"logdoc/internal/source"
)

// NodeKind enumerates the closed set of node shapes the scanner cares about.
// Everything the matcher does not inspect is NodeOther.
type NodeKind uint8

const (
	// NodeCall is a call expression: callee(args...).
	NodeCall NodeKind = iota
	// NodeAttribute is a member access: value.attr.
	NodeAttribute
	// NodeName is a bare identifier.
	NodeName
	// NodeConstant is a literal (string, bytes, number, None, True, False, ...).
	NodeConstant
	// NodeStarred is *value or **value inside an argument list.
	NodeStarred
	// NodeKeyword is a keyword argument name=value.
	NodeKeyword
	// NodeOther is any other syntax; only its children are kept.
	NodeOther
)

func (k NodeKind) String() string {
	switch k {
	case NodeCall:
		return "Call"
	case NodeAttribute:
		return "Attribute"
	case NodeName:
		return "Name"
	case NodeConstant:
		return "Constant"
	case NodeStarred:
		return "Starred"
	case NodeKeyword:
		return "Keyword"
	case NodeOther:
		return "Other"
	}
	return "Unknown"
}

// Node is an arena entry. Payload indexes the per-kind arena.
type Node struct {
	Kind    NodeKind
	Span    source.Span
	Line    uint32 // 1-based
	Payload PayloadID
}

// ConstKind distinguishes literal flavours.
type ConstKind uint8

const (
	ConstString ConstKind = iota
	ConstBytes
	ConstFString
	ConstNumber
	ConstNone
	ConstTrue
	ConstFalse
	ConstEllipsis
)

// CallExpr holds the callee and the argument list in source order.
// Keyword arguments are kept as NodeKeyword entries of Args.
type CallExpr struct {
	Callee NodeID
	Args   []NodeID
}

type AttributeExpr struct {
	Value NodeID
	Attr  string
}

type NameExpr struct {
	Ident string
}

// ConstantExpr stores the decoded value for string-like literals and the
// verbatim text for everything else.
type ConstantExpr struct {
	Kind  ConstKind
	Value string
}

// StarredExpr is *Value, or **Value when Double is set.
type StarredExpr struct {
	Value  NodeID
	Double bool
}

type KeywordArg struct {
	Name  string
	Value NodeID
}

// OtherNode keeps the grammar label and children of an uninspected node.
type OtherNode struct {
	Label    string
	Children []NodeID
}

package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"logdoc/internal/ast"
	"logdoc/internal/source"
)

// названия узлов грамматики tree-sitter-python
const (
	tsCall            = "call"
	tsAttribute       = "attribute"
	tsIdentifier      = "identifier"
	tsString          = "string"
	tsConcatString    = "concatenated_string"
	tsInteger         = "integer"
	tsFloat           = "float"
	tsNone            = "none"
	tsTrue            = "true"
	tsFalse           = "false"
	tsEllipsis        = "ellipsis"
	tsListSplat       = "list_splat"
	tsDictSplat       = "dictionary_splat"
	tsKeywordArgument = "keyword_argument"
	tsArgumentList    = "argument_list"
	tsParenthesized   = "parenthesized_expression"
	tsComment         = "comment"
	tsGeneratorExpr   = "generator_expression"
	fieldFunction     = "function"
	fieldArguments    = "arguments"
	fieldObject       = "object"
	fieldAttribute    = "attribute"
	fieldKeywordName  = "name"
	fieldKeywordValue = "value"
)

func (p *Parser) span(n *sitter.Node) source.Span {
	return source.Span{File: p.file.ID, Start: n.StartByte(), End: n.EndByte()}
}

func line(n *sitter.Node) uint32 {
	return n.StartPoint().Row + 1
}

func (p *Parser) text(n *sitter.Node) string {
	return n.Content(p.file.Content)
}

// namedChildren skips comments; they carry nothing the scanner needs.
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := range count {
		c := n.NamedChild(i)
		if c == nil || c.Type() == tsComment {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (p *Parser) lower(n *sitter.Node, depth uint) ast.NodeID {
	sp, ln := p.span(n), line(n)
	if depth >= p.maxDepth {
		return p.b.NewOther(sp, ln, n.Type(), nil)
	}
	depth++

	switch n.Type() {
	case tsCall:
		return p.lowerCall(n, depth)

	case tsAttribute:
		obj := n.ChildByFieldName(fieldObject)
		attr := n.ChildByFieldName(fieldAttribute)
		if obj == nil || attr == nil {
			break
		}
		return p.b.NewAttribute(sp, ln, p.lower(obj, depth), p.text(attr))

	case tsIdentifier:
		return p.b.NewName(sp, ln, p.text(n))

	case tsString:
		lit, err := ast.DecodeStringLiteral(p.text(n))
		if err != nil {
			break
		}
		return p.b.NewConstant(sp, ln, lit.Kind, lit.Value)

	case tsConcatString:
		parts := make([]ast.StringLiteral, 0, n.NamedChildCount())
		for _, c := range namedChildren(n) {
			lit, err := ast.DecodeStringLiteral(p.text(c))
			if err != nil {
				return p.other(n, depth)
			}
			parts = append(parts, lit)
		}
		lit := ast.ConcatLiterals(parts)
		return p.b.NewConstant(sp, ln, lit.Kind, lit.Value)

	case tsInteger, tsFloat:
		return p.b.NewConstant(sp, ln, ast.ConstNumber, p.text(n))
	case tsNone:
		return p.b.NewConstant(sp, ln, ast.ConstNone, "None")
	case tsTrue:
		return p.b.NewConstant(sp, ln, ast.ConstTrue, "True")
	case tsFalse:
		return p.b.NewConstant(sp, ln, ast.ConstFalse, "False")
	case tsEllipsis:
		return p.b.NewConstant(sp, ln, ast.ConstEllipsis, "...")

	case tsListSplat, tsDictSplat:
		kids := namedChildren(n)
		if len(kids) != 1 {
			break
		}
		return p.b.NewStarred(sp, ln, p.lower(kids[0], depth), n.Type() == tsDictSplat)

	case tsKeywordArgument:
		name := n.ChildByFieldName(fieldKeywordName)
		value := n.ChildByFieldName(fieldKeywordValue)
		if name == nil || value == nil {
			break
		}
		return p.b.NewKeyword(sp, ln, p.text(name), p.lower(value, depth))

	case tsParenthesized:
		// (expr) разворачиваем: скобки не меняют аргумент
		if kids := namedChildren(n); len(kids) == 1 {
			return p.lower(kids[0], depth)
		}
	}
	return p.other(n, depth)
}

func (p *Parser) lowerCall(n *sitter.Node, depth uint) ast.NodeID {
	fn := n.ChildByFieldName(fieldFunction)
	args := n.ChildByFieldName(fieldArguments)
	if fn == nil {
		return p.other(n, depth)
	}
	callee := p.lower(fn, depth)

	var argIDs []ast.NodeID
	if args != nil {
		switch args.Type() {
		case tsArgumentList:
			kids := namedChildren(args)
			argIDs = make([]ast.NodeID, 0, len(kids))
			for _, c := range kids {
				argIDs = append(argIDs, p.lower(c, depth))
			}
		case tsGeneratorExpr:
			// f(x for x in y): единственный позиционный аргумент
			argIDs = []ast.NodeID{p.other(args, depth)}
		}
	}
	return p.b.NewCall(p.span(n), line(n), callee, argIDs)
}

func (p *Parser) other(n *sitter.Node, depth uint) ast.NodeID {
	kids := namedChildren(n)
	ids := make([]ast.NodeID, 0, len(kids))
	for _, c := range kids {
		ids = append(ids, p.lower(c, depth))
	}
	return p.b.NewOther(p.span(n), line(n), n.Type(), ids)
}

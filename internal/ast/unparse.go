package ast

import (
	"fmt"
	"strings"
)

// Unparse renders id back to canonical source text.
//
// Names and attribute chains come out verbatim, string literals are
// re-rendered with double quotes (triple when the value spans lines), calls
// and starred arguments are rebuilt from their parts. Anything else is the
// original source slice.
func (b *Builder) Unparse(id NodeID) string {
	var sb strings.Builder
	b.unparse(&sb, id)
	return sb.String()
}

func (b *Builder) unparse(sb *strings.Builder, id NodeID) {
	n := b.Get(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case NodeName:
		sb.WriteString(b.Names.Get(uint32(n.Payload)).Ident)
	case NodeAttribute:
		attr := b.Attributes.Get(uint32(n.Payload))
		b.unparse(sb, attr.Value)
		sb.WriteByte('.')
		sb.WriteString(attr.Attr)
	case NodeConstant:
		c := b.Constants.Get(uint32(n.Payload))
		switch c.Kind {
		case ConstString, ConstFString, ConstBytes:
			sb.WriteString(QuoteLiteral(c.Kind, c.Value))
		default:
			sb.WriteString(c.Value)
		}
	case NodeCall:
		call := b.Calls.Get(uint32(n.Payload))
		b.unparse(sb, call.Callee)
		sb.WriteByte('(')
		for i, arg := range call.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			b.unparse(sb, arg)
		}
		sb.WriteByte(')')
	case NodeStarred:
		st := b.Starred.Get(uint32(n.Payload))
		if st.Double {
			sb.WriteString("**")
		} else {
			sb.WriteByte('*')
		}
		b.unparse(sb, st.Value)
	case NodeKeyword:
		kw := b.Keywords.Get(uint32(n.Payload))
		sb.WriteString(kw.Name)
		sb.WriteByte('=')
		b.unparse(sb, kw.Value)
	case NodeOther:
		sb.WriteString(b.Text(id))
	}
}

// QuoteLiteral renders a decoded literal value with double quotes.
// Inner double quotes are left as they are.
func QuoteLiteral(kind ConstKind, value string) string {
	var sb strings.Builder
	switch kind {
	case ConstFString:
		sb.WriteByte('f')
	case ConstBytes:
		sb.WriteByte('b')
	}
	multiline := strings.Contains(value, "\n")
	quote := `"`
	if multiline {
		quote = `"""`
	}
	sb.WriteString(quote)
	if kind == ConstBytes {
		for i := 0; i < len(value); i++ {
			writeEscaped(&sb, rune(value[i]), multiline, true)
		}
	} else {
		for _, r := range value {
			writeEscaped(&sb, r, multiline, false)
		}
	}
	sb.WriteString(quote)
	return sb.String()
}

func writeEscaped(sb *strings.Builder, r rune, multiline, ascii bool) {
	switch {
	case r == '\\':
		sb.WriteString(`\\`)
	case r == '\n' && multiline:
		sb.WriteByte('\n')
	case r == '\n':
		sb.WriteString(`\n`)
	case r == '\t':
		sb.WriteString(`\t`)
	case r == '\r':
		sb.WriteString(`\r`)
	case r < 0x20 || r == 0x7f:
		fmt.Fprintf(sb, `\x%02x`, r)
	case ascii && r >= 0x80:
		fmt.Fprintf(sb, `\x%02x`, r)
	default:
		sb.WriteRune(r)
	}
}

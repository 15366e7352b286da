package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrBadLiteral is returned for text that is not a Python string literal.
var ErrBadLiteral = errors.New("malformed string literal")

// StringLiteral is a decoded Python string literal.
type StringLiteral struct {
	Kind  ConstKind // ConstString, ConstBytes or ConstFString
	Value string
}

// DecodeStringLiteral decodes one literal token such as rb'\d', f"{x}" or
// ”'text”'. Escapes are resolved unless the literal is raw; replacement
// fields of f-strings are kept verbatim.
func DecodeStringLiteral(raw string) (StringLiteral, error) {
	i := 0
	for i < len(raw) && raw[i] != '"' && raw[i] != '\'' {
		i++
	}
	if i == len(raw) || i > 3 {
		return StringLiteral{}, fmt.Errorf("%w: %q", ErrBadLiteral, raw)
	}
	prefix := strings.ToLower(raw[:i])
	var isRaw, isBytes, isF bool
	for _, c := range prefix {
		switch c {
		case 'r':
			isRaw = true
		case 'b':
			isBytes = true
		case 'f':
			isF = true
		case 'u':
		default:
			return StringLiteral{}, fmt.Errorf("%w: unknown prefix %q", ErrBadLiteral, raw[:i])
		}
	}

	rest := raw[i:]
	quote := rest[:1]
	if strings.HasPrefix(rest, strings.Repeat(quote, 3)) && len(rest) >= 6 {
		quote = strings.Repeat(quote, 3)
	}
	if len(rest) < 2*len(quote) || !strings.HasSuffix(rest, quote) {
		return StringLiteral{}, fmt.Errorf("%w: unterminated %q", ErrBadLiteral, raw)
	}
	body := rest[len(quote) : len(rest)-len(quote)]

	lit := StringLiteral{Kind: ConstString}
	switch {
	case isBytes:
		lit.Kind = ConstBytes
	case isF:
		lit.Kind = ConstFString
	}
	if isRaw {
		lit.Value = body
	} else {
		lit.Value = unescape(body, isBytes)
	}
	if !isBytes {
		lit.Value = norm.NFC.String(lit.Value)
	}
	return lit, nil
}

// ConcatLiterals folds implicit concatenation ("a" f"{b}") into one literal.
func ConcatLiterals(parts []StringLiteral) StringLiteral {
	out := StringLiteral{Kind: ConstString}
	var b strings.Builder
	for _, p := range parts {
		switch p.Kind {
		case ConstFString:
			if out.Kind != ConstBytes {
				out.Kind = ConstFString
			}
		case ConstBytes:
			out.Kind = ConstBytes
		}
		b.WriteString(p.Value)
	}
	out.Value = b.String()
	if out.Kind != ConstBytes {
		out.Value = norm.NFC.String(out.Value)
	}
	return out
}

func unescape(body string, isBytes bool) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case '\n':
			// продолжение строки
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(body) && j < i+3 && body[j] >= '0' && body[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(body[i:j], 8, 16)
			writeCode(&b, rune(v), isBytes)
			i = j - 1
		case 'x':
			if v, ok := hexAt(body, i+1, 2); ok {
				writeCode(&b, v, isBytes)
				i += 2
			} else {
				b.WriteString(`\x`)
			}
		case 'u', 'U':
			n := 4
			if e == 'U' {
				n = 8
			}
			if v, ok := hexAt(body, i+1, n); ok && !isBytes && utf8.ValidRune(v) {
				b.WriteRune(v)
				i += n
			} else {
				b.WriteByte('\\')
				b.WriteByte(e)
			}
		default:
			// \N{...} и неизвестные последовательности остаются как есть
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexAt(s string, at, n int) (rune, bool) {
	if at+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[at:at+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func writeCode(b *strings.Builder, v rune, isBytes bool) {
	if isBytes {
		b.WriteByte(byte(v))
		return
	}
	b.WriteRune(v)
}

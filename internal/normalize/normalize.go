// Package normalize cleans unparsed call-site fragments into a message
// template and an argument list.
package normalize

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoFragments means a call site reached the normalizer without any
// positional argument. The matcher never emits such sites, so this is a bug
// in the caller.
var ErrNoFragments = errors.New("normalize: call site has no fragments")

// whitespaceRun matches the same characters as str.isspace: RE2's \s alone
// is ASCII-only, so \v, NEL, the separator controls and \p{Z} are added.
var whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\x{1c}-\x{1f}\p{Z}]+`)

const edgeCutset = "\n\t"

// Message turns the first fragment into the canonical message template.
func Message(fragment string) string {
	s := strings.Trim(fragment, edgeCutset)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimPrefix(s, "f")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}

// Arg trims newlines and tabs at both ends of an argument fragment.
func Arg(fragment string) string {
	return strings.Trim(fragment, edgeCutset)
}

// Fragments normalizes a whole call site: the first fragment is the message,
// the rest are arguments in source order.
func Fragments(fragments []string) (message string, args []string, err error) {
	if len(fragments) == 0 {
		return "", nil, ErrNoFragments
	}
	args = make([]string, 0, len(fragments)-1)
	for _, f := range fragments[1:] {
		args = append(args, Arg(f))
	}
	return Message(fragments[0]), args, nil
}

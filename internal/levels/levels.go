// Package levels defines the closed set of logging severities the scanner
// looks for. Each severity maps to the lower-case method name called on the
// logging receiver (INFO -> logger.info).
package levels

import (
	"fmt"
	"strings"
)

// Level is one of the six known severities.
type Level uint8

const (
	Debug Level = iota
	Info
	Warning
	Error
	Critical
	Exception

	levelCount
)

var names = [levelCount]string{
	Debug:     "DEBUG",
	Info:      "INFO",
	Warning:   "WARNING",
	Error:     "ERROR",
	Critical:  "CRITICAL",
	Exception: "EXCEPTION",
}

// All returns every level in enumeration order.
func All() []Level {
	out := make([]Level, 0, levelCount)
	for l := Debug; l < levelCount; l++ {
		out = append(out, l)
	}
	return out
}

// Valid reports whether l belongs to the enumeration.
func (l Level) Valid() bool { return l < levelCount }

// Name returns the upper-case severity name.
func (l Level) Name() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
	return names[l]
}

// Method returns the receiver method name a call must use: lower(Name()).
func (l Level) Method() string {
	if !l.Valid() {
		return ""
	}
	return strings.ToLower(names[l])
}

func (l Level) String() string { return l.Name() }

// Parse resolves an upper-case severity name. Aliases such as WARN or FATAL
// are not accepted.
func Parse(name string) (Level, error) {
	for l, n := range names {
		if n == name {
			return Level(l), nil
		}
	}
	return 0, &InvalidSeverityError{Name: name}
}

// Check validates a level value that did not come from Parse.
func Check(l Level) error {
	if l.Valid() {
		return nil
	}
	return &InvalidSeverityError{Name: l.Name()}
}

// InvalidSeverityError is returned for a severity outside the enumeration.
type InvalidSeverityError struct {
	Name string
}

func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid severity %q (expected one of %s)", e.Name, strings.Join(names[:], ", "))
}

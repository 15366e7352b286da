package trace

import (
	"fmt"
	"strings"
)

// Scope is the depth of a span in the run tree.
type Scope uint8

const (
	ScopeRun  Scope = iota + 1 // весь прогон
	ScopePass                  // один уровень серьёзности
	ScopeFile                  // один файл
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	}
	return "unknown"
}

// Level is the deepest scope that gets recorded.
type Level uint8

const (
	LevelOff Level = iota
	LevelRun
	LevelPass
	LevelFile
)

var levelNames = [...]string{"off", "run", "pass", "file"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts off, run, pass or file in any case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return LevelOff, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (expected off|run|pass|file)", s)
}

// Allows reports whether spans of scope are recorded at this level.
func (l Level) Allows(s Scope) bool {
	return l != LevelOff && s != 0 && uint8(s) <= uint8(l)
}

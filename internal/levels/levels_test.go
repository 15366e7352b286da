package levels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOrder(t *testing.T) {
	got := make([]string, 0)
	for _, l := range All() {
		got = append(got, l.Name())
	}
	assert.Equal(t, []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL", "EXCEPTION"}, got)
}

func TestMethodIsLowerName(t *testing.T) {
	for _, l := range All() {
		assert.Equal(t, l.Name(), upper(l.Method()))
	}
	assert.Equal(t, "warning", Warning.Method())
	assert.Equal(t, "exception", Exception.Method())
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func TestParse(t *testing.T) {
	l, err := Parse("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, Critical, l)

	for _, bad := range []string{"WARN", "FATAL", "info", "", "TRACE"} {
		_, err := Parse(bad)
		var invalid *InvalidSeverityError
		require.Truef(t, errors.As(err, &invalid), "expected InvalidSeverityError for %q", bad)
		assert.Equal(t, bad, invalid.Name)
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(Debug))
	err := Check(Level(42))
	var invalid *InvalidSeverityError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Level(42)", invalid.Name)
	assert.Empty(t, Level(42).Method())
}

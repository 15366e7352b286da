package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestCurrentDefaults(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	if Current() == "" {
		t.Error("Current should have a default value")
	}

	Version = "  "
	if got := Current(); got != "dev" {
		t.Errorf("Current() = %q, want dev", got)
	}

	// имитация -ldflags
	Version = " 1.2.3 "
	if got := Current(); got != "1.2.3" {
		t.Errorf("Current() = %q, want 1.2.3", got)
	}
}

func TestColoredPlainWhenDisabled(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	cases := map[string]string{
		"0.1.0-dev":   "0.1.0-dev",
		"1.2.3":       "1.2.3",
		"1.2.3+build": "1.2.3+build",
		"nightly":     "nightly",
	}
	for in, want := range cases {
		if got := Colored(in); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColoredWrapsParts(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	got := Colored("2.0.1-rc1")
	if got == "2.0.1-rc1" {
		t.Fatal("expected ANSI sequences when colour is enabled")
	}
	if got[len(got)-4:] != "-rc1" {
		t.Errorf("suffix must stay plain, got %q", got)
	}
}

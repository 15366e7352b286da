// Package project resolves the settings of a run from command-line flags,
// the process environment, .env files and logdoc.toml.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Field names one configurable setting. The value doubles as the
// logdoc.toml key inside [messages].
type Field string

const (
	FieldInstance   Field = "instance"
	FieldSource     Field = "source"
	FieldURL        Field = "url"
	FieldOutput     Field = "output"
	FieldFormat     Field = "format"
	FieldLinkPrefix Field = "link_prefix"
	FieldTitle      Field = "title"
)

// Fields lists every setting in resolution order.
var Fields = []Field{FieldInstance, FieldSource, FieldURL, FieldOutput, FieldFormat, FieldLinkPrefix, FieldTitle}

// EnvPrefix is prepended to the upper-cased field name: LOGDOC_INSTANCE, LOGDOC_LINK_PREFIX.
const EnvPrefix = "LOGDOC_"

// EnvName returns the environment variable that configures f.
func (f Field) EnvName() string {
	return EnvPrefix + strings.ToUpper(string(f))
}

// Origin tells where a resolved value came from.
type Origin uint8

const (
	OriginDefault Origin = iota
	OriginManifest
	OriginDotEnv
	OriginEnv
	OriginFlag
	OriginDerived // вычислено из других настроек
)

func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginManifest:
		return "manifest"
	case OriginDotEnv:
		return "dotenv"
	case OriginEnv:
		return "env"
	case OriginFlag:
		return "flag"
	case OriginDerived:
		return "derived"
	}
	return "unknown"
}

// Defaults used when nothing else sets a field.
var Defaults = map[Field]string{
	FieldInstance: "logger",
	FieldSource:   "src",
	FieldURL:      "https://github.com/thoroc/py-documentation-generator",
	FieldOutput:   "docs/LOGGED_MESSAGES.md",
	FieldFormat:   "markdown",
}

// Settings are the resolved values of one run.
type Settings struct {
	Instance   string
	Source     string
	URL        string
	Output     string
	Format     string
	LinkPrefix string
	Title      string

	Manifest *Manifest // nil без logdoc.toml
	DotEnv   []string  // прочитанные .env файлы
	Origins  map[Field]Origin
}

// Origin returns where f was resolved from.
func (s *Settings) Origin(f Field) Origin {
	return s.Origins[f]
}

func (s *Settings) field(f Field) *string {
	switch f {
	case FieldInstance:
		return &s.Instance
	case FieldSource:
		return &s.Source
	case FieldURL:
		return &s.URL
	case FieldOutput:
		return &s.Output
	case FieldFormat:
		return &s.Format
	case FieldLinkPrefix:
		return &s.LinkPrefix
	case FieldTitle:
		return &s.Title
	}
	return nil
}

// Get returns the resolved value of f.
func (s *Settings) Get(f Field) string {
	if p := s.field(f); p != nil {
		return *p
	}
	return ""
}

func (s *Settings) set(f Field, v string, o Origin) {
	if p := s.field(f); p != nil {
		*p = v
		s.Origins[f] = o
	}
}

// ResolveOptions feed Resolve.
type ResolveOptions struct {
	// StartDir is where the manifest lookup starts and where .env is read.
	StartDir string
	// Flags holds the values given explicitly on the command line.
	Flags map[Field]string
	// LookupEnv reads the process environment; os.LookupEnv when nil.
	LookupEnv func(string) (string, bool)
	// NoManifest disables the logdoc.toml lookup.
	NoManifest bool
}

// Resolve merges the configuration layers. Precedence, highest first:
// explicit flag, process environment, .env, logdoc.toml, default.
//
// Relative source and output paths from logdoc.toml are taken relative to
// the manifest directory. When no layer sets link_prefix and the source
// directory is relative, the prefix is the source directory itself.
func Resolve(opts ResolveOptions) (*Settings, error) {
	startDir := opts.StartDir
	if startDir == "" {
		startDir = "."
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	s := &Settings{Origins: make(map[Field]Origin, len(Fields))}
	for _, f := range Fields {
		s.set(f, Defaults[f], OriginDefault)
	}
	rawSource := s.Source

	if !opts.NoManifest {
		m, ok, err := LoadManifestFrom(startDir)
		if err != nil {
			return nil, err
		}
		if ok {
			s.Manifest = m
			for _, f := range Fields {
				if !m.Defined(f) {
					continue
				}
				v := strings.TrimSpace(m.Messages.get(f))
				if f == FieldSource {
					rawSource = v
				}
				if (f == FieldSource || f == FieldOutput) && v != "" && !filepath.IsAbs(v) {
					v = filepath.Join(m.Root, filepath.FromSlash(v))
				}
				s.set(f, v, OriginManifest)
			}
		}
	}

	dotenv, files, err := readDotEnv(s.Manifest, startDir)
	if err != nil {
		return nil, err
	}
	s.DotEnv = files

	for _, f := range Fields {
		name := f.EnvName()
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			s.set(f, strings.TrimSpace(v), OriginEnv)
		} else if v, ok := dotenv[name]; ok && strings.TrimSpace(v) != "" {
			s.set(f, strings.TrimSpace(v), OriginDotEnv)
		} else {
			continue
		}
		if f == FieldSource {
			rawSource = s.Source
		}
	}

	for _, f := range Fields {
		if v, ok := opts.Flags[f]; ok {
			s.set(f, v, OriginFlag)
			if f == FieldSource {
				rawSource = v
			}
		}
	}

	if s.Origin(FieldLinkPrefix) == OriginDefault && rawSource != "" && !filepath.IsAbs(rawSource) {
		if p := filepath.ToSlash(filepath.Clean(rawSource)); p != "." {
			s.set(FieldLinkPrefix, p, OriginDerived)
		}
	}

	if strings.TrimSpace(s.Instance) == "" {
		return nil, fmt.Errorf("%s: instance name is empty", s.Origin(FieldInstance))
	}
	return s, nil
}

// readDotEnv reads .env next to the manifest, then in startDir.
// The working directory file wins on conflicts.
func readDotEnv(m *Manifest, startDir string) (map[string]string, []string, error) {
	dirs := make([]string, 0, 2)
	if m != nil {
		dirs = append(dirs, m.Root)
	}
	if abs, err := filepath.Abs(startDir); err == nil {
		startDir = abs
	}
	if len(dirs) == 0 || filepath.Clean(dirs[0]) != filepath.Clean(startDir) {
		dirs = append(dirs, startDir)
	}

	merged := make(map[string]string)
	var files []string
	for _, dir := range dirs {
		path := filepath.Join(dir, DotEnvName)
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		files = append(files, path)
		for k, v := range values {
			merged[k] = v
		}
	}
	return merged, files, nil
}

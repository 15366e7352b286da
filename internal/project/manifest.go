package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKeys is wrapped when logdoc.toml contains keys logdoc does not know.
var ErrUnknownKeys = errors.New("unknown keys")

// MessagesConfig is the [messages] section of logdoc.toml.
type MessagesConfig struct {
	Instance   string `toml:"instance"`
	Source     string `toml:"source"`
	URL        string `toml:"url"`
	Output     string `toml:"output"`
	Format     string `toml:"format"`
	LinkPrefix string `toml:"link_prefix"`
	Title      string `toml:"title"`
}

type manifestFile struct {
	Messages MessagesConfig `toml:"messages"`
}

// Manifest is a parsed logdoc.toml.
type Manifest struct {
	Path     string
	Root     string // директория, где лежит logdoc.toml
	Messages MessagesConfig
	defined  map[Field]bool
}

// Defined reports whether the manifest sets field explicitly.
func (m *Manifest) Defined(f Field) bool {
	return m != nil && m.defined[f]
}

// LoadManifest parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}

	m := &Manifest{
		Path:     path,
		Root:     filepath.Dir(path),
		Messages: cfg.Messages,
		defined:  make(map[Field]bool),
	}
	for _, f := range Fields {
		if meta.IsDefined("messages", string(f)) {
			m.defined[f] = true
		}
	}
	return m, nil
}

// LoadManifestFrom finds and parses logdoc.toml starting at startDir.
// ok is false when no manifest exists up to the filesystem root.
func LoadManifestFrom(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func (c MessagesConfig) get(f Field) string {
	switch f {
	case FieldInstance:
		return c.Instance
	case FieldSource:
		return c.Source
	case FieldURL:
		return c.URL
	case FieldOutput:
		return c.Output
	case FieldFormat:
		return c.Format
	case FieldLinkPrefix:
		return c.LinkPrefix
	case FieldTitle:
		return c.Title
	}
	return ""
}

package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := values[k]
		return v, ok
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[messages]\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := FindManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, ManifestName), path)

	dir, ok, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, dir)
}

func TestResolveDefaults(t *testing.T) {
	s, err := Resolve(ResolveOptions{StartDir: t.TempDir(), NoManifest: true, LookupEnv: envFrom(nil)})
	require.NoError(t, err)

	assert.Equal(t, "logger", s.Instance)
	assert.Equal(t, "src", s.Source)
	assert.Equal(t, "https://github.com/thoroc/py-documentation-generator", s.URL)
	assert.Equal(t, "docs/LOGGED_MESSAGES.md", s.Output)
	assert.Equal(t, "markdown", s.Format)
	assert.Equal(t, "src", s.LinkPrefix)
	assert.Equal(t, OriginDerived, s.Origin(FieldLinkPrefix))
	assert.Equal(t, OriginDefault, s.Origin(FieldInstance))
	assert.Nil(t, s.Manifest)
	assert.Empty(t, s.DotEnv)
}

func TestResolvePrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[messages]
instance = "log"
source = "app"
url = "https://example.org/from-toml"
output = "out/LOGS.md"
format = "json"
`)
	writeFile(t, filepath.Join(root, DotEnvName), "LOGDOC_URL=https://example.org/from-dotenv\nLOGDOC_FORMAT=msgpack\n")
	work := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(work, 0o755))

	s, err := Resolve(ResolveOptions{
		StartDir:  work,
		LookupEnv: envFrom(map[string]string{"LOGDOC_FORMAT": "markdown"}),
		Flags:     map[Field]string{FieldInstance: "audit"},
	})
	require.NoError(t, err)
	require.NotNil(t, s.Manifest)

	assert.Equal(t, "audit", s.Instance)
	assert.Equal(t, OriginFlag, s.Origin(FieldInstance))
	assert.Equal(t, "markdown", s.Format)
	assert.Equal(t, OriginEnv, s.Origin(FieldFormat))
	assert.Equal(t, "https://example.org/from-dotenv", s.URL)
	assert.Equal(t, OriginDotEnv, s.Origin(FieldURL))

	assert.Equal(t, filepath.Join(root, "app"), s.Source, "manifest paths are relative to the manifest")
	assert.Equal(t, filepath.Join(root, "out", "LOGS.md"), s.Output)
	assert.Equal(t, "app", s.LinkPrefix)
	assert.Equal(t, []string{filepath.Join(root, DotEnvName)}, s.DotEnv)
}

func TestResolveWorkingDirDotEnvWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[messages]\n")
	writeFile(t, filepath.Join(root, DotEnvName), "LOGDOC_INSTANCE=outer\nLOGDOC_TITLE=Outer\n")
	work := filepath.Join(root, "work")
	writeFile(t, filepath.Join(work, DotEnvName), "LOGDOC_INSTANCE=inner\n")

	s, err := Resolve(ResolveOptions{StartDir: work, LookupEnv: envFrom(nil)})
	require.NoError(t, err)
	assert.Equal(t, "inner", s.Instance)
	assert.Equal(t, "Outer", s.Title)
	assert.Len(t, s.DotEnv, 2)
}

func TestResolveLinkPrefix(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name  string
		flags map[Field]string
		want  string
	}{
		{"derived from relative source", map[Field]string{FieldSource: "./lib/pkg/"}, "lib/pkg"},
		{"absolute source", map[Field]string{FieldSource: dir}, ""},
		{"current directory", map[Field]string{FieldSource: "."}, ""},
		{"explicit empty", map[Field]string{FieldLinkPrefix: ""}, ""},
		{"explicit", map[Field]string{FieldLinkPrefix: "python/src"}, "python/src"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Resolve(ResolveOptions{StartDir: dir, NoManifest: true, LookupEnv: envFrom(nil), Flags: tc.flags})
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.LinkPrefix)
		})
	}
}

func TestResolveEnvIgnoresBlank(t *testing.T) {
	s, err := Resolve(ResolveOptions{
		StartDir:   t.TempDir(),
		NoManifest: true,
		LookupEnv:  envFrom(map[string]string{"LOGDOC_INSTANCE": "  "}),
	})
	require.NoError(t, err)
	assert.Equal(t, "logger", s.Instance)
}

func TestResolveEmptyInstance(t *testing.T) {
	_, err := Resolve(ResolveOptions{
		StartDir:   t.TempDir(),
		NoManifest: true,
		LookupEnv:  envFrom(nil),
		Flags:      map[Field]string{FieldInstance: ""},
	})
	require.Error(t, err)
}

func TestLoadManifestRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[messages]\ninstance = \"log\"\nreciever = \"oops\"\n")

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKeys))
	assert.Contains(t, err.Error(), "messages.reciever")
}

func TestLoadManifestBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[messages\n")

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestFieldEnvName(t *testing.T) {
	assert.Equal(t, "LOGDOC_INSTANCE", FieldInstance.EnvName())
	assert.Equal(t, "LOGDOC_LINK_PREFIX", FieldLinkPrefix.EnvName())
}

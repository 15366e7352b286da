package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logdoc/internal/project"
	"logdoc/internal/report"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// newProject creates a project directory and makes it the working directory.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	for _, f := range project.Fields {
		t.Setenv(f.EnvName(), "")
	}
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	t.Chdir(dir)
	return dir
}

const manifest = `[messages]
url = "https://example.org/r"
output = "docs/LOGS.md"
`

func TestMessagesWritesReport(t *testing.T) {
	dir := newProject(t, map[string]string{
		project.ManifestName: manifest,
		"src/app.py":         "logger.info(\"started {}\", port)\n",
		"src/jobs/run.py":    "import logging\n\nlogger.exception(\"job %s crashed\",\n    job.id)\n",
	})

	_, stderr, err := execute(t, "messages", "--ui", "off", "--color", "off")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote 2 records")
	assert.Contains(t, stderr, "INFO 1, EXCEPTION 1")

	data, err := os.ReadFile(filepath.Join(dir, "docs", "LOGS.md"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# Logs\n")
	assert.Contains(t, text, "[1](https://example.org/r/src/app.py#lines-1)")
	assert.Contains(t, text, "[3](https://example.org/r/src/jobs/run.py#lines-3)")
	assert.Contains(t, text, "`job %s crashed`")
	assert.Contains(t, text, "| job.id ")
}

func TestLogsAliasJSONToStdout(t *testing.T) {
	newProject(t, map[string]string{
		"lib/a.py": "log.warning(\"low disk\")\nlogger.warning(\"ignored\")\n",
	})

	stdout, _, err := execute(t, "logs", "-s", "lib", "-i", "log", "-o", "-", "--format", "json", "--quiet")
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "WARNING", doc.Tables[0].Name)
	require.Len(t, doc.Tables[0].Rows, 1)
	assert.Equal(t, "low disk", doc.Tables[0].Rows[0].Message)
	assert.Equal(t, "https://github.com/thoroc/py-documentation-generator/lib/a.py#lines-1", doc.Tables[0].Rows[0].Link)
}

func TestMessagesBrokenFileStillSucceeds(t *testing.T) {
	dir := newProject(t, map[string]string{
		"src/ok.py":     "logger.debug(\"fine\")\n",
		"src/broken.py": "def (:\n",
	})

	_, stderr, err := execute(t, "messages", "--ui", "off", "--color", "off", "-o", "out.md")
	require.NoError(t, err)
	assert.Contains(t, stderr, "broken.py")
	assert.Contains(t, stderr, "skipped 1 file(s)")
	assert.FileExists(t, filepath.Join(dir, "out.md"))
}

func TestMessagesMissingSource(t *testing.T) {
	dir := newProject(t, nil)

	_, stderr, err := execute(t, "messages", "--ui", "off", "--color", "off", "-s", "nowhere")
	require.Error(t, err)
	assert.Contains(t, stderr, "SCN3002")
	assert.NoFileExists(t, filepath.Join(dir, "docs", "LOGGED_MESSAGES.md"))
}

func TestMessagesRejectsBadFlags(t *testing.T) {
	newProject(t, map[string]string{"src/a.py": "x = 1\n"})

	for _, args := range [][]string{
		{"messages", "--level", "verbose"},
		{"messages", "--format", "html"},
		{"messages", "--ui", "sometimes"},
		{"messages", "--diagnostics-format", "sarif"},
	} {
		_, _, err := execute(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestMessagesLevelFilter(t *testing.T) {
	newProject(t, map[string]string{
		"src/a.py": "logger.info(\"i\")\nlogger.error(\"e\")\n",
	})

	stdout, _, err := execute(t, "messages", "--level", "error", "-o", "-", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "## ERROR")
	assert.NotContains(t, stdout, "## INFO")
}

func TestConfigShowsOrigins(t *testing.T) {
	newProject(t, map[string]string{
		project.ManifestName: manifest,
		".env":               "LOGDOC_INSTANCE=log\n",
	})

	stdout, _, err := execute(t, "config", "--format", "json")
	require.NoError(t, err)

	var payload configPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	origins := make(map[string]string)
	for _, e := range payload.Settings {
		origins[e.Key] = e.Origin
	}
	assert.Equal(t, "dotenv", origins["instance"])
	assert.Equal(t, "manifest", origins["url"])
	assert.Equal(t, "default", origins["format"])
	assert.Equal(t, "derived", origins["link_prefix"])
	assert.NotEmpty(t, payload.Manifest)
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json", "--full")
	require.NoError(t, err)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "logdoc", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.Equal(t, "unknown", payload.GitCommit)
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.False(t, shouldUseTUI(uiModeOn, "-"), "no progress UI when the report goes to stdout")
	assert.False(t, shouldUseTUI(uiModeOff, "out.md"))
}

func TestMessagesWritesProfiles(t *testing.T) {
	dir := newProject(t, map[string]string{"src/a.py": "logger.info(\"hi\")\n"})

	_, _, err := execute(t, "--cpu-profile", "cpu.pprof", "--mem-profile", "mem.pprof",
		"messages", "-o", "-", "--quiet")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "cpu.pprof"))
	assert.FileExists(t, filepath.Join(dir, "mem.pprof"))
}

func TestMessagesTraceFile(t *testing.T) {
	dir := newProject(t, map[string]string{"src/a.py": "logger.info(\"hi\")\n"})

	_, _, err := execute(t, "--trace", "run.ndjson", "--trace-level", "file",
		"messages", "-o", "-", "--quiet", "--level", "INFO")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "run.ndjson"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"scope":"run"`)
	assert.Contains(t, text, `"severity":"INFO"`)
	assert.Contains(t, text, `a.py"`)
}

func TestMessagesShortDiagnostics(t *testing.T) {
	newProject(t, map[string]string{
		"src/ok.py":     "logger.debug(\"fine\")\n",
		"src/broken.py": "def (:\n",
	})

	_, stderr, err := execute(t, "messages", "--ui", "off", "-o", "-", "--quiet", "--diagnostics-format", "short")
	require.NoError(t, err)
	assert.Contains(t, stderr, "src/broken.py:1:")
	assert.Contains(t, stderr, "error SYN")
	assert.NotContains(t, stderr, "SCN3003", "quiet hides info notices")
}

package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logdoc/internal/diag"
	"logdoc/internal/levels"
	"logdoc/internal/report"
	"logdoc/internal/scan"
)

const baseURL = "https://github.com/org/repo"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"app.py": "import logging\n" +
			"logger = logging.getLogger(__name__)\n" +
			"logger.info(\"hello {} world\", name)\n" +
			"logger.debug(f\"value {x}\")\n",
		"pkg/db.py": "def connect():\n" +
			"    logger.error(\"query failed: {}\", err)\n",
	})
}

func codes(bag *diag.Bag) map[diag.Code]int {
	out := make(map[diag.Code]int)
	for _, d := range bag.Items() {
		out[d.Code]++
	}
	return out
}

type countingSink struct{ passes, files int }

func (s *countingSink) OnEvent(ev scan.Event) {
	if ev.Status != scan.StatusDone {
		return
	}
	if ev.File == "" {
		s.passes++
	} else {
		s.files++
	}
}

func TestGenerateMarkdown(t *testing.T) {
	root := sampleTree(t)
	out := filepath.Join(t.TempDir(), "docs", "LOGGED_MESSAGES.md")
	bag := diag.NewBag(100)
	sink := &countingSink{}

	sum, err := Generate(context.Background(), Options{
		Output:     out,
		Receiver:   "logger",
		SourceRoot: root,
		BaseURL:    baseURL,
		LinkPrefix: "src",
		Reporter:   diag.BagReporter{Bag: bag},
		Progress:   sink,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Records)
	assert.Empty(t, sum.Failed)
	require.Len(t, sum.Levels, len(levels.All()))
	assert.Equal(t, LevelSummary{Level: levels.Debug, Files: 1, Records: 1}, sum.Levels[0])
	assert.Equal(t, LevelSummary{Level: levels.Error, Files: 1, Records: 1}, sum.Levels[3])
	assert.Equal(t, len(levels.All()), sink.passes)
	assert.Equal(t, 2*len(levels.All()), sink.files)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	assert.Equal(t, sum.Bytes, len(data))
	assert.True(t, strings.HasPrefix(text, "# Logs\n\n## DEBUG\n"))
	assert.Less(t, strings.Index(text, "## DEBUG"), strings.Index(text, "## INFO"))
	assert.Less(t, strings.Index(text, "## INFO"), strings.Index(text, "## ERROR"))
	assert.NotContains(t, text, "## WARNING")
	assert.Contains(t, text, "[3]("+baseURL+"/src/app.py#lines-3)")
	assert.Contains(t, text, "[2]("+baseURL+"/src/pkg/db.py#lines-2)")
	assert.Contains(t, text, "`value {x}`")

	// WARNING, CRITICAL и EXCEPTION пусты
	assert.Equal(t, 3, codes(bag)[diag.ScanEmptyLevel])

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(out), ".*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestGenerateRecoversFromBrokenFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"good.py":   "logger.warning(\"disk at {}%\", pct)\n",
		"broken.py": "def (:\n    logger.warning(\"never seen\")\n",
	})
	out := filepath.Join(t.TempDir(), "logs.md")
	bag := diag.NewBag(100)

	sum, err := Generate(context.Background(), Options{
		Output:     out,
		Receiver:   "logger",
		SourceRoot: root,
		BaseURL:    baseURL,
		Reporter:   diag.BagReporter{Bag: bag},
	})
	require.NoError(t, err)

	require.Len(t, sum.Failed, 1)
	assert.True(t, strings.HasSuffix(sum.Failed[0], "/broken.py"))
	assert.Equal(t, 1, sum.Records)
	c := codes(bag)
	assert.Equal(t, 1, c[diag.SynSyntaxError]+c[diag.SynMissingToken], "the same failure must be reported once per run")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "`disk at {}%`")
	assert.NotContains(t, string(data), "never seen")
}

func TestGenerateRootErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0o600))

	for name, root := range map[string]string{
		"missing":   filepath.Join(dir, "nope"),
		"not a dir": file,
	} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "logs.md")
			bag := diag.NewBag(10)
			_, err := Generate(context.Background(), Options{
				Output:     out,
				Receiver:   "logger",
				SourceRoot: root,
				Reporter:   diag.BagReporter{Bag: bag},
			})
			var rootErr *scan.RootError
			require.ErrorAs(t, err, &rootErr)
			assert.Equal(t, 1, codes(bag)[diag.ScanRootError])
			assert.NoFileExists(t, out)
		})
	}
}

func TestGenerateInvalidLevel(t *testing.T) {
	root := sampleTree(t)
	out := filepath.Join(t.TempDir(), "logs.md")
	sink := &countingSink{}

	_, err := Generate(context.Background(), Options{
		Output:     out,
		Receiver:   "logger",
		SourceRoot: root,
		Levels:     []levels.Level{levels.Info, levels.Level(42)},
		Progress:   sink,
	})
	var sevErr *levels.InvalidSeverityError
	require.ErrorAs(t, err, &sevErr)
	assert.Zero(t, sink.passes, "no pass may start before every level is validated")
	assert.NoFileExists(t, out)
}

func TestGenerateOptionErrors(t *testing.T) {
	_, err := Generate(context.Background(), Options{Output: "-"})
	assert.ErrorIs(t, err, ErrNoReceiver)

	_, err = Generate(context.Background(), Options{Receiver: "logger"})
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestGenerateJSONToStdout(t *testing.T) {
	root := sampleTree(t)
	var stdout bytes.Buffer
	bag := diag.NewBag(100)

	sum, err := Generate(context.Background(), Options{
		Output:        StdoutPath,
		Stdout:        &stdout,
		Receiver:      "logger",
		SourceRoot:    root,
		BaseURL:       baseURL,
		Format:        report.FormatJSON,
		Levels:        []levels.Level{levels.Error, levels.Info},
		Reporter:      diag.BagReporter{Bag: bag},
		ReportTimings: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Records)

	var doc report.Document
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Tables, 2)
	assert.Equal(t, "INFO", doc.Tables[0].Name, "tables follow severity order, not request order")
	assert.Equal(t, "pkg", doc.Tables[1].Rows[0].Dir)

	names := make([]string, 0, len(sum.Timings.Phases))
	for _, p := range sum.Timings.Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"pass:ERROR", "pass:INFO", "render", "write"}, names)
	assert.Equal(t, 1, codes(bag)[diag.ObsTimings])
}

func TestWriteOutputReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o600))

	require.NoError(t, writeOutput(path, []byte("new"), nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteOutputFailureKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := writeOutput(filepath.Join(blocker, "out.md"), []byte("x"), nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoOutput))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"logdoc/internal/levels"
	"logdoc/internal/scan"
)

const base = "https://example.org/repo"

func sampleResults() []*scan.Result {
	return []*scan.Result{
		{
			Level: levels.Error,
			Root:  "/work/src",
			Files: []scan.FileReport{{
				Path: "/work/src/pkg/db.py",
				Records: []scan.Record{
					{Path: "/work/src/pkg/db.py", Line: 12, Level: levels.Error, Message: "query failed: {}", Args: []string{"err"}},
				},
			}},
		},
		{Level: levels.Exception, Root: "/work/src"},
		{
			Level: levels.Info,
			Root:  "/work/src",
			Files: []scan.FileReport{
				{
					Path: "/work/src/app.py",
					Records: []scan.Record{
						{Path: "/work/src/app.py", Line: 4, Level: levels.Info, Message: "hello {} world", Args: []string{"name"}},
						{Path: "/work/src/app.py", Line: 9, Level: levels.Info, Message: "a | b", Args: []string{"x", "y.z"}},
					},
				},
			},
		},
	}
}

func TestAggregate(t *testing.T) {
	doc := Aggregate(sampleResults(), Options{BaseURL: base + "/"})

	assert.Equal(t, "Logs", doc.Title)
	require.Len(t, doc.Tables, 2, "empty severities are omitted")
	assert.Equal(t, levels.Info, doc.Tables[0].Level)
	assert.Equal(t, levels.Error, doc.Tables[1].Level)
	assert.Equal(t, 3, doc.Rows())

	first := doc.Tables[0].Rows[0]
	assert.Equal(t, Row{
		File:    "app.py",
		Dir:     "root",
		Line:    4,
		Link:    base + "/app.py#lines-4",
		Message: "hello {} world",
		Args:    []string{"name"},
	}, first)

	nested := doc.Tables[1].Rows[0]
	assert.Equal(t, "pkg", nested.Dir)
	assert.Equal(t, base+"/pkg/db.py#lines-12", nested.Link)
}

func TestLinkPrefix(t *testing.T) {
	assert.Equal(t, base+"/src/pkg/sub/m.py#lines-3", Link(base, "src/", "pkg/sub", "m.py", 3))
	assert.Equal(t, base+"/src/m.py#lines-1", Link(base, "./src", RootDir, "m.py", 1))
	assert.Equal(t, base+"/m.py#lines-1", Link(base, ".", RootDir, "m.py", 1))
}

func TestRelDir(t *testing.T) {
	assert.Equal(t, "root", RelDir("src", "src/a.py"))
	assert.Equal(t, "a/b", RelDir("src/", "src/a/b/c.py"))
	assert.Equal(t, "root", RelDir("/work/src", "/work/src/a.py"))
}

func TestMarkdown(t *testing.T) {
	doc := Aggregate(sampleResults(), Options{BaseURL: base, LinkPrefix: "src"})
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, doc))

	want := "# Logs\n" +
		"\n" +
		"## INFO\n" +
		"\n" +
		"| file   | path | lineno                                           | message          | args  |\n" +
		"|:-------|:-----|:-------------------------------------------------|:-----------------|:------|\n" +
		"| app.py | root | [4](https://example.org/repo/src/app.py#lines-4) | `hello {} world` | name  |\n" +
		"| app.py | root | [9](https://example.org/repo/src/app.py#lines-9) | `a \\| b`         | x,y.z |\n" +
		"\n" +
		"## ERROR\n" +
		"\n" +
		"| file  | path | lineno                                                | message            | args |\n" +
		"|:------|:-----|:------------------------------------------------------|:-------------------|:-----|\n" +
		"| db.py | pkg  | [12](https://example.org/repo/src/pkg/db.py#lines-12) | `query failed: {}` | err  |\n"
	assert.Equal(t, want, buf.String())
}

func TestMarkdownWideRunes(t *testing.T) {
	doc := &Document{Title: "Logs", Tables: []Table{{
		Name: "INFO",
		Rows: []Row{{File: "a.py", Dir: "root", Line: 1, Link: "u", Message: "日本"}},
	}}}
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, doc))
	assert.Contains(t, buf.String(), "| `日本`  |")
}

func TestJSONAndMsgpackShapes(t *testing.T) {
	doc := Aggregate(sampleResults(), Options{BaseURL: base})

	var jbuf bytes.Buffer
	require.NoError(t, Render(&jbuf, doc, FormatJSON))
	var fromJSON Document
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &fromJSON))
	assert.Equal(t, "INFO", fromJSON.Tables[0].Name)
	assert.Equal(t, "root", fromJSON.Tables[0].Rows[0].Dir)
	assert.Contains(t, jbuf.String(), `"lineno": 4`)

	var mbuf bytes.Buffer
	require.NoError(t, Render(&mbuf, doc, FormatMsgpack))
	var fromMsgpack Document
	require.NoError(t, msgpack.Unmarshal(mbuf.Bytes(), &fromMsgpack))
	assert.Equal(t, fromJSON.Tables[1].Rows, fromMsgpack.Tables[1].Rows)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatMarkdown, "MD": FormatMarkdown, "json": FormatJSON, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}

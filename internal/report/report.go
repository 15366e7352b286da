// Package report groups scan results by severity and renders them as a
// "Logs" document (Markdown, JSON or MessagePack).
package report

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"logdoc/internal/levels"
	"logdoc/internal/scan"
)

// DefaultTitle heads every rendered document.
const DefaultTitle = "Logs"

// RootDir labels files that sit directly under the scan root.
const RootDir = "root"

// Options control path and link construction.
type Options struct {
	Root       string // корень сканирования
	BaseURL    string // например https://github.com/org/repo
	LinkPrefix string // сегмент между BaseURL и путём файла, может быть пустым
	Title      string
}

// Row is one documented call site.
type Row struct {
	File    string   `json:"file" msgpack:"file"`
	Dir     string   `json:"path" msgpack:"path"`
	Line    uint32   `json:"lineno" msgpack:"lineno"`
	Link    string   `json:"link" msgpack:"link"`
	Message string   `json:"message" msgpack:"message"`
	Args    []string `json:"args" msgpack:"args"`
}

// Cells returns the five table cells: file, path, line link, message, args.
func (r Row) Cells() [5]string {
	return [5]string{
		r.File,
		r.Dir,
		fmt.Sprintf("[%d](%s)", r.Line, r.Link),
		"`" + r.Message + "`",
		strings.Join(r.Args, ","),
	}
}

// Table holds the rows of one severity.
type Table struct {
	Level levels.Level `json:"-" msgpack:"-"`
	Name  string       `json:"level" msgpack:"level"`
	Rows  []Row        `json:"rows" msgpack:"rows"`
}

// Document is the aggregated report. Tables appear in severity order and
// only for severities with at least one row.
type Document struct {
	Title  string  `json:"title" msgpack:"title"`
	Tables []Table `json:"levels" msgpack:"levels"`
}

// Rows returns the number of rows across all tables.
func (d *Document) Rows() int {
	n := 0
	for _, t := range d.Tables {
		n += len(t.Rows)
	}
	return n
}

// Aggregate builds the document from per-severity scan results.
// Row order follows file discovery order, then line order.
func Aggregate(results []*scan.Result, opts Options) *Document {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	doc := &Document{Title: title}

	ordered := make([]*scan.Result, 0, len(results))
	for _, r := range results {
		if r != nil && !r.Empty() {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Level < ordered[j].Level })

	for _, res := range ordered {
		root := opts.Root
		if root == "" {
			root = res.Root
		}
		table := Table{Level: res.Level, Name: res.Level.Name()}
		for _, f := range res.Files {
			file := path.Base(f.Path)
			dir := RelDir(root, f.Path)
			for _, rec := range f.Records {
				table.Rows = append(table.Rows, Row{
					File:    file,
					Dir:     dir,
					Line:    rec.Line,
					Link:    Link(opts.BaseURL, opts.LinkPrefix, dir, file, rec.Line),
					Message: rec.Message,
					Args:    append([]string{}, rec.Args...),
				})
			}
		}
		doc.Tables = append(doc.Tables, table)
	}
	return doc
}

// RelDir returns the slash-form directory of file relative to root, or
// RootDir when the file is directly under root.
func RelDir(root, file string) string {
	dir := filepath.Dir(filepath.FromSlash(file))
	rel, err := filepath.Rel(filepath.Clean(filepath.FromSlash(root)), dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = dir
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return RootDir
	}
	return rel
}

// Link builds <base>/[<prefix>/][<dir>/]<file>#lines-<line>.
func Link(baseURL, prefix, dir, file string, line uint32) string {
	parts := make([]string, 0, 4)
	parts = append(parts, strings.TrimRight(baseURL, "/"))
	if p := strings.Trim(path.Clean(filepath.ToSlash(prefix)), "/"); p != "" && p != "." {
		parts = append(parts, p)
	}
	if dir != RootDir && dir != "" {
		parts = append(parts, dir)
	}
	parts = append(parts, file)
	return fmt.Sprintf("%s#lines-%d", strings.Join(parts, "/"), line)
}

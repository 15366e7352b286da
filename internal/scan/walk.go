package scan

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"logdoc/internal/diag"
)

// DefaultExtensions are the source file suffixes scanned when none are configured.
var DefaultExtensions = []string{".py"}

func skipDir(name string, isRoot bool) bool {
	if isRoot {
		return false
	}
	return name == "__pycache__" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// checkRoot validates that root is an existing, readable directory.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &RootError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return &RootError{Root: root, Err: ErrNotDir}
	}
	f, err := os.Open(root)
	if err != nil {
		return &RootError{Root: root, Err: err}
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return &RootError{Root: root, Err: err}
	}
	return nil
}

// ListFiles возвращает отсортированный список исходников под root.
// Unreadable subdirectories are reported and skipped.
func ListFiles(root string, exts []string, r diag.Reporter) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		isRoot := path == root
		if err != nil {
			if isRoot {
				return &RootError{Root: root, Err: err}
			}
			if r != nil {
				r.Report(diag.NewPathError(diag.IOLoadFileError, filepath.ToSlash(path), err.Error()))
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDir(d.Name(), isRoot) {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

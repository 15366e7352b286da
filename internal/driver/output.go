package driver

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

// ErrNoOutput is returned when no output path is configured.
var ErrNoOutput = errors.New("output path is empty")

// writeOutput пишет отчёт через временный файл в той же директории:
// после ошибки на диске не остаётся обрезанного отчёта.
func writeOutput(path string, data []byte, w io.Writer) (err error) {
	if path == StdoutPath {
		if w == nil {
			w = os.Stdout
		}
		_, err = w.Write(data)
		return err
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, path)
}

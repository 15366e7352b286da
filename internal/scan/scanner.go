// Package scan walks a source tree once per severity and collects the
// normalized logging call sites of every file.
package scan

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"logdoc/internal/diag"
	"logdoc/internal/levels"
	"logdoc/internal/match"
	"logdoc/internal/normalize"
	"logdoc/internal/parser"
	"logdoc/internal/source"
	"logdoc/internal/trace"
)

// Scanner runs severity passes over a source tree. The zero value is ready
// to use; a Scanner keeps no state between calls to Scan.
type Scanner struct {
	Reporter   diag.Reporter
	Progress   Sink
	Extensions []string
	MaxDepth   uint // глубина разбора дерева, 0 - по умолчанию
}

// Scan performs one pass for level over every source file under root.
//
// An invalid level or an unusable root fails before any file is opened.
// A file that cannot be read or parsed is reported and skipped.
func (s *Scanner) Scan(ctx context.Context, root, receiver string, level levels.Level) (*Result, error) {
	if err := levels.Check(level); err != nil {
		return nil, err
	}
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	ctx, span := trace.StartPass(ctx, level.Name())
	started := time.Now()
	s.emit(Event{Level: level, Status: StatusWorking})

	res, err := s.scan(ctx, root, receiver, level)
	if err != nil {
		span.End(err)
		s.emit(Event{Level: level, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return nil, err
	}

	span.
		Set("files", strconv.Itoa(len(res.Files))).
		Set("failed", strconv.Itoa(len(res.Failed))).
		Set("records", strconv.Itoa(res.Len())).
		End(nil)
	s.emit(Event{Level: level, Status: StatusDone, Records: res.Len(), Elapsed: time.Since(started)})
	return res, nil
}

func (s *Scanner) scan(ctx context.Context, root, receiver string, level levels.Level) (*Result, error) {
	reporter := s.reporter()
	paths, err := ListFiles(root, s.Extensions, reporter)
	if err != nil {
		return nil, err
	}

	// новый FileSet на каждый проход: между уровнями ничего не кешируется
	fileSet := source.NewFileSet()
	res := &Result{Level: level, Root: root}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := s.scanFile(ctx, fileSet, path, receiver, level)
		if err != nil {
			if errors.Is(err, normalize.ErrNoFragments) {
				return nil, err
			}
			res.Failed = append(res.Failed, filepath.ToSlash(path))
			continue
		}
		if len(records) == 0 {
			continue
		}
		res.Files = append(res.Files, FileReport{Path: records[0].Path, Records: records})
	}
	return res, nil
}

func (s *Scanner) scanFile(ctx context.Context, fileSet *source.FileSet, path, receiver string, level levels.Level) (_ []Record, err error) {
	ctx, span := trace.StartFile(ctx, filepath.ToSlash(path))
	started := time.Now()
	var records []Record
	defer func() {
		ev := Event{Level: level, File: path, Status: StatusDone, Records: len(records), Elapsed: time.Since(started)}
		if err != nil {
			ev.Status, ev.Err = StatusError, err
		}
		span.Set("records", strconv.Itoa(len(records))).End(err)
		s.emit(ev)
	}()

	// файл читается целиком и сразу закрывается
	id, err := fileSet.Load(path)
	if err != nil {
		s.reporter().Report(diag.NewPathError(diag.IOLoadFileError, path, err.Error()))
		return nil, err
	}

	b, err := parser.ParseFile(ctx, fileSet, id, parser.Options{Reporter: s.reporter(), MaxDepth: s.MaxDepth})
	if err != nil {
		return nil, err
	}

	cursor, err := match.New(b, receiver, level)
	if err != nil {
		return nil, err
	}
	for site := range cursor.All() {
		msg, args, nerr := normalize.Fragments(site.Fragments)
		if nerr != nil {
			s.reporter().Report(diag.NewPathError(diag.ScanMalformedCall, site.Path,
				fmt.Sprintf("line %d: %v", site.Line, nerr)))
			return nil, fmt.Errorf("%s:%d: %w", site.Path, site.Line, nerr)
		}
		records = append(records, Record{
			Path:    site.Path,
			Line:    site.Line,
			Level:   level,
			Message: msg,
			Args:    args,
		})
	}
	return records, nil
}

func (s *Scanner) reporter() diag.Reporter {
	if s.Reporter == nil {
		return diag.NopReporter{}
	}
	return s.Reporter
}

func (s *Scanner) emit(ev Event) {
	if s.Progress != nil {
		s.Progress.OnEvent(ev)
	}
}

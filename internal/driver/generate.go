// Package driver runs the severity passes over a source tree and writes the
// resulting "Logs" document.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"logdoc/internal/diag"
	"logdoc/internal/levels"
	"logdoc/internal/observ"
	"logdoc/internal/report"
	"logdoc/internal/scan"
	"logdoc/internal/trace"
)

// ErrNoReceiver is returned when Options.Receiver is empty.
var ErrNoReceiver = errors.New("logger instance name is empty")

// Options описывает один запуск генерации.
type Options struct {
	Output     string // путь к файлу отчёта, "-" для stdout
	Receiver   string // имя переменной логгера, например "logger"
	SourceRoot string
	BaseURL    string
	LinkPrefix string
	Title      string
	Format     report.Format
	Levels     []levels.Level // пусто - все уровни по порядку

	Progress scan.Sink
	Reporter diag.Reporter
	Timer    *observ.Timer
	Stdout   io.Writer // куда пишется "-", по умолчанию os.Stdout

	// ReportTimings adds an OBS6001 diagnostic with the phase timings.
	ReportTimings bool
	MaxDepth      uint
}

// LevelSummary counts what one severity pass produced.
type LevelSummary struct {
	Level   levels.Level
	Files   int
	Records int
}

// Summary describes a finished run.
type Summary struct {
	Output  string
	Format  report.Format
	Levels  []LevelSummary
	Records int
	Failed  []string // файлы с ошибками чтения или разбора, без повторов
	Bytes   int
	Timings observ.Report
}

// Generate scans SourceRoot once per severity, aggregates the call sites and
// writes the rendered document to Output.
//
// Invalid severities and root errors are returned as is. Files that fail to
// load or parse are reported and listed in Summary.Failed; the run still
// succeeds.
func Generate(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Receiver == "" {
		return nil, ErrNoReceiver
	}
	if opts.Output == "" {
		return nil, ErrNoOutput
	}
	var reporter diag.Reporter = diag.NopReporter{}
	if opts.Reporter != nil {
		reporter = opts.Reporter
	}
	// один и тот же битый файл ломается в каждом проходе
	reporter = diag.NewDedupReporter(reporter)

	lvls := opts.Levels
	if len(lvls) == 0 {
		lvls = levels.All()
	}
	for _, lvl := range lvls {
		if err := levels.Check(lvl); err != nil {
			reportScanError(reporter, opts.SourceRoot, err)
			return nil, err
		}
	}
	format := opts.Format
	if format == "" {
		format = report.FormatMarkdown
	}

	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	ctx, span := trace.StartRun(ctx)
	span.Set("root", opts.SourceRoot).Set("receiver", opts.Receiver)

	sum, err := generate(ctx, opts, lvls, format, reporter, timer)
	if err != nil {
		span.End(err)
		return nil, err
	}
	span.Set("records", strconv.Itoa(sum.Records)).End(nil)
	return sum, nil
}

func generate(ctx context.Context, opts Options, lvls []levels.Level, format report.Format, reporter diag.Reporter, timer *observ.Timer) (*Summary, error) {
	scanner := &scan.Scanner{
		Reporter: reporter,
		Progress: opts.Progress,
		MaxDepth: opts.MaxDepth,
	}

	sum := &Summary{Output: opts.Output, Format: format}
	failed := make(map[string]struct{})
	results := make([]*scan.Result, 0, len(lvls))

	for _, lvl := range lvls {
		phase := timer.Start("pass:" + lvl.Name())
		res, err := scanner.Scan(ctx, opts.SourceRoot, opts.Receiver, lvl)
		if err != nil {
			phase.Fail(err)
			reportScanError(reporter, opts.SourceRoot, err)
			return nil, err
		}
		phase.Stop(res.Len(), fmt.Sprintf("%d files", len(res.Files)))

		if res.Empty() {
			reporter.Report(diag.NewPathInfo(diag.ScanEmptyLevel, opts.SourceRoot,
				fmt.Sprintf("no %s.%s(...) calls found", opts.Receiver, lvl.Method())))
		}
		for _, f := range res.Failed {
			failed[f] = struct{}{}
		}
		sum.Levels = append(sum.Levels, LevelSummary{Level: lvl, Files: len(res.Files), Records: res.Len()})
		sum.Records += res.Len()
		results = append(results, res)
	}

	for f := range failed {
		sum.Failed = append(sum.Failed, f)
	}
	sort.Strings(sum.Failed)

	phase := timer.Start("render")
	doc := report.Aggregate(results, report.Options{
		Root:       opts.SourceRoot,
		BaseURL:    opts.BaseURL,
		LinkPrefix: opts.LinkPrefix,
		Title:      opts.Title,
	})
	var buf bytes.Buffer
	if err := report.Render(&buf, doc, format); err != nil {
		phase.Fail(err)
		return nil, err
	}
	phase.Stop(doc.Rows(), string(format))

	phase = timer.Start("write")
	if err := writeOutput(opts.Output, buf.Bytes(), opts.Stdout); err != nil {
		phase.Fail(err)
		reporter.Report(diag.NewPathError(diag.IOWriteError, opts.Output, err.Error()))
		return nil, err
	}
	phase.Stop(buf.Len(), opts.Output)
	sum.Bytes = buf.Len()

	sum.Timings = timer.Report()
	if opts.ReportTimings {
		reportTimings(reporter, opts.SourceRoot, sum.Timings)
	}
	return sum, nil
}

func reportScanError(r diag.Reporter, root string, err error) {
	var sevErr *levels.InvalidSeverityError
	var rootErr *scan.RootError
	switch {
	case errors.As(err, &sevErr):
		r.Report(diag.NewPathError(diag.ScanInvalidSeverity, root, err.Error()))
	case errors.As(err, &rootErr):
		r.Report(diag.NewPathError(diag.ScanRootError, root, err.Error()))
	}
}

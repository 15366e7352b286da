package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"logdoc/internal/diag"
	"logdoc/internal/driver"
	"logdoc/internal/levels"
	"logdoc/internal/observ"
	"logdoc/internal/project"
	"logdoc/internal/report"
)

// flagFields maps command-line flags onto configurable settings.
var flagFields = map[string]project.Field{
	"instance":    project.FieldInstance,
	"source":      project.FieldSource,
	"url":         project.FieldURL,
	"output":      project.FieldOutput,
	"format":      project.FieldFormat,
	"link-prefix": project.FieldLinkPrefix,
	"title":       project.FieldTitle,
}

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"logs"},
		Short:   "Generate the logged messages document",
		Long: `Scan the source directory once per severity (DEBUG, INFO, WARNING, ERROR,
CRITICAL, EXCEPTION) for <instance>.<severity>(...) calls and write one table
per severity with a link to every call site.

Settings are taken from flags, LOGDOC_* environment variables, .env and
logdoc.toml, in that order.`,
		Args: cobra.NoArgs,
		RunE: runMessages,
	}

	d := project.Defaults
	f := cmd.Flags()
	f.StringP("output", "o", d[project.FieldOutput], `report path ("-" for stdout)`)
	f.StringP("instance", "i", d[project.FieldInstance], "name of the logger variable")
	f.StringP("source", "s", d[project.FieldSource], "source directory to scan")
	f.StringP("url", "u", d[project.FieldURL], "repository URL used for line links")
	f.String("format", d[project.FieldFormat], "report format (markdown|json|msgpack)")
	f.String("link-prefix", "", "path inserted between the URL and the file (default: the source directory when relative)")
	f.String("title", report.DefaultTitle, "document title")
	f.StringSlice("level", nil, "limit the scan to these severities (repeatable)")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.Int("max-diagnostics", 100, "maximum number of diagnostics to keep")
	f.String("diagnostics-format", "pretty", "diagnostics output format (pretty|short|json)")
	return cmd
}

func runMessages(cmd *cobra.Command, _ []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	lvls, err := readLevels(cmd)
	if err != nil {
		return err
	}
	mode, err := readUIModeFlag(cmd)
	if err != nil {
		return err
	}
	useColor, err := readColorFlag(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	maxDiagnostics, _ := cmd.Flags().GetInt("max-diagnostics")
	diagFormat, _ := cmd.Flags().GetString("diagnostics-format")
	switch diagFormat {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unsupported diagnostics format %q (must be pretty, short or json)", diagFormat)
	}

	bag := diag.NewBag(maxDiagnostics)
	timer := observ.NewTimer()
	opts := driver.Options{
		Output:        settings.Output,
		Receiver:      settings.Instance,
		SourceRoot:    settings.Source,
		BaseURL:       settings.URL,
		LinkPrefix:    settings.LinkPrefix,
		Title:         settings.Title,
		Format:        format,
		Levels:        lvls,
		Reporter:      diag.BagReporter{Bag: bag},
		Timer:         timer,
		Stdout:        cmd.OutOrStdout(),
		ReportTimings: showTimings && diagFormat == "json",
	}

	var sum *driver.Summary
	if !quiet && shouldUseTUI(mode, settings.Output) {
		sum, err = runWithUI(cmd.Context(), "logdoc "+settings.Source, opts)
	} else {
		sum, err = driver.Generate(cmd.Context(), opts)
	}

	stderr := cmd.ErrOrStderr()
	if printErr := printDiagnostics(stderr, bag, diagFormat, useColor, quiet); printErr != nil && err == nil {
		err = printErr
	}
	if err != nil {
		return err
	}

	if !quiet {
		printSummary(stderr, sum)
	}
	if showTimings && diagFormat != "json" {
		printTimings(stderr, timer)
	}
	return nil
}

func resolveSettings(cmd *cobra.Command) (*project.Settings, error) {
	explicit := make(map[project.Field]string)
	for name, field := range flagFields {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		explicit[field] = v
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return project.Resolve(project.ResolveOptions{StartDir: cwd, Flags: explicit})
}

func readLevels(cmd *cobra.Command) ([]levels.Level, error) {
	names, err := cmd.Flags().GetStringSlice("level")
	if err != nil {
		return nil, fmt.Errorf("failed to get level flag: %w", err)
	}
	out := make([]levels.Level, 0, len(names))
	for _, name := range names {
		lvl, err := levels.Parse(strings.ToUpper(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		out = append(out, lvl)
	}
	return out, nil
}

func printSummary(out io.Writer, sum *driver.Summary) {
	if sum == nil {
		return
	}
	parts := make([]string, 0, len(sum.Levels))
	for _, l := range sum.Levels {
		if l.Records > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", l.Level.Name(), l.Records))
		}
	}
	target := sum.Output
	if target == driver.StdoutPath {
		target = "stdout"
	} else if rel, err := filepath.Rel(".", target); err == nil && !strings.HasPrefix(rel, "..") {
		target = rel
	}
	fmt.Fprintf(out, "wrote %d records to %s", sum.Records, target)
	if len(parts) > 0 {
		fmt.Fprintf(out, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(out)
	if n := len(sum.Failed); n > 0 {
		fmt.Fprintf(out, "skipped %d file(s) that could not be read or parsed\n", n)
	}
}

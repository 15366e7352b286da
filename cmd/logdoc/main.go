package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"logdoc/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "logdoc",
		Short: "Document the logging calls of a Python project",
		Long: `logdoc scans a Python source tree for calls such as logger.info("...", arg)
and writes a "Logs" document with one table per severity.`,
		Version:       version.Current(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace depth (off|run|pass|file)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring)")
	flags.Int("trace-ring-size", 4096, "ring buffer capacity in events")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(newMessagesCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main builds the command tree and exits with status 1 when the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

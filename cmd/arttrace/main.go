package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"arttrace/internal/prof"
	"arttrace/internal/version"
)

// app carries per-run state shared between the root hooks and the commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	tracing *tracingSession
	profile *prof.Session
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "arttrace",
		Short: "Inspect and reorder ART runtime trace files",
		Long: `arttrace reads execution traces written by a model runtime: instance
declarations, message occurrences and notes. It can tokenize, parse, and
sort the messages of a trace by their receive or handle timestamp.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.before,
	}

	root.AddCommand(newTokenizeCmd(a))
	root.AddCommand(newParseCmd(a))
	root.AddCommand(newSortCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newCacheCmd(a))
	root.AddCommand(newVersionCmd(a))

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", defaultMaxDiagnostics, "maximum number of diagnostics kept per file")
	flags.Bool("strict", false, "report lines that match no trace statement")
	flags.String("config", "", "path to arttrace.toml (default: search upwards from the working directory)")
	flags.String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	flags.String("diag-format", "pretty", "diagnostics format (pretty|json)")
	flags.String("path-mode", "auto", "how file paths are shown in diagnostics (auto|absolute|relative|basename)")
	flags.Int("jobs", 0, "max parallel workers (0=auto)")
	flags.Bool("cache", false, "reuse parse results cached on disk")
	flags.String("ui", "auto", "progress view for multi-file runs (auto|on|off)")

	flags.String("trace", "", "write trace events to a file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval (0=off)")

	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	return root
}

func (a *app) before(cmd *cobra.Command, _ []string) error {
	profile, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.profile = profile

	session, err := setupTracing(cmd, a.stderr)
	if err != nil {
		return err
	}
	a.tracing = session
	return nil
}

// finish closes the tracing session and the profilers. A failed run dumps
// the ring buffer.
func (a *app) finish(runErr error) {
	if a.tracing != nil {
		a.tracing.close(runErr)
		a.tracing = nil
	}
	if err := a.profile.Stop(); err != nil {
		fmt.Fprintf(a.stderr, "profiling: %v\n", err)
	}
	a.profile = nil
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.finish(err)
	if err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

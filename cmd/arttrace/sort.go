package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"arttrace/internal/diag"
	"arttrace/internal/driver"
	"arttrace/internal/factfmt"
	"arttrace/internal/pipeline"
	"arttrace/internal/source"
)

func newSortCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [flags] <file.trace|directory>...",
		Short: "Reorder the messages of trace files by timestamp",
		Long: `Sort prints every line of each trace file with the timestamped messages
reordered by the selected field. Lines that are not timestamped messages
keep their positions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSort(cmd, args)
		},
	}
	cmd.Flags().String("by", "receive", "timestamp to sort by (receive|handle)")
	return cmd
}

type sortOutcome struct {
	fileSet *source.FileSet
	results []*driver.SortResult
	err     error
}

func (a *app) runSort(cmd *cobra.Command, args []string) error {
	started := time.Now()
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	files, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no trace files found")
	}
	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	timings := &pipeline.Timings{}
	opts.Timings = timings

	run := func(sink pipeline.ProgressSink) sortOutcome {
		o := opts
		o.Progress = sink
		fileSet, results, err := driver.SortFiles(cmd.Context(), files, o)
		return sortOutcome{fileSet: fileSet, results: results, err: err}
	}

	var outcome sortOutcome
	if !s.quiet && shouldUseTUI(s.ui, a.stderr, len(files)) {
		var uiErr error
		outcome, uiErr = runWithUI(a.stderr, "sorting by "+s.field.String(), files, pipeline.StageSort, run)
		if uiErr != nil {
			fmt.Fprintf(a.stderr, "progress view: %v\n", uiErr)
		}
	} else {
		outcome = run(nil)
	}
	if outcome.err != nil {
		return outcome.err
	}

	bags := make([]*diag.Bag, 0, len(outcome.results))
	for _, res := range outcome.results {
		bags = append(bags, res.Bag)
	}
	bag := mergeBags(s.maxDiag, bags...)
	timer := stageTimer(timings, pipeline.StageRead, pipeline.StageParse, pipeline.StageSort)
	if err := reportTimings(a.stderr, s, "sort", bag, timer, time.Since(started)); err != nil {
		return err
	}
	if err := emitDiagnostics(a.stderr, s, bag, outcome.fileSet); err != nil {
		return err
	}

	outOpts := factfmt.Options{Format: s.format, Color: s.useColor(a.stdout)}
	failed := 0
	written := 0
	for _, res := range outcome.results {
		if res.Err != nil {
			failed++
			continue
		}
		// several files in pretty mode get a header each
		if len(outcome.results) > 1 && s.format == factfmt.FormatPretty {
			if written > 0 {
				fmt.Fprintln(a.stdout)
			}
			fmt.Fprintf(a.stdout, "== %s\n", res.Path)
		}
		if err := factfmt.WriteSorted(a.stdout, res.Path, factfmt.FromSorted(res.Lines), outOpts); err != nil {
			return err
		}
		written++
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be read", failed, len(files))
	}
	return nil
}

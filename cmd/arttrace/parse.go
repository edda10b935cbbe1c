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

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [flags] <file.trace|directory>...",
		Short: "Parse trace files and print their facts",
		Long: `Parse reads each trace file, or every *.trace file below a directory,
and prints the instance declarations, messages and notes it contains
together with the embedded trace configuration.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args)
		},
	}
}

type parseOutcome struct {
	fileSet *source.FileSet
	results []*driver.ParseResult
	err     error
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
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

	run := func(sink pipeline.ProgressSink) parseOutcome {
		o := opts
		o.Progress = sink
		fileSet, results, err := driver.ParseFiles(cmd.Context(), files, o)
		return parseOutcome{fileSet: fileSet, results: results, err: err}
	}

	var outcome parseOutcome
	if !s.quiet && shouldUseTUI(s.ui, a.stderr, len(files)) {
		var uiErr error
		outcome, uiErr = runWithUI(a.stderr, "parsing", files, pipeline.StageParse, run)
		if uiErr != nil {
			fmt.Fprintf(a.stderr, "progress view: %v\n", uiErr)
		}
	} else {
		outcome = run(nil)
	}
	if outcome.err != nil {
		return outcome.err
	}

	records := make([]factfmt.FileRecord, 0, len(outcome.results))
	failed := 0
	for _, res := range outcome.results {
		if res.Err != nil {
			failed++
			continue
		}
		records = append(records, factfmt.FileRecord{
			Path:   res.Path,
			Lines:  res.Lines,
			Config: factfmt.FromConfig(res.Config),
			Facts:  factfmt.FromFacts(res.Facts),
		})
	}

	bag := mergeBags(s.maxDiag, bagsOf(outcome.results)...)
	if err := reportTimings(a.stderr, s, "parse", bag, stageTimer(timings, pipeline.StageRead, pipeline.StageParse), time.Since(started)); err != nil {
		return err
	}
	if err := emitDiagnostics(a.stderr, s, bag, outcome.fileSet); err != nil {
		return err
	}
	if len(records) > 0 {
		if err := factfmt.WriteFiles(a.stdout, records, factfmt.Options{Format: s.format, Color: s.useColor(a.stdout)}); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be read", failed, len(files))
	}
	return nil
}

func bagsOf(results []*driver.ParseResult) []*diag.Bag {
	out := make([]*diag.Bag, 0, len(results))
	for _, res := range results {
		out = append(out, res.Bag)
	}
	return out
}

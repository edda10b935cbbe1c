package main

import (
	"fmt"
	"io"
	"time"

	"arttrace/internal/diag"
	"arttrace/internal/diagfmt"
	"arttrace/internal/driver"
	"arttrace/internal/observ"
	"arttrace/internal/pipeline"
	"arttrace/internal/source"
)

// emitDiagnostics prints the bag to w in the selected format.
func emitDiagnostics(w io.Writer, s *settings, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	bag.Dedup()
	if s.diagFormat == "json" {
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			PathMode:     s.pathMode,
			IncludeNotes: true,
		})
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     s.useColor(w),
		Context:   true,
		PathMode:  s.pathMode,
		ShowNotes: true,
	})
	return nil
}

// stageTimer turns the summed stage durations into a phase report.
func stageTimer(timings *pipeline.Timings, stages ...pipeline.Stage) *observ.Timer {
	timer := observ.NewTimer()
	for _, stage := range stages {
		if timings.Has(stage) {
			timer.Record(string(stage), timings.Duration(stage), "")
		}
	}
	return timer
}

// reportTimings prints the summary table, or adds a timings diagnostic to
// bag when diagnostics are written as JSON.
func reportTimings(w io.Writer, s *settings, kind string, bag *diag.Bag, timer *observ.Timer, wall time.Duration) error {
	if !s.timings {
		return nil
	}
	timer.Record("wall", wall, "end to end")
	if s.diagFormat == "json" {
		d, err := driver.TimingDiagnostic(kind, "", timer.Report())
		if err != nil {
			return err
		}
		bag.Add(d)
		return nil
	}
	_, err := fmt.Fprint(w, timer.Summary())
	return err
}

func mergeBags(limit int, bags ...*diag.Bag) *diag.Bag {
	out := diag.NewBag(limit)
	for _, b := range bags {
		if b != nil {
			out.Merge(b)
		}
	}
	return out
}

package driver

import (
	"runtime"

	"arttrace/internal/fact"
	"arttrace/internal/pipeline"
)

// Options control how the driver parses and sorts trace files.
type Options struct {
	// MaxDiagnostics caps the diagnostics kept per file.
	MaxDiagnostics int
	// Strict reports lines that match no trace statement.
	Strict bool
	// Jobs limits how many files are processed at once; 0 means GOMAXPROCS.
	Jobs int
	// Field selects the timestamp used by SortFile.
	Field fact.TimeField
	// Cache, when set, stores parse results keyed by file content.
	Cache *FactCache
	// Progress receives per-file events; nil disables them.
	Progress pipeline.ProgressSink
	// Timings, when set, receives stage durations summed over all files.
	Timings *pipeline.Timings
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

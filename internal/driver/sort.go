package driver

import (
	"context"
	"time"

	"fortio.org/safecast"

	"arttrace/internal/diag"
	"arttrace/internal/fact"
	"arttrace/internal/parser"
	"arttrace/internal/pipeline"
	"arttrace/internal/sorter"
	"arttrace/internal/source"
	"arttrace/internal/trace"
)

// SortResult holds the reordered lines of one trace file.
type SortResult struct {
	Path  string
	Lines []sorter.Line
	// Timed is the number of messages that carried the sort field.
	Timed  int
	Config *fact.TraceConfiguration
	Bag    *diag.Bag
	Err    error
}

// Text returns the reordered line texts.
func (r *SortResult) Text() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text
	}
	return out
}

// SortFile parses a file and reorders its messages by opts.Field.
func SortFile(ctx context.Context, fileSet *source.FileSet, path string, opts Options) (*SortResult, error) {
	parsed, err := ParseFile(ctx, fileSet, path, opts)
	if err != nil {
		return &SortResult{Path: path, Bag: parsed.Bag, Err: err}, err
	}
	return sortParsed(ctx, fileSet.Get(parsed.FileID), parsed, opts), nil
}

// SortFiles sorts every path concurrently.
func SortFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []*SortResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "sort")
	defer span.WithExtra("by", opts.Field.String()).End("")

	fileSet := source.NewFileSet()
	results := make([]*SortResult, len(paths))
	err := forEachFile(ctx, paths, opts, func(ctx context.Context, i int, path string) {
		parsed := parsePath(ctx, fileSet, path, opts)
		if parsed.Err != nil {
			results[i] = &SortResult{Path: path, Bag: parsed.Bag, Err: parsed.Err}
			return
		}
		results[i] = sortParsed(ctx, fileSet.Get(parsed.FileID), parsed, opts)
	})
	if err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

// sortParsed feeds the already parsed facts to a sorter, so the file is
// parsed once.
func sortParsed(ctx context.Context, file *source.File, parsed *ParseResult, opts Options) *SortResult {
	field := opts.Field
	if field == 0 {
		field = fact.TimeReceive
	}
	_, span := trace.StartFile(ctx, "sort", file.Path)
	started := time.Now()
	pipeline.EmitStage(opts.Progress, parsed.Path, pipeline.StageSort, pipeline.StatusWorking, nil, 0)

	byLine := make(map[uint32]fact.Fact, len(parsed.Facts))
	for _, f := range parsed.Facts {
		byLine[f.Line()] = f
	}

	s := sorter.New(field, parser.Options{})
	for i, line := range file.Lines() {
		lineNo, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			break
		}
		s.RecordFact(line, lineNo, byLine[lineNo])
	}
	res := &SortResult{
		Path:   parsed.Path,
		Lines:  s.MaterializeLines(),
		Timed:  s.Timed(),
		Config: parsed.Config,
		Bag:    parsed.Bag,
	}

	elapsed := time.Since(started)
	opts.Timings.Add(pipeline.StageSort, elapsed)
	pipeline.EmitStage(opts.Progress, parsed.Path, pipeline.StageSort, pipeline.StatusDone, nil, elapsed)
	span.Count("lines", len(res.Lines)).Count("timed", res.Timed).End("")
	return res
}

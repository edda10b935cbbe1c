package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fortio.org/safecast"

	"arttrace/internal/diag"
	"arttrace/internal/fact"
	"arttrace/internal/parser"
	"arttrace/internal/pipeline"
	"arttrace/internal/source"
	"arttrace/internal/trace"
)

// ParseResult holds the facts of one trace file in line order.
type ParseResult struct {
	Path   string
	FileID source.FileID
	// Lines is the number of lines read.
	Lines int
	Facts []fact.Fact
	// Config is the file's trace configuration, or nil.
	Config    *fact.TraceConfiguration
	Instances *fact.Registry
	Bag       *diag.Bag
	// Cached reports that the facts came from the parse cache.
	Cached bool
	// Err is set when the file could not be read.
	Err error
}

// ParseFile loads and parses one trace file.
func ParseFile(ctx context.Context, fileSet *source.FileSet, path string, opts Options) (*ParseResult, error) {
	res := parsePath(ctx, fileSet, path, opts)
	if res.Err != nil {
		return res, res.Err
	}
	return res, nil
}

// ParseSource parses a file that is already in fileSet.
func ParseSource(ctx context.Context, file *source.File, opts Options) *ParseResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	return parseLoaded(ctx, file, bag, opts)
}

func parsePath(ctx context.Context, fileSet *source.FileSet, path string, opts Options) *ParseResult {
	bag := diag.NewBag(opts.maxDiagnostics())

	started := time.Now()
	_, span := trace.StartFile(ctx, "read", path)
	pipeline.EmitStage(opts.Progress, path, pipeline.StageRead, pipeline.StatusWorking, nil, 0)
	fileID, err := fileSet.Load(path)
	if err != nil {
		err = fmt.Errorf("read %s: %w", path, err)
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{}, err.Error()).Emit()
		pipeline.EmitStage(opts.Progress, path, pipeline.StageRead, pipeline.StatusError, err, time.Since(started))
		span.End(err.Error())
		return &ParseResult{Path: path, Bag: bag, Instances: fact.NewRegistry(), Err: err}
	}
	opts.Timings.Add(pipeline.StageRead, time.Since(started))
	span.End("")

	res := parseLoaded(ctx, fileSet.Get(fileID), bag, opts)
	res.Path = path
	return res
}

func parseLoaded(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) *ParseResult {
	_, span := trace.StartFile(ctx, "parse", file.Path)

	started := time.Now()
	pipeline.EmitStage(opts.Progress, file.Path, pipeline.StageParse, pipeline.StatusWorking, nil, 0)

	res := &ParseResult{Path: file.Path, FileID: file.ID, Bag: bag, Instances: fact.NewRegistry()}
	if !opts.Cache.load(file, opts, res) {
		parseLines(span, file, opts, res)
		opts.Cache.store(file, opts, res)
	}
	for _, f := range res.Facts {
		res.Instances.Observe(f)
	}

	elapsed := time.Since(started)
	opts.Timings.Add(pipeline.StageParse, elapsed)
	pipeline.Emit(opts.Progress, pipeline.Event{
		File:    file.Path,
		Stage:   pipeline.StageParse,
		Status:  pipeline.StatusDone,
		Elapsed: elapsed,
		Lines:   res.Lines,
		Facts:   len(res.Facts),
	})
	span.Count("lines", res.Lines).
		Count("facts", len(res.Facts)).
		WithExtra("cached", strconv.FormatBool(res.Cached)).
		End("")
	return res
}

func parseLines(span *trace.Span, file *source.File, opts Options, res *ParseResult) {
	p := parser.New(parser.Options{
		Reporter: diag.BagReporter{Bag: res.Bag},
		File:     file.ID,
		Strict:   opts.Strict,
	})
	lines := file.Lines()
	for i, line := range lines {
		lineNo, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			break
		}
		f := p.ParseLine(line, lineNo)
		if f == nil {
			if line != "" {
				span.Count("skipped", 1)
				span.Line(lineNo, "skip", "")
			}
			continue
		}
		res.Facts = append(res.Facts, f)
	}
	p.Finish()
	res.Lines = len(lines)
	res.Config = p.Configuration()
}

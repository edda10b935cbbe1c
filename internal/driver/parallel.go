package driver

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"arttrace/internal/source"
	"arttrace/internal/trace"
)

// forEachFile runs fn for every path with at most opts.Jobs running at
// once. Results are written by index, so fn needs no locking of its own.
func forEachFile(ctx context.Context, paths []string, opts Options, fn func(ctx context.Context, i int, path string)) error {
	if len(paths) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fn(gctx, i, path)
			return nil
		})
	}
	return g.Wait()
}

// ParseFiles parses every path concurrently, one parser session per file.
// A file that cannot be read yields a result with Err set; the returned
// error is only about cancellation.
func ParseFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []*ParseResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
	defer span.WithExtra("files", strconv.Itoa(len(paths))).End("")

	fileSet := source.NewFileSet()
	results := make([]*ParseResult, len(paths))
	err := forEachFile(ctx, paths, opts, func(ctx context.Context, i int, path string) {
		results[i] = parsePath(ctx, fileSet, path, opts)
	})
	if err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

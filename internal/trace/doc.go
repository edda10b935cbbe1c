// Package trace records what arttrace does while it reads trace files.
//
// It is the operator-facing log of a run: which files were opened, how
// long each pass took, which lines were skipped. It is not related to the
// ART trace files being parsed.
//
// # Usage
//
//	arttrace parse --trace=- --trace-level=detail app.trace
//
// # Tracers
//
//   - Nop: no-op tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - Multi: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits driver and pass events, LevelDetail adds per-file
// events and LevelDebug adds per-line events. LevelError emits nothing by
// itself; the ring is dumped, grouped by trace file, when a run fails.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, pass := trace.Start(ctx, trace.ScopePass, "parse")
//	defer pass.End("")
//
//	_, file := trace.StartFile(ctx, "parse", path)
//	file.Line(12, "skip", "")
//	file.Count("facts", n).End("")
package trace

package trace

import "context"

type ctxKey struct{}

// carried is what a context holds: the run's tracer and the innermost span
// opened through Start or StartFile.
type carried struct {
	tracer Tracer
	parent uint64
}

func load(ctx context.Context) carried {
	c, _ := ctx.Value(ctxKey{}).(carried)
	if c.tracer == nil {
		c.tracer = Nop
	}
	return c
}

// WithTracer returns ctx carrying t. Spans already carried by ctx stay the
// parent of new ones.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	c := load(ctx)
	if t != nil {
		c.tracer = t
	}
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return load(ctx).tracer
}

// Start opens a span under the one carried by ctx and returns a context in
// which the new span is the parent.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	c := load(ctx)
	span := begin(c.tracer, scope, name, "", c.parent)
	return span.into(ctx, c), span
}

// StartFile is Start for the file scope: the span and its line events are
// tagged with the trace file at path.
func StartFile(ctx context.Context, name, path string) (context.Context, *Span) {
	c := load(ctx)
	span := begin(c.tracer, ScopeFile, name, path, c.parent)
	return span.into(ctx, c), span
}

func (s *Span) into(ctx context.Context, c carried) context.Context {
	if !s.active() {
		return ctx
	}
	c.parent = s.id
	return context.WithValue(ctx, ctxKey{}, c)
}

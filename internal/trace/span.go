package trace

import (
	"maps"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// emit stamps ev and hands it to t.
func emit(t Tracer, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	ev.Seq = seqCounter.Add(1)
	t.Emit(&ev)
}

// Span is an open begin/end pair. Spans whose scope the tracer's level
// leaves out are inert: every method is a no-op on them.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	file    string
	started time.Time
	extra   map[string]string
	counts  map[string]int
}

func begin(t Tracer, scope Scope, name, file string, parent uint64) *Span {
	if t == nil || !t.Level().emits(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		file:    file,
		started: time.Now(),
	}
	emit(t, Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
		File:     file,
	})
	if file != "" {
		openFiles.add(s.id, file)
	}
	return s
}

func (s *Span) active() bool { return s != nil && s.tracer != nil }

// ID returns the span id, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// WithExtra sets a key on the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.active() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Count adds n to a counter reported on the end event, such as the lines
// or facts seen in a file.
func (s *Span) Count(key string, n int) *Span {
	if !s.active() {
		return s
	}
	if s.counts == nil {
		s.counts = make(map[string]int)
	}
	s.counts[key] += n
	return s
}

// Line records an event about one line of the span's trace file. It is
// emitted only at the debug level.
func (s *Span) Line(lineNo uint32, name, detail string) {
	if !s.active() || !s.tracer.Level().emits(ScopeLine) {
		return
	}
	emit(s.tracer, Event{
		Kind:     KindPoint,
		Scope:    ScopeLine,
		ParentID: s.id,
		Name:     name,
		File:     s.file,
		Line:     lineNo,
		Detail:   detail,
	})
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.active() {
		return 0
	}
	dur := time.Since(s.started)
	extra := s.extra
	if len(s.counts) > 0 {
		extra = maps.Clone(s.extra)
		if extra == nil {
			extra = make(map[string]string, len(s.counts))
		}
		for k, n := range s.counts {
			extra[k] = strconv.Itoa(n)
		}
	}
	if s.file != "" {
		openFiles.remove(s.id)
	}
	emit(s.tracer, Event{
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		File:     s.file,
		Detail:   detail,
		Extra:    extra,
	})
	s.tracer = nil
	return dur
}

// fileRegistry tracks the trace files with an open span.
type fileRegistry struct {
	mu   sync.Mutex
	byID map[uint64]string
}

var openFiles = &fileRegistry{byID: make(map[uint64]string)}

func (r *fileRegistry) add(id uint64, path string) {
	r.mu.Lock()
	r.byID[id] = path
	r.mu.Unlock()
}

func (r *fileRegistry) remove(id uint64) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

// list returns the distinct open files, sorted.
func (r *fileRegistry) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{}, len(r.byID))
	for _, path := range r.byID {
		seen[path] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so a failed run can
// show what it was doing, grouped by trace file.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	held  int
	level Level
}

// NewRingTracer returns a ring holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.keeps(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = *ev
	t.next = (t.next + 1) % len(t.buf)
	t.held = min(t.held+1, len(t.buf))
}

// events returns the held events oldest first.
func (t *RingTracer) events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.held)
	start := (t.next - t.held + len(t.buf)) % len(t.buf)
	for i := range t.held {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

// Len returns the number of events held.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held
}

// LastFile returns the trace file named by the most recent held event that
// has one.
func (t *RingTracer) LastFile() (string, bool) {
	events := t.events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].File != "" {
			return events[i].File, true
		}
	}
	return "", false
}

// Dump writes the held events. Run-wide events come first, then the events
// of each trace file in the order the files first appear. Text output puts
// a header before every group.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.events()
	groups := make(map[string][]int)
	order := []string{""}
	for i := range events {
		file := events[i].File
		if _, ok := groups[file]; !ok && file != "" {
			order = append(order, file)
		}
		groups[file] = append(groups[file], i)
	}

	for _, file := range order {
		idx := groups[file]
		if len(idx) == 0 {
			continue
		}
		if format != FormatNDJSON {
			name := file
			if name == "" {
				name = "run"
			}
			if _, err := fmt.Fprintf(w, "-- %s\n", name); err != nil {
				return err
			}
		}
		for _, i := range idx {
			if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

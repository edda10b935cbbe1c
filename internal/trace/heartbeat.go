package trace

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Heartbeat emits a driver-scope event at a fixed interval naming the trace
// files still being processed. A file that shows up in every beat is the
// one a slow run is stuck on.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat starts beating every interval. It returns nil when t is
// disabled or interval is not positive.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(t, interval)
	return h
}

func (h *Heartbeat) run(t Tracer, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		}
		files := openFiles.list()
		ev := Event{
			Kind:   KindHeartbeat,
			Scope:  ScopeDriver,
			Name:   "heartbeat",
			Detail: fmt.Sprintf("#%d, %d file(s) open", beat, len(files)),
		}
		if len(files) > 0 {
			ev.Extra = map[string]string{"files": strings.Join(files, " ")}
		}
		emit(t, ev)
	}
}

// Stop ends the heartbeat and waits for its goroutine. Stop on nil is a no-op.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

package trace

import "errors"

type multiTracer struct {
	tracers []Tracer
	level   Level
}

// Multi combines tracers into one. Nil and disabled tracers are dropped:
// with none left the result is Nop, with one it is that tracer.
func Multi(tracers ...Tracer) Tracer {
	var (
		live  []Tracer
		level Level
	)
	for _, t := range tracers {
		if t == nil || !t.Enabled() {
			continue
		}
		live = append(live, t)
		level = max(level, t.Level())
	}
	switch len(live) {
	case 0:
		return Nop
	case 1:
		return live[0]
	}
	return &multiTracer{tracers: live, level: level}
}

func (t *multiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *multiTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *multiTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *multiTracer) Level() Level  { return t.level }
func (t *multiTracer) Enabled() bool { return t.level > LevelOff }

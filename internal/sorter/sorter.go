// Package sorter reorders the messages of a trace file by timestamp.
//
// Lines that are not timestamped messages keep their positions. Each
// maximal run of consecutive timestamped messages is replaced by the same
// number of messages taken, in order, from the globally sorted sequence.
// Messages with equal timestamps keep their original relative order.
package sorter

import (
	"cmp"
	"slices"

	"arttrace/internal/fact"
	"arttrace/internal/parser"
)

// Line is one recorded line of the input.
type Line struct {
	Text string
	// LineNo is the line's position in the input.
	LineNo uint32
	// Fact is nil for lines that produced no fact.
	Fact fact.Fact

	time  int64
	timed bool
}

// Timed reports whether the line is a message carrying the sort field.
func (l Line) Timed() bool { return l.timed }

// Time returns the sort timestamp of a timed line.
func (l Line) Time() (int64, bool) { return l.time, l.timed }

// Sorter buffers a whole file. It is not safe for concurrent use.
type Sorter struct {
	field  fact.TimeField
	parser *parser.Parser
	lines  []Line
	// buffer holds indices into lines of the timestamped messages.
	buffer []int
}

// New creates a sorter ordering messages by field. The parser options
// configure the parsing session used by Record.
func New(field fact.TimeField, opts parser.Options) *Sorter {
	return &Sorter{field: field, parser: parser.New(opts)}
}

// Record parses a line and appends it to the log. It returns the parsed
// fact, or nil.
func (s *Sorter) Record(text string, lineNo uint32) fact.Fact {
	f := s.parser.ParseLine(text, lineNo)
	s.RecordFact(text, lineNo, f)
	return f
}

// RecordFact appends a line that was already parsed elsewhere.
func (s *Sorter) RecordFact(text string, lineNo uint32, f fact.Fact) {
	line := Line{Text: text, LineNo: lineNo, Fact: f}
	if msg, ok := f.(*fact.MessageOccurrence); ok {
		line.time, line.timed = msg.Timestamp(s.field)
	}
	if line.timed {
		s.buffer = append(s.buffer, len(s.lines))
	}
	s.lines = append(s.lines, line)
}

// Parser returns the parsing session used by Record.
func (s *Sorter) Parser() *parser.Parser { return s.parser }

// Field returns the timestamp the sorter orders by.
func (s *Sorter) Field() fact.TimeField { return s.field }

// Len returns the number of recorded lines.
func (s *Sorter) Len() int { return len(s.lines) }

// Timed returns the number of recorded timestamped messages.
func (s *Sorter) Timed() int { return len(s.buffer) }

// Materialize returns the recorded lines with messages reordered. It may
// be called more than once.
func (s *Sorter) Materialize() []string {
	lines := s.MaterializeLines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// MaterializeLines is Materialize returning the full line records, so the
// original line number of each moved message stays available.
func (s *Sorter) MaterializeLines() []Line {
	out := make([]Line, 0, len(s.lines))
	if len(s.buffer) == 0 {
		return append(out, s.lines...)
	}

	sorted := slices.Clone(s.buffer)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return cmp.Compare(s.lines[a].time, s.lines[b].time)
	})

	next := 0
	for _, l := range s.lines {
		if !l.timed {
			out = append(out, l)
			continue
		}
		out = append(out, s.lines[sorted[next]])
		next++
	}
	return out
}

package source

import (
	"fmt"
)

// Span locates a fragment of one line of a trace file.
// Start and End are 1-based byte columns, End exclusive.
type Span struct {
	File  FileID
	Line  uint32
	Start uint32
	End   uint32
}

// LineSpan returns a span covering a whole line of the given byte length.
func LineSpan(file FileID, line, length uint32) Span {
	return Span{File: file, Line: line, Start: 1, End: length + 1}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d:%d-%d", s.File, s.Line, s.Start, s.End)
}

// Cover returns the smallest span on the same line containing both spans.
func (s Span) Cover(other Span) Span {
	if s.File != other.File || s.Line != other.Line {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

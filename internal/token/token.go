package token

import "fmt"

// Token represents a single token scanned from one trace line.
type Token struct {
	Kind Kind
	Text string
	Line uint32 // 1-based
	Col  uint32 // 1-based byte column

	// Num is set for Number tokens.
	Num uint64
	// Str is the decoded value for String tokens and the raw object text for DataPayload.
	Str string
	// Event is set for EventPayload tokens.
	Event *Event
}

// Event is the decoded form of an EventPayload token.
type Event struct {
	// Params is the text between the parentheses.
	Params string
	// Data is the trimmed text following the closing parenthesis; empty when absent.
	Data string
	// Closed reports whether a closing parenthesis was found.
	Closed bool
}

// Is reports whether the token is a keyword with the given text.
func (t Token) Is(keyword string) bool {
	return t.Kind == Keyword && t.Text == keyword
}

// IsPayload reports whether the token runs to the end of its line.
func (t Token) IsPayload() bool {
	return t.Kind == EventPayload || t.Kind == DataPayload
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Col, t.Kind, t.Text)
}

package token

const (
	// KwInstance opens an instance declaration line.
	KwInstance = "instance"
	// KwNote opens a note line.
	KwNote = "note"
)

var keywords = map[string]struct{}{
	KwInstance: {},
	KwNote:     {},
}

// IsKeyword reports whether word is reserved. Keywords are case sensitive.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

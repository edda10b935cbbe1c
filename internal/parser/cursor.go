package parser

import "arttrace/internal/token"

// Expect is one position of a token pattern. A non-empty Keyword also
// requires the token text to equal it.
type Expect struct {
	Kind    token.Kind
	Keyword string
}

// K expects a token of the given kind.
func K(kind token.Kind) Expect { return Expect{Kind: kind} }

// Kw expects the given keyword.
func Kw(word string) Expect { return Expect{Kind: token.Keyword, Keyword: word} }

func (e Expect) matches(tok token.Token) bool {
	if tok.Kind != e.Kind {
		return false
	}
	return e.Keyword == "" || tok.Text == e.Keyword
}

// Cursor is a position within the tokens of one line.
type Cursor struct {
	toks []token.Token
	pos  int
}

func NewCursor(toks []token.Token) *Cursor {
	return &Cursor{toks: toks}
}

// Pos returns the index of the next unconsumed token.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the unconsumed tokens.
func (c *Cursor) Remaining() []token.Token { return c.toks[c.pos:] }

// TryMatch succeeds when the next tokens match expected positionally. On
// success onMatch receives the matched tokens and the cursor advances past
// them unless onMatch returns false. On failure the cursor is untouched and
// onMatch is not called. A nil onMatch always consumes.
func (c *Cursor) TryMatch(onMatch func(matched []token.Token) bool, expected ...Expect) bool {
	if len(c.toks)-c.pos < len(expected) {
		return false
	}
	for i, e := range expected {
		if !e.matches(c.toks[c.pos+i]) {
			return false
		}
	}
	matched := c.toks[c.pos : c.pos+len(expected)]
	if onMatch == nil || onMatch(matched) {
		c.pos += len(expected)
	}
	return true
}

// Eat matches expected and consumes it.
func (c *Cursor) Eat(expected ...Expect) ([]token.Token, bool) {
	var out []token.Token
	ok := c.TryMatch(func(m []token.Token) bool {
		out = m
		return true
	}, expected...)
	return out, ok
}

// At reports whether the next token matches e without consuming it.
func (c *Cursor) At(e Expect) bool {
	return c.TryMatch(peekOnly, e)
}

func peekOnly([]token.Token) bool { return false }

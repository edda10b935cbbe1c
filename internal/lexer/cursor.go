package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor is a byte position within the line being scanned.
type Cursor struct {
	Src string
	Off int
}

// NewCursor creates a cursor at the start of line.
func NewCursor(line string) Cursor {
	return Cursor{Src: line}
}

// EOF reports whether the whole line was consumed.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek returns the current byte, or 0 at end of line.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Peek2 returns the current and the next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Src) {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// Bump advances by one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return len(c.Src)-c.Off >= len(s) && c.Src[c.Off:c.Off+len(s)] == s
}

// Rest returns the unread input.
func (c *Cursor) Rest() string {
	if c.EOF() {
		return ""
	}
	return c.Src[c.Off:]
}

// SkipToEnd consumes the rest of the line.
func (c *Cursor) SkipToEnd() {
	c.Off = len(c.Src)
}

// Mark is a saved cursor position.
type Mark int

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset moves the cursor back to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// Since returns the text scanned since m.
func (c *Cursor) Since(m Mark) string {
	return c.Src[int(m):c.Off]
}

// Col converts m into a 1-based column.
func (m Mark) Col() uint32 {
	col, err := safecast.Conv[uint32](int(m) + 1)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return col
}

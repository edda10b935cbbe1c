// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"arttrace/internal/diag"
	"arttrace/internal/source"
	"arttrace/internal/token"
)

// CheckTokenInvariants verifies the tokens scanned from one line:
//  1. the stream is non-empty and ends with EOF or Invalid
//  2. every token reports lineNo and columns strictly increase
//  3. each token's text is the slice of line at its column
func CheckTokenInvariants(line string, lineNo uint32, toks []token.Token) error {
	if len(toks) == 0 {
		return fmt.Errorf("line %d: empty token stream", lineNo)
	}
	if last := toks[len(toks)-1].Kind; last != token.EOF && last != token.Invalid {
		return fmt.Errorf("line %d: stream ends with %v", lineNo, last)
	}

	lineLen, err := safecast.Conv[uint32](len(line))
	if err != nil {
		return fmt.Errorf("line length overflow: %w", err)
	}
	var prevCol uint32
	for i, tok := range toks {
		if tok.Line != lineNo {
			return fmt.Errorf("token %d (%v) reports line %d, want %d", i, tok.Kind, tok.Line, lineNo)
		}
		if tok.Col == 0 || tok.Col > lineLen+1 {
			return fmt.Errorf("token %d (%v) column %d outside line of %d bytes", i, tok.Kind, tok.Col, lineLen)
		}
		if i > 0 && tok.Col <= prevCol && tok.Kind != token.EOF {
			return fmt.Errorf("token %d (%v) column %d does not follow %d", i, tok.Kind, tok.Col, prevCol)
		}
		prevCol = tok.Col

		if tok.Kind == token.EOF {
			continue
		}
		start := int(tok.Col - 1)
		end := start + len(tok.Text)
		if end > len(line) || line[start:end] != tok.Text {
			return fmt.Errorf("token %d (%v) text %q does not match line at column %d", i, tok.Kind, tok.Text, tok.Col)
		}
	}
	return nil
}

// CheckDiagnosticSpans verifies that every located diagnostic of bag
// points inside file: a real line, columns within it, Start <= End.
func CheckDiagnosticSpans(bag *diag.Bag, file *source.File) error {
	if bag == nil || file == nil {
		return fmt.Errorf("nil bag or file")
	}
	for i, d := range bag.Items() {
		sp := d.Primary
		if sp.Line == 0 {
			continue
		}
		if sp.File != file.ID {
			return fmt.Errorf("diagnostic %d (%s) points to file %d, want %d", i, d.Code.ID(), sp.File, file.ID)
		}
		if int(sp.Line) > file.LineCount() {
			return fmt.Errorf("diagnostic %d (%s) line %d beyond %d lines", i, d.Code.ID(), sp.Line, file.LineCount())
		}
		if sp.End < sp.Start {
			return fmt.Errorf("diagnostic %d (%s) span %v is inverted", i, d.Code.ID(), sp)
		}
		width := len(file.GetLine(sp.Line)) + 1
		if int(sp.Start) < 1 || int(sp.End) > width {
			return fmt.Errorf("diagnostic %d (%s) span %v outside line of %d bytes", i, d.Code.ID(), sp, width-1)
		}
	}
	return nil
}

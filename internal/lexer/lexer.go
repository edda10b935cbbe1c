package lexer

import (
	"arttrace/internal/fact"
	"arttrace/internal/token"
)

// Lexer scans ART trace lines one at a time. Besides tokens it extracts the
// trace configuration block spread over leading comment lines, so one Lexer
// must be used per file and must not be shared between goroutines.
type Lexer struct {
	opts   Options
	config configBlock
	result *fact.TraceConfiguration
}

func New(opts Options) *Lexer {
	return &Lexer{opts: opts}
}

// Scan tokenizes one line. The result always ends with an EOF token unless
// some input matched no rule, in which case it ends with an Invalid token
// and the rest of the line is not scanned.
func (lx *Lexer) Scan(line string, lineNo uint32) []token.Token {
	cur := NewCursor(line)
	toks := make([]token.Token, 0, 12)

	for {
		for !cur.EOF() && isSpace(cur.Peek()) {
			cur.Bump()
		}

		if cur.HasPrefix("//") {
			if len(toks) == 0 {
				lx.commentLine(cur.Rest()[2:], lineNo, cur.Mark())
			}
			cur.SkipToEnd()
		} else if len(toks) == 0 {
			lx.interruptConfig(lineNo, cur.Mark())
		}

		if cur.EOF() {
			return append(toks, token.Token{Kind: token.EOF, Line: lineNo, Col: cur.Mark().Col()})
		}

		tok := lx.next(&cur, lineNo)
		toks = append(toks, tok)
		switch {
		case tok.Kind == token.Invalid:
			return toks
		case tok.IsPayload():
			return append(toks, token.Token{Kind: token.EOF, Line: lineNo, Col: cur.Mark().Col()})
		}
	}
}

// next dispatches on the current byte. Rule order matters: payloads and
// punctuation first, addresses before numbers, keywords before names.
func (lx *Lexer) next(cur *Cursor, lineNo uint32) token.Token {
	start := cur.Mark()
	ch := cur.Peek()

	switch {
	case ch == '{':
		return lx.scanDataPayload(cur, lineNo)
	case ch == '(':
		return lx.scanEventPayload(cur, lineNo)
	case ch == '-' && cur.HasPrefix("->"):
		cur.Bump()
		cur.Bump()
		return lx.simple(cur, start, lineNo, token.Arrow)
	case ch == '.':
		cur.Bump()
		return lx.simple(cur, start, lineNo, token.Dot)
	case ch == '[':
		cur.Bump()
		return lx.simple(cur, start, lineNo, token.LBracket)
	case ch == ']':
		cur.Bump()
		return lx.simple(cur, start, lineNo, token.RBracket)
	case ch == ':' && !cur.HasPrefix("::"):
		cur.Bump()
		return lx.simple(cur, start, lineNo, token.Colon)
	case ch == '"':
		return lx.scanString(cur, lineNo)
	case ch == '0' && lx.isAddressStart(cur):
		return lx.scanAddress(cur, lineNo)
	case isDec(ch):
		return lx.scanNumber(cur, lineNo)
	case isNameStart(ch):
		return lx.scanWord(cur, lineNo)
	default:
		return lx.invalid(cur, start, lineNo, "unexpected input")
	}
}

func (lx *Lexer) simple(cur *Cursor, start Mark, lineNo uint32, kind token.Kind) token.Token {
	return token.Token{Kind: kind, Text: cur.Since(start), Line: lineNo, Col: start.Col()}
}

// invalid consumes one byte and produces an Invalid token.
func (lx *Lexer) invalid(cur *Cursor, start Mark, lineNo uint32, msg string) token.Token {
	if cur.Mark() == start {
		cur.Bump()
	}
	if lx.opts.ReportUnmatched {
		lx.report(codeUnmatched, sevUnmatched, lineNo, start, cur.Mark(), msg)
	}
	return token.Token{Kind: token.Invalid, Text: cur.Since(start), Line: lineNo, Col: start.Col()}
}

// Configuration returns the trace configuration found so far, or nil.
func (lx *Lexer) Configuration() *fact.TraceConfiguration {
	return lx.result
}

// Finish reports a configuration block left open at end of input.
func (lx *Lexer) Finish(lastLine uint32) {
	lx.interruptConfig(lastLine, 0)
}

package lexer

import (
	"strings"

	"arttrace/internal/diag"
	"arttrace/internal/token"
)

// scanDataPayload takes the rest of the line from '{' as structured data.
func (lx *Lexer) scanDataPayload(cur *Cursor, lineNo uint32) token.Token {
	start := cur.Mark()
	cur.SkipToEnd()
	text := cur.Since(start)
	return token.Token{
		Kind: token.DataPayload,
		Text: text,
		Str:  strings.TrimRight(text, " \t\r"),
		Line: lineNo,
		Col:  start.Col(),
	}
}

// scanEventPayload takes the rest of the line from '('. The closing
// parenthesis is the rightmost ')' followed by nothing or by '{', so
// parameters may themselves contain parentheses.
func (lx *Lexer) scanEventPayload(cur *Cursor, lineNo uint32) token.Token {
	start := cur.Mark()
	cur.SkipToEnd()
	text := cur.Since(start)
	rest := text[1:]

	ev := &token.Event{Params: rest}
	if i := closingParen(rest); i >= 0 {
		ev.Params = rest[:i]
		ev.Data = strings.TrimSpace(rest[i+1:])
		ev.Closed = true
	} else {
		lx.report(diag.LexUnclosedEvent, diag.SevInfo, lineNo, start, cur.Mark(), "event payload has no closing ')'")
	}
	return token.Token{Kind: token.EventPayload, Text: text, Line: lineNo, Col: start.Col(), Event: ev}
}

func closingParen(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != ')' {
			continue
		}
		tail := strings.TrimSpace(s[i+1:])
		if tail == "" || tail[0] == '{' {
			return i
		}
	}
	return -1
}

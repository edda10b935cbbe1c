package lexer

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"arttrace/internal/diag"
	"arttrace/internal/token"
)

// scanString scans "..." and decodes its escapes into Str.
func (lx *Lexer) scanString(cur *Cursor, lineNo uint32) token.Token {
	start := cur.Mark()
	cur.Bump() // opening '"'
	for !cur.EOF() {
		b := cur.Bump()
		if b == '\\' {
			cur.Bump()
			continue
		}
		if b == '"' {
			text := cur.Since(start)
			value := lx.unescape(text[1:len(text)-1], lineNo, start)
			return token.Token{Kind: token.String, Text: text, Str: norm.NFC.String(value), Line: lineNo, Col: start.Col()}
		}
	}
	lx.report(diag.LexUnterminatedStr, diag.SevWarning, lineNo, start, cur.Mark(), "unterminated string")
	return token.Token{Kind: token.Invalid, Text: cur.Since(start), Line: lineNo, Col: start.Col()}
}

// unescape resolves Go/JSON style escapes. An invalid escape keeps the
// escaped character literally.
func (lx *Lexer) unescape(body string, lineNo uint32, start Mark) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for len(body) > 0 {
		r, multibyte, tail, err := strconv.UnquoteChar(body, '"')
		if err != nil {
			if body[0] == '\\' && len(body) > 1 {
				lx.report(diag.LexBadEscape, diag.SevInfo, lineNo, start, start, "invalid escape \\"+body[1:2])
				sb.WriteByte(body[1])
				body = body[2:]
			} else {
				sb.WriteByte(body[0])
				body = body[1:]
			}
			continue
		}
		if multibyte || r >= 0x80 {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(byte(r))
		}
		body = tail
	}
	return sb.String()
}

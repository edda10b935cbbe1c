package lexer

import (
	"strconv"

	"arttrace/internal/diag"
	"arttrace/internal/token"
)

const (
	codeUnmatched = diag.LexUnmatchedInput
	sevUnmatched  = diag.SevWarning
)

// scanWord scans a name, possibly qualified with '::' (Timing::Base), and
// classifies it as Keyword when it is a reserved word.
func (lx *Lexer) scanWord(cur *Cursor, lineNo uint32) token.Token {
	start := cur.Mark()
	for {
		for isNameContinue(cur.Peek()) {
			cur.Bump()
		}
		if !cur.HasPrefix("::") {
			break
		}
		m := cur.Mark()
		cur.Bump()
		cur.Bump()
		if !isNameStart(cur.Peek()) {
			cur.Reset(m)
			break
		}
	}
	text := cur.Since(start)
	kind := token.Name
	if token.IsKeyword(text) {
		kind = token.Keyword
	}
	return token.Token{Kind: kind, Text: text, Str: text, Line: lineNo, Col: start.Col()}
}

func (lx *Lexer) isAddressStart(cur *Cursor) bool {
	rest := cur.Rest()
	return len(rest) >= 3 && (rest[1] == 'x' || rest[1] == 'X') && isHex(rest[2])
}

// scanAddress scans 0x followed by hex digits.
func (lx *Lexer) scanAddress(cur *Cursor, lineNo uint32) token.Token {
	start := cur.Mark()
	cur.Bump() // '0'
	cur.Bump() // 'x'
	for isHex(cur.Peek()) {
		cur.Bump()
	}
	if isNameContinue(cur.Peek()) {
		return lx.invalid(cur, start, lineNo, "malformed address")
	}
	return token.Token{Kind: token.Address, Text: cur.Since(start), Line: lineNo, Col: start.Col()}
}

// scanNumber scans an unsigned decimal integer.
func (lx *Lexer) scanNumber(cur *Cursor, lineNo uint32) token.Token {
	start := cur.Mark()
	for isDec(cur.Peek()) {
		cur.Bump()
	}
	if isNameContinue(cur.Peek()) {
		return lx.invalid(cur, start, lineNo, "malformed number")
	}
	text := cur.Since(start)
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		lx.report(diag.LexBadNumber, diag.SevWarning, lineNo, start, cur.Mark(), "number out of range: "+text)
		return token.Token{Kind: token.Invalid, Text: text, Line: lineNo, Col: start.Col()}
	}
	return token.Token{Kind: token.Number, Text: text, Num: n, Line: lineNo, Col: start.Col()}
}

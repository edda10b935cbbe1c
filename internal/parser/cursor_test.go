package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arttrace/internal/lexer"
	"arttrace/internal/parser"
	"arttrace/internal/token"
)

func scan(line string) []token.Token {
	return lexer.New(lexer.Options{}).Scan(line, 1)
}

func TestTryMatchAdvances(t *testing.T) {
	cur := parser.NewCursor(scan("instance 0x1 a"))
	var got []token.Token
	ok := cur.TryMatch(func(m []token.Token) bool {
		got = m
		return true
	}, parser.Kw(token.KwInstance), parser.K(token.Address))

	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "0x1", got[1].Text)
	assert.Equal(t, 2, cur.Pos())
}

func TestTryMatchPeek(t *testing.T) {
	cur := parser.NewCursor(scan(": T"))
	called := false
	ok := cur.TryMatch(func([]token.Token) bool {
		called = true
		return false
	}, parser.K(token.Colon))

	assert.True(t, ok)
	assert.True(t, called)
	assert.Equal(t, 0, cur.Pos())
}

func TestTryMatchFailureLeavesCursor(t *testing.T) {
	cur := parser.NewCursor(scan("note x"))
	called := false
	onMatch := func([]token.Token) bool {
		called = true
		return true
	}

	assert.False(t, cur.TryMatch(onMatch, parser.Kw(token.KwInstance)))
	assert.False(t, cur.TryMatch(onMatch, parser.Kw(token.KwNote), parser.K(token.String)))
	assert.False(t, cur.TryMatch(onMatch, parser.Kw(token.KwNote), parser.K(token.Name), parser.K(token.EOF), parser.K(token.EOF)))
	assert.False(t, called)
	assert.Equal(t, 0, cur.Pos())
}

func TestMatchIsPure(t *testing.T) {
	toks := scan("instance 0x1 a.b")
	first := parser.Match(toks, 1)
	second := parser.Match(toks, 1)
	require.NotNil(t, first)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

package token_test

import (
	"testing"

	"arttrace/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Invalid:      "Invalid",
		token.EOF:          "EOF",
		token.Address:      "Address",
		token.EventPayload: "EventPayload",
		token.DataPayload:  "DataPayload",
		token.Kind(200):    "Unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	for _, w := range []string{"instance", "note"} {
		if !token.IsKeyword(w) {
			t.Fatalf("%q should be a keyword", w)
		}
	}
	for _, w := range []string{"Instance", "NOTE", "notes", "application", ""} {
		if token.IsKeyword(w) {
			t.Fatalf("%q must NOT be a keyword", w)
		}
	}
}

func TestTokenIs(t *testing.T) {
	kw := token.Token{Kind: token.Keyword, Text: "note"}
	if !kw.Is(token.KwNote) {
		t.Fatal("keyword token should match its own text")
	}
	if kw.Is(token.KwInstance) {
		t.Fatal("keyword token must not match another keyword")
	}
	name := token.Token{Kind: token.Name, Text: "note"}
	if name.Is(token.KwNote) {
		t.Fatal("name token must not match a keyword qualifier")
	}
}

func TestIsPayload(t *testing.T) {
	if !(token.Token{Kind: token.EventPayload}).IsPayload() {
		t.Fatal("EventPayload should be a payload")
	}
	if !(token.Token{Kind: token.DataPayload}).IsPayload() {
		t.Fatal("DataPayload should be a payload")
	}
	if (token.Token{Kind: token.Colon}).IsPayload() {
		t.Fatal("Colon must NOT be a payload")
	}
}

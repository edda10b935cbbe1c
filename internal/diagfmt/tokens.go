package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"arttrace/internal/token"
)

type TokenOutput struct {
	Kind     string `json:"kind"`
	Text     string `json:"text,omitempty"`
	Line     uint32 `json:"line"`
	Col      uint32 `json:"col"`
	Value    string `json:"value,omitempty"`
	Params   string `json:"params,omitempty"`
	Data     string `json:"data,omitempty"`
	Unclosed bool   `json:"unclosed,omitempty"`
}

func tokenOutput(tok token.Token) TokenOutput {
	out := TokenOutput{
		Kind: tok.Kind.String(),
		Text: tok.Text,
		Line: tok.Line,
		Col:  tok.Col,
	}
	switch tok.Kind {
	case token.Number:
		out.Value = fmt.Sprint(tok.Num)
	case token.String:
		out.Value = tok.Str
	case token.EventPayload:
		if tok.Event != nil {
			out.Params = tok.Event.Params
			out.Data = tok.Event.Data
			out.Unclosed = !tok.Event.Closed
		}
	}
	return out
}

// FormatTokensPretty prints one token per row. EOF markers are skipped.
//
//	  7:1   Name            "Alice"
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		pos := fmt.Sprintf("%d:%d", tok.Line, tok.Col)
		if _, err := fmt.Fprintf(w, "%s %s %q", runewidth.FillRight(pos, 7), runewidth.FillRight(tok.Kind.String(), 15), tok.Text); err != nil {
			return err
		}
		out := tokenOutput(tok)
		switch {
		case out.Params != "" || out.Data != "" || out.Unclosed:
			fmt.Fprintf(w, " params=%q", out.Params)
			if out.Data != "" {
				fmt.Fprintf(w, " data=%q", out.Data)
			}
			if out.Unclosed {
				fmt.Fprint(w, " (unclosed)")
			}
		case out.Value != "" && out.Value != tok.Text:
			fmt.Fprintf(w, " = %q", out.Value)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as a JSON array. EOF markers are skipped.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		output = append(output, tokenOutput(tok))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

package parser

import (
	"arttrace/internal/fact"
	"arttrace/internal/token"
)

// parseNote matches
//
//	note "<text>" [{data}]
func parseNote(toks []token.Token, lineNo uint32) (fact.Fact, *payloadError) {
	cur := NewCursor(toks)
	head, ok := cur.Eat(Kw(token.KwNote), K(token.String))
	if !ok {
		return nil, nil
	}
	note := &fact.Note{Text: head[1].Str, LineNo: lineNo}

	var perr *payloadError
	if data, ok := cur.Eat(K(token.DataPayload)); ok {
		ts, fields, err := fact.DecodeNoteData(data[0].Str)
		if err != nil {
			perr = &payloadError{tok: data[0], what: "note data", err: err}
		}
		note.Time = ts
		note.Fields = fields
	}

	if !cur.At(K(token.EOF)) {
		return nil, nil
	}
	return note, perr
}

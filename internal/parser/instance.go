package parser

import (
	"arttrace/internal/fact"
	"arttrace/internal/token"
)

// parseInstance matches
//
//	instance <address> <name>[.name...][[n]][.name...]...[: <type>] [{data}]
func parseInstance(toks []token.Token, lineNo uint32) (fact.Fact, *payloadError) {
	cur := NewCursor(toks)
	decl := &fact.InstanceDecl{LineNo: lineNo}

	head, ok := cur.Eat(Kw(token.KwInstance), K(token.Address))
	if !ok {
		return nil, nil
	}
	decl.Address = head[1]

	appendPath := func(m []token.Token) bool {
		for _, tok := range m {
			if tok.Kind == token.Name || tok.Kind == token.Number {
				decl.Structure = append(decl.Structure, tok)
			}
		}
		return true
	}

	for {
		if !cur.TryMatch(appendPath, K(token.Name)) {
			return nil, nil
		}
		for cur.TryMatch(appendPath, K(token.Dot), K(token.Name)) {
		}
		cur.TryMatch(appendPath, K(token.LBracket), K(token.Number), K(token.RBracket))
		if cur.TryMatch(nil, K(token.Dot)) {
			continue
		}
		if cur.At(K(token.Colon)) || cur.At(K(token.EOF)) || cur.At(K(token.DataPayload)) {
			break
		}
		return nil, nil
	}

	if typ, ok := cur.Eat(K(token.Colon), K(token.Name)); ok {
		decl.DynamicType = &typ[1]
	}

	var perr *payloadError
	if data, ok := cur.Eat(K(token.DataPayload)); ok {
		d, err := fact.DecodeInstanceData(data[0].Str)
		if err != nil {
			perr = &payloadError{tok: data[0], what: "instance data", err: err}
		}
		decl.Data = d
	}

	if !cur.At(K(token.EOF)) {
		return nil, nil
	}
	return decl, perr
}

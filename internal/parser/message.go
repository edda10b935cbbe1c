package parser

import (
	"fortio.org/safecast"

	"arttrace/internal/fact"
	"arttrace/internal/token"
)

// parseMessage matches
//
//	<addr> <name>[.port][[n]] -> <addr> <name>[.port][[n]] : <event>(<params>)[{data}]
func parseMessage(toks []token.Token, lineNo uint32) (fact.Fact, *payloadError) {
	cur := NewCursor(toks)
	msg := &fact.MessageOccurrence{LineNo: lineNo}

	if !parseEndpoint(cur, &msg.Sender) {
		return nil, nil
	}
	if !cur.TryMatch(nil, K(token.Arrow)) {
		return nil, nil
	}
	if !parseEndpoint(cur, &msg.Receiver) {
		return nil, nil
	}

	tail, ok := cur.Eat(K(token.Colon), K(token.Name), K(token.EventPayload))
	if !ok || !cur.At(K(token.EOF)) {
		return nil, nil
	}
	msg.Event = tail[1]

	ev := tail[2].Event
	if ev == nil {
		ev = &token.Event{}
	}
	payload, err := fact.DecodePayload(ev.Params, ev.Data)
	msg.Payload = payload

	var perr *payloadError
	if err != nil {
		perr = &payloadError{tok: tail[2], what: "message data", err: err}
	}
	return msg, perr
}

// parseEndpoint matches <addr> <name> with an optional .port and [index].
func parseEndpoint(cur *Cursor, ep *fact.Endpoint) bool {
	head, ok := cur.Eat(K(token.Address), K(token.Name))
	if !ok {
		return false
	}
	ep.Address = head[0]
	ep.Name = head[1].Text

	if port, ok := cur.Eat(K(token.Dot), K(token.Name)); ok {
		ep.Port = port[1].Text
	}
	start := cur.Pos()
	if idx, ok := cur.Eat(K(token.LBracket), K(token.Number), K(token.RBracket)); ok {
		n, err := safecast.Conv[int](idx[1].Num)
		if err != nil {
			cur.pos = start
			return false
		}
		ep.PortIndex = &n
	}
	return true
}

package token

// Kind represents the category of a trace token.
type Kind uint8

const (
	// Invalid indicates input that matched no token rule.
	Invalid Kind = iota
	// EOF marks the end of the scanned line.
	EOF

	// Keyword represents one of the reserved words 'instance' or 'note'.
	Keyword
	// Name represents an identifier (instance path element, display name, type, event, port).
	Name
	// String represents a double-quoted string; Str holds the unescaped value.
	String
	// Address represents a hexadecimal instance address such as 0x7ffd2c.
	Address
	// Number represents a decimal integer; Num holds the value.
	Number

	// Arrow represents the message direction operator.
	Arrow // ->
	// Dot represents the path and port separator.
	Dot // .
	// LBracket represents an opening index bracket.
	LBracket // [
	// RBracket represents a closing index bracket.
	RBracket // ]
	// Colon represents the type or event separator.
	Colon // :

	// EventPayload is the parenthesized message payload running to end of line.
	EventPayload // ( ... ) { ... }
	// DataPayload is the brace-delimited structured data attached to instance and note lines.
	DataPayload // { ... }
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Keyword:      "Keyword",
	Name:         "Name",
	String:       "String",
	Address:      "Address",
	Number:       "Number",
	Arrow:        "Arrow",
	Dot:          "Dot",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Colon:        "Colon",
	EventPayload: "EventPayload",
	DataPayload:  "DataPayload",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

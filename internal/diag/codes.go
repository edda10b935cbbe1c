package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo             Code = 1000
	LexUnmatchedInput   Code = 1001
	LexBadNumber        Code = 1002
	LexUnterminatedStr  Code = 1003
	LexBadEscape        Code = 1004
	LexUnclosedEvent    Code = 1005
	LexPayloadMalformed Code = 1006

	// Syntax
	SynInfo    Code = 2000
	SynNoMatch Code = 2001

	// Trace configuration
	CfgInfo         Code = 3000
	CfgMalformed    Code = 3001
	CfgUnterminated Code = 3002
	CfgReplaced     Code = 3003

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		LexInfo:             "Lexical information",
		LexUnmatchedInput:   "Input matches no token",
		LexBadNumber:        "Number out of range",
		LexUnterminatedStr:  "Unterminated string",
		LexBadEscape:        "Invalid escape sequence in string",
		LexUnclosedEvent:    "Event payload has no closing parenthesis",
		LexPayloadMalformed: "Structured payload is not valid JSON",
		SynInfo:             "Syntax information",
		SynNoMatch:          "Line matches no trace statement",
		CfgInfo:             "Trace configuration information",
		CfgMalformed:        "Trace configuration is not valid JSON",
		CfgUnterminated:     "Trace configuration block is not closed",
		CfgReplaced:         "Trace configuration defined more than once",
		IOLoadFileError:     "I/O load file error",
		IOCacheError:        "Parse cache error",
		ObsInfo:             "Observability information",
		ObsTimings:          "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

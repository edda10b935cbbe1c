package parser

import (
	"arttrace/internal/diag"
	"arttrace/internal/source"
)

type Options struct {
	Reporter diag.Reporter
	File     source.FileID
	// Strict reports lines that match no production, including lines
	// with input the lexer could not tokenize.
	Strict bool
}

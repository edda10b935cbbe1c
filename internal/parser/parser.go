package parser

import (
	"fmt"

	"fortio.org/safecast"

	"arttrace/internal/diag"
	"arttrace/internal/fact"
	"arttrace/internal/lexer"
	"arttrace/internal/source"
	"arttrace/internal/token"
)

// production turns the tokens of one line into a fact, or nil when the
// line does not have its shape. A non-nil payloadError comes with a fact
// whose optional data was dropped.
type production func(toks []token.Token, lineNo uint32) (fact.Fact, *payloadError)

// productions are tried in order; the first match wins.
var productions = []production{
	parseInstance,
	parseMessage,
	parseNote,
}

type payloadError struct {
	tok  token.Token
	what string
	err  error
}

// Match runs the productions over the tokens of one line.
func Match(toks []token.Token, lineNo uint32) fact.Fact {
	f, _ := match(toks, lineNo)
	return f
}

func match(toks []token.Token, lineNo uint32) (fact.Fact, *payloadError) {
	for _, prod := range productions {
		if f, perr := prod(toks, lineNo); f != nil {
			return f, perr
		}
	}
	return nil, nil
}

// Parser is the parsing session for one trace file. It owns the lexer and
// with it the trace configuration found in the file, so a Parser must not
// be shared between files or goroutines.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastLine uint32
}

func New(opts Options) *Parser {
	return &Parser{
		lx: lexer.New(lexer.Options{
			Reporter:        opts.Reporter,
			File:            opts.File,
			ReportUnmatched: opts.Strict,
		}),
		opts: opts,
	}
}

// ParseLine parses one line. It returns nil for blank lines, comments and
// lines that match no production.
func (p *Parser) ParseLine(line string, lineNo uint32) fact.Fact {
	p.lastLine = lineNo
	toks := p.lx.Scan(line, lineNo)
	if len(toks) == 1 && toks[0].Kind == token.EOF {
		return nil
	}
	if toks[len(toks)-1].Kind == token.Invalid {
		// already reported by the lexer in strict mode
		return nil
	}

	f, perr := match(toks, lineNo)
	if perr != nil {
		p.report(diag.LexPayloadMalformed, diag.SevWarning, perr.span(p.opts.File),
			fmt.Sprintf("%s ignored: %v", perr.what, perr.err))
	}
	if f == nil && p.opts.Strict {
		p.report(diag.SynNoMatch, diag.SevWarning, lineSpan(p.opts.File, lineNo, line),
			"line is not an instance, message or note")
	}
	return f
}

// Tokens scans a line without parsing it. The configuration block is
// still tracked.
func (p *Parser) Tokens(line string, lineNo uint32) []token.Token {
	p.lastLine = lineNo
	return p.lx.Scan(line, lineNo)
}

// Configuration returns the trace configuration seen so far, or nil.
func (p *Parser) Configuration() *fact.TraceConfiguration {
	return p.lx.Configuration()
}

// Finish ends the session. It reports a configuration block left open.
func (p *Parser) Finish() {
	p.lx.Finish(p.lastLine)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg).Emit()
}

func (e *payloadError) span(file source.FileID) source.Span {
	n, err := safecast.Conv[uint32](len(e.tok.Text))
	if err != nil {
		n = 0
	}
	return source.Span{File: file, Line: e.tok.Line, Start: e.tok.Col, End: e.tok.Col + n}
}

func lineSpan(file source.FileID, lineNo uint32, line string) source.Span {
	end, err := safecast.Conv[uint32](len(line) + 1)
	if err != nil {
		end = 1
	}
	return source.Span{File: file, Line: lineNo, Start: 1, End: end}
}

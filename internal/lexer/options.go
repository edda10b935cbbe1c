package lexer

import (
	"arttrace/internal/diag"
	"arttrace/internal/source"
)

type Options struct {
	// Reporter receives non-fatal diagnostics; nil drops them.
	Reporter diag.Reporter
	// File is used to locate diagnostics.
	File source.FileID
	// ReportUnmatched also reports input that matches no token rule.
	// Such lines are skipped either way.
	ReportUnmatched bool
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, line uint32, start, end Mark, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	sp := source.Span{File: lx.opts.File, Line: line, Start: start.Col(), End: end.Col()}
	diag.NewReportBuilder(lx.opts.Reporter, sev, code, sp, msg).Emit()
}

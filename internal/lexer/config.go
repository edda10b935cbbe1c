package lexer

import (
	"fmt"
	"strings"

	"arttrace/internal/diag"
	"arttrace/internal/fact"
)

// configBlock accumulates a trace configuration spread over comment lines:
//
//	// {
//	//   "trace": {"application": "App"}
//	// }
type configBlock struct {
	active    bool
	depth     int
	startLine uint32
	parts     []string
	// lastErr is the parse error of the latest closing line while the
	// block stays open for a nested object.
	lastErr error
}

func (c *configBlock) reset() {
	*c = configBlock{}
}

func (c *configBlock) open(lineNo uint32) {
	*c = configBlock{active: true, depth: 1, startLine: lineNo, parts: []string{"{"}}
}

// commentLine handles a line that is entirely a comment. body is the text
// after the "//" marker.
func (lx *Lexer) commentLine(body string, lineNo uint32, at Mark) {
	trimmed := strings.TrimSpace(body)
	cfg := &lx.config
	end := Mark(len(body) + int(at) + 2)
	if !cfg.active {
		if trimmed == "{" {
			cfg.open(lineNo)
		}
		return
	}

	// an opening line after a failed close starts over
	if trimmed == "{" && cfg.lastErr != nil {
		lx.dropMalformed(lineNo, at, end)
		cfg.open(lineNo)
		return
	}

	cfg.parts = append(cfg.parts, trimmed)
	cfg.depth += braceDelta(trimmed)
	if trimmed != "}" {
		return
	}

	parsed, err := fact.ParseConfiguration(strings.Join(cfg.parts, "\n"), lineNo)
	if err != nil {
		cfg.lastErr = err
		if cfg.depth <= 0 {
			lx.dropMalformed(lineNo, at, end)
		}
		return
	}
	cfg.reset()
	if lx.result != nil {
		lx.report(diag.CfgReplaced, diag.SevInfo, lineNo, at, at,
			fmt.Sprintf("trace configuration replaces the one ending on line %d", lx.result.LineNo))
	}
	lx.result = parsed
}

// dropMalformed reports the open block as malformed and discards it.
func (lx *Lexer) dropMalformed(lineNo uint32, at, end Mark) {
	startLine, err := lx.config.startLine, lx.config.lastErr
	lx.config.reset()
	lx.report(diag.CfgMalformed, diag.SevWarning, lineNo, at, end,
		fmt.Sprintf("trace configuration starting on line %d ignored: %v", startLine, err))
}

// interruptConfig drops an open block when a non-comment line (or the end of
// input) breaks the run of comment lines.
func (lx *Lexer) interruptConfig(lineNo uint32, at Mark) {
	if !lx.config.active {
		return
	}
	if lx.config.lastErr != nil {
		lx.dropMalformed(lineNo, at, at)
		return
	}
	startLine := lx.config.startLine
	lx.config.reset()
	lx.report(diag.CfgUnterminated, diag.SevWarning, lineNo, at, at,
		fmt.Sprintf("trace configuration starting on line %d is not closed", startLine))
}
